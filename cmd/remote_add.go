package cmd

import (
	"errors"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var remoteBackendKind string

func init() {
	remoteAddCmd.Flags().StringVarP(&remoteBackendKind, "backend", "b", storage.KindS3, "backend kind (s3 or local)")
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Configure a new remote storage backend",
	Long: `Creates a named remote configuration. Backend parameters are gathered
interactively: for s3 the bucket, region, and credentials (a shared
AWS profile or a static key pair); for local an optional base directory.

Secret values are read without echo and stored in the registry file,
which lives in your user config directory with owner-only permissions.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		params, err := promptBackendParams(remoteBackendKind)
		if err != nil {
			return err
		}

		spinner, cleanup := startSpinner("Adding remote...", verbose)
		defer cleanup()

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		if _, err := reg.AddRemote(name, remoteBackendKind, params); err != nil {
			if errors.Is(err, terrors.ErrRemoteExists) {
				spinner.FinalMSG = color.RedString("✗") + " A remote named " + color.CyanString(name) + " already exists\n" +
					color.CyanString("→") + " Run " + color.YellowString("totara remote list") + " to see configured remotes"
				return err
			}
			return Logger.ErrorfAndReturn("failed to add remote: %v", err)
		}

		if err := reg.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save registry: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Remote " + color.CyanString(name) + " configured\n" +
			color.CyanString("→") + " Run " + color.YellowString("totara set-remote <environment> --remote "+name) + " to bind an environment"
		return nil
	},
}

// promptBackendParams gathers the connection parameters for a backend kind.
func promptBackendParams(kind string) (map[string]string, error) {
	params := make(map[string]string)

	switch kind {
	case storage.KindS3:
		bucket, err := promptLine("S3 bucket: ")
		if err != nil {
			return nil, err
		}
		if bucket == "" {
			return nil, Logger.ErrorfAndReturn("an S3 bucket is required")
		}
		params[storage.ParamBucket] = bucket

		region, err := promptLine("AWS region (empty for the SDK default): ")
		if err != nil {
			return nil, err
		}
		if region != "" {
			params[storage.ParamRegion] = region
		}

		profile, err := promptLine("AWS profile (empty to enter keys): ")
		if err != nil {
			return nil, err
		}
		if profile != "" {
			params[storage.ParamProfile] = profile
			return params, nil
		}

		accessKeyID, err := promptLine("AWS access key ID (empty for the SDK default chain): ")
		if err != nil {
			return nil, err
		}
		if accessKeyID != "" {
			secretKey, err := promptSecret("AWS secret access key: ")
			if err != nil {
				return nil, err
			}
			if secretKey == "" {
				return nil, Logger.ErrorfAndReturn("a secret access key is required with a static key pair")
			}
			params[storage.ParamAccessKeyID] = accessKeyID
			params[storage.ParamSecretAccessKey] = secretKey
		}

	case storage.KindLocal:
		path, err := promptLine("Storage directory (empty for the default): ")
		if err != nil {
			return nil, err
		}
		if path != "" {
			params[storage.ParamPath] = path
		}

	default:
		return nil, Logger.ErrorfAndReturn("unknown backend %q (supported: %s, %s)", kind, storage.KindS3, storage.KindLocal)
	}

	return params, nil
}

// maskedParam hides credential material when showing remote configs.
func maskedParam(key, value string) string {
	if key == storage.ParamSecretAccessKey {
		return "********"
	}
	return value
}
