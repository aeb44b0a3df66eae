package cmd

import (
	"github.com/PolarWolf314/totara/internal/registry"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	setRemoteName string
	setRemoteKey  string
)

func init() {
	setRemoteCmd.Flags().StringVarP(&setRemoteName, "remote", "r", "", "name of the remote to bind")
	setRemoteCmd.Flags().StringVarP(&setRemoteKey, "key", "k", "", "object key on the remote (defaults to <project-id>/<environment>.env)")
}

var setRemoteCmd = &cobra.Command{
	Use:   "set-remote <environment>",
	Short: "Bind an environment to a remote",
	Long: `Associates a tracked environment with a configured remote so that push,
pull, and fetch know where to sync. When --remote is omitted and exactly
one remote is configured, it is selected automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envName := args[0]

		spinner, cleanup := startSpinner("Binding remote...", verbose)
		defer cleanup()

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		project, err := currentProject(reg)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve project: %v", err)
		}

		remoteName := setRemoteName
		if remoteName == "" {
			remoteName, err = pickSoleRemote(reg)
			if err != nil {
				spinner.FinalMSG = color.RedString("✗") + " No remote selected\n" +
					color.CyanString("→") + " Pass " + color.YellowString("--remote <name>") + " or run " +
					color.YellowString("totara remote list") + " to see configured remotes"
				return err
			}
			Logger.Infof("Using the only configured remote: %s", remoteName)
		}

		env, err := reg.BindRemote(project, envName, remoteName, setRemoteKey)
		if err != nil {
			return Logger.ErrorfAndReturn("cannot bind remote: %v", err)
		}

		if err := reg.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save registry: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Environment " + color.CyanString(envName) +
			" bound to " + color.CyanString(remoteName) + ":" + color.YellowString(env.Remote.Key) + "\n" +
			color.CyanString("→") + " Run " + color.YellowString("totara push "+envName) + " to upload it"
		return nil
	},
}

// pickSoleRemote returns the single configured remote, or an error when
// there are zero or several to choose from.
func pickSoleRemote(reg *registry.Registry) (string, error) {
	remotes := reg.Remotes()
	if len(remotes) == 1 {
		return remotes[0].Name, nil
	}
	if len(remotes) == 0 {
		return "", Logger.ErrorfAndReturn("no remotes configured")
	}
	return "", Logger.ErrorfAndReturn("%d remotes configured, pick one with --remote", len(remotes))
}
