package cmd

import (
	logger "github.com/PolarWolf314/totara/internal/logging"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "totara",
	Short: "Totara - track, diff, and sync environment secrets across projects.",
	Long: `Totara is a command-line tool for managing environment-variable files
("secrets") across your local projects.

It tracks one env file per named environment (e.g. local, dev, prod),
shows key-level differences between environments, and keeps tracked
files in sync with remote object storage such as AWS S3.

Typical workflow:
  totara register                 # register the current directory as a project
  totara track .env -e local      # track a file for an environment
  totara diff local dev           # compare two environments
  totara remote add company-s3    # configure a storage backend
  totara set-remote prod          # bind an environment to a remote
  totara push prod                # upload, with a diff and confirmation first

Run 'totara help <command>' for more details on a specific command.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing totara with verbose=%t, debug=%t", verbose, debug)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(unregisterCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(setRemoteCmd)
	rootCmd.AddCommand(unsetRemoteCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(pullCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
