package cmd

import (
	"github.com/spf13/cobra"
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Manage remote storage backends",
	Long: `Provides configuration of the remote storage backends environments can
sync against. Remotes are named process-wide and referenced from
environment bindings created with set-remote.`,
}

func init() {
	remoteCmd.AddCommand(remoteAddCmd)
	remoteCmd.AddCommand(remoteListCmd)
	remoteCmd.AddCommand(remoteShowCmd)
	remoteCmd.AddCommand(remoteRemoveCmd)
}
