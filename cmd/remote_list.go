package cmd

import (
	"fmt"

	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured remotes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		remotes := reg.Remotes()
		if len(remotes) == 0 {
			fmt.Println("No remotes configured")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("totara remote add <name>") + " to configure one")
			return nil
		}

		for _, remote := range remotes {
			fmt.Println("  " + ui.Highlight.Sprint(remote.Name) + "  " + ui.Muted.Sprint(remote.Backend))
		}
		return nil
	},
}
