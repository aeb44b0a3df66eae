package cmd

import (
	"fmt"

	"github.com/PolarWolf314/totara/internal/envfile"
	"github.com/PolarWolf314/totara/internal/syncer"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <environment>",
	Short: "Display an environment's remote content without touching the local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envName := args[0]

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		project, err := currentProject(reg)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve project: %v", err)
		}

		engine := syncer.Engine{
			Registry: reg,
			Logger:   Logger,
		}

		result, err := engine.Fetch(cmd.Context(), project, envName)
		if err != nil {
			return Logger.ErrorfAndReturn("fetch failed: %v", err)
		}

		fmt.Println(ui.Muted.Sprintf("%s:%s", result.Remote, result.Key))
		fmt.Print(string(envfile.Serialize(result.Document)))
		return nil
	},
}
