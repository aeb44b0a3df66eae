package cmd

import (
	"fmt"
	"os"

	"github.com/PolarWolf314/totara/internal/registry"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tracked environments of the current project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		project, err := currentProject(reg)
		if err != nil {
			fmt.Println(ui.Error.Sprint("✗") + " This directory is not part of a registered project")
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("totara register") + " first")
			return err
		}

		if len(project.Environments) == 0 {
			fmt.Println("No environments tracked for " + ui.Path.Sprint(project.Root))
			fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("totara track <file>") + " to start tracking one")
			return nil
		}

		fmt.Println("Environments for " + ui.Path.Sprint(project.Root) + ":")
		for _, env := range project.Environments {
			line := "  " + ui.Highlight.Sprint(env.Name) + "  " + ui.Path.Sprint(env.File)

			if _, statErr := os.Stat(registry.EnvFilePath(project, &env)); os.IsNotExist(statErr) {
				line += "  " + ui.Warning.Sprint("[missing]")
			}

			if env.Remote != nil {
				line += "  " + ui.Info.Sprint("→") + " " + env.Remote.Remote + ":" + env.Remote.Key
			} else {
				line += "  " + ui.Muted.Sprint("no remote")
			}

			fmt.Println(line)
		}
		return nil
	},
}
