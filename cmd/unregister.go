package cmd

import (
	"errors"
	"os"

	terrors "github.com/PolarWolf314/totara/internal/errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var unregisterCmd = &cobra.Command{
	Use:   "unregister",
	Short: "Unregister the current directory as a project",
	Long: `Removes the current directory from the project registry, along with all
of its tracked environments and remote bindings. The tracked files
themselves are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Unregistering project...", verbose)
		defer cleanup()

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		cwd, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get working directory: %v", err)
		}

		project, err := reg.LookupProject(cwd)
		if errors.Is(err, terrors.ErrNotRegistered) {
			spinner.FinalMSG = color.RedString("✗") + " This directory is not registered\n" +
				color.CyanString("→") + " Run " + color.YellowString("totara register") + " to register it"
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve project: %v", err)
		}

		root := project.Root
		if err := reg.Unregister(root); err != nil {
			return Logger.ErrorfAndReturn("failed to unregister project: %v", err)
		}

		if err := reg.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save registry: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Project unregistered at " + color.YellowString(root)
		return nil
	},
}
