package cmd

import (
	"errors"
	"os"

	terrors "github.com/PolarWolf314/totara/internal/errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the current directory as a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Registering project...", verbose)
		defer cleanup()

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		cwd, err := os.Getwd()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to get working directory: %v", err)
		}

		project, err := reg.Register(cwd)
		if errors.Is(err, terrors.ErrAlreadyRegistered) {
			spinner.FinalMSG = color.RedString("✗") + " This directory is already registered\n" +
				color.CyanString("→") + " Run " + color.YellowString("totara list") + " to see its tracked environments"
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("failed to register project: %v", err)
		}

		if err := reg.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save registry: %v", err)
		}

		Logger.Debugf("Registered project %s at %s", project.ID, project.Root)
		spinner.FinalMSG = color.GreenString("✓") + " Project registered at " + color.YellowString(project.Root) + "\n" +
			color.CyanString("→") + " Run " + color.YellowString("totara track <file>") + " to start tracking a secrets file"
		return nil
	},
}
