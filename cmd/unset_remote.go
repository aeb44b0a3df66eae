package cmd

import (
	"errors"

	terrors "github.com/PolarWolf314/totara/internal/errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var unsetRemoteCmd = &cobra.Command{
	Use:   "unset-remote <environment>",
	Short: "Remove an environment's remote binding",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envName := args[0]

		spinner, cleanup := startSpinner("Removing remote binding...", verbose)
		defer cleanup()

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		project, err := currentProject(reg)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve project: %v", err)
		}

		if err := reg.UnbindRemote(project, envName); err != nil {
			if errors.Is(err, terrors.ErrNoRemoteBinding) {
				spinner.FinalMSG = color.RedString("✗") + " Environment " + color.CyanString(envName) + " has no remote binding"
				return err
			}
			return Logger.ErrorfAndReturn("cannot unbind remote: %v", err)
		}

		if err := reg.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save registry: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Remote binding removed from " + color.CyanString(envName)
		return nil
	},
}
