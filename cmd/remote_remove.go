package cmd

import (
	"errors"

	terrors "github.com/PolarWolf314/totara/internal/errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a configured remote",
	Long: `Deletes a remote configuration. A remote that environments are still
bound to cannot be removed; unbind them first with unset-remote.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Removing remote...", verbose)
		defer cleanup()

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		if err := reg.RemoveRemote(args[0]); err != nil {
			if errors.Is(err, terrors.ErrRemoteInUse) {
				spinner.FinalMSG = color.RedString("✗") + " Remote " + color.CyanString(args[0]) + " is still in use\n" +
					color.CyanString("→") + " Run " + color.YellowString("totara unset-remote <environment>") + " in the referencing projects first"
				return err
			}
			return Logger.ErrorfAndReturn("cannot remove remote: %v", err)
		}

		if err := reg.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save registry: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Remote " + color.CyanString(args[0]) + " removed"
		return nil
	},
}
