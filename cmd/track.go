package cmd

import (
	"os"

	"github.com/PolarWolf314/totara/internal/registry"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var trackEnvironment string

func init() {
	trackCmd.Flags().StringVarP(&trackEnvironment, "environment", "e", "", "environment name (e.g. local, dev, prod)")
}

var trackCmd = &cobra.Command{
	Use:   "track <file>",
	Short: "Track a secrets file for an environment of the current project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		envName := trackEnvironment
		if envName == "" {
			var err error
			envName, err = promptLine("Environment name (e.g. local, dev, prod): ")
			if err != nil {
				return Logger.ErrorfAndReturn("failed to read environment name: %v", err)
			}
			if envName == "" {
				return Logger.ErrorfAndReturn("environment name is required")
			}
		}

		spinner, cleanup := startSpinner("Tracking secrets file...", verbose)
		defer cleanup()

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		project, err := currentProject(reg)
		if err != nil {
			spinner.FinalMSG = color.RedString("✗") + " This directory is not part of a registered project\n" +
				color.CyanString("→") + " Run " + color.YellowString("totara register") + " first"
			return err
		}

		env, err := reg.Track(project, envName, args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("failed to track %s: %v", args[0], err)
		}

		if err := reg.Save(); err != nil {
			return Logger.ErrorfAndReturn("failed to save registry: %v", err)
		}

		finalMessage := color.GreenString("✓") + " Tracking " + color.YellowString(env.File) +
			" for environment " + color.CyanString(envName)
		if _, statErr := os.Stat(registry.EnvFilePath(project, env)); os.IsNotExist(statErr) {
			finalMessage += "\n" + color.YellowString("!") + " The file does not exist yet; create it or run " +
				color.YellowString("totara pull "+envName) + " once a remote is bound"
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
