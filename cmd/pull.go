package cmd

import (
	"errors"
	"fmt"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/syncer"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var pullForce bool

func init() {
	pullCmd.Flags().BoolVarP(&pullForce, "force", "f", false, "pull without confirmation")
}

var pullCmd = &cobra.Command{
	Use:   "pull <environment>",
	Short: "Overwrite an environment's tracked file with the remote content",
	Long: `Fetches the remote content, compares it against the local tracked file,
and overwrites the local file. A non-empty diff is shown and confirmed
before anything is written unless --force is set. The overwrite is
atomic: the previous file stays intact on any failure.`,
	Args: cobra.ExactArgs(1),
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
			Registry:  reg,
			Confirmer: terminalConfirmer{},
			Logger:    Logger,
		}

		result, err := engine.Pull(cmd.Context(), project, envName, pullForce)
		if errors.Is(err, terrors.ErrAborted) {
			fmt.Println(ui.Warning.Sprint("✗") + " Pull aborted, local file unchanged")
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("pull failed: %v", err)
		}

		if !result.Applied {
			fmt.Println(ui.Success.Sprint("✓") + " Local file for " + ui.Highlight.Sprint(envName) + " is already up to date")
			return nil
		}

		if pullForce {
			fmt.Print(ui.RenderDiff(result.Entries))
		}
		fmt.Println(ui.Success.Sprint("✓") + " Pulled " + ui.Highlight.Sprint(envName) +
			" from " + result.Remote + ":" + ui.Path.Sprint(result.Key))
		return nil
	},
}
