package cmd

import (
	"errors"
	"fmt"

	terrors "github.com/PolarWolf314/totara/internal/errors"
	"github.com/PolarWolf314/totara/internal/syncer"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var pushForce bool

func init() {
	pushCmd.Flags().BoolVarP(&pushForce, "force", "f", false, "push without confirmation")
}

var pushCmd = &cobra.Command{
	Use:   "push <environment>",
	Short: "Upload an environment's tracked file to its bound remote",
	Long: `Reads the local tracked file, compares it against the remote content,
and uploads it. A non-empty diff is shown and confirmed before anything
is written unless --force is set. A first push against a remote that has
no object yet treats the remote as empty.`,
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

		result, err := engine.Push(cmd.Context(), project, envName, pushForce)
		if errors.Is(err, terrors.ErrAborted) {
			fmt.Println(ui.Warning.Sprint("✗") + " Push aborted, remote unchanged")
			return err
		}
		if err != nil {
			return Logger.ErrorfAndReturn("push failed: %v", err)
		}

		if !result.Applied {
			fmt.Println(ui.Success.Sprint("✓") + " Remote " + result.Remote + ":" + result.Key + " is already up to date")
			return nil
		}

		if pushForce {
			fmt.Print(ui.RenderDiff(result.Entries))
		}
		fmt.Println(ui.Success.Sprint("✓") + " Pushed " + ui.Highlight.Sprint(envName) +
			" to " + result.Remote + ":" + ui.Path.Sprint(result.Key))
		return nil
	},
}
