package cmd

import (
	"fmt"

	"github.com/PolarWolf314/totara/internal/diff"
	"github.com/PolarWolf314/totara/internal/envfile"
	"github.com/PolarWolf314/totara/internal/registry"
	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff [source] [target]",
	Short: "Show key-level differences between two environments",
	Long: `Compares the tracked files of two environments key by key and prints
added, removed, and changed keys. Defaults to comparing local against
dev when environments are omitted.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, target := resolveDiffArgs(args)

		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		project, err := currentProject(reg)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve project: %v", err)
		}

		sourceDoc, err := loadEnvDoc(reg, project, source)
		if err != nil {
			return err
		}
		targetDoc, err := loadEnvDoc(reg, project, target)
		if err != nil {
			return err
		}

		entries := diff.Compute(sourceDoc, targetDoc)
		if len(entries) == 0 {
			fmt.Println(ui.Success.Sprint("✓") + " No differences between " +
				ui.Highlight.Sprint(source) + " and " + ui.Highlight.Sprint(target))
			return nil
		}

		fmt.Println(ui.Muted.Sprintf("%s → %s", source, target))
		fmt.Print(ui.RenderDiff(entries))
		return nil
	},
}

// resolveDiffArgs fills in the default environments: local as source, dev
// as target. With only a source given, the target defaults to dev unless
// the source already is dev, in which case it falls back to local.
func resolveDiffArgs(args []string) (string, string) {
	source, target := "local", "dev"
	switch len(args) {
	case 1:
		source = args[0]
		if source == "dev" {
			target = "local"
		}
	case 2:
		source, target = args[0], args[1]
	}
	return source, target
}

func loadEnvDoc(reg *registry.Registry, project *registry.Project, envName string) (*envfile.Document, error) {
	env, err := reg.Resolve(project, envName)
	if err != nil {
		return nil, Logger.ErrorfAndReturn("cannot diff %s: %v", envName, err)
	}

	doc, err := envfile.ParseFile(registry.EnvFilePath(project, env))
	if err != nil {
		return nil, Logger.ErrorfAndReturn("cannot diff %s: %v", envName, err)
	}
	return doc, nil
}
