package cmd

import (
	"fmt"
	"sort"

	"github.com/PolarWolf314/totara/internal/ui"

	"github.com/spf13/cobra"
)

var remoteShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a remote's configuration",
	Long:  `Prints the backend kind and parameters of a configured remote. Credential material is masked.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to load registry: %v", err)
		}

		remote, err := reg.Remote(args[0])
		if err != nil {
			return Logger.ErrorfAndReturn("cannot show remote: %v", err)
		}

		fmt.Println(ui.Highlight.Sprint(remote.Name) + "  " + ui.Muted.Sprint(remote.Backend))

		keys := make([]string, 0, len(remote.Params))
		for key := range remote.Params {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %s = %s\n", key, maskedParam(key, remote.Params[key]))
		}
		return nil
	},
}
