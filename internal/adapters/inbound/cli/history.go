package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/history"
	"github.com/openkraft/stylelint-aot/internal/adapters/outbound/tui"
	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history [path]",
		Short: "Show recorded builds",
		Long:  "Show the builds recorded in .stylelint-aot/history with the trend of lint warnings.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			} else if cwd, err := os.Getwd(); err == nil {
				path = cwd
			}

			entries, err := history.New().Load(path)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output history as JSON")

	return cmd
}
