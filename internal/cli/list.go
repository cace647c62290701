package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazypower/flow/internal/engine"
	"github.com/lazypower/flow/internal/store"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:     "list [filter]",
	Aliases: []string{"ls"},
	Short:   "List ledger entries by score",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "Maximum number of entries (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	ledger, err := store.Open(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	filter := ""
	if len(args) > 0 {
		filter = args[0]
	}
	entries := engine.Filter(ledger.Entries(), filter)
	if listLimit > 0 && len(entries) > listLimit {
		entries = entries[:listLimit]
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%10.2f  %s\n", e.Score, e.Path)
	}
	return nil
}
