package cli

import (
	"github.com/spf13/cobra"

	"github.com/lazypower/flow/internal/hooks"
)

var addCmd = &cobra.Command{
	Use:    "add [path]",
	Short:  "Record a visit to a directory (run by the shell hook)",
	Hidden: true,
	Args:   cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// Runs in the background on every prompt: report, never fail.
		hooks.Handle(cmd.ErrOrStderr(), cfg.Ledger.Path, args[0], cfg.Ledger.Ceiling)
	},
}
