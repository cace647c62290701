package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lazypower/flow/internal/engine"
	"github.com/lazypower/flow/internal/store"
)

var (
	searchProject bool
	searchDepth   int
	searchList    int
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Print the directory that best matches the query",
	Long: `Search ranks the directories under the root and every directory in the
ledger against the query and prints the best one. Query words match path
segments in order; "gh/flow" and "gh flow" are the same query.

With --project only the directories under the root are ranked and history is
ignored, so the match alone decides.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchProject, "project", "p", false, "Only rank project directories under the root, ignoring history")
	searchCmd.Flags().IntVarP(&searchDepth, "depth", "d", -1, "Listing depth below the root (default from config)")
	searchCmd.Flags().IntVarP(&searchList, "list", "n", 0, "Print the top N candidates with their scores instead")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireRoot(); err != nil {
		return err
	}

	ledger, err := store.Open(cfg.Ledger.Path)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	depth := cfg.Search.Depth
	if searchDepth >= 0 {
		depth = searchDepth
	}

	ranked, err := engine.RankAll(engine.Options{
		Root:         cfg.Root,
		Query:        engine.QueryFromArgs(args),
		Project:      searchProject,
		Depth:        depth,
		ProjectScore: cfg.Search.ProjectScore,
		Ledger:       ledger,
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	out := cmd.OutOrStdout()
	if searchList > 0 {
		for i := len(ranked) - 1; i >= 0 && i >= len(ranked)-searchList; i-- {
			c := ranked[i]
			fmt.Fprintf(out, "%4d %10.2f  %s\n", c.Match, c.Frecency, c.Path)
		}
		return nil
	}

	fmt.Fprintln(out, ranked[len(ranked)-1].Path)
	return nil
}
