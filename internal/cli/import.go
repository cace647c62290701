package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lazypower/flow/internal/importer"
	"github.com/lazypower/flow/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Seed the ledger from another tool's history",
}

var importZCmd = &cobra.Command{
	Use:   "z [file]",
	Short: "Import a z / zoxide-compatible data file (default ~/.z)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := importSource(args, ".z")
		if err != nil {
			return err
		}
		visits, err := importer.ReadZFile(path)
		if err != nil {
			return err
		}
		return mergeVisits(cmd, path, visits)
	},
}

var importHistdbCmd = &cobra.Command{
	Use:   "histdb [file]",
	Short: "Import directories from a zsh-histdb database (default ~/.histdb/zsh-history.db)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := importSource(args, filepath.Join(".histdb", "zsh-history.db"))
		if err != nil {
			return err
		}
		visits, err := importer.ReadHistdb(cmd.Context(), path)
		if err != nil {
			return err
		}
		return mergeVisits(cmd, path, visits)
	},
}

func init() {
	importCmd.AddCommand(importZCmd)
	importCmd.AddCommand(importHistdbCmd)
}

// importSource returns the file argument, or home/rel when none was given.
func importSource(args []string, rel string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, rel), nil
}

func mergeVisits(cmd *cobra.Command, source string, visits []importer.Visit) error {
	var merged int
	err := store.Update(cfg.Ledger.Path, func(l *store.Ledger) error {
		merged = importer.Merge(l, visits)
		l.Decay(cfg.Ledger.Ceiling)
		return nil
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", source, err)
	}
	slog.Info("import finished", "source", source, "read", len(visits), "merged", merged)
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d directories from %s\n", merged, source)
	return nil
}
