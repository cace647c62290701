package hooks

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lazypower/flow/internal/dirs"
	"github.com/lazypower/flow/internal/store"
)

// Visit records one visit of dir in the ledger at ledgerPath and decays the
// ledger, holding the ledger lock for the whole cycle.
func Visit(ledgerPath, dir string, ceiling float64) error {
	path, err := dirs.Canonicalize(dir)
	if err != nil {
		return err
	}
	if err := store.CheckPath(path); err != nil {
		return err
	}
	err = store.Update(ledgerPath, func(l *store.Ledger) error {
		l.RecordVisit(path)
		l.Decay(ceiling)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record visit %s: %w", path, err)
	}
	slog.Debug("visit recorded", "path", path, "ledger", ledgerPath)
	return nil
}

// Handle runs Visit for the prompt hook. Failures are reported on stderr and
// swallowed: the hook runs in the background of every prompt and must never
// disturb the shell.
func Handle(stderr io.Writer, ledgerPath, dir string, ceiling float64) {
	if err := Visit(ledgerPath, dir, ceiling); err != nil {
		fmt.Fprintf(stderr, "flow hook: %v\n", err)
	}
}
