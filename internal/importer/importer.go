// Package importer seeds the ledger with the history of other directory
// jumpers and shell history databases.
package importer

import (
	"path/filepath"

	"github.com/lazypower/flow/internal/dirs"
	"github.com/lazypower/flow/internal/store"
)

// Visit is an imported directory and how much weight it carries.
type Visit struct {
	Path   string
	Weight float64
}

// Merge adds every visit to the ledger and returns how many were merged.
// Relative paths, paths the ledger cannot store and non-positive weights are
// skipped. Paths that still exist are canonicalized; the rest are kept as-is,
// cleaned.
func Merge(l *store.Ledger, visits []Visit) int {
	n := 0
	for _, v := range visits {
		if v.Weight <= 0 || !filepath.IsAbs(v.Path) {
			continue
		}
		path, err := dirs.Canonicalize(v.Path)
		if err != nil {
			path = filepath.Clean(v.Path)
		}
		if store.CheckPath(path) != nil {
			continue
		}
		l.Add(path, v.Weight)
		n++
	}
	return n
}
