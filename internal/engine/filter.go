package engine

import (
	"github.com/sahilm/fuzzy"

	"github.com/lazypower/flow/internal/store"
)

type entrySource []store.PathEntry

func (s entrySource) String(i int) string { return s[i].Path }
func (s entrySource) Len() int            { return len(s) }

// Filter keeps the ledger entries whose path fuzzy-matches pattern, best
// match first. An empty pattern keeps everything in input order.
func Filter(entries []store.PathEntry, pattern string) []store.PathEntry {
	if pattern == "" {
		return entries
	}
	matches := fuzzy.FindFrom(pattern, entrySource(entries))
	out := make([]store.PathEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
