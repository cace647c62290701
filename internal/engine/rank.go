package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/lazypower/flow/internal/dirs"
	"github.com/lazypower/flow/internal/store"
)

// DefaultProjectScore is the frecency every listed directory starts with in
// project mode, so only the match score separates them.
const DefaultProjectScore = 999.0

// ErrNoCandidates is returned when there is nothing to rank.
var ErrNoCandidates = errors.New("no candidates")

// Candidate is one directory considered by Rank.
type Candidate struct {
	Path     string  `json:"path"`
	Match    int     `json:"match"`
	Frecency float64 `json:"frecency"`
}

// Options controls a single ranking.
type Options struct {
	Root         string
	Query        string
	Project      bool         // rank only the listing, each at ProjectScore
	Depth        int          // listing depth, see dirs.List
	ProjectScore float64      // default DefaultProjectScore
	Ledger       *store.Ledger // nil ranks without history
	Lister       dirs.Lister  // default dirs.FS
}

func (o Options) projectScore() float64 {
	if o.ProjectScore <= 0 {
		return DefaultProjectScore
	}
	return o.ProjectScore
}

// Candidates merges the listed directories (relative to root) with the
// ledger. Listed paths carry the ledger score, or projectScore in project
// mode. Outside project mode every ledger entry is added too, so deep paths
// visited before stay reachable; the ledger score wins on collision.
func Candidates(root string, listed []string, ledger *store.Ledger, project bool, projectScore float64) map[string]float64 {
	if ledger == nil {
		ledger = store.New()
	}
	prefix := strings.TrimSuffix(root, "/") + "/"

	out := make(map[string]float64, len(listed)+ledger.Len())
	for _, rel := range listed {
		path := prefix + rel
		if project {
			out[path] = projectScore
		} else {
			out[path] = ledger.Score(path)
		}
	}
	if !project {
		for _, e := range ledger.Entries() {
			out[e.Path] = e.Score
		}
	}
	return out
}

// Ranked scores every candidate against query and sorts them in ascending
// order of (match, frecency). Remaining ties put the lexically smallest path
// last. The best candidate is the last element.
func Ranked(query string, candidates map[string]float64) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for path, frecency := range candidates {
		out = append(out, Candidate{
			Path:     path,
			Match:    ScoreQuery(query, path),
			Frecency: frecency,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Match != out[j].Match {
			return out[i].Match < out[j].Match
		}
		if out[i].Frecency != out[j].Frecency {
			return out[i].Frecency < out[j].Frecency
		}
		return out[i].Path > out[j].Path
	})
	return out
}

// Rank lists the root, merges the ledger and returns the best match.
func Rank(opts Options) (string, error) {
	ranked, err := RankAll(opts)
	if err != nil {
		return "", err
	}
	return ranked[len(ranked)-1].Path, nil
}

// RankAll is Rank returning every candidate in ascending order.
func RankAll(opts Options) ([]Candidate, error) {
	lister := opts.Lister
	if lister == nil {
		lister = dirs.FS{}
	}
	// Ledger keys are canonical, so listed paths must be too.
	root := opts.Root
	if canonical, err := dirs.Canonicalize(root); err == nil {
		root = canonical
	}
	listed, err := lister.List(root, opts.Depth)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	candidates := Candidates(root, listed, opts.Ledger, opts.Project, opts.projectScore())
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	ranked := Ranked(opts.Query, candidates)
	logTop(opts.Query, ranked, 5)
	return ranked, nil
}

func logTop(query string, ranked []Candidate, n int) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	for i := len(ranked) - 1; i >= 0 && i >= len(ranked)-n; i-- {
		c := ranked[i]
		slog.Debug("candidate", "query", query, "path", c.Path, "match", c.Match, "frecency", c.Frecency)
	}
}
