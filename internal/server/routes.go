package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/lazypower/flow/internal/dirs"
	"github.com/lazypower/flow/internal/engine"
	"github.com/lazypower/flow/internal/hooks"
	"github.com/lazypower/flow/internal/store"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ledgerOK := true
	entries := 0
	if l, err := store.Open(s.opts.LedgerPath); err != nil {
		ledgerOK = false
	} else {
		entries = l.Len()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"version":     s.version,
		"uptime":      time.Since(s.started).Seconds(),
		"ledger":      ledgerOK,
		"ledger_path": s.opts.LedgerPath,
		"entries":     entries,
		"root":        s.opts.Root,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	project, _ := strconv.ParseBool(q.Get("project"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	ledger, err := store.Open(s.opts.LedgerPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	ranked, err := engine.RankAll(engine.Options{
		Root:         s.opts.Root,
		Query:        engine.QueryFromArgs([]string{q.Get("q")}),
		Project:      project,
		Depth:        s.opts.Depth,
		ProjectScore: s.opts.ProjectScore,
		Ledger:       ledger,
		Lister:       s.opts.Lister,
	})
	if errors.Is(err, engine.ErrNoCandidates) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := map[string]any{"path": ranked[len(ranked)-1].Path}
	if limit > 0 {
		top := make([]engine.Candidate, 0, limit)
		for i := len(ranked) - 1; i >= 0 && len(top) < limit; i-- {
			top = append(top, ranked[i])
		}
		resp["candidates"] = top
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid json"))
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, errors.New("path required"))
		return
	}

	if err := hooks.Visit(s.opts.LedgerPath, req.Path, s.opts.Ceiling); err != nil {
		if errors.Is(err, dirs.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		if errors.Is(err, store.ErrUnstorablePath) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		slog.Error("visit failed", "path", req.Path, "err", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	ledger, err := store.Open(s.opts.LedgerPath)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	entries := engine.Filter(ledger.Entries(), r.URL.Query().Get("filter"))
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	type entry struct {
		Path  string  `json:"path"`
		Score float64 `json:"score"`
	}
	out := make([]entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, entry{Path: e.Path, Score: e.Score})
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": out})
}
