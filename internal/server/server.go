package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lazypower/flow/internal/dirs"
)

// Options describes the ledger and search root the server works on.
type Options struct {
	LedgerPath   string
	Root         string
	Depth        int
	ProjectScore float64
	Ceiling      float64
	Lister       dirs.Lister // default dirs.FS
}

// Server is the flow HTTP API for editor and launcher integrations. It
// keeps no ledger in memory: every request loads the ledger from disk.
type Server struct {
	opts    Options
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server with the given options and version string.
func New(opts Options, version string) *Server {
	if opts.Lister == nil {
		opts.Lister = dirs.FS{}
	}
	s := &Server{
		opts:    opts,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/search", s.handleSearch)
		r.Post("/visit", s.handleVisit)
		r.Get("/entries", s.handleEntries)
	})

	s.router = r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
