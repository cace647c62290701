package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lazypower/flow/internal/store"
)

func TestSearch(t *testing.T) {
	env := testServer(t)
	proj2 := filepath.Join(env.root, "proj2")
	seedLedger(t, env.ledger, map[string]float64{proj2: 50})

	req := httptest.NewRequest("GET", "/api/search?q=proj&limit=2", nil)
	w := httptest.NewRecorder()
	env.srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Path       string `json:"path"`
		Candidates []struct {
			Path     string  `json:"path"`
			Match    int     `json:"match"`
			Frecency float64 `json:"frecency"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Path != proj2 {
		t.Errorf("path = %q, want %q", resp.Path, proj2)
	}
	if len(resp.Candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(resp.Candidates))
	}
	if resp.Candidates[0].Path != proj2 || resp.Candidates[0].Frecency != 50 {
		t.Errorf("first candidate = %+v", resp.Candidates[0])
	}
}

func TestSearchProject(t *testing.T) {
	env := testServer(t)
	seedLedger(t, env.ledger, map[string]float64{filepath.Join(env.root, "proj1"): 500})

	req := httptest.NewRequest("GET", "/api/search?q=proj2&project=true", nil)
	w := httptest.NewRecorder()
	env.srv.ServeHTTP(w, req)

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if want := filepath.Join(env.root, "proj2"); resp["path"] != want {
		t.Errorf("path = %v, want %s", resp["path"], want)
	}
	if _, ok := resp["candidates"]; ok {
		t.Error("candidates returned without limit")
	}
}

func TestSearchSlashQuery(t *testing.T) {
	env := testServer(t)
	gh := filepath.Join(env.root, "gh", "flow")
	gl := filepath.Join(env.root, "gl", "flow")
	for _, d := range []string{gh, gl} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
	}
	seedLedger(t, env.ledger, map[string]float64{gl: 5})
	srv := New(Options{LedgerPath: env.ledger, Root: env.root, Depth: 1}, "test-version")

	// "gh/flow" is the same query as "gh flow", as on the command line.
	req := httptest.NewRequest("GET", "/api/search?q=gh/flow", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Path != gh {
		t.Errorf("path = %q, want %q", resp.Path, gh)
	}
}

func TestSearchNoCandidates(t *testing.T) {
	env := testServer(t)
	os.RemoveAll(filepath.Join(env.root, "proj1"))
	os.RemoveAll(filepath.Join(env.root, "proj2"))

	req := httptest.NewRequest("GET", "/api/search?q=x", nil)
	w := httptest.NewRecorder()
	env.srv.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestSearchCorruptLedger(t *testing.T) {
	env := testServer(t)
	os.MkdirAll(filepath.Dir(env.ledger), 0755)
	os.WriteFile(env.ledger, []byte("/a|1\n/b|"), 0644)

	req := httptest.NewRequest("GET", "/api/search?q=proj", nil)
	w := httptest.NewRecorder()
	env.srv.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "malformed") {
		t.Errorf("body = %s, want malformed record error", w.Body.String())
	}
}

func TestVisit(t *testing.T) {
	env := testServer(t)
	proj1 := filepath.Join(env.root, "proj1")

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/api/visit", strings.NewReader(`{"path":"`+proj1+`"}`))
		w := httptest.NewRecorder()
		env.srv.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
		}
	}

	l, err := store.Open(env.ledger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := l.Score(proj1); got != 2 {
		t.Errorf("Score = %v, want 2", got)
	}
}

func TestVisitBadRequests(t *testing.T) {
	env := testServer(t)

	tests := []struct {
		body string
		want int
	}{
		{`not json`, http.StatusBadRequest},
		{`{}`, http.StatusBadRequest},
		{`{"path":"/definitely/not/here"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("POST", "/api/visit", strings.NewReader(tt.body))
		w := httptest.NewRecorder()
		env.srv.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("body %s: status = %d, want %d", tt.body, w.Code, tt.want)
		}
	}
}

func TestEntries(t *testing.T) {
	env := testServer(t)
	seedLedger(t, env.ledger, map[string]float64{
		"/home/u/src/flow": 3,
		"/home/u/docs":     5,
		"/tmp":             1,
	})

	req := httptest.NewRequest("GET", "/api/entries", nil)
	w := httptest.NewRecorder()
	env.srv.ServeHTTP(w, req)

	var resp struct {
		Entries []struct {
			Path  string  `json:"path"`
			Score float64 `json:"score"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(resp.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(resp.Entries))
	}
	if resp.Entries[0].Path != "/home/u/docs" {
		t.Errorf("first entry = %s, want /home/u/docs", resp.Entries[0].Path)
	}

	req = httptest.NewRequest("GET", "/api/entries?filter=flw&limit=5", nil)
	w = httptest.NewRecorder()
	env.srv.ServeHTTP(w, req)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Entries) != 1 || resp.Entries[0].Path != "/home/u/src/flow" {
		t.Errorf("filtered entries = %+v", resp.Entries)
	}
}
