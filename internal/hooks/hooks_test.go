package hooks

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lazypower/flow/internal/dirs"
	"github.com/lazypower/flow/internal/store"
)

func TestVisit(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	project := filepath.Join(tmp, "src", "proj")
	if err := os.MkdirAll(project, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	ledgerPath := filepath.Join(tmp, "cache", "dirs")

	// A relative spelling of the same directory lands on the same key.
	if err := Visit(ledgerPath, project, 0); err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if err := Visit(ledgerPath, filepath.Join(project, "..", "proj"), 0); err != nil {
		t.Fatalf("Visit: %v", err)
	}

	l, err := store.Open(ledgerPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("Len = %d, want 1", l.Len())
	}
	if got := l.Score(project); got != 2 {
		t.Errorf("Score = %v, want 2", got)
	}
}

func TestVisitDecays(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	ledgerPath := filepath.Join(tmp, "dirs")

	seed := store.New()
	seed.Add("/old", 10)
	if err := store.Save(ledgerPath, seed); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := Visit(ledgerPath, tmp, 10); err != nil {
		t.Fatalf("Visit: %v", err)
	}

	l, err := store.Open(ledgerPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got, want := l.Score("/old"), 10*store.DecayFactor; got != want {
		t.Errorf("Score(/old) = %v, want %v", got, want)
	}
	if got, want := l.Score(tmp), store.DecayFactor; got != want {
		t.Errorf("Score(visited) = %v, want %v", got, want)
	}
}

func TestVisitMissingDir(t *testing.T) {
	tmp := t.TempDir()
	ledgerPath := filepath.Join(tmp, "dirs")

	err := Visit(ledgerPath, filepath.Join(tmp, "gone"), 0)
	if !errors.Is(err, dirs.ErrNotFound) {
		t.Errorf("Visit error = %v, want ErrNotFound", err)
	}
	if _, err := os.Stat(ledgerPath); !os.IsNotExist(err) {
		t.Errorf("ledger created for a missing directory")
	}
}

func TestVisitNewlineDirKeepsLedger(t *testing.T) {
	tmp, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	ledgerPath := filepath.Join(tmp, "dirs")
	odd := filepath.Join(tmp, "evil\ndir")
	if err := os.Mkdir(odd, 0755); err != nil {
		t.Skipf("filesystem rejects newline names: %v", err)
	}

	if err := Visit(ledgerPath, tmp, 0); err != nil {
		t.Fatalf("Visit: %v", err)
	}
	if err := Visit(ledgerPath, odd, 0); !errors.Is(err, store.ErrUnstorablePath) {
		t.Fatalf("Visit newline dir error = %v, want ErrUnstorablePath", err)
	}
	if err := Visit(ledgerPath, tmp, 0); err != nil {
		t.Fatalf("Visit after rejected dir: %v", err)
	}

	l, err := store.Open(ledgerPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := l.Score(tmp); got != 2 {
		t.Errorf("Score(tmp) = %v, want 2", got)
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}

func TestHandleReportsErrors(t *testing.T) {
	tmp := t.TempDir()
	var stderr bytes.Buffer

	Handle(&stderr, filepath.Join(tmp, "dirs"), filepath.Join(tmp, "gone"), 0)
	if !strings.HasPrefix(stderr.String(), "flow hook: ") {
		t.Errorf("stderr = %q, want flow hook prefix", stderr.String())
	}

	stderr.Reset()
	Handle(&stderr, filepath.Join(tmp, "dirs"), tmp, 0)
	if stderr.Len() != 0 {
		t.Errorf("stderr = %q, want empty", stderr.String())
	}
}

func TestWriteScript(t *testing.T) {
	for _, shell := range Shells() {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteScript(&buf, shell, ScriptOptions{Binary: "/usr/bin/flow", Root: "/home/u/my src"})
			if err != nil {
				t.Fatalf("WriteScript: %v", err)
			}
			out := buf.String()
			for _, want := range []string{
				"/usr/bin/flow --root '/home/u/my src' search",
				"search --project",
				"clone",
				"/usr/bin/flow add",
			} {
				if !strings.Contains(out, want) {
					t.Errorf("script missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestWriteScriptDefaults(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScript(&buf, "zsh", ScriptOptions{Root: "/src"}); err != nil {
		t.Fatalf("WriteScript: %v", err)
	}
	if !strings.Contains(buf.String(), "command flow add") {
		t.Errorf("default binary not used:\n%s", buf.String())
	}
}

func TestWriteScriptUnknownShell(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteScript(&buf, "tcsh", ScriptOptions{}); err == nil {
		t.Error("expected error for tcsh, got nil")
	}
}

func TestShellQuote(t *testing.T) {
	if got := shellQuote("it's"); got != `'it'\''s'` {
		t.Errorf("shellQuote = %s", got)
	}
}
