package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Project
	}{
		{"lazypower/flow", Project{URL: "git@github.com:lazypower/flow.git", Host: "github.com", Owner: "lazypower", Repo: "flow"}},
		{"gh:lazypower/flow.git", Project{URL: "git@github.com:lazypower/flow.git", Host: "github.com", Owner: "lazypower", Repo: "flow"}},
		{"github:a/b", Project{URL: "git@github.com:a/b.git", Host: "github.com", Owner: "a", Repo: "b"}},
		{"git:git@gitlab.com:group/sub/repo.git", Project{URL: "git@gitlab.com:group/sub/repo.git", Host: "gitlab.com", Owner: "group/sub", Repo: "repo"}},
		{"git@codeberg.org:me/dots", Project{URL: "git@codeberg.org:me/dots", Host: "codeberg.org", Owner: "me", Repo: "dots"}},
		{"https://git.sr.ht/~me/tool", Project{URL: "https://git.sr.ht/~me/tool", Host: "git.sr.ht", Owner: "~me", Repo: "tool"}},
		{"git:ssh://git@example.com:2222/team/app.git", Project{URL: "ssh://git@example.com:2222/team/app.git", Host: "example.com", Owner: "team", Repo: "app"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"svn:foo/bar", ErrUnknownPrefix},
		{"gh:just-a-name", ErrInvalidProject},
		{"a/b/c", ErrInvalidProject},
		{"gh:/repo", ErrInvalidProject},
		{"git:nohost", ErrInvalidProject},
		{"https://example.com/only", ErrInvalidProject},
	}
	for _, tt := range tests {
		if _, err := Parse(tt.spec); !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestDir(t *testing.T) {
	p := Project{Host: "gitlab.com", Owner: "group/sub", Repo: "repo"}
	want := filepath.Join("/src", "gitlab.com", "group", "sub", "repo")
	if got := p.Dir("/src"); got != want {
		t.Errorf("Dir = %q, want %q", got, want)
	}
}

func TestCloneExisting(t *testing.T) {
	root := t.TempDir()
	p := Project{URL: "git@github.com:a/b.git", Host: "github.com", Owner: "a", Repo: "b"}
	if err := os.MkdirAll(p.Dir(root), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	// A bogus git binary proves git is not run for existing checkouts.
	c := Cloner{Git: filepath.Join(root, "no-such-git")}
	dir, err := c.Clone(context.Background(), root, p)
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if dir != p.Dir(root) {
		t.Errorf("dir = %q, want %q", dir, p.Dir(root))
	}
}

func TestCloneGitFailure(t *testing.T) {
	root := t.TempDir()
	p := Project{URL: "git@github.com:a/b.git", Host: "github.com", Owner: "a", Repo: "b"}

	c := Cloner{Git: filepath.Join(root, "no-such-git")}
	if _, err := c.Clone(context.Background(), root, p); err == nil {
		t.Error("expected error from missing git binary, got nil")
	}
}
