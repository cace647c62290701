package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Cloner checks projects out with git.
type Cloner struct {
	Git    string    // git binary, "git" when empty
	Stderr io.Writer // receives git's stdout and stderr
}

// Clone checks p out under root unless its directory already exists, and
// returns the directory.
func (c Cloner) Clone(ctx context.Context, root string, p Project) (string, error) {
	dir := p.Dir(root)
	if _, err := os.Stat(dir); err == nil {
		return dir, nil
	}

	git := c.Git
	if git == "" {
		git = "git"
	}
	out := c.Stderr
	if out == nil {
		out = io.Discard
	}

	slog.Info("cloning", "url", p.URL, "dir", dir)
	cmd := exec.CommandContext(ctx, git, "clone", "--recursive", "--", p.URL, dir)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git clone %s: %w", p.URL, err)
	}
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("git clone %s: %s not created", p.URL, dir)
	}
	return dir, nil
}
