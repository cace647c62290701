// Package dirs lists candidate directories and canonicalizes visited ones.
package dirs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Canonicalize for paths that do not exist.
var ErrNotFound = errors.New("path not found")

// Lister lists directories below a root.
type Lister interface {
	List(root string, depth int) ([]string, error)
}

// FS lists directories from the local filesystem.
type FS struct{}

// List implements Lister.
func (FS) List(root string, depth int) ([]string, error) {
	return List(root, depth)
}

// List returns the directories exactly depth+1 levels below root as
// slash-separated paths relative to root. With depth 2 and a root laid out
// as host/owner/repo, that is every checked-out repository. Hidden entries
// and non-directories are skipped, as are subdirectories that cannot be read.
func List(root string, depth int) ([]string, error) {
	if depth < 0 {
		return nil, fmt.Errorf("invalid depth %d", depth)
	}
	names, err := subdirs(root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}
	return walk(root, names, depth), nil
}

func walk(dir string, names []string, depth int) []string {
	if depth == 0 {
		return names
	}
	var out []string
	for _, name := range names {
		children, err := subdirs(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		for _, child := range walk(filepath.Join(dir, name), children, depth-1) {
			out = append(out, name+"/"+child)
		}
	}
	return out
}

func subdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Canonicalize returns the absolute, symlink-resolved form of path.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("canonicalize %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}
	return resolved, nil
}
