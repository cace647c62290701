package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath returns the default ledger path: $XDG_CACHE_HOME/flow/dirs
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("get cache dir: %w", err)
	}
	return filepath.Join(dir, "flow", "dirs"), nil
}

// Open reads the ledger at path. A missing file is an empty ledger, not an
// error: that is the first run.
func Open(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open ledger: %v", ErrIO, err)
	}
	defer f.Close()

	l, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return l, nil
}

// Save replaces the ledger file at path. Records go to a temp file in the
// same directory which is renamed over path, so a failed write keeps the
// previous ledger.
func Save(path string, l *Ledger) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create ledger dir: %v", ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp ledger: %v", ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := l.Persist(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync ledger: %v", ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close ledger: %v", ErrIO, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("%w: chmod ledger: %v", ErrIO, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("%w: replace ledger: %v", ErrIO, err)
	}
	return nil
}

// Update runs one read-modify-write cycle on the ledger at path while
// holding the exclusive lock on path+".lock". The ledger is saved only when
// fn returns nil. The lock is released on every return path.
func Update(path string, fn func(*Ledger) error) error {
	lock, err := AcquireLock(path + ".lock")
	if err != nil {
		return err
	}
	defer lock.Release()

	l, err := Open(path)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return Save(path, l)
}
