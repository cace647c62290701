package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// Lock is an exclusive advisory lock held on a dedicated lock file.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock blocks until it holds the exclusive lock on path, creating the
// file if needed.
func AcquireLock(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create lock dir: %v", ErrIO, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: open lock file: %v", ErrIO, err)
	}

	if err := lockFile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("%w: lock %s: %v", ErrIO, path, err)
	}
	return &Lock{path: path, file: file}, nil
}

// Release drops the lock. The lock file stays on disk: unlinking it would let
// a waiting process lock an orphaned inode.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	_ = unlockFile(l.file)
	_ = l.file.Close()
	l.file = nil
}
