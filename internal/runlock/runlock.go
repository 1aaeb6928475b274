// Package runlock keeps two nbexport runs from writing the same reports tree
// at once.
package runlock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrHeld is returned when another process holds the lock.
var ErrHeld = errors.New("run lock held by another process")

// Lock is an acquired advisory file lock.
type Lock struct {
	path  string
	flock *flock.Flock
}

// Acquire takes the lock at path without blocking. The lock file's directory
// is created if needed.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrHeld, path)
	}
	return &Lock{path: path, flock: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release removes the lock file and unlocks. The file is removed while the
// lock is still held so a run that opened it earlier sees it as held, and
// the next run creates a fresh one.
func (l *Lock) Release() error {
	if l == nil || l.flock == nil {
		return nil
	}
	var removeErr error
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		removeErr = fmt.Errorf("remove lock %s: %w", l.path, err)
	}
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	l.flock = nil
	return removeErr
}
