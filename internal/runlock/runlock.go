// Package runlock enforces one orchestrator process per processing stack.
package runlock

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"sarpipe/internal/config"
)

// Lock guards a stack's batch-job directory with an advisory file lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// New constructs the lock for the configured stack.
func New(cfg *config.Config) *Lock {
	path := filepath.Join(cfg.Paths.BatchJobDir, "sarpipe.lock")
	return &Lock{path: path, lock: flock.New(path)}
}

// Acquire takes the lock or reports which process holds it.
func (l *Lock) Acquire() error {
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock %s: %w", l.path, err)
	}
	if !ok {
		return fmt.Errorf("another run holds the lock %s", l.path)
	}
	return nil
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }
