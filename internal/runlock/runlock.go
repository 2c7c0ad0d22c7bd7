// Package runlock guards the library root against concurrent live runs. Two
// interleaved live operations could race the collision probe in the
// relocation engine, so a live sort or remerge holds a file lock on the root
// for its whole duration. Dry runs never lock.
package runlock

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file created directly under the operation root.
const LockFileName = ".romuless.lock"

// Lock is a held library-root lock.
type Lock struct {
	path string
	fl   *flock.Flock
}

// Acquire takes the root lock without blocking. A root already locked by
// another process yields an error naming the lock file.
func Acquire(root string) (*Lock, error) {
	path := filepath.Join(root, LockFileName)
	fl := flock.New(path)

	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, errors.New("another live romuless run holds " + path)
	}
	return &Lock{path: path, fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// Release drops the lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
