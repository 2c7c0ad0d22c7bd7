package runlock_test

import (
	"path/filepath"
	"testing"

	"romuless/internal/runlock"
	"romuless/internal/testsupport"
)

func TestAcquireAndRelease(t *testing.T) {
	root := t.TempDir()

	lock, err := runlock.Acquire(root)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	if lock.Path() != filepath.Join(root, runlock.LockFileName) {
		t.Fatalf("unexpected lock path: %q", lock.Path())
	}
	if !testsupport.Exists(t, lock.Path()) {
		t.Fatal("lock file not created")
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release returned error: %v", err)
	}

	again, err := runlock.Acquire(root)
	if err != nil {
		t.Fatalf("re-acquire after release failed: %v", err)
	}
	_ = again.Release()
}
