package preflight_test

import (
	"path/filepath"
	"testing"

	"romuless/internal/preflight"
)

func TestCheckRootAccess(t *testing.T) {
	root := t.TempDir()
	if result := preflight.CheckRootAccess(root); !result.Passed {
		t.Fatalf("expected pass for writable temp dir: %+v", result)
	}
	if result := preflight.CheckRootAccess(filepath.Join(root, "missing")); result.Passed {
		t.Fatal("expected failure for missing directory")
	}
}

func TestRunLive(t *testing.T) {
	root := t.TempDir()
	if err := preflight.RunLive(root); err != nil {
		t.Fatalf("RunLive returned error: %v", err)
	}
	if err := preflight.RunLive(filepath.Join(root, "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}
