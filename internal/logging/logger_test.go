package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"romuless/internal/logging"
)

func TestNewConsoleWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "reconcile")
	component.Info("sort completed", logging.Int("moved", 3), logging.String("root", "/tmp/x y"))
	component.Debug("suppressed at info level")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "INFO reconcile: sort completed moved=3") {
		t.Fatalf("unexpected log line: %q", out)
	}
	if !strings.Contains(out, `root="/tmp/x y"`) {
		t.Fatalf("expected quoted value in: %q", out)
	}
	if strings.Contains(out, "suppressed") {
		t.Fatal("debug line emitted at info level")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerIsSilent(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("should go nowhere", logging.Error(nil))
}
