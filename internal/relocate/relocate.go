// Package relocate plans and performs collision-safe file moves between the
// library root and the moved-aside subtree, preserving relative structure.
package relocate

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"romuless/internal/logging"
)

// Plan pairs the logical (report-facing, root-relative) destination with the
// physical absolute destination of one move.
type Plan struct {
	LogicalRel  string
	PhysicalAbs string
}

// SortDestination maps a file at rel under root into the moved-aside subtree,
// mirroring its original relative path.
func SortDestination(root, movedDirName, rel string) Plan {
	logical := filepath.Join(movedDirName, rel)
	return Plan{LogicalRel: logical, PhysicalAbs: filepath.Join(root, logical)}
}

// RemergeDestination maps a file at relUnderMoved beneath the moved-aside
// subtree back to its original location under root.
func RemergeDestination(root, relUnderMoved string) Plan {
	return Plan{LogicalRel: relUnderMoved, PhysicalAbs: filepath.Join(root, relUnderMoved)}
}

// Engine executes (or simulates) planned moves.
type Engine struct {
	logger *slog.Logger
}

// NewEngine constructs an engine. A nil logger is replaced with a no-op one.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logging.NewComponentLogger(logger, "relocate")}
}

// Move relocates src to dest. The destination is re-probed for collisions at
// execution time, since earlier moves in the same run can occupy paths that
// were free at planning time. In dry-run mode nothing is mutated; the
// returned path is the one that would be used given the current filesystem.
func (e *Engine) Move(src, dest string, live bool) (string, error) {
	final := uniqueDestination(dest)
	if !live {
		return final, nil
	}

	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}
	if err := rename(src, final); err != nil {
		return "", fmt.Errorf("move %s -> %s: %w", src, final, err)
	}
	e.logger.Debug("moved file",
		logging.String("source", src),
		logging.String("destination", final),
	)
	return final, nil
}

// uniqueDestination resolves collisions by suffixing " (n)" before the
// extension until a free name is found. Existing files are never overwritten.
func uniqueDestination(dest string) string {
	if _, err := os.Stat(dest); err != nil {
		return dest
	}
	ext := filepath.Ext(dest)
	base := strings.TrimSuffix(dest, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, counter, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}

// rename moves the file, falling back to copy-and-remove when source and
// destination sit on different filesystems.
func rename(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := copyFile(src, dest); copyErr != nil {
			return copyErr
		}
		return os.Remove(src)
	}
	return err
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
