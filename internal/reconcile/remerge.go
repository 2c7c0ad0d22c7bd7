package reconcile

import (
	"fmt"
	"os"
	"path/filepath"

	"romuless/internal/language"
	"romuless/internal/policy"
	"romuless/internal/relocate"
)

// runRemerge enumerates only the moved-aside subtree and restores eligible
// files to their original relative locations. A missing subtree is a
// zero-activity result, not an error.
func (d *Driver) runRemerge(result *Result) error {
	info, err := os.Stat(result.MovedRoot)
	if err != nil || !info.IsDir() {
		result.MovedRootMissing = true
		return nil
	}

	entries, warnings, err := d.scanner.Locate(result.MovedRoot, "")
	if err != nil {
		return err
	}
	d.addWarnings(result, warnings)

	for _, entry := range entries {
		tags := language.Detect(stem(entry.RelPath))
		decision := policy.DecideRemerge(tags, result.Keep)

		fd := FileDecision{
			Path:     filepath.Join(d.cfg.Paths.MovedDirName, entry.RelPath),
			Tags:     tags,
			Decision: decision,
		}
		if decision == policy.Skip {
			result.Skipped++
			result.Decisions = append(result.Decisions, fd)
			continue
		}

		plan := relocate.RemergeDestination(result.Root, entry.RelPath)
		fd.Dest = plan.LogicalRel
		final, moveErr := d.engine.Move(entry.AbsPath, plan.PhysicalAbs, result.Live)
		if moveErr != nil {
			return fmt.Errorf("remerge: %w", moveErr)
		}
		if rel, relErr := filepath.Rel(result.Root, final); relErr == nil {
			fd.Dest = rel
		}
		result.Restored++
		result.Decisions = append(result.Decisions, fd)
	}

	if result.Cleanup && result.Live {
		result.RemovedDirs = sweep(result.MovedRoot)
	}
	return nil
}
