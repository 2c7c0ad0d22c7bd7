package reconcile

import (
	"fmt"
	"path/filepath"

	"romuless/internal/language"
	"romuless/internal/policy"
	"romuless/internal/relocate"
)

// runSort enumerates every ROM outside the moved-aside subtree, keeps files
// matching the keep-set, and moves the rest beneath it, mirroring relative
// paths. Unclassifiable files are always kept.
func (d *Driver) runSort(result *Result) error {
	entries, warnings, err := d.scanner.Locate(result.Root, result.MovedRoot)
	if err != nil {
		return err
	}
	d.addWarnings(result, warnings)

	for _, entry := range entries {
		tags := language.Detect(stem(entry.RelPath))
		decision := policy.DecideSort(tags, result.Keep)

		fd := FileDecision{Path: entry.RelPath, Tags: tags, Decision: decision}
		if decision == policy.Keep {
			result.Kept++
			result.Decisions = append(result.Decisions, fd)
			continue
		}

		plan := relocate.SortDestination(result.Root, d.cfg.Paths.MovedDirName, entry.RelPath)
		fd.Dest = plan.LogicalRel
		final, moveErr := d.engine.Move(entry.AbsPath, plan.PhysicalAbs, result.Live)
		if moveErr != nil {
			return fmt.Errorf("sort: %w", moveErr)
		}
		if rel, relErr := filepath.Rel(result.Root, final); relErr == nil {
			fd.Dest = rel
		}
		result.Moved++
		result.Decisions = append(result.Decisions, fd)
	}
	return nil
}
