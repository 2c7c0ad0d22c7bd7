package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"romuless/internal/language"
	"romuless/internal/policy"
)

// RenderText produces the full run report: header, per-file decision lines,
// section summaries, and the runtime footer. The same text goes to the
// console and to the report file.
func (r *Result) RenderText() string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	add("=== romuless report ===")
	add("Run at: %s", r.StartedAt.Format("2006-01-02 15:04:05"))
	add("Root dir: %s", r.Root)
	add("Moved dir: %s", r.MovedRoot)
	add("Mode: %s", r.Mode)
	switch r.Mode {
	case Report:
		add("Keep languages: (n/a for report)")
		add("Action: REPORT ONLY (LANGUAGE STATS)")
	default:
		add("Keep languages: %s", r.Keep.Label())
		add("Action: %s %s", r.Mode, actionSuffix(r.Live))
		if r.Mode == Remerge {
			add("Cleanup requested: %s", yesNo(r.Cleanup))
		}
	}
	add("")

	if len(r.Warnings) > 0 {
		add("---- WARNINGS ----")
		for _, w := range r.Warnings {
			add("[WARN] %s", w)
		}
		add("")
	}

	switch r.Mode {
	case Sort:
		r.renderSort(add)
	case Remerge:
		r.renderRemerge(add)
	case Report:
		r.renderReport(add)
	}

	add("---- RUNTIME ----")
	add("Time elapsed: %.2f seconds", r.Elapsed.Seconds())
	add("====================================")
	return strings.Join(lines, "\n") + "\n"
}

func (r *Result) renderSort(add func(string, ...any)) {
	add("---- KEPT FILES ----")
	for _, d := range r.Decisions {
		if d.Decision == policy.Keep {
			add("[KEEP] %s  (detected=%s)", d.Path, d.Tags)
		}
	}
	add("")
	add("---- MOVED (or WOULD MOVE) FILES ----")
	for _, d := range r.Decisions {
		if d.Decision == policy.Move {
			add("[MOVE] %s  ->  %s  (detected=%s)", d.Path, d.Dest, d.Tags)
		}
	}
	add("")
	add("---- SORT SUMMARY ----")
	add("Total kept: %d", r.Kept)
	add("Total moved (or would move): %d", r.Moved)
}

func (r *Result) renderRemerge(add func(string, ...any)) {
	if r.MovedRootMissing {
		add("[INFO] No %q folder found, nothing to remerge.", r.MovedRoot)
		add("---- REMERGE SUMMARY ----")
		add("Total moved back: 0")
		add("Total skipped: 0")
		return
	}

	add("---- REMERGE MOVED (or WOULD MOVE) ----")
	for _, d := range r.Decisions {
		if d.Decision == policy.Restore {
			add("[RESTORE] %s  ->  %s  (detected=%s)", d.Path, d.Dest, d.Tags)
		}
	}
	add("")
	add("---- REMERGE SKIPPED ----")
	for _, d := range r.Decisions {
		if d.Decision == policy.Skip {
			add("[SKIP] %s  (detected=%s)", d.Path, d.Tags)
		}
	}
	add("")
	add("---- REMERGE SUMMARY ----")
	add("Total moved back (or would move): %d", r.Restored)
	add("Total skipped: %d", r.Skipped)

	if r.Cleanup {
		add("")
		add("---- CLEANUP ----")
		switch {
		case !r.Live:
			add("Would remove any now-empty folders inside %q after a live remerge.", r.MovedRoot)
		case len(r.RemovedDirs) == 0:
			add("No empty directories were removed; none were empty.")
		default:
			add("Removed %d empty directories:", len(r.RemovedDirs))
			for _, dir := range r.RemovedDirs {
				add("  %s", dir)
			}
		}
	}
}

func (r *Result) renderReport(add func(string, ...any)) {
	add("---- FILES ----")
	for _, entry := range r.Entries {
		add("%s  (detected=%s)", entry.Path, entry.Tags)
	}
	add("")
	add("=== LANGUAGE SUMMARY ===")
	if len(r.FolderCounts) == 0 {
		add("No ROMs found to analyze.")
		add("")
	} else {
		folders := make([]string, 0, len(r.FolderCounts))
		for folder := range r.FolderCounts {
			folders = append(folders, folder)
		}
		sort.Strings(folders)
		for _, folder := range folders {
			add("Folder: %s", folder)
			for _, count := range sortedCounts(r.FolderCounts[folder]) {
				add("  %s: %d", language.Code(count.tag), count.n)
			}
			add("")
		}
	}

	add("TOTALS:")
	if len(r.TotalCounts) == 0 {
		add("  (none)")
	} else {
		for _, count := range sortedCounts(r.TotalCounts) {
			add("  %s: %d", language.Code(count.tag), count.n)
		}
	}
	add("")
}

type tagCount struct {
	tag language.Tag
	n   int
}

// sortedCounts orders counts descending, tag code ascending on ties.
func sortedCounts(counts map[language.Tag]int) []tagCount {
	out := make([]tagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, tagCount{tag: tag, n: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return out[i].tag < out[j].tag
	})
	return out
}

func actionSuffix(live bool) string {
	if live {
		return "(MOVE FILES)"
	}
	return "(DRY RUN)"
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
