package reconcile

import (
	"path/filepath"
	"strings"

	"romuless/internal/language"
)

// runReport classifies every ROM outside the moved-aside subtree and buckets
// counts by top-level folder and globally. Files with no detected tags count
// under the unknown bucket; files with several tags increment every one, so
// per-tag sums can exceed the file count. Nothing is relocated.
func (d *Driver) runReport(result *Result) error {
	entries, warnings, err := d.scanner.Locate(result.Root, result.MovedRoot)
	if err != nil {
		return err
	}
	d.addWarnings(result, warnings)

	result.FolderCounts = make(map[string]map[language.Tag]int)
	result.TotalCounts = make(map[language.Tag]int)

	for _, entry := range entries {
		bucket := RootBucket
		if parts := strings.Split(entry.RelPath, string(filepath.Separator)); len(parts) > 1 {
			bucket = parts[0]
		}
		folder := result.FolderCounts[bucket]
		if folder == nil {
			folder = make(map[language.Tag]int)
			result.FolderCounts[bucket] = folder
		}

		tags := language.Detect(stem(entry.RelPath))
		result.Entries = append(result.Entries, FileEntry{Path: entry.RelPath, Tags: tags})

		if tags.Empty() {
			folder[language.Unknown]++
			result.TotalCounts[language.Unknown]++
			continue
		}
		for tag := range tags {
			folder[tag]++
			result.TotalCounts[tag]++
		}
	}
	return nil
}
