package reconcile

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// sweep removes now-empty directories beneath (and including) root,
// bottom-up. A directory is removed only when it holds zero entries at
// removal time; failures are swallowed per directory so one stubborn entry
// never aborts the sweep. Returns the removed paths in removal order.
func sweep(root string) []string {
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})

	// Deepest first so children empty out before their parents are tried.
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })

	var removed []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			continue
		}
		removed = append(removed, dir)
	}
	return removed
}
