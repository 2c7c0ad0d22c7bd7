package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one discovered ROM file.
type Entry struct {
	AbsPath string
	RelPath string // relative to the walked root
}

// Warning records an entry that could not be enumerated.
type Warning struct {
	Path string
	Err  error
}

func (w Warning) String() string {
	return fmt.Sprintf("skipped %s: %v", w.Path, w.Err)
}

// Scanner locates ROM files beneath a root directory.
type Scanner struct {
	exts     map[string]struct{}
	foldCase bool
}

// NewScanner builds a scanner over the built-in extension set plus any extra
// extensions from configuration. foldCase relaxes the exclusion containment
// check for case-insensitive filesystems (exFAT/NTFS mounts).
func NewScanner(extraExtensions []string, foldCase bool) *Scanner {
	exts := make(map[string]struct{}, len(romExtensions)+len(extraExtensions))
	for ext := range romExtensions {
		exts[ext] = struct{}{}
	}
	for _, ext := range extraExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}
	return &Scanner{exts: exts, foldCase: foldCase}
}

// IsROM reports whether the filename carries a known ROM extension.
func (s *Scanner) IsROM(name string) bool {
	_, ok := s.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Locate walks root and returns every ROM file as (absolute, relative) pairs
// sorted by relative path. When exclude is non-empty, any entry contained in
// (or equal to) that subtree is skipped without descending into it.
// Unreadable entries are skipped and reported as warnings.
func (s *Scanner) Locate(root, exclude string) ([]Entry, []Warning, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve root: %w", err)
	}

	var absExclude string
	if exclude != "" {
		absExclude, err = filepath.Abs(exclude)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve excluded subtree: %w", err)
		}
	}

	var entries []Entry
	var warnings []Warning

	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, Warning{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if absExclude != "" && s.contained(path, absExclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.IsROM(d.Name()) {
			return nil
		}
		if absExclude != "" && s.contained(path, absExclude) {
			return nil
		}
		rel, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			warnings = append(warnings, Warning{Path: path, Err: relErr})
			return nil
		}
		entries = append(entries, Entry{AbsPath: path, RelPath: rel})
		return nil
	})
	if walkErr != nil {
		return nil, warnings, fmt.Errorf("walk %s: %w", absRoot, walkErr)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })
	return entries, warnings, nil
}

// contained reports whether path sits at or beneath parent, comparing path
// components rather than string prefixes.
func (s *Scanner) contained(path, parent string) bool {
	if s.foldCase {
		path = strings.ToLower(path)
		parent = strings.ToLower(parent)
	}
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
