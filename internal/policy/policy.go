// Package policy decides what happens to a classified ROM file: kept or
// moved aside during a sort pass, restored or skipped during a remerge.
//
// The two directions deliberately treat unclassified files differently. Sort
// never moves a file it cannot classify, so a detection miss can never
// relocate data. Remerge restores an unclassified file only when English was
// requested, so a selective restore does not drag unknown files back.
package policy

import (
	"sort"
	"strings"

	"romuless/internal/language"
)

// Decision is the outcome for one file in one operation.
type Decision int

const (
	Keep Decision = iota
	Move
	Restore
	Skip
)

func (d Decision) String() string {
	switch d {
	case Keep:
		return "KEEP"
	case Move:
		return "MOVE"
	case Restore:
		return "RESTORE"
	case Skip:
		return "SKIP"
	default:
		return "UNKNOWN"
	}
}

// KeepSet is the caller-supplied set of tags controlling retention. The
// restore-all state (an explicitly empty keep list in remerge mode) is a
// distinct constructor, not an empty set, so the two cannot be confused.
type KeepSet struct {
	tags map[language.Tag]struct{}
	all  bool
}

// NewKeepSet builds a keep-set from the given tags.
func NewKeepSet(tags ...language.Tag) KeepSet {
	set := make(map[language.Tag]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return KeepSet{tags: set}
}

// RestoreAll returns the remerge sentinel meaning "bring back every language".
func RestoreAll() KeepSet {
	return KeepSet{all: true}
}

// Contains reports whether the tag is in the keep-set. The restore-all
// sentinel contains nothing; callers test RestoresAll first.
func (k KeepSet) Contains(t language.Tag) bool {
	_, ok := k.tags[t]
	return ok
}

// RestoresAll reports whether this is the remerge restore-all sentinel.
func (k KeepSet) RestoresAll() bool { return k.all }

// Tags returns the member tags in lexical order.
func (k KeepSet) Tags() []language.Tag {
	out := make([]language.Tag, 0, len(k.tags))
	for t := range k.tags {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Label renders the keep-set for report headers.
func (k KeepSet) Label() string {
	if k.all {
		return "ALL"
	}
	tags := k.Tags()
	if len(tags) == 0 {
		return "(none)"
	}
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func (k KeepSet) intersects(tags language.Set) bool {
	for t := range tags {
		if k.Contains(t) {
			return true
		}
	}
	return false
}

// DecideSort applies the sort-direction rule: keep on any intersection with
// the keep-set, and always keep files with no detected tags.
func DecideSort(tags language.Set, keep KeepSet) Decision {
	if tags.Empty() {
		return Keep
	}
	if keep.intersects(tags) {
		return Keep
	}
	return Move
}

// DecideRemerge applies the remerge-direction rule: the restore-all sentinel
// restores everything; otherwise restore on intersection, and restore
// unclassified files only when English is being restored.
func DecideRemerge(tags language.Set, keep KeepSet) Decision {
	if keep.RestoresAll() {
		return Restore
	}
	if !tags.Empty() {
		if keep.intersects(tags) {
			return Restore
		}
		return Skip
	}
	if keep.Contains(language.English) {
		return Restore
	}
	return Skip
}
