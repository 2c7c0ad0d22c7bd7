// Package scan walks a library root and yields every file carrying a known
// ROM extension, optionally excluding the moved-aside subtree.
//
// Containment checks use path arithmetic rather than string prefixing so a
// sibling like "Moved ROMS 2" is never confused with the excluded tree.
// Results are materialized and sorted by relative path for deterministic
// reporting; unreadable entries are skipped and surfaced as warnings instead
// of aborting the walk.
package scan
