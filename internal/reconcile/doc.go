// Package reconcile orchestrates the three library operations: sorting
// unwanted-language ROMs into the moved-aside subtree, remerging them back,
// and reporting language distribution.
//
// Each operation enumerates, classifies, decides, optionally relocates, and
// aggregates into an explicit Result that the CLI renders; nothing in here
// prints. Live runs are idempotent: a second identical invocation finds
// nothing left to do because sort enumeration excludes the moved-aside
// subtree and remerge enumerates only beneath it.
//
// Relocation failures are fail-fast: the batch stops, but the partial Result
// accumulated so far is returned alongside the error so the report of
// already-processed decisions survives.
package reconcile
