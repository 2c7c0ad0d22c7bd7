// Package preflight runs quick environment checks before a live operation
// mutates the library. Dry runs skip preflight entirely.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Result is the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// CheckRootAccess verifies that the operation root exists and is readable,
// writable, and traversable.
func CheckRootAccess(root string) Result {
	const name = "root access"
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s does not exist", root)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("stat %s: %v", root, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s is not a directory", root)}
	}
	if err := unix.Access(root, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s: insufficient permissions: %v", root, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", root)}
}

// CheckFreeSpace reports the available space on the root's filesystem. Moves
// within one filesystem are renames, but a cross-device moved-aside tree
// falls back to copying, so headroom still matters.
func CheckFreeSpace(root string) Result {
	const name = "free space"
	var stat unix.Statfs_t
	if err := unix.Statfs(root, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("statfs %s: %v", root, err)}
	}
	available := uint64(stat.Bavail) * uint64(stat.Bsize)
	const minFree = 64 << 20 // 64 MiB keeps collision-suffix copies from filling the disk
	if available < minFree {
		return Result{Name: name, Detail: fmt.Sprintf("only %d bytes available under %s", available, root)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%.1f GiB available", float64(available)/(1<<30))}
}

// RunLive executes all live-run checks against the root and returns an error
// summarizing any failures.
func RunLive(root string) error {
	var failures []string
	for _, result := range []Result{CheckRootAccess(root), CheckFreeSpace(root)} {
		if !result.Passed {
			failures = append(failures, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	if len(failures) > 0 {
		return errors.New("preflight failed: " + strings.Join(failures, "; "))
	}
	return nil
}
