package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"romuless/internal/config"
	"romuless/internal/history"
	"romuless/internal/language"
	"romuless/internal/logging"
	"romuless/internal/policy"
	"romuless/internal/relocate"
	"romuless/internal/scan"
)

// Mode selects which operation a run performs. It is resolved once at the
// CLI boundary; core code never re-derives it from flags.
type Mode int

const (
	Sort Mode = iota
	Remerge
	Report
)

func (m Mode) String() string {
	switch m {
	case Sort:
		return "SORT"
	case Remerge:
		return "REMERGE"
	case Report:
		return "REPORT"
	default:
		return "UNKNOWN"
	}
}

// RootBucket labels root-level files in the report's per-folder counts.
const RootBucket = "(root)"

// Options parameterizes one run.
type Options struct {
	// Root is the library root. Empty falls back to the configured root.
	Root string
	// Keep is the effective keep-set, already resolved per mode.
	Keep policy.KeepSet
	// Live performs filesystem mutations; false is a dry run.
	Live bool
	// Cleanup removes emptied directories after a remerge.
	Cleanup bool
}

// FileDecision is one sort or remerge outcome.
type FileDecision struct {
	// Path is the file's report path: root-relative for sort, prefixed with
	// the moved-aside directory for remerge.
	Path string
	// Dest is the logical relative destination for MOVE and RESTORE rows.
	Dest string
	Tags     language.Set
	Decision policy.Decision
}

// FileEntry is one classified file in report mode.
type FileEntry struct {
	Path string
	Tags language.Set
}

// Result aggregates everything a run decided and did.
type Result struct {
	Mode      Mode
	Root      string
	MovedRoot string
	Keep      policy.KeepSet
	Live      bool
	Cleanup   bool
	StartedAt time.Time
	Elapsed   time.Duration

	// Sort / remerge.
	Decisions []FileDecision
	Kept      int
	Moved     int
	Restored  int
	Skipped   int

	// Report.
	Entries      []FileEntry
	FolderCounts map[string]map[language.Tag]int
	TotalCounts  map[language.Tag]int

	// Remerge bookkeeping.
	MovedRootMissing bool
	RemovedDirs      []string

	Warnings []string
}

// Driver runs one operation per invocation over the ROM set.
type Driver struct {
	cfg     *config.Config
	scanner *scan.Scanner
	engine  *relocate.Engine
	ledger  *history.Store
	logger  *slog.Logger
}

// NewDriver constructs a driver. The ledger may be nil to disable run
// history.
func NewDriver(cfg *config.Config, ledger *history.Store, logger *slog.Logger) *Driver {
	return &Driver{
		cfg:     cfg,
		scanner: scan.NewScanner(cfg.Scan.ExtraExtensions, cfg.Scan.CaseInsensitiveFS),
		engine:  relocate.NewEngine(logger),
		ledger:  ledger,
		logger:  logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Run executes the selected operation. On a relocation error the partial
// Result is returned alongside the error.
func (d *Driver) Run(ctx context.Context, mode Mode, opts Options) (*Result, error) {
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		root = d.cfg.Paths.LibraryRoot
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	result := &Result{
		Mode:      mode,
		Root:      absRoot,
		MovedRoot: d.cfg.MovedRoot(absRoot),
		Keep:      opts.Keep,
		Live:      opts.Live,
		Cleanup:   opts.Cleanup && mode == Remerge,
		StartedAt: time.Now(),
	}

	d.logger.Info("run started",
		logging.String("mode", mode.String()),
		logging.String("root", absRoot),
		logging.String("keep", opts.Keep.Label()),
		logging.Bool("live", opts.Live),
	)

	var runErr error
	switch mode {
	case Sort:
		runErr = d.runSort(result)
	case Remerge:
		runErr = d.runRemerge(result)
	case Report:
		runErr = d.runReport(result)
	default:
		return nil, fmt.Errorf("unknown mode %d", mode)
	}
	result.Elapsed = time.Since(result.StartedAt)

	if runErr != nil {
		d.logger.Error("run aborted", logging.Error(runErr), logging.String("mode", mode.String()))
		return result, runErr
	}

	d.recordHistory(ctx, result)
	d.logger.Info("run completed",
		logging.String("mode", mode.String()),
		logging.Int("kept", result.Kept),
		logging.Int("moved", result.Moved),
		logging.Int("restored", result.Restored),
		logging.Int("skipped", result.Skipped),
		logging.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// stem strips the extension from a path's final element.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (d *Driver) addWarnings(result *Result, warnings []scan.Warning) {
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, w.String())
		d.logger.Warn("enumeration warning", logging.String("path", w.Path), logging.Error(w.Err))
	}
}

func (d *Driver) recordHistory(ctx context.Context, result *Result) {
	if d.ledger == nil || !result.Live || result.Mode == Report {
		return
	}
	run := history.Run{
		Mode:      result.Mode.String(),
		Root:      result.Root,
		Keep:      result.Keep.Label(),
		Live:      result.Live,
		Kept:      result.Kept,
		Moved:     result.Moved,
		Restored:  result.Restored,
		Skipped:   result.Skipped,
		StartedAt: result.StartedAt,
		Elapsed:   result.Elapsed,
	}
	var moves []history.MoveRecord
	for _, decision := range result.Decisions {
		if decision.Decision == policy.Move || decision.Decision == policy.Restore {
			moves = append(moves, history.MoveRecord{SourceRel: decision.Path, DestRel: decision.Dest})
		}
	}
	if _, err := d.ledger.RecordRun(ctx, run, moves); err != nil {
		d.logger.Warn("failed to record run history", logging.Error(err))
	}
}
