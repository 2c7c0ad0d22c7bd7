package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"romuless/internal/config"
	"romuless/internal/history"
	"romuless/internal/language"
	"romuless/internal/logging"
	"romuless/internal/policy"
	"romuless/internal/preflight"
	"romuless/internal/reconcile"
	"romuless/internal/runlock"
)

type runFlags struct {
	root    string
	keep    []string
	live    bool
	logPath string
	cleanup bool
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().StringVar(&flags.root, "root", "", "Library root (defaults to paths.library_root)")
	cmd.Flags().StringSliceVar(&flags.keep, "keep", nil, "Language tags to keep (sort) or restore (remerge)")
	cmd.Flags().BoolVar(&flags.live, "live", false, "Perform filesystem changes; without it everything is a dry run")
	cmd.Flags().StringVar(&flags.logPath, "log", "", "Report file path (default: <root>/rom_sort_log.txt)")
}

func newSortCommand(cctx *commandContext) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Move ROMs outside the keep-languages into the moved-aside folder",
		Long: "Walks the library root (excluding the moved-aside folder), classifies\n" +
			"each ROM by filename, and moves files whose languages are not being kept\n" +
			"into the moved-aside folder, preserving relative paths. Files with no\n" +
			"detectable language are always kept.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cctx, reconcile.Sort, flags)
		},
	}
	addRunFlags(cmd, flags)
	return cmd
}

func newRemergeCommand(cctx *commandContext) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "remerge",
		Short: "Move ROMs from the moved-aside folder back to their original places",
		Long: "Walks only the moved-aside folder and restores eligible files to their\n" +
			"original relative locations. Passing --keep with no values restores\n" +
			"every language.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cctx, reconcile.Remerge, flags)
		},
	}
	addRunFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.cleanup, "cleanup", false, "After a live remerge, remove emptied folders inside the moved-aside folder")
	return cmd
}

func newReportCommand(cctx *commandContext) *cobra.Command {
	flags := &runFlags{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report language counts per folder and in total, moving nothing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, cctx, reconcile.Report, flags)
		},
	}
	cmd.Flags().StringVar(&flags.root, "root", "", "Library root (defaults to paths.library_root)")
	cmd.Flags().StringVar(&flags.logPath, "log", "", "Report file path (default: <root>/rom_sort_log.txt)")
	return cmd
}

// resolveKeepSet turns raw --keep values into the effective keep-set for the
// mode. An omitted flag falls back to configured defaults; a present flag
// with zero values means restore-all in remerge mode and is coerced to
// English in sort mode.
func resolveKeepSet(mode reconcile.Mode, values []string, changed bool, cfg *config.Config) (policy.KeepSet, error) {
	if mode == reconcile.Report {
		return policy.NewKeepSet(), nil
	}
	if !changed {
		values = cfg.Sort.KeepLanguages
	}
	if changed && len(values) == 0 {
		if mode == reconcile.Remerge {
			return policy.RestoreAll(), nil
		}
		// An empty keep list while sorting is almost certainly accidental;
		// assume English rather than moving the whole library aside.
		return policy.NewKeepSet(language.English), nil
	}
	tags := make([]language.Tag, 0, len(values))
	for _, value := range values {
		tag, err := language.Parse(value)
		if err != nil {
			return policy.KeepSet{}, err
		}
		tags = append(tags, tag)
	}
	return policy.NewKeepSet(tags...), nil
}

func runOperation(cmd *cobra.Command, cctx *commandContext, mode reconcile.Mode, flags *runFlags) error {
	cfg, err := cctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cctx.ensureLogger()
	if err != nil {
		return err
	}

	keep, err := resolveKeepSet(mode, flags.keep, cmd.Flags().Changed("keep"), cfg)
	if err != nil {
		return err
	}

	root := flags.root
	if root == "" {
		root = cfg.Paths.LibraryRoot
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}

	if flags.live {
		if err := preflight.RunLive(root); err != nil {
			return err
		}
		lock, err := runlock.Acquire(root)
		if err != nil {
			return err
		}
		defer func() {
			_ = lock.Release()
		}()
	}

	ledger := openLedger(cfg, logger)
	if ledger != nil {
		defer ledger.Close()
	}

	driver := reconcile.NewDriver(cfg, ledger, logger)
	result, runErr := driver.Run(cmd.Context(), mode, reconcile.Options{
		Root:    root,
		Keep:    keep,
		Live:    flags.live,
		Cleanup: flags.cleanup,
	})

	// Even an aborted run reports the decisions made before the failure.
	if result != nil {
		emitReport(cmd, cfg, flags, result)
	}
	return runErr
}

func openLedger(cfg *config.Config, logger *slog.Logger) *history.Store {
	ledger, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		logging.NewComponentLogger(logger, "history").
			Warn("run history disabled", logging.Error(err))
		return nil
	}
	return ledger
}

// emitReport writes the rendered report to the console and to the report
// file under the root (or the --log override).
func emitReport(cmd *cobra.Command, cfg *config.Config, flags *runFlags, result *reconcile.Result) {
	text := result.RenderText()
	fmt.Fprint(cmd.OutOrStdout(), text)

	logPath := flags.logPath
	if logPath == "" {
		logPath = filepath.Join(result.Root, cfg.Paths.ReportName)
	}
	if err := os.WriteFile(logPath, []byte(text), 0o644); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "write report %s: %v\n", logPath, err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to: %s\n", logPath)
}
