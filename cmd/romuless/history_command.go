package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"romuless/internal/history"
)

func newHistoryCommand(cctx *commandContext) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent live sort and remerge runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg.Paths.HistoryDB)
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
				return nil
			}

			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Mode,
					run.Keep,
					strconv.Itoa(run.Kept),
					strconv.Itoa(run.Moved),
					strconv.Itoa(run.Restored),
					strconv.Itoa(run.Skipped),
					run.Elapsed.String(),
				})
			}
			if writerIsTerminal(out) {
				headers := []string{"Started", "Mode", "Keep", "Kept", "Moved", "Restored", "Skipped", "Elapsed"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			}
			for _, row := range rows {
				fmt.Fprintf(out, "%s  %-7s keep=%s kept=%s moved=%s restored=%s skipped=%s elapsed=%s\n",
					row[0], row[1], row[2], row[3], row[4], row[5], row[6], row[7])
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}
