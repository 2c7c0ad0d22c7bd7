package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string

	cctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "romuless",
		Short:         "Sort, remerge, and analyze multi-system ROM libraries by language",
		Long: "romuless classifies ROM files by the language and region tokens in their\n" +
			"filenames, moves unwanted languages into a moved-aside folder, restores\n" +
			"them on request, and reports language distribution. All operations are\n" +
			"dry runs unless --live is given.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newSortCommand(cctx))
	rootCmd.AddCommand(newRemergeCommand(cctx))
	rootCmd.AddCommand(newReportCommand(cctx))
	rootCmd.AddCommand(newHistoryCommand(cctx))
	rootCmd.AddCommand(newConfigCommand(cctx))

	return rootCmd
}
