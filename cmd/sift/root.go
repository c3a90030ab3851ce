package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var opts filterOptions

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "sift [query]",
		Short: "Filter candidate lines from a command or stdin by fuzzy match",
		Long: `sift runs a source command (or reads piped stdin), fuzzy-matches every
line against the query, and prints the matches best first. Ordering is
controlled by the tiebreak criteria; the first N lines can be pinned as
header rows with --header-lines.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return runFilter(cmd, ctx, query, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Configuration file path")
	rootCmd.Flags().StringVarP(&opts.command, "command", "c", "", "Source command producing candidate lines (default from config)")
	rootCmd.Flags().StringVarP(&opts.tiebreak, "tiebreak", "t", "", "Comma-separated rank criteria, e.g. score,begin,-index")
	rootCmd.Flags().IntVar(&opts.headerLines, "header-lines", -1, "Pin the first N lines as header rows (default from config)")
	rootCmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Print at most N matches (0 = all)")
	rootCmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "Do not record this invocation in the history database")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
