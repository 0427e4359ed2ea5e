package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var searchLimitFlag int

var searchCmd = &cobra.Command{
	Use:   "search <text>...",
	Short: "Search patterns by free text",
	Long: `Search pattern names, context, problem and solution text. Exact word
matches rank above prefix matches, which rank above substring matches.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		hits, err := a.Search(newContext(), strings.Join(args, " "), searchLimitFlag)
		if err != nil {
			return emitError(err, started)
		}
		return emit(hits, a.Warnings(), started)
	},
}

func init() {
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 0,
		"Maximum number of results (default from config)")
	rootCmd.AddCommand(searchCmd)
}
