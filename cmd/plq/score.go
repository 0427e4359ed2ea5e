package main

import (
	"time"

	"github.com/spf13/cobra"

	"plq/internal/output"
	"plq/internal/salience"
)

var (
	scoreKeywordsFlag []string
	scoreActiveFlag   []string
)

var scoreCmd = &cobra.Command{
	Use:   "score <pattern-id>",
	Short: "Score one pattern against a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		scored, err := a.Score(args[0], salience.Context{
			Keywords:       scoreKeywordsFlag,
			ActivePatterns: scoreActiveFlag,
		})
		if err != nil {
			return emitError(err, started)
		}
		return emit([]output.RankedPattern{*scored}, a.Warnings(), started)
	},
}

func init() {
	scoreCmd.Flags().StringSliceVar(&scoreKeywordsFlag, "keywords", nil,
		"Context keywords (repeatable or comma-separated)")
	scoreCmd.Flags().StringSliceVar(&scoreActiveFlag, "active", nil,
		"Pattern ids already in use")
	rootCmd.AddCommand(scoreCmd)
}
