package main

import (
	"time"

	"github.com/spf13/cobra"
)

var patternCmd = &cobra.Command{
	Use:   "pattern <pattern-id>",
	Short: "Show one pattern in full",
	Long: `Show a pattern's complete record: its text sections, category,
sequences and resolved preceding and following patterns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		detail, err := a.Pattern(args[0])
		if err != nil {
			return emitError(err, started)
		}
		return emit(detail, a.Warnings(), started)
	},
}

func init() {
	rootCmd.AddCommand(patternCmd)
}
