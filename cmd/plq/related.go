package main

import (
	"time"

	"github.com/spf13/cobra"
)

var relatedCmd = &cobra.Command{
	Use:   "related <pattern-id>",
	Short: "List patterns sharing a category or sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		related, err := a.RelatedPatterns(args[0])
		if err != nil {
			return emitError(err, started)
		}
		return emit(related, a.Warnings(), started)
	},
}

func init() {
	rootCmd.AddCommand(relatedCmd)
}
