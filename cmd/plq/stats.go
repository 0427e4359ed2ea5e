package main

import (
	"time"

	"github.com/spf13/cobra"
)

var statsCentralFlag int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the corpus and its graph",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		if statsCentralFlag > 0 {
			return emit(a.CentralPatterns(statsCentralFlag), a.Warnings(), started)
		}
		return emit(a.Stats(), a.Warnings(), started)
	},
}

func init() {
	statsCmd.Flags().IntVar(&statsCentralFlag, "central", 0,
		"Show the N most central patterns instead of summary counts")
	rootCmd.AddCommand(statsCmd)
}
