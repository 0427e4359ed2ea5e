package main

import (
	"time"

	"github.com/spf13/cobra"
)

var sequenceCmd = &cobra.Command{
	Use:   "sequence <sequence-id>",
	Short: "List a sequence's patterns in order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		members, err := a.MembersOfSequence(args[0])
		if err != nil {
			return emitError(err, started)
		}
		return emit(members, a.Warnings(), started)
	},
}

func init() {
	rootCmd.AddCommand(sequenceCmd)
}
