package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category <name>...",
	Short: "List the patterns in a category",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		// Category names may contain spaces.
		members, err := a.MembersOfCategory(strings.Join(args, " "))
		if err != nil {
			return emitError(err, started)
		}
		return emit(members, a.Warnings(), started)
	},
}

func init() {
	rootCmd.AddCommand(categoryCmd)
}
