package main

import (
	"time"

	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path <from-id> <to-id>",
	Short: "Find the shortest application path between two patterns",
	Long: `Find the shortest chain of precedes relationships from one pattern to
another. An unreachable target reports "no path" rather than an error.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		path, err := a.FindPath(args[0], args[1])
		if err != nil {
			return emitError(err, started)
		}
		return emit(path, a.Warnings(), started)
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
