package main

import (
	"time"

	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps <pattern-id>",
	Short: "List a pattern's transitive dependencies",
	Long: `List every pattern the given one depends on through precedes
relationships, directly or indirectly, including the pattern itself.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		deps, err := a.TransitiveDependencies(args[0])
		if err != nil {
			return emitError(err, started)
		}
		return emit(deps, a.Warnings(), started)
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
