package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"plq/internal/salience"
)

var (
	rankActiveFlag  []string
	rankLimitFlag   int
	rankProfileFlag string
)

var rankCmd = &cobra.Command{
	Use:   "rank [keyword]...",
	Short: "Rank patterns by salience for a context",
	Long: `Score every pattern against the given context keywords and the set of
already-active patterns, and return the top results. Scores combine
structural centrality, keyword relevance, gestalt fit and force overlap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		if rankProfileFlag != "" {
			profiles, err := salience.LoadProfiles(salience.ProfilesFile)
			if err != nil {
				return emitError(err, started)
			}
			weights, ok := profiles[rankProfileFlag]
			if !ok {
				return emitError(fmt.Errorf("unknown weight profile %q", rankProfileFlag), started)
			}
			var rerr error
			if a, rerr = a.WithWeights(weights); rerr != nil {
				return emitError(rerr, started)
			}
		}

		ranked, err := a.Rank(salience.Context{
			Keywords:       args,
			ActivePatterns: rankActiveFlag,
		}, rankLimitFlag)
		if err != nil {
			return emitError(err, started)
		}
		return emit(ranked, a.Warnings(), started)
	},
}

func init() {
	rankCmd.Flags().StringSliceVar(&rankActiveFlag, "active", nil,
		"Pattern ids already in use (repeatable or comma-separated)")
	rankCmd.Flags().IntVar(&rankLimitFlag, "limit", 10,
		"Number of top patterns to return, 0 for all")
	rankCmd.Flags().StringVar(&rankProfileFlag, "profile", "",
		"Weight profile name from SALIENCE.toml")
	rootCmd.AddCommand(rankCmd)
}
