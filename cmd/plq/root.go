package main

import (
	"plq/internal/version"

	"github.com/spf13/cobra"
)

var (
	// formatFlag is the CLI --format flag value
	formatFlag string
	// corpusFlag overrides the configured corpus path
	corpusFlag string
)

var rootCmd = &cobra.Command{
	Use:   "plq",
	Short: "PLQ - Pattern Language Query engine",
	Long: `PLQ loads a pattern-language corpus, derives its relationship graph and
answers structural queries: category and sequence membership, transitive
dependencies, shortest application paths, context-sensitive salience
ranking and full-text search.`,
	Version: version.Version,

	// Errors already reach the user through the response envelope.
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("PLQ version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "human",
		"Output format: json or human")
	rootCmd.PersistentFlags().StringVar(&corpusFlag, "corpus", "",
		"Corpus document path (overrides config)")
}
