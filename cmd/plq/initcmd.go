package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plq/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration",
	Long:  `Create .plq/config.json in the current directory with default settings.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to resolve working directory: %w", err)
		}

		cfg := config.DefaultConfig()
		if corpusFlag != "" {
			cfg.CorpusPath = corpusFlag
		}
		if err := cfg.Save(root); err != nil {
			return err
		}

		fmt.Printf("Wrote .plq/config.json (corpus: %s)\n", cfg.CorpusPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
