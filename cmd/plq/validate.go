package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var validateStrictFlag bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check corpus consistency",
	Long: `Load the corpus and report consistency findings: dangling references,
asymmetric precedes declarations, uncategorized patterns and numbering
gaps. These are warnings, not load failures.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		report := a.Validate()
		if err := emit(report, a.Warnings(), started); err != nil {
			return err
		}
		if validateStrictFlag && !report.Clean {
			return fmt.Errorf("corpus has consistency warnings")
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().BoolVar(&validateStrictFlag, "strict", false,
		"Exit non-zero when any warning is present")
	rootCmd.AddCommand(validateCmd)
}
