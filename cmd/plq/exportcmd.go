package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"plq/internal/export"
	"plq/internal/logging"
)

var (
	exportOutFlag     string
	exportOptionsFlag string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus as Atomese s-expressions",
	Long: `Render the corpus as Atomese: patterns and groupings become
ConceptNodes, category membership InheritanceLinks, sequence membership
MemberLinks and precedes relationships ImplicationLinks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		started := time.Now()
		logger := newLogger()
		a := mustGetAPI(logger)

		optsPath := exportOptionsFlag
		if optsPath == "" {
			optsPath = export.OptionsFile
		}
		opts, err := export.LoadOptions(optsPath)
		if err != nil {
			return emitError(err, started)
		}

		w := os.Stdout
		if exportOutFlag != "" {
			f, err := os.Create(exportOutFlag)
			if err != nil {
				return emitError(fmt.Errorf("failed to create output file: %w", err), started)
			}
			defer f.Close()
			w = f
		}

		e := export.NewExporter(a.Snapshot(), a.Graph(), opts, logger)
		if err := e.Export(w); err != nil {
			return emitError(err, started)
		}

		logger.Info("export complete", logging.Fields{
			"patterns":   len(a.Snapshot().Patterns),
			"durationMs": time.Since(started).Milliseconds(),
		})
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOutFlag, "out", "",
		"Output file (default stdout)")
	exportCmd.Flags().StringVar(&exportOptionsFlag, "options", "",
		"Exporter settings file (default export.toml if present)")
	rootCmd.AddCommand(exportCmd)
}
