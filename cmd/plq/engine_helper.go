package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"plq/internal/api"
	"plq/internal/config"
	"plq/internal/logging"
)

var (
	apiOnce   sync.Once
	sharedAPI *api.API
	apiErr    error
)

// getAPI returns the shared query API, lazily building the full stack
// (corpus load, graph, centrality, search index) on first use.
func getAPI(logger *logging.Logger) (*api.API, error) {
	apiOnce.Do(func() {
		root, err := os.Getwd()
		if err != nil {
			apiErr = fmt.Errorf("failed to resolve working directory: %w", err)
			return
		}

		cfg, err := config.LoadConfig(root)
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logging.Fields{
				"error": err.Error(),
			})
			cfg = config.DefaultConfig()
		}
		if corpusFlag != "" {
			cfg.CorpusPath = corpusFlag
		}
		if err := cfg.Validate(); err != nil {
			apiErr = err
			return
		}

		sharedAPI, apiErr = api.Load(context.Background(), cfg, logger)
	})
	return sharedAPI, apiErr
}

// mustGetAPI returns the shared query API or exits on error.
func mustGetAPI(logger *logging.Logger) *api.API {
	a, err := getAPI(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}

// newContext creates a new context for command execution.
func newContext() context.Context {
	return context.Background()
}

// newLogger creates a logger honoring the --format flag.
func newLogger() *logging.Logger {
	logFormat := logging.HumanFormat
	if formatFlag == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.InfoLevel,
	})
}
