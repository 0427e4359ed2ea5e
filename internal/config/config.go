package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete PLQ configuration (v2 schema)
type Config struct {
	Version    int    `json:"version" mapstructure:"version"`
	CorpusPath string `json:"corpusPath" mapstructure:"corpusPath"`

	Salience SalienceConfig `json:"salience" mapstructure:"salience"`
	Search   SearchConfig   `json:"search" mapstructure:"search"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// SalienceConfig contains the salience-scoring weights and options.
// Weights are a configuration point; defaults follow the corpus design
// intent of 0.2/0.3/0.3/0.2.
type SalienceConfig struct {
	CentralityWeight float64 `json:"centralityWeight" mapstructure:"centralityWeight"`
	RelevanceWeight  float64 `json:"relevanceWeight" mapstructure:"relevanceWeight"`
	GestaltWeight    float64 `json:"gestaltWeight" mapstructure:"gestaltWeight"`
	ForceWeight      float64 `json:"forceWeight" mapstructure:"forceWeight"`

	// ProfilePath optionally points to a SALIENCE.toml weight-profile file
	// whose named profiles override these weights per invocation.
	ProfilePath string `json:"profilePath,omitempty" mapstructure:"profilePath"`

	// PageRank damping factor for centrality computation
	Damping float64 `json:"damping" mapstructure:"damping"`
	// PageRank iteration cap
	MaxIterations int `json:"maxIterations" mapstructure:"maxIterations"`
}

// SearchConfig contains text-search limits
type SearchConfig struct {
	DefaultLimit int `json:"defaultLimit" mapstructure:"defaultLimit"`
	MaxLimit     int `json:"maxLimit" mapstructure:"maxLimit"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:    2,
		CorpusPath: "pattern_language.json",
		Salience: SalienceConfig{
			CentralityWeight: 0.2,
			RelevanceWeight:  0.3,
			GestaltWeight:    0.3,
			ForceWeight:      0.2,
			Damping:          0.85,
			MaxIterations:    50,
		},
		Search: SearchConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// LoadConfig loads configuration from <root>/.plq/config.json.
// Environment variables prefixed PLQ_ override file values.
func LoadConfig(root string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("corpusPath", def.CorpusPath)
	v.SetDefault("salience.centralityWeight", def.Salience.CentralityWeight)
	v.SetDefault("salience.relevanceWeight", def.Salience.RelevanceWeight)
	v.SetDefault("salience.gestaltWeight", def.Salience.GestaltWeight)
	v.SetDefault("salience.forceWeight", def.Salience.ForceWeight)
	v.SetDefault("salience.damping", def.Salience.Damping)
	v.SetDefault("salience.maxIterations", def.Salience.MaxIterations)
	v.SetDefault("search.defaultLimit", def.Search.DefaultLimit)
	v.SetDefault("search.maxLimit", def.Search.MaxLimit)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(root, ".plq"))
	v.SetEnvPrefix("PLQ")
	// Nested keys map to underscored env names, e.g. salience.damping
	// becomes PLQ_SALIENCE_DAMPING.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file: defaults plus environment overrides still apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <root>/.plq/config.json
func (c *Config) Save(root string) error {
	dir := filepath.Join(root, ".plq")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 2 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.CorpusPath == "" {
		return &ConfigError{Field: "corpusPath", Message: "corpus path must not be empty"}
	}
	w := c.Salience
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"salience.centralityWeight", w.CentralityWeight},
		{"salience.relevanceWeight", w.RelevanceWeight},
		{"salience.gestaltWeight", w.GestaltWeight},
		{"salience.forceWeight", w.ForceWeight},
	} {
		if f.value < 0 {
			return &ConfigError{Field: f.name, Message: "weight must not be negative"}
		}
	}
	if w.CentralityWeight+w.RelevanceWeight+w.GestaltWeight+w.ForceWeight == 0 {
		return &ConfigError{Field: "salience", Message: "at least one weight must be positive"}
	}
	if c.Search.MaxLimit > 0 && c.Search.DefaultLimit > c.Search.MaxLimit {
		return &ConfigError{Field: "search.defaultLimit", Message: "default limit exceeds max limit"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
