package export

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// OptionsFile is the default filename for exporter settings.
const OptionsFile = "export.toml"

// Options controls Atomese output.
type Options struct {
	// Format names the output dialect; "atomese" is the only one today.
	Format string `toml:"format"`

	// IncludeEvidence attaches truth values derived from the evidence
	// ordinal to pattern ConceptNodes.
	IncludeEvidence bool `toml:"include_evidence"`
}

// DefaultOptions returns the standard exporter settings.
func DefaultOptions() Options {
	return Options{Format: "atomese", IncludeEvidence: true}
}

// LoadOptions reads exporter settings from a TOML file. A missing file
// yields the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return opts, nil
	}
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse %s: %w", OptionsFile, err)
	}
	if opts.Format != "atomese" {
		return opts, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	return opts, nil
}

// Save writes the settings to a TOML file.
func (o Options) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", OptionsFile, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(o); err != nil {
		return fmt.Errorf("failed to encode %s: %w", OptionsFile, err)
	}
	return nil
}
