package salience

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// ProfilesFile is the default filename for weight profile declarations.
const ProfilesFile = "SALIENCE.toml"

// WeightProfile is one named weighting of the four sub-scores.
type WeightProfile struct {
	Name       string  `toml:"name"`
	Centrality float64 `toml:"centrality"`
	Relevance  float64 `toml:"relevance"`
	Gestalt    float64 `toml:"gestalt"`
	Force      float64 `toml:"force"`
}

// profilesDoc is the root structure of SALIENCE.toml.
type profilesDoc struct {
	Version  int             `toml:"version"`
	Profiles []WeightProfile `toml:"profile"`
}

// LoadProfiles parses a SALIENCE.toml weight-profile file. Each profile
// must name itself and carry non-negative weights with a positive sum;
// the weights need not sum to one, Weights normalization handles that.
func LoadProfiles(path string) (map[string]Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ProfilesFile, err)
	}

	var doc profilesDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ProfilesFile, err)
	}

	profiles := make(map[string]Weights, len(doc.Profiles))
	for _, p := range doc.Profiles {
		if p.Name == "" {
			return nil, fmt.Errorf("%s: profile missing required 'name' field", ProfilesFile)
		}
		if _, dup := profiles[p.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate profile %q", ProfilesFile, p.Name)
		}
		w := Weights{
			Centrality: p.Centrality,
			Relevance:  p.Relevance,
			Gestalt:    p.Gestalt,
			Force:      p.Force,
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("%s: profile %q: %w", ProfilesFile, p.Name, err)
		}
		profiles[p.Name] = w
	}
	return profiles, nil
}
