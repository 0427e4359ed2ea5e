package salience

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ProfilesFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadProfiles(t *testing.T) {
	path := writeProfiles(t, `
version = 1

[[profile]]
name = "balanced"
centrality = 0.2
relevance = 0.3
gestalt = 0.3
force = 0.2

[[profile]]
name = "structural"
centrality = 0.7
relevance = 0.1
gestalt = 0.2
force = 0.0
`)

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 2 {
		t.Fatalf("got %d profiles, want 2", len(profiles))
	}
	if w := profiles["structural"]; w.Centrality != 0.7 {
		t.Errorf("structural centrality = %f, want 0.7", w.Centrality)
	}
	if w := profiles["balanced"]; w != DefaultWeights() {
		t.Errorf("balanced = %+v, want defaults", w)
	}
}

func TestLoadProfilesRejectsBadInput(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unnamed", "[[profile]]\ncentrality = 1.0\n"},
		{"duplicate", "[[profile]]\nname = \"a\"\ncentrality = 1.0\n[[profile]]\nname = \"a\"\ncentrality = 1.0\n"},
		{"negative", "[[profile]]\nname = \"a\"\ncentrality = -1.0\n"},
		{"all zero", "[[profile]]\nname = \"a\"\n"},
		{"not toml", "{\"name\": 1}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadProfiles(writeProfiles(t, tc.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
