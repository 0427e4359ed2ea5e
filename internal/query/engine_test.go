package query

import (
	"os"
	"path/filepath"
	"testing"

	"plq/internal/corpus"
	"plq/internal/errors"
	"plq/internal/graph"
	"plq/internal/logging"
)

const testCorpus = `{
  "meta": {"total_patterns": 4},
  "categories": [
    {"name": "Towns", "description": "regional patterns", "pattern_range": {"start": 1, "end": 2},
     "sequences": [{"id": 1, "name": "Regions", "patterns": [1, 2]}]},
    {"name": "Buildings", "description": "building patterns", "pattern_range": {"start": 3, "end": 4},
     "sequences": [{"id": 2, "name": "Rooms", "patterns": [3]}]}
  ],
  "patterns": [
    {"id": "apl1", "number": 1, "name": "Independent Regions", "asterisks": 2,
     "context": "", "problem": "", "solution": "", "following_patterns": [2]},
    {"id": "apl2", "number": 2, "name": "Distribution of Towns", "asterisks": 1,
     "context": "", "problem": "", "solution": "", "preceding_patterns": [1], "following_patterns": [3]},
    {"id": "apl3", "number": 3, "name": "City Country Fingers", "asterisks": 1,
     "context": "", "problem": "", "solution": "", "preceding_patterns": [2]},
    {"id": "apl4", "number": 4, "name": "Agricultural Valleys", "asterisks": 0,
     "context": "", "problem": "", "solution": ""}
  ]
}`

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte(testCorpus), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, err := corpus.Load(path, logging.NewLogger(logging.Config{Level: logging.ErrorLevel}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return NewEngine(snap, graph.Build(snap))
}

func ids(patterns []*corpus.Pattern) []string {
	out := make([]string, len(patterns))
	for i, p := range patterns {
		out[i] = p.ID
	}
	return out
}

func assertIDs(t *testing.T, got []*corpus.Pattern, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestMembersOfCategory(t *testing.T) {
	e := newTestEngine(t)

	members, err := e.MembersOfCategory("Towns")
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, members, "apl1", "apl2")

	_, err = e.MembersOfCategory("Gardens")
	if !errors.IsNotFound(err) {
		t.Errorf("unknown category: got %v, want not-found", err)
	}
	if errors.CodeOf(err) != errors.CategoryNotFound {
		t.Errorf("code = %s, want %s", errors.CodeOf(err), errors.CategoryNotFound)
	}
}

func TestMembersOfSequence(t *testing.T) {
	e := newTestEngine(t)

	members, err := e.MembersOfSequence("seq-1")
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, members, "apl1", "apl2")

	_, err = e.MembersOfSequence("seq-99")
	if errors.CodeOf(err) != errors.SequenceNotFound {
		t.Errorf("code = %s, want %s", errors.CodeOf(err), errors.SequenceNotFound)
	}
}

func TestTransitiveDependencies(t *testing.T) {
	e := newTestEngine(t)

	// apl1 precedes apl2 precedes apl3: apl3 depends on the whole chain,
	// itself included.
	deps, err := e.TransitiveDependencies("apl3")
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, deps, "apl1", "apl2", "apl3")

	deps, err = e.TransitiveDependencies("apl4")
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, deps, "apl4")

	_, err = e.TransitiveDependencies("apl99")
	if errors.CodeOf(err) != errors.PatternNotFound {
		t.Errorf("code = %s, want %s", errors.CodeOf(err), errors.PatternNotFound)
	}
}

func TestFindPath(t *testing.T) {
	e := newTestEngine(t)

	path, err := e.FindPath("apl1", "apl3")
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, path, "apl1", "apl2", "apl3")

	// Reverse direction is unreachable: a nil path, not an error.
	path, err = e.FindPath("apl3", "apl1")
	if err != nil {
		t.Fatal(err)
	}
	if path != nil {
		t.Errorf("reverse path = %v, want nil", ids(path))
	}

	_, err = e.FindPath("apl1", "apl99")
	if errors.CodeOf(err) != errors.PatternNotFound {
		t.Errorf("code = %s, want %s", errors.CodeOf(err), errors.PatternNotFound)
	}
	_, err = e.FindPath("apl99", "apl1")
	if errors.CodeOf(err) != errors.PatternNotFound {
		t.Errorf("code = %s, want %s", errors.CodeOf(err), errors.PatternNotFound)
	}
}

func TestRelatedPatterns(t *testing.T) {
	e := newTestEngine(t)

	// apl1 shares the Towns category and seq-1 with apl2 only.
	related, err := e.RelatedPatterns("apl1")
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, related, "apl2")

	// apl4 shares Buildings with apl3 but sits in no sequence.
	related, err = e.RelatedPatterns("apl4")
	if err != nil {
		t.Fatal(err)
	}
	assertIDs(t, related, "apl3")

	_, err = e.RelatedPatterns("apl99")
	if !errors.IsNotFound(err) {
		t.Errorf("unknown pattern: got %v, want not-found", err)
	}
}
