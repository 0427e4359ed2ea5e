package api

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"plq/internal/config"
	"plq/internal/errors"
	"plq/internal/logging"
	"plq/internal/salience"
)

const apiCorpus = `{
  "meta": {"total_patterns": 4},
  "categories": [
    {"name": "Towns", "description": "regional patterns", "pattern_range": {"start": 1, "end": 2},
     "sequences": [{"id": 1, "name": "Regions", "patterns": [1, 2]}]},
    {"name": "Buildings", "description": "building patterns", "pattern_range": {"start": 3, "end": 4},
     "sequences": []}
  ],
  "patterns": [
    {"id": "apl1", "number": 1, "name": "Independent Regions", "asterisks": 2,
     "context": "metropolitan regions", "problem": "centralized government",
     "solution": "independent regions", "following_patterns": [2]},
    {"id": "apl2", "number": 2, "name": "Distribution of Towns", "asterisks": 1,
     "context": "regions", "problem": "population concentrates",
     "solution": "spread towns evenly", "preceding_patterns": [1], "following_patterns": [3]},
    {"id": "apl3", "number": 3, "name": "City Country Fingers", "asterisks": 1,
     "context": "towns and farmland", "problem": "urban sprawl",
     "solution": "interlock fingers of farmland", "preceding_patterns": [2]},
    {"id": "apl4", "number": 4, "name": "Agricultural Valleys", "asterisks": 0,
     "context": "farmland", "problem": "valleys built over",
     "solution": "keep valleys farmed"}
  ]
}`

func newTestAPI(t *testing.T) *API {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.json")
	if err := os.WriteFile(path, []byte(apiCorpus), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.CorpusPath = path
	logger := logging.NewLogger(logging.Config{Level: logging.ErrorLevel})
	a, err := Load(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("api: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestMembership(t *testing.T) {
	a := newTestAPI(t)

	towns, err := a.MembersOfCategory("Towns")
	if err != nil {
		t.Fatal(err)
	}
	if len(towns) != 2 || towns[0].ID != "apl1" || towns[1].ID != "apl2" {
		t.Errorf("Towns = %+v", towns)
	}
	if towns[0].Category != "Towns" {
		t.Errorf("summary category = %q, want Towns", towns[0].Category)
	}

	seq, err := a.MembersOfSequence("seq-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(seq) != 2 {
		t.Errorf("seq-1 = %+v", seq)
	}

	if _, err := a.MembersOfCategory("Gardens"); errors.CodeOf(err) != errors.CategoryNotFound {
		t.Errorf("code = %s", errors.CodeOf(err))
	}
}

func TestDependenciesAndPath(t *testing.T) {
	a := newTestAPI(t)

	deps, err := a.TransitiveDependencies("apl3")
	if err != nil {
		t.Fatal(err)
	}
	// Number-ordered, self included.
	if len(deps) != 3 || deps[0].ID != "apl1" || deps[2].ID != "apl3" {
		t.Errorf("deps = %+v", deps)
	}

	path, err := a.FindPath("apl1", "apl3")
	if err != nil {
		t.Fatal(err)
	}
	if !path.Found || path.Hops != 2 || len(path.Path) != 3 {
		t.Errorf("path = %+v", path)
	}

	path, err = a.FindPath("apl3", "apl1")
	if err != nil {
		t.Fatal(err)
	}
	if path.Found {
		t.Errorf("reverse path should not exist, got %+v", path)
	}
}

func TestRankAndScore(t *testing.T) {
	a := newTestAPI(t)
	ctx := salience.Context{Keywords: []string{"farmland"}, ActivePatterns: []string{"apl2"}}

	ranked, err := a.Rank(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 2 {
		t.Fatalf("ranked = %+v", ranked)
	}
	if ranked[0].Score < ranked[1].Score {
		t.Errorf("ranking out of order: %+v", ranked)
	}

	single, err := a.Score(ranked[0].Pattern.ID, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if single.Score != ranked[0].Score {
		t.Errorf("Score %f disagrees with Rank %f", single.Score, ranked[0].Score)
	}

	if _, err := a.Rank(salience.Context{ActivePatterns: []string{"apl99"}}, 2); !errors.IsNotFound(err) {
		t.Errorf("unknown active pattern: got %v", err)
	}
}

func TestSearch(t *testing.T) {
	a := newTestAPI(t)

	hits, err := a.Search(context.Background(), "farmland", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %+v, want apl3 and apl4", hits)
	}
	for _, h := range hits {
		if h.Pattern.ID != "apl3" && h.Pattern.ID != "apl4" {
			t.Errorf("unexpected hit %+v", h)
		}
		if h.MatchType == "" {
			t.Errorf("hit %s has no match type", h.Pattern.ID)
		}
	}
}

func TestPatternDetail(t *testing.T) {
	a := newTestAPI(t)

	detail, err := a.Pattern("apl2")
	if err != nil {
		t.Fatal(err)
	}
	if detail.Category != "Towns" {
		t.Errorf("category = %q", detail.Category)
	}
	if len(detail.Sequences) != 1 || detail.Sequences[0] != "seq-1" {
		t.Errorf("sequences = %v", detail.Sequences)
	}
	if len(detail.Preceding) != 1 || detail.Preceding[0].ID != "apl1" {
		t.Errorf("preceding = %+v", detail.Preceding)
	}
	if len(detail.Following) != 1 || detail.Following[0].ID != "apl3" {
		t.Errorf("following = %+v", detail.Following)
	}
}

func TestStatsAndValidate(t *testing.T) {
	a := newTestAPI(t)

	stats := a.Stats()
	if stats.TotalPatterns != 4 || stats.Categories != 2 || stats.Sequences != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.PrecedesEdges != 2 {
		t.Errorf("precedes edges = %d, want 2", stats.PrecedesEdges)
	}
	if stats.ByCategory["Towns"] != 2 || stats.ByCategory["Buildings"] != 2 {
		t.Errorf("category distribution = %v, want 2/2", stats.ByCategory)
	}

	report := a.Validate()
	if !report.Clean {
		t.Errorf("report = %+v, want clean", report)
	}
	if len(a.Warnings()) != 0 {
		t.Errorf("warnings = %+v, want none", a.Warnings())
	}
}

func TestCentralPatterns(t *testing.T) {
	a := newTestAPI(t)

	central := a.CentralPatterns(2)
	if len(central) != 2 {
		t.Fatalf("central = %+v", central)
	}
	// apl3 terminates the precedes chain and accumulates the most rank.
	if central[0].Pattern.ID != "apl3" {
		t.Errorf("most central = %s, want apl3", central[0].Pattern.ID)
	}
	if central[0].SubScores.Centrality != 1.0 {
		t.Errorf("top centrality = %f, want 1.0", central[0].SubScores.Centrality)
	}
}

func TestLoadFailsOnMissingCorpus(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CorpusPath = filepath.Join(t.TempDir(), "missing.json")
	logger := logging.NewLogger(logging.Config{Level: logging.ErrorLevel})
	if _, err := Load(context.Background(), cfg, logger); !errors.IsFatalLoad(err) {
		t.Errorf("missing corpus: got %v, want fatal load error", err)
	}
}
