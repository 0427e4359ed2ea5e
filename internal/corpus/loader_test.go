package corpus

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"plq/internal/errors"
	"plq/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Level: logging.ErrorLevel, Output: &bytes.Buffer{}})
}

const smallCorpus = `{
  "meta": {"total_patterns": 3, "source": "test"},
  "categories": [
    {
      "name": "Towns",
      "description": "Large-scale patterns",
      "pattern_range": {"start": 1, "end": 2},
      "sequences": [
        {"id": 1, "name": "Regional web", "patterns": [1, 2]}
      ]
    },
    {
      "name": "Buildings",
      "description": "Building-scale patterns",
      "pattern_range": {"start": 3, "end": 3},
      "sequences": []
    }
  ],
  "patterns": [
    {"id": "apl1", "number": 1, "name": "INDEPENDENT REGIONS", "asterisks": 2,
     "problem": "Metropolitan regions will not come to balance.",
     "solution": "Work toward independent regions.",
     "preceding_patterns": [], "following_patterns": [2]},
    {"id": "apl2", "number": 2, "name": "THE DISTRIBUTION OF TOWNS", "asterisks": 2,
     "problem": "Population concentrates in giant cities.",
     "solution": "Encourage a birth and death of towns.",
     "preceding_patterns": [1], "following_patterns": [3]},
    {"id": "apl3", "number": 3, "name": "CITY COUNTRY FINGERS", "asterisks": 1,
     "problem": "Continuous sprawl destroys life.",
     "solution": "Keep interlocking fingers of farmland and urban land.",
     "preceding_patterns": [2], "following_patterns": []}
  ]
}`

func writeCorpus(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeCorpus(t, "corpus.json", smallCorpus)

	snap, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(snap.Patterns) != 3 {
		t.Errorf("len(Patterns) = %d, want 3", len(snap.Patterns))
	}
	if len(snap.Categories) != 2 {
		t.Errorf("len(Categories) = %d, want 2", len(snap.Categories))
	}
	if len(snap.Sequences) != 1 {
		t.Errorf("len(Sequences) = %d, want 1", len(snap.Sequences))
	}
	if len(snap.Warnings) != 0 {
		t.Errorf("expected clean corpus, got warnings: %v", snap.Warnings)
	}

	p := snap.PatternByID("apl2")
	if p == nil {
		t.Fatal("apl2 not found")
	}
	if p.Number != 2 || p.Evidence != 2 {
		t.Errorf("apl2 = number %d evidence %d, want 2/2", p.Number, p.Evidence)
	}
	if snap.PatternByNumber(3).ID != "apl3" {
		t.Error("number lookup broken")
	}

	cat := snap.CategoryOf(3)
	if cat == nil || cat.Name != "Buildings" {
		t.Errorf("CategoryOf(3) = %v, want Buildings", cat)
	}

	seq := snap.SequenceByID("seq-1")
	if seq == nil {
		t.Fatal("seq-1 not found")
	}
	if len(seq.Patterns) != 2 || seq.Patterns[0] != "apl1" || seq.Patterns[1] != "apl2" {
		t.Errorf("sequence members = %v, want [apl1 apl2] in order", seq.Patterns)
	}
	if seq.Category != "Towns" {
		t.Errorf("sequence category = %q, want Towns", seq.Category)
	}
}

func TestLoadYAML(t *testing.T) {
	yamlDoc := `
meta:
  total_patterns: 1
categories:
  - name: Towns
    description: Large-scale patterns
    pattern_range: {start: 1, end: 1}
    sequences: []
patterns:
  - id: apl1
    number: 1
    name: INDEPENDENT REGIONS
    asterisks: 2
    problem: ""
    solution: ""
    preceding_patterns: []
    following_patterns: []
`
	path := writeCorpus(t, "corpus.yaml", yamlDoc)

	snap, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Patterns) != 1 || snap.PatternByID("apl1") == nil {
		t.Error("YAML corpus not loaded")
	}
}

func TestLoadGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte(smallCorpus)); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}

	path := filepath.Join(t.TempDir(), "corpus.json.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	snap, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Patterns) != 3 {
		t.Errorf("len(Patterns) = %d, want 3", len(snap.Patterns))
	}
}

func TestLoadCountMismatch(t *testing.T) {
	doc := `{
  "meta": {"total_patterns": 253},
  "categories": [],
  "patterns": [
    {"id": "apl1", "number": 1, "name": "ONE", "preceding_patterns": [], "following_patterns": []}
  ]
}`
	path := writeCorpus(t, "corpus.json", doc)

	_, err := Load(path, testLogger())
	if err == nil {
		t.Fatal("expected count mismatch error")
	}
	if errors.CodeOf(err) != errors.CorpusCountMismatch {
		t.Errorf("code = %v, want CORPUS_COUNT_MISMATCH", errors.CodeOf(err))
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{"meta": `},
		{"empty corpus", `{"meta": {"total_patterns": 0}, "patterns": []}`},
		{"missing id", `{"patterns": [{"number": 1, "name": "X", "preceding_patterns": [], "following_patterns": []}]}`},
		{"missing name", `{"patterns": [{"id": "apl1", "number": 1, "preceding_patterns": [], "following_patterns": []}]}`},
		{"duplicate id", `{"patterns": [
			{"id": "apl1", "number": 1, "name": "A", "preceding_patterns": [], "following_patterns": []},
			{"id": "apl1", "number": 2, "name": "B", "preceding_patterns": [], "following_patterns": []}]}`},
		{"duplicate number", `{"patterns": [
			{"id": "apl1", "number": 1, "name": "A", "preceding_patterns": [], "following_patterns": []},
			{"id": "apl2", "number": 1, "name": "B", "preceding_patterns": [], "following_patterns": []}]}`},
		{"negative evidence", `{"patterns": [
			{"id": "apl1", "number": 1, "name": "A", "asterisks": -1, "preceding_patterns": [], "following_patterns": []}]}`},
		{"evidence above two", `{"patterns": [
			{"id": "apl1", "number": 1, "name": "A", "asterisks": 3, "preceding_patterns": [], "following_patterns": []}]}`},
		{"overlapping categories", `{
			"categories": [
				{"name": "Towns", "pattern_range": {"start": 1, "end": 5}},
				{"name": "Buildings", "pattern_range": {"start": 5, "end": 9}}],
			"patterns": [{"id": "apl1", "number": 1, "name": "A", "preceding_patterns": [], "following_patterns": []}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCorpus(t, "corpus.json", tt.doc)
			_, err := Load(path, testLogger())
			if err == nil {
				t.Fatal("expected load error")
			}
			if !errors.IsFatalLoad(err) {
				t.Errorf("error should be fatal, got %v", err)
			}
		})
	}
}

func TestLoadEmptyTextFieldsTolerated(t *testing.T) {
	doc := `{
  "meta": {"total_patterns": 1},
  "categories": [],
  "patterns": [
    {"id": "apl1", "number": 1, "name": "SPARSE", "preceding_patterns": [], "following_patterns": []}
  ]
}`
	path := writeCorpus(t, "corpus.json", doc)

	snap, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("empty text fields should load, got %v", err)
	}
	if snap.PatternByID("apl1").Problem != "" {
		t.Error("empty problem should stay empty string")
	}
}

func TestDanglingAndAsymmetricWarnings(t *testing.T) {
	doc := `{
  "meta": {"total_patterns": 2},
  "categories": [
    {"name": "Towns", "pattern_range": {"start": 1, "end": 2},
     "sequences": [{"id": 1, "name": "S", "patterns": [1, 99]}]}
  ],
  "patterns": [
    {"id": "apl1", "number": 1, "name": "A", "preceding_patterns": [], "following_patterns": [2, 42]},
    {"id": "apl2", "number": 2, "name": "B", "preceding_patterns": [], "following_patterns": []}
  ]
}`
	path := writeCorpus(t, "corpus.json", doc)

	snap, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("warn-and-keep corpus should load, got %v", err)
	}

	kinds := make(map[string]int)
	for _, w := range snap.Warnings {
		kinds[w.Kind]++
	}
	// apl1 -> 42 and seq member 99 dangle
	if kinds[WarnDanglingRef] != 2 {
		t.Errorf("dangling warnings = %d, want 2 (%v)", kinds[WarnDanglingRef], snap.Warnings)
	}
	// apl1 lists 2 as following, but apl2 does not list 1 as preceding
	if kinds[WarnAsymmetricRef] != 1 {
		t.Errorf("asymmetric warnings = %d, want 1 (%v)", kinds[WarnAsymmetricRef], snap.Warnings)
	}

	// The dangling sequence member is dropped, not given a made-up id
	// that could collide with a real pattern's.
	seq := snap.SequenceByID("seq-1")
	if len(seq.Patterns) != 1 || seq.Patterns[0] != "apl1" {
		t.Errorf("sequence members = %v, want [apl1]", seq.Patterns)
	}
	if len(seq.Missing) != 1 || seq.Missing[0] != 99 {
		t.Errorf("missing members = %v, want [99]", seq.Missing)
	}
}

func TestValidateReport(t *testing.T) {
	path := writeCorpus(t, "corpus.json", smallCorpus)
	snap, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	report := snap.Validate()
	if !report.Clean {
		t.Errorf("report should be clean, warnings: %v", snap.Warnings)
	}
	if report.TotalPatterns != 3 || report.DeclaredPatterns != 3 {
		t.Errorf("counts = %d/%d, want 3/3", report.TotalPatterns, report.DeclaredPatterns)
	}
	if report.PrecedingConsistency != 1.0 || report.FollowingConsistency != 1.0 {
		t.Errorf("consistency = %v/%v, want 1.0/1.0",
			report.PrecedingConsistency, report.FollowingConsistency)
	}
}

func TestValidateReportPartialConsistency(t *testing.T) {
	doc := `{
  "meta": {"total_patterns": 2},
  "categories": [],
  "patterns": [
    {"id": "apl1", "number": 1, "name": "A", "preceding_patterns": [], "following_patterns": [2]},
    {"id": "apl2", "number": 2, "name": "B", "preceding_patterns": [], "following_patterns": []}
  ]
}`
	path := writeCorpus(t, "corpus.json", doc)
	snap, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	report := snap.Validate()
	if report.FollowingConsistency != 0.0 {
		t.Errorf("FollowingConsistency = %v, want 0.0", report.FollowingConsistency)
	}
	// No preceding declarations at all counts as fully consistent.
	if report.PrecedingConsistency != 1.0 {
		t.Errorf("PrecedingConsistency = %v, want 1.0", report.PrecedingConsistency)
	}
	if report.Clean {
		t.Error("asymmetric corpus should not report clean")
	}
}

func TestIdempotentLoad(t *testing.T) {
	path := writeCorpus(t, "corpus.json", smallCorpus)

	first, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := Load(path, testLogger())
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if len(first.Patterns) != len(second.Patterns) {
		t.Fatal("pattern counts differ between loads")
	}
	for i := range first.Patterns {
		if first.Patterns[i].ID != second.Patterns[i].ID {
			t.Errorf("pattern order differs at %d: %s vs %s",
				i, first.Patterns[i].ID, second.Patterns[i].ID)
		}
	}
}
