// Package output defines the CLI-facing result types and the
// deterministic JSON encoding rules: sorted keys, floats rounded to six
// decimals with no trailing zeros, empty fields omitted. Two runs over
// the same corpus must produce byte-identical output.
package output

// PatternSummary is the compact pattern record embedded in most results.
type PatternSummary struct {
	ID       string `json:"id"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Evidence int    `json:"evidence"`
	Category string `json:"category,omitempty"`
}

// RankedPattern is a pattern with its salience score and sub-scores.
type RankedPattern struct {
	Pattern   PatternSummary `json:"pattern"`
	Score     float64        `json:"score"`
	SubScores SubScores      `json:"subScores"`
}

// SubScores breaks a salience score into its weighted components.
type SubScores struct {
	Centrality float64  `json:"centrality"`
	Relevance  float64  `json:"relevance"`
	Gestalt    float64  `json:"gestalt"`
	Force      *float64 `json:"force,omitempty"`
}

// SearchHit is one full-text search result. MatchType reports which
// search tier produced it: "exact", "prefix" or "substring".
type SearchHit struct {
	Pattern   PatternSummary `json:"pattern"`
	MatchType string         `json:"matchType,omitempty"`
}

// PathResult is the answer to a path query.
type PathResult struct {
	Found bool             `json:"found"`
	Path  []PatternSummary `json:"path,omitempty"`
	Hops  int              `json:"hops"`
}

// Warning is a data consistency warning surfaced alongside results.
type Warning struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Detail  string `json:"detail"`
}

// Drilldown suggests a follow-up query when a lookup misses.
type Drilldown struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// Stats summarizes the loaded corpus.
type Stats struct {
	TotalPatterns int            `json:"totalPatterns"`
	Categories    int            `json:"categories"`
	Sequences     int            `json:"sequences"`
	PrecedesEdges int            `json:"precedesEdges"`
	Warnings      map[string]int `json:"warnings,omitempty"`
	ByEvidence    map[string]int `json:"byEvidence,omitempty"`
	ByCategory    map[string]int `json:"byCategory,omitempty"`
}
