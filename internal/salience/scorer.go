// Package salience scores patterns for contextual relevance. A score is
// a weighted sum of four sub-scores in [0,1]: structural centrality,
// keyword relevance, gestalt fit with already-active patterns, and force
// overlap. Scoring is deterministic: the same corpus and context always
// produce identical scores and ranking order.
package salience

import (
	"container/heap"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"plq/internal/corpus"
	"plq/internal/errors"
	"plq/internal/graph"
)

// Weights holds the sub-score weights. They are normalized by their sum
// at scoring time, so any non-negative weighting with a positive sum is
// valid.
type Weights struct {
	Centrality float64
	Relevance  float64
	Gestalt    float64
	Force      float64
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{Centrality: 0.2, Relevance: 0.3, Gestalt: 0.3, Force: 0.2}
}

// Validate rejects negative weights and all-zero weightings.
func (w Weights) Validate() error {
	if w.Centrality < 0 || w.Relevance < 0 || w.Gestalt < 0 || w.Force < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	if w.Centrality+w.Relevance+w.Gestalt+w.Force <= 0 {
		return fmt.Errorf("at least one weight must be positive")
	}
	return nil
}

// Context is the query context a pattern is scored against.
type Context struct {
	// Keywords describe the situation being designed for.
	Keywords []string
	// ActivePatterns are ids of patterns already chosen.
	ActivePatterns []string
}

// Breakdown exposes the sub-scores behind a salience score. Force is nil
// when the pattern declares no forces. In a corpus with no forces
// metadata at all, the force weight is dropped and the remaining
// weights renormalized; in a corpus that carries forces, a pattern
// without them contributes zero, so the weighting stays uniform and
// ranking by any single sub-score is order-preserving.
type Breakdown struct {
	Centrality float64
	Relevance  float64
	Gestalt    float64
	Force      *float64
}

// Ranked is one entry of a ranking result.
type Ranked struct {
	ID        string
	Number    int
	Score     float64
	Breakdown Breakdown
}

// Scorer computes salience scores over a fixed snapshot and graph.
// Centrality is computed eagerly at construction, so a built Scorer is
// safe for concurrent reads.
type Scorer struct {
	snap       *corpus.Snapshot
	g          *graph.Graph
	weights    Weights
	centrality map[string]float64
	tokens     map[string]map[string]bool
	forces     map[string]map[string]bool
	anyForces  bool
}

// NewScorer builds a scorer, precomputing centrality and per-pattern
// token sets.
func NewScorer(snap *corpus.Snapshot, g *graph.Graph, weights Weights, pr graph.PageRankOptions) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, errors.Wrap(errors.InternalError, "invalid salience weights", err)
	}

	s := &Scorer{
		snap:       snap,
		g:          g,
		weights:    weights,
		centrality: g.PageRank(pr),
		tokens:     make(map[string]map[string]bool, len(snap.Patterns)),
		forces:     make(map[string]map[string]bool, len(snap.Patterns)),
	}
	for _, p := range snap.Patterns {
		s.tokens[p.ID] = tokenize(p.Text())
		if len(p.Forces) > 0 {
			s.forces[p.ID] = tokenize(strings.Join(p.Forces, " "))
		}
	}
	s.anyForces = len(s.forces) > 0
	return s, nil
}

// Score computes the salience of one pattern against a context.
func (s *Scorer) Score(id string, ctx Context) (float64, Breakdown, error) {
	p := s.snap.PatternByID(id)
	if p == nil {
		return 0, Breakdown{}, errors.NotFoundPattern(id)
	}
	score, bd := s.score(p, contextTokens(ctx), ctx.ActivePatterns)
	return score, bd, nil
}

func (s *Scorer) score(p *corpus.Pattern, keywords map[string]bool, active []string) (float64, Breakdown) {
	bd := Breakdown{
		Centrality: s.centrality[p.ID],
		Relevance:  jaccard(keywords, s.tokens[p.ID]),
		Gestalt:    s.gestalt(p.ID, active),
	}

	wc, wr, wg, wf := s.weights.Centrality, s.weights.Relevance, s.weights.Gestalt, s.weights.Force
	total := wc + wr + wg + wf
	if !s.anyForces {
		// No forces metadata anywhere: drop the force term for the
		// whole corpus so the remaining weights renormalize uniformly.
		total -= wf
		wf = 0
	}

	if forceTokens, hasForces := s.forces[p.ID]; hasForces {
		f := jaccard(keywords, forceTokens)
		bd.Force = &f
	}
	if total <= 0 {
		return 0, bd
	}

	score := (wc*bd.Centrality + wr*bd.Relevance + wg*bd.Gestalt) / total
	if bd.Force != nil {
		score += wf * *bd.Force / total
	}
	return score, bd
}

// gestalt is the fraction of active patterns adjacent to the candidate.
func (s *Scorer) gestalt(id string, active []string) float64 {
	if len(active) == 0 {
		return 0
	}
	adjacent := 0
	for _, a := range active {
		if a == id {
			continue
		}
		if s.g.Adjacent(id, a) {
			adjacent++
		}
	}
	return float64(adjacent) / float64(len(active))
}

// Rank scores every pattern against the context and returns the top k by
// score descending, ties broken by ascending pattern number. k <= 0
// means all patterns. Selection keeps a k-sized heap, so ranking costs
// O(n log k).
func (s *Scorer) Rank(ctx Context, k int) []Ranked {
	n := len(s.snap.Patterns)
	if k <= 0 || k > n {
		k = n
	}
	if k == 0 {
		return []Ranked{}
	}

	keywords := contextTokens(ctx)
	h := make(rankedHeap, 0, k)
	heap.Init(&h)
	for _, p := range s.snap.Patterns {
		score, bd := s.score(p, keywords, ctx.ActivePatterns)
		r := Ranked{ID: p.ID, Number: p.Number, Score: score, Breakdown: bd}
		if len(h) < k {
			heap.Push(&h, r)
		} else if h[0].worseThan(r) {
			h[0] = r
			heap.Fix(&h, 0)
		}
	}

	// Pop ascending, fill the result back to front.
	out := make([]Ranked, len(h))
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&h).(Ranked)
	}
	return out
}

// MostCentral returns the k patterns with the highest structural
// centrality, ties broken by ascending pattern number. Ordering ignores
// the configured weights: each entry's Score is the raw centrality.
func (s *Scorer) MostCentral(k int) []Ranked {
	n := len(s.snap.Patterns)
	if k <= 0 || k > n {
		k = n
	}

	out := make([]Ranked, 0, n)
	for _, p := range s.snap.Patterns {
		c := s.centrality[p.ID]
		out = append(out, Ranked{
			ID:        p.ID,
			Number:    p.Number,
			Score:     c,
			Breakdown: Breakdown{Centrality: c},
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[j].worseThan(out[i])
	})
	return out[:k]
}

// worseThan reports whether r ranks strictly below other.
func (r Ranked) worseThan(other Ranked) bool {
	if r.Score != other.Score {
		return r.Score < other.Score
	}
	return r.Number > other.Number
}

// rankedHeap is a min-heap: the worst-ranked entry sits at the root.
type rankedHeap []Ranked

func (h rankedHeap) Len() int            { return len(h) }
func (h rankedHeap) Less(i, j int) bool  { return h[i].worseThan(h[j]) }
func (h rankedHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *rankedHeap) Push(x interface{}) { *h = append(*h, x.(Ranked)) }
func (h *rankedHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

func contextTokens(ctx Context) map[string]bool {
	return tokenize(strings.Join(ctx.Keywords, " "))
}

// tokenize lowercases and splits on non-alphanumeric runes.
func tokenize(text string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// jaccard is intersection over union of two token sets; empty sets score
// zero.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if b[t] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
