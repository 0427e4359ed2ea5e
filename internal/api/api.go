// Package api is the unified query surface over a loaded corpus. It
// wires the relationship graph, the query engine, the salience scorer
// and the search index together behind one facade; the CLI commands and
// the exporter talk only to this package.
package api

import (
	"context"

	"plq/internal/config"
	"plq/internal/corpus"
	"plq/internal/errors"
	"plq/internal/graph"
	"plq/internal/index"
	"plq/internal/logging"
	"plq/internal/output"
	"plq/internal/query"
	"plq/internal/salience"
)

// API answers every query operation over one corpus snapshot. Building
// it is the expensive step: graph derivation, centrality and the search
// index all happen in New. A built API only reads shared state.
type API struct {
	snap   *corpus.Snapshot
	g      *graph.Graph
	engine *query.Engine
	scorer *salience.Scorer
	idx    *index.Index
	cfg    *config.Config
	logger *logging.Logger
}

// New builds the full query stack over a snapshot.
func New(ctx context.Context, snap *corpus.Snapshot, cfg *config.Config, logger *logging.Logger) (*API, error) {
	g := graph.Build(snap)

	weights := salience.Weights{
		Centrality: cfg.Salience.CentralityWeight,
		Relevance:  cfg.Salience.RelevanceWeight,
		Gestalt:    cfg.Salience.GestaltWeight,
		Force:      cfg.Salience.ForceWeight,
	}
	scorer, err := salience.NewScorer(snap, g, weights, pageRankOptions(cfg))
	if err != nil {
		return nil, err
	}

	idx, err := index.Build(ctx, snap)
	if err != nil {
		return nil, errors.Wrap(errors.InternalError, "failed to build search index", err)
	}

	logger.Debug("query stack ready", logging.Fields{
		"patterns": len(snap.Patterns),
		"nodes":    g.NumNodes(),
		"edges":    g.NumEdges(),
	})

	return &API{
		snap:   snap,
		g:      g,
		engine: query.NewEngine(snap, g),
		scorer: scorer,
		idx:    idx,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Load reads the corpus at cfg.CorpusPath and builds the API over it.
func Load(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*API, error) {
	snap, err := corpus.Load(cfg.CorpusPath, logger)
	if err != nil {
		return nil, err
	}
	return New(ctx, snap, cfg, logger)
}

func pageRankOptions(cfg *config.Config) graph.PageRankOptions {
	return graph.PageRankOptions{
		Damping:       cfg.Salience.Damping,
		MaxIterations: cfg.Salience.MaxIterations,
	}
}

// WithWeights returns an API sharing this one's snapshot, graph and
// search index but scoring with different sub-score weights. Closing
// either instance closes the shared index.
func (a *API) WithWeights(w salience.Weights) (*API, error) {
	scorer, err := salience.NewScorer(a.snap, a.g, w, pageRankOptions(a.cfg))
	if err != nil {
		return nil, err
	}
	clone := *a
	clone.scorer = scorer
	return &clone, nil
}

// Close releases the search index.
func (a *API) Close() error {
	return a.idx.Close()
}

// Snapshot exposes the underlying corpus for read-only use.
func (a *API) Snapshot() *corpus.Snapshot {
	return a.snap
}

// Graph exposes the derived relationship graph for read-only use.
func (a *API) Graph() *graph.Graph {
	return a.g
}

// MembersOfCategory lists the patterns in a category by ascending number.
func (a *API) MembersOfCategory(name string) ([]output.PatternSummary, error) {
	members, err := a.engine.MembersOfCategory(name)
	if err != nil {
		return nil, err
	}
	return a.summaries(members), nil
}

// MembersOfSequence lists a sequence's patterns in declared order.
func (a *API) MembersOfSequence(id string) ([]output.PatternSummary, error) {
	members, err := a.engine.MembersOfSequence(id)
	if err != nil {
		return nil, err
	}
	return a.summaries(members), nil
}

// TransitiveDependencies lists everything a pattern depends on,
// including itself, by ascending number.
func (a *API) TransitiveDependencies(id string) ([]output.PatternSummary, error) {
	deps, err := a.engine.TransitiveDependencies(id)
	if err != nil {
		return nil, err
	}
	corpus.SortByNumber(deps)
	return a.summaries(deps), nil
}

// FindPath reports the shortest precedes chain between two patterns.
// An unreachable target yields Found=false, not an error.
func (a *API) FindPath(from, to string) (*output.PathResult, error) {
	path, err := a.engine.FindPath(from, to)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return &output.PathResult{Found: false}, nil
	}
	return &output.PathResult{
		Found: true,
		Path:  a.summaries(path),
		Hops:  len(path) - 1,
	}, nil
}

// RelatedPatterns lists patterns sharing a category or sequence with the
// given one.
func (a *API) RelatedPatterns(id string) ([]output.PatternSummary, error) {
	related, err := a.engine.RelatedPatterns(id)
	if err != nil {
		return nil, err
	}
	return a.summaries(related), nil
}

// Score computes one pattern's salience against a context.
func (a *API) Score(id string, ctx salience.Context) (*output.RankedPattern, error) {
	score, bd, err := a.scorer.Score(id, ctx)
	if err != nil {
		return nil, err
	}
	r := a.rankedOutput(salience.Ranked{ID: id, Score: score, Breakdown: bd})
	return &r, nil
}

// Rank returns the top-k patterns for a context, score descending with
// ties broken by ascending pattern number.
func (a *API) Rank(ctx salience.Context, k int) ([]output.RankedPattern, error) {
	for _, id := range ctx.ActivePatterns {
		if a.snap.PatternByID(id) == nil {
			return nil, errors.NotFoundPattern(id)
		}
	}
	ranked := a.scorer.Rank(ctx, k)
	out := make([]output.RankedPattern, len(ranked))
	for i, r := range ranked {
		out[i] = a.rankedOutput(r)
	}
	return out, nil
}

// Search looks patterns up by free text over name and body sections.
func (a *API) Search(ctx context.Context, text string, limit int) ([]output.SearchHit, error) {
	if limit <= 0 {
		limit = a.cfg.Search.DefaultLimit
	}
	if max := a.cfg.Search.MaxLimit; max > 0 && limit > max {
		limit = max
	}
	hits, err := a.idx.Search(ctx, text, limit)
	if err != nil {
		return nil, errors.Wrap(errors.InternalError, "search failed", err)
	}
	out := make([]output.SearchHit, len(hits))
	for i, h := range hits {
		out[i] = output.SearchHit{
			Pattern:   a.summary(a.snap.PatternByID(h.ID)),
			MatchType: h.MatchType,
		}
	}
	return out, nil
}

// PatternDetail is the full view of one pattern.
type PatternDetail struct {
	Pattern   *corpus.Pattern         `json:"pattern"`
	Category  string                  `json:"category,omitempty"`
	Sequences []string                `json:"sequences,omitempty"`
	Preceding []output.PatternSummary `json:"preceding,omitempty"`
	Following []output.PatternSummary `json:"following,omitempty"`
}

// Pattern returns the full record for one pattern, with its neighborhood
// resolved. Dangling neighbor references are skipped.
func (a *API) Pattern(id string) (*PatternDetail, error) {
	p := a.snap.PatternByID(id)
	if p == nil {
		return nil, errors.NotFoundPattern(id)
	}

	detail := &PatternDetail{Pattern: p}
	if cat := a.snap.CategoryOf(p.Number); cat != nil {
		detail.Category = cat.Name
	}
	for _, seq := range a.snap.SequencesContaining(id) {
		detail.Sequences = append(detail.Sequences, seq.ID)
	}
	detail.Preceding = a.numberSummaries(p.Preceding)
	detail.Following = a.numberSummaries(p.Following)
	return detail, nil
}

// CentralPatterns returns the k structurally most central patterns,
// highest centrality first with ties by ascending number. Ordering is
// by the centrality sub-score alone, independent of the scoring weights.
func (a *API) CentralPatterns(k int) []output.RankedPattern {
	ranked := a.scorer.MostCentral(k)
	out := make([]output.RankedPattern, len(ranked))
	for i, r := range ranked {
		out[i] = a.rankedOutput(r)
	}
	return out
}

// Stats summarizes the corpus and its derived graph.
func (a *API) Stats() output.Stats {
	precedes := 0
	byEvidence := make(map[string]int)
	byCategory := make(map[string]int)
	for _, p := range a.snap.Patterns {
		precedes += len(a.g.Successors(p.ID, graph.EdgePrecedes))
		switch p.Evidence {
		case 2:
			byEvidence["**"]++
		case 1:
			byEvidence["*"]++
		default:
			byEvidence["-"]++
		}
		if cat := a.snap.CategoryOf(p.Number); cat != nil {
			byCategory[cat.Name]++
		}
	}

	warnings := make(map[string]int)
	for _, w := range a.snap.Warnings {
		warnings[w.Kind]++
	}

	return output.Stats{
		TotalPatterns: len(a.snap.Patterns),
		Categories:    len(a.snap.Categories),
		Sequences:     len(a.snap.Sequences),
		PrecedesEdges: precedes,
		Warnings:      warnings,
		ByEvidence:    byEvidence,
		ByCategory:    byCategory,
	}
}

// Validate re-runs the consistency checks and reports the findings.
func (a *API) Validate() *corpus.ValidationReport {
	return a.snap.Validate()
}

// Warnings returns the load-time consistency warnings in stable order.
func (a *API) Warnings() []output.Warning {
	out := make([]output.Warning, len(a.snap.Warnings))
	for i, w := range a.snap.Warnings {
		out[i] = output.Warning{Kind: w.Kind, Subject: w.Subject, Detail: w.Detail}
	}
	output.SortWarnings(out)
	return out
}

func (a *API) summary(p *corpus.Pattern) output.PatternSummary {
	if p == nil {
		return output.PatternSummary{}
	}
	s := output.PatternSummary{
		ID:       p.ID,
		Number:   p.Number,
		Name:     p.Name,
		Evidence: int(p.Evidence),
	}
	if cat := a.snap.CategoryOf(p.Number); cat != nil {
		s.Category = cat.Name
	}
	return s
}

func (a *API) summaries(patterns []*corpus.Pattern) []output.PatternSummary {
	out := make([]output.PatternSummary, len(patterns))
	for i, p := range patterns {
		out[i] = a.summary(p)
	}
	return out
}

func (a *API) numberSummaries(numbers []int) []output.PatternSummary {
	var out []output.PatternSummary
	for _, n := range numbers {
		if p := a.snap.PatternByNumber(n); p != nil {
			out = append(out, a.summary(p))
		}
	}
	return out
}

func (a *API) rankedOutput(r salience.Ranked) output.RankedPattern {
	var force *float64
	if r.Breakdown.Force != nil {
		f := output.RoundFloat(*r.Breakdown.Force)
		force = &f
	}
	return output.RankedPattern{
		Pattern: a.summary(a.snap.PatternByID(r.ID)),
		Score:   output.RoundFloat(r.Score),
		SubScores: output.SubScores{
			Centrality: output.RoundFloat(r.Breakdown.Centrality),
			Relevance:  output.RoundFloat(r.Breakdown.Relevance),
			Gestalt:    output.RoundFloat(r.Breakdown.Gestalt),
			Force:      force,
		},
	}
}
