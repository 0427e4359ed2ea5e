// Package query implements the structural query operations over a loaded
// corpus and its derived relationship graph.
package query

import (
	"plq/internal/corpus"
	"plq/internal/errors"
	"plq/internal/graph"
)

// Engine answers membership, dependency and path queries. It holds only
// read-only references and is safe to share.
type Engine struct {
	snap *corpus.Snapshot
	g    *graph.Graph
}

// NewEngine creates a query engine over a snapshot and its graph.
func NewEngine(snap *corpus.Snapshot, g *graph.Graph) *Engine {
	return &Engine{snap: snap, g: g}
}

// MembersOfCategory returns the patterns whose number falls in the
// category's range, ordered by ascending number. An empty category is a
// valid empty result; an unknown category name is an error.
func (e *Engine) MembersOfCategory(name string) ([]*corpus.Pattern, error) {
	cat := e.snap.CategoryByName(name)
	if cat == nil {
		return nil, errors.NotFoundCategory(name)
	}
	members := []*corpus.Pattern{}
	for _, p := range e.snap.Patterns {
		if cat.Contains(p.Number) {
			members = append(members, p)
		}
	}
	return members, nil
}

// MembersOfSequence returns the sequence's patterns in their declared
// order. Members that reference missing patterns were already dropped
// with a warning at load time.
func (e *Engine) MembersOfSequence(id string) ([]*corpus.Pattern, error) {
	seq := e.snap.SequenceByID(id)
	if seq == nil {
		return nil, errors.NotFoundSequence(id)
	}
	members := []*corpus.Pattern{}
	for _, pid := range seq.Patterns {
		if p := e.snap.PatternByID(pid); p != nil {
			members = append(members, p)
		}
	}
	return members, nil
}

// TransitiveDependencies returns every pattern the given one depends on,
// directly or indirectly, including itself. Safe on cyclic data.
func (e *Engine) TransitiveDependencies(id string) ([]*corpus.Pattern, error) {
	if e.snap.PatternByID(id) == nil {
		return nil, errors.NotFoundPattern(id)
	}
	deps := e.g.TransitiveDependencies(id)
	return e.resolve(deps), nil
}

// FindPath returns the shortest chain of precedes edges from one pattern
// to another, endpoints included. A nil path means no route exists; that
// is an answer, not an error.
func (e *Engine) FindPath(from, to string) ([]*corpus.Pattern, error) {
	if e.snap.PatternByID(from) == nil {
		return nil, errors.NotFoundPattern(from)
	}
	if e.snap.PatternByID(to) == nil {
		return nil, errors.NotFoundPattern(to)
	}
	path := e.g.FindPath(from, to)
	if path == nil {
		return nil, nil
	}
	return e.resolve(path), nil
}

// RelatedPatterns returns the patterns sharing a category or a sequence
// with the given one, excluding the pattern itself, ordered by ascending
// number.
func (e *Engine) RelatedPatterns(id string) ([]*corpus.Pattern, error) {
	p := e.snap.PatternByID(id)
	if p == nil {
		return nil, errors.NotFoundPattern(id)
	}

	seen := map[string]bool{id: true}
	related := []*corpus.Pattern{}
	add := func(q *corpus.Pattern) {
		if q != nil && !seen[q.ID] {
			seen[q.ID] = true
			related = append(related, q)
		}
	}

	// Snapshot patterns are number-ordered, so scanning them keeps the
	// category portion of the result ordered too.
	if cat := e.snap.CategoryOf(p.Number); cat != nil {
		for _, q := range e.snap.Patterns {
			if cat.Contains(q.Number) {
				add(q)
			}
		}
	}
	for _, seq := range e.snap.SequencesContaining(id) {
		for _, pid := range seq.Patterns {
			add(e.snap.PatternByID(pid))
		}
	}

	corpus.SortByNumber(related)
	return related, nil
}

// resolve maps pattern ids to their full records, dropping synthetic
// node ids that have no pattern behind them.
func (e *Engine) resolve(ids []string) []*corpus.Pattern {
	out := make([]*corpus.Pattern, 0, len(ids))
	for _, id := range ids {
		if p := e.snap.PatternByID(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}
