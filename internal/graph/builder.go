package graph

import (
	"plq/internal/corpus"
)

// Node id prefixes for the synthetic grouping nodes. Pattern nodes use
// the pattern id unchanged; pattern ids never carry a colon.
const (
	CategoryNodePrefix = "category:"
	SequenceNodePrefix = "sequence:"
)

// CategoryNode returns the synthetic node id for a category name.
func CategoryNode(name string) string {
	return CategoryNodePrefix + name
}

// SequenceNode returns the synthetic node id for a sequence id.
func SequenceNode(id string) string {
	return SequenceNodePrefix + id
}

// Build derives the relationship graph from a loaded snapshot.
//
// Precedes edges come from each pattern's following list only; the
// preceding lists were already cross-checked by the loader, and deriving
// from one direction avoids duplicate or contradictory edges. Edges whose
// target is a dangling reference are skipped (warn-and-keep: the warning
// was recorded at load time).
//
// Deterministic: snapshot collections are ordered, so identical inputs
// produce identical node and edge insertion order.
func Build(snap *corpus.Snapshot) *Graph {
	g := New()

	for _, p := range snap.Patterns {
		g.AddNode(p.ID)
	}

	for _, p := range snap.Patterns {
		for _, num := range p.Following {
			if q := snap.PatternByNumber(num); q != nil {
				g.AddEdge(p.ID, q.ID, EdgePrecedes)
			}
		}
	}

	for _, cat := range snap.Categories {
		node := CategoryNode(cat.Name)
		for _, p := range snap.Patterns {
			if cat.Contains(p.Number) {
				g.AddEdge(node, p.ID, EdgeCategoryMember)
			}
		}
	}

	for _, seq := range snap.Sequences {
		node := SequenceNode(seq.ID)
		for _, id := range seq.Patterns {
			if snap.PatternByID(id) != nil {
				g.AddEdge(node, id, EdgeSequenceMember)
			}
		}
	}

	return g
}
