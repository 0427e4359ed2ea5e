// Package graph provides the derived relationship graph over pattern ids
// and the algorithms the query engine and salience scorer run on it.
// The graph is built once from a corpus snapshot and read-only afterward.
package graph

// EdgeKind labels the three relationship kinds in the corpus.
type EdgeKind string

const (
	// EdgePrecedes links a broader pattern to a narrower one it enables.
	EdgePrecedes EdgeKind = "precedes"
	// EdgeCategoryMember links a synthetic category node to a member pattern.
	EdgeCategoryMember EdgeKind = "category-member"
	// EdgeSequenceMember links a synthetic sequence node to a member pattern.
	EdgeSequenceMember EdgeKind = "sequence-member"
)

// Edge represents a directed typed edge in the pattern graph.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

type edgeEntry struct {
	target int
	kind   EdgeKind
}

// Graph is a sparse directed multigraph over node ids.
type Graph struct {
	nodes    []string
	nodeIdx  map[string]int
	outEdges [][]edgeEntry
	inEdges  [][]edgeEntry
	numEdges int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodeIdx: make(map[string]int),
	}
}

// AddNode adds a node if it doesn't exist, returns its index.
func (g *Graph) AddNode(id string) int {
	if idx, ok := g.nodeIdx[id]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.nodeIdx[id] = idx
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	return idx
}

// AddEdge adds a directed edge from src to dst.
func (g *Graph) AddEdge(src, dst string, kind EdgeKind) {
	srcIdx := g.AddNode(src)
	dstIdx := g.AddNode(dst)

	g.outEdges[srcIdx] = append(g.outEdges[srcIdx], edgeEntry{target: dstIdx, kind: kind})
	g.inEdges[dstIdx] = append(g.inEdges[dstIdx], edgeEntry{target: srcIdx, kind: kind})
	g.numEdges++
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the total number of edges.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// AllNodes returns all node IDs in insertion order.
func (g *Graph) AllNodes() []string {
	return g.nodes
}

// HasNode checks if a node exists in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIdx[id]
	return ok
}

// Successors returns the outgoing neighbors of a node over the given edge
// kind, in edge insertion order. Nil if the node is unknown.
func (g *Graph) Successors(id string, kind EdgeKind) []string {
	idx, ok := g.nodeIdx[id]
	if !ok {
		return nil
	}
	var out []string
	for _, e := range g.outEdges[idx] {
		if e.kind == kind {
			out = append(out, g.nodes[e.target])
		}
	}
	return out
}

// Predecessors returns the incoming neighbors of a node over the given
// edge kind.
func (g *Graph) Predecessors(id string, kind EdgeKind) []string {
	idx, ok := g.nodeIdx[id]
	if !ok {
		return nil
	}
	var out []string
	for _, e := range g.inEdges[idx] {
		if e.kind == kind {
			out = append(out, g.nodes[e.target])
		}
	}
	return out
}

// Adjacent reports whether a and b share an edge of any kind in either
// direction, including co-membership edges through synthetic nodes'
// pattern endpoints. Used for gestalt scoring.
func (g *Graph) Adjacent(a, b string) bool {
	aIdx, ok := g.nodeIdx[a]
	if !ok {
		return false
	}
	bIdx, ok := g.nodeIdx[b]
	if !ok {
		return false
	}
	for _, e := range g.outEdges[aIdx] {
		if e.target == bIdx {
			return true
		}
	}
	for _, e := range g.inEdges[aIdx] {
		if e.target == bIdx {
			return true
		}
	}
	// Shared synthetic parent (same category or sequence node).
	for _, ea := range g.inEdges[aIdx] {
		if ea.kind != EdgeCategoryMember && ea.kind != EdgeSequenceMember {
			continue
		}
		for _, eb := range g.inEdges[bIdx] {
			if eb.kind == ea.kind && eb.target == ea.target {
				return true
			}
		}
	}
	return false
}
