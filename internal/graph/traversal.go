package graph

import "sort"

// TransitiveDependencies computes the reflexive-transitive closure over
// precedes edges reachable backward from id: everything the pattern
// ultimately depends on, including itself.
//
// The traversal tracks visited nodes explicitly, so it terminates on
// cyclic data; the corpus's acyclicity claim is not structurally
// verified, and cycles are treated as a data defect, not a crash.
// Returns nil if the node is unknown.
func (g *Graph) TransitiveDependencies(id string) []string {
	start, ok := g.nodeIdx[id]
	if !ok {
		return nil
	}

	visited := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.inEdges[cur] {
			if e.kind != EdgePrecedes || visited[e.target] {
				continue
			}
			visited[e.target] = true
			stack = append(stack, e.target)
		}
	}

	out := make([]string, 0, len(visited))
	for idx := range visited {
		out = append(out, g.nodes[idx])
	}
	sort.Strings(out)
	return out
}

// FindPath returns the shortest path by edge count from one pattern to
// another over precedes edges, using breadth-first search. Returns nil
// if the target is unreachable; unreachability is not an error.
func (g *Graph) FindPath(from, to string) []string {
	fromIdx, ok := g.nodeIdx[from]
	if !ok {
		return nil
	}
	toIdx, ok := g.nodeIdx[to]
	if !ok {
		return nil
	}

	if fromIdx == toIdx {
		return []string{from}
	}

	prev := make(map[int]int, len(g.nodes))
	prev[fromIdx] = fromIdx
	queue := []int{fromIdx}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, e := range g.outEdges[cur] {
			if e.kind != EdgePrecedes {
				continue
			}
			if _, seen := prev[e.target]; seen {
				continue
			}
			prev[e.target] = cur
			if e.target == toIdx {
				return g.assemblePath(prev, fromIdx, toIdx)
			}
			queue = append(queue, e.target)
		}
	}
	return nil
}

func (g *Graph) assemblePath(prev map[int]int, from, to int) []string {
	var path []string
	for cur := to; ; cur = prev[cur] {
		path = append(path, g.nodes[cur])
		if cur == from {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
