package graph

// PageRankOptions configures centrality computation over the precedes
// subgraph.
type PageRankOptions struct {
	// Damping is the probability of following an edge vs teleporting (default: 0.85)
	Damping float64

	// MaxIterations is the maximum number of power iterations (default: 50)
	MaxIterations int

	// Tolerance for convergence detection (default: 1e-6)
	Tolerance float64
}

// DefaultPageRankOptions returns sensible defaults.
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		Damping:       0.85,
		MaxIterations: 50,
		Tolerance:     1e-6,
	}
}

// PageRank computes structural centrality over the precedes subgraph by
// power iteration with uniform teleport. Synthetic category and sequence
// nodes carry no precedes edges, so they receive only teleport mass and
// rank at the bottom.
//
// Scores are normalized so the most central node scores 1.0, which keeps
// the centrality sub-score directly usable in a [0,1] weighted sum.
func (g *Graph) PageRank(opts PageRankOptions) map[string]float64 {
	n := len(g.nodes)
	if n == 0 {
		return map[string]float64{}
	}

	if opts.Damping <= 0 || opts.Damping >= 1 {
		opts.Damping = 0.85
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 50
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-6
	}

	outDegree := make([]int, n)
	for i, edges := range g.outEdges {
		for _, e := range edges {
			if e.kind == EdgePrecedes {
				outDegree[i]++
			}
		}
	}

	teleport := 1.0 / float64(n)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = teleport
	}

	newScores := make([]float64, n)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		// Dangling mass is redistributed uniformly so scores keep summing to 1.
		dangling := 0.0
		for i := range newScores {
			newScores[i] = 0
			if outDegree[i] == 0 {
				dangling += scores[i]
			}
		}
		danglingShare := dangling / float64(n)

		for i, edges := range g.outEdges {
			if outDegree[i] == 0 {
				continue
			}
			contrib := scores[i] / float64(outDegree[i])
			for _, e := range edges {
				if e.kind == EdgePrecedes {
					newScores[e.target] += contrib
				}
			}
		}

		maxDiff := 0.0
		for i := range newScores {
			newScores[i] = opts.Damping*(newScores[i]+danglingShare) + (1-opts.Damping)*teleport
			diff := newScores[i] - scores[i]
			if diff < 0 {
				diff = -diff
			}
			if diff > maxDiff {
				maxDiff = diff
			}
		}

		scores, newScores = newScores, scores

		if maxDiff < opts.Tolerance {
			break
		}
	}

	maxScore := 0.0
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}

	result := make(map[string]float64, n)
	for i, s := range scores {
		if maxScore > 0 {
			result[g.nodes[i]] = s / maxScore
		} else {
			result[g.nodes[i]] = 0
		}
	}
	return result
}
