// Package layers assigns a positive integer depth to every file in an
// acyclic dependency graph. Layer 1 holds the files closest to entry
// points; a file's dependencies always land on strictly deeper layers.
package layers

import (
	"context"
	"sort"

	"github.com/archlens/archlens/internal/ctxlog"
	"github.com/archlens/archlens/internal/depgraph"
)

// relaxationCap bounds the fixed-point iteration as a termination
// backstop. The condensation converges in two passes, so reaching the
// cap indicates a logic defect rather than a legitimate stop condition.
// A var so tests can lower it to drive the non-convergence diagnostic.
var relaxationCap = 1000

// Assign computes the layer of every path referenced by the graph.
// Mutually dependent files are collapsed into strongly connected
// components first so the longest-path relaxation is well-defined even if
// the input is not acyclic. The returned layer values are dense from 1.
func Assign(ctx context.Context, g *depgraph.Graph) map[string]int {
	logger := ctxlog.FromContext(ctx)

	nodes := g.AllNodes()
	if len(nodes) == 0 {
		return map[string]int{}
	}

	comp, compCount := stronglyConnected(nodes, g.Edges)
	logger.Debug("SCC computation complete.", "nodes", len(nodes), "components", compCount)

	// Condensation graph: one deduplicated edge per ordered component pair.
	adj := make([][]int, compCount)
	seen := make(map[[2]int]struct{})
	for _, node := range nodes {
		a := comp[node]
		for _, dep := range g.Edges(node) {
			b := comp[dep]
			if a == b {
				continue
			}
			pair := [2]int{a, b}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			adj[a] = append(adj[a], b)
		}
	}

	// Longest-path relaxation: a component sits one layer deeper than the
	// deepest component depending on it. Tarjan assigns sink components
	// the lowest ids, so descending id order is a topological order of
	// the condensation: one pass fully propagates and a second confirms
	// the fixed point, so the cap is a termination backstop that no
	// well-formed condensation should ever reach.
	layer := make([]int, compCount)
	for i := range layer {
		layer[i] = 1
	}
	converged := false
	for iter := 0; iter < relaxationCap; iter++ {
		changed := false
		for a := compCount - 1; a >= 0; a-- {
			for _, b := range adj[a] {
				if layer[b] < layer[a]+1 {
					layer[b] = layer[a] + 1
					changed = true
				}
			}
		}
		if !changed {
			converged = true
			break
		}
	}
	if !converged {
		// Implies the cycle detectors missed something upstream.
		logger.Warn("Layer relaxation did not converge before the iteration cap.", "cap", relaxationCap)
	}

	byFile := make(map[string]int, len(nodes))
	for _, node := range nodes {
		byFile[node] = layer[comp[node]]
	}
	return renumber(byFile)
}

// renumber compresses the distinct layer values to a dense 1..n sequence,
// preserving relative order. Gaps appear when SCC merging leaves unused
// depths and must never reach consumers.
func renumber(byFile map[string]int) map[string]int {
	distinct := make(map[int]struct{}, len(byFile))
	for _, v := range byFile {
		distinct[v] = struct{}{}
	}
	values := make([]int, 0, len(distinct))
	for v := range distinct {
		values = append(values, v)
	}
	sort.Ints(values)

	rank := make(map[int]int, len(values))
	for i, v := range values {
		rank[v] = i + 1
	}

	out := make(map[string]int, len(byFile))
	for path, v := range byFile {
		out[path] = rank[v]
	}
	return out
}
