package depgraph

import (
	"context"

	"github.com/archlens/archlens/internal/ctxlog"
	"github.com/archlens/archlens/internal/facts"
)

// Graph is a directed dependency graph keyed by path. Node order and each
// node's edge order follow insertion order, so traversals over identical
// input replay identically. Edge lists keep duplicates; deduplication is a
// folder roll-up concern, not a file-level one.
type Graph struct {
	order []string
	adj   map[string][]string
}

// New returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		adj: make(map[string][]string),
	}
}

// Build constructs the file dependency graph from validated facts. When a
// known set is supplied, dependency edges pointing outside it are dropped
// so the graph never references out-of-scope files; with a nil set,
// dangling edges are retained as-is.
func Build(ctx context.Context, fileFacts []facts.FileFact, known map[string]struct{}) *Graph {
	logger := ctxlog.FromContext(ctx)

	g := New()
	dropped := 0
	for _, fact := range fileFacts {
		deps := make([]string, 0, len(fact.Dependencies))
		for _, dep := range fact.Dependencies {
			if known != nil {
				if _, ok := known[dep]; !ok {
					dropped++
					continue
				}
			}
			deps = append(deps, dep)
		}
		g.Set(ctx, fact.Path, deps)
	}
	logger.Debug("File graph built.", "nodes", g.Len(), "edges", g.EdgeCount(), "dropped_edges", dropped)
	return g
}

// KnownPaths returns the set of fact paths, used to restrict graph edges
// to the analyzed scope.
func KnownPaths(fileFacts []facts.FileFact) map[string]struct{} {
	known := make(map[string]struct{}, len(fileFacts))
	for _, fact := range fileFacts {
		known[fact.Path] = struct{}{}
	}
	return known
}

// Set records the full edge list for a node. A duplicate node keeps its
// original position in the node order but its edges are overwritten.
func (g *Graph) Set(ctx context.Context, node string, deps []string) {
	if _, exists := g.adj[node]; exists {
		ctxlog.FromContext(ctx).Warn("Duplicate fact for path, overwriting its dependencies.", "path", node)
	} else {
		g.order = append(g.order, node)
	}
	g.adj[node] = deps
}

// Nodes returns the graph keys in insertion order.
func (g *Graph) Nodes() []string {
	return g.order
}

// Edges returns the recorded dependency targets of a node, in order.
func (g *Graph) Edges(node string) []string {
	return g.adj[node]
}

// Len returns the number of nodes keyed in the graph.
func (g *Graph) Len() int {
	return len(g.order)
}

// EdgeCount returns the total dependency-list length across all nodes.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, node := range g.order {
		total += len(g.adj[node])
	}
	return total
}

// AllNodes returns every path referenced by the graph: keys in insertion
// order, then dependency targets that are not keys, in first-reference
// order. This is the node universe for layer assignment.
func (g *Graph) AllNodes() []string {
	seen := make(map[string]struct{}, len(g.order))
	all := make([]string, 0, len(g.order))
	for _, node := range g.order {
		seen[node] = struct{}{}
		all = append(all, node)
	}
	for _, node := range g.order {
		for _, dep := range g.adj[node] {
			if _, ok := seen[dep]; ok {
				continue
			}
			seen[dep] = struct{}{}
			all = append(all, dep)
		}
	}
	return all
}

// AdjacencyMap exposes the raw path -> dependencies mapping for
// serialization. The returned map aliases the graph's edge slices and must
// be treated as read-only.
func (g *Graph) AdjacencyMap() map[string][]string {
	return g.adj
}
