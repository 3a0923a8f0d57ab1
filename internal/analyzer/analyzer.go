// Package analyzer orchestrates the dependency analysis engine: it builds
// the file and folder graphs from ingested facts, runs cycle detection at
// both granularities, and assigns layers when the graphs are acyclic.
package analyzer

import (
	"context"
	"fmt"

	"github.com/archlens/archlens/internal/ctxlog"
	"github.com/archlens/archlens/internal/cycles"
	"github.com/archlens/archlens/internal/depgraph"
	"github.com/archlens/archlens/internal/facts"
	"github.com/archlens/archlens/internal/layers"
)

// Options selects optional engine behavior. The zero value is the default
// directory-wide analysis: dangling edges retained, folder-layer heuristic
// off (it produced excessive false positives on sibling ordering).
type Options struct {
	// RestrictToKnownFiles drops dependency edges whose target is not
	// itself a fact path, keeping the graph inside the analyzed scope.
	RestrictToKnownFiles bool

	// FolderLayerChecks enables the wrongFolderLayer heuristic over the
	// assigned layers.
	FolderLayerChecks bool
}

// Analyze runs the full engine over the supplied facts. Detected cycles
// are reported as issues, never as errors; any cycle at either granularity
// suppresses layer assignment entirely (fail-closed), while the issues and
// the raw dependency graph are still returned.
func Analyze(ctx context.Context, fileFacts []facts.FileFact, opts Options) *Result {
	logger := ctxlog.FromContext(ctx)

	var known map[string]struct{}
	if opts.RestrictToKnownFiles {
		known = depgraph.KnownPaths(fileFacts)
	}
	graph := depgraph.Build(ctx, fileFacts, known)

	var issues []Issue
	cycles.Detect(graph.Nodes(), graph.Edges, func(from, to string) {
		issues = append(issues, Issue{
			Type:     IssueCyclicDependency,
			FilePath: from,
			Message:  fmt.Sprintf("cyclic dependency: import of %s closes a cycle", to),
		})
	})
	logger.Debug("File cycle detection complete.", "issues", len(issues))

	folderGraph := depgraph.Folders(ctx, graph)
	folderIssues := 0
	cycles.Detect(folderGraph.Nodes(), folderGraph.Edges, func(from, to string) {
		folderIssues++
		issues = append(issues, Issue{
			Type:     IssueFolderCycle,
			FilePath: from,
			Message:  fmt.Sprintf("folder cycle: dependency on folder %s closes a cycle", to),
		})
	})
	logger.Debug("Folder cycle detection complete.", "issues", folderIssues)

	result := &Result{
		Issues:          issues,
		Layers:          map[string]int{},
		DependencyGraph: graph.AdjacencyMap(),
	}

	if len(issues) > 0 {
		logger.Debug("Cycles present, layer assignment skipped.")
		return result
	}

	result.Layers = layers.Assign(ctx, graph)
	logger.Debug("Layer assignment complete.", "files", len(result.Layers), "layer_count", result.LayerCount())

	if opts.FolderLayerChecks {
		violations := folderLayerViolations(folderGraph, result.Layers)
		result.Issues = append(result.Issues, violations...)
		logger.Debug("Folder layer checks complete.", "issues", len(violations))
	}

	return result
}

// AnalyzeFile is the context-poor single-file entry point for callers that
// lack full-repository facts. It never builds a graph and cannot detect
// real cycles or true layering; it only flags files that import others
// without being an entry point themselves. Keep it separate from the
// graph-based detectors above.
func AnalyzeFile(fact facts.FileFact) []Issue {
	if len(fact.Dependencies) == 0 || fact.IsEntryPoint {
		return nil
	}
	return []Issue{{
		Type:     IssueWrongLayer,
		FilePath: fact.Path,
		Message:  "file has imports or exports but is not an entry point; its layer cannot be verified without repository context",
	}}
}
