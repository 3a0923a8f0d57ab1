package analyzer

import "encoding/json"

// IssueType classifies an architectural violation.
type IssueType string

const (
	IssueCyclicDependency IssueType = "cyclicDependency"
	IssueWrongLayer       IssueType = "wrongLayer"
	IssueFolderCycle      IssueType = "folderCycle"
	IssueWrongFolderLayer IssueType = "wrongFolderLayer"
)

// Issue is a single reported violation. Issues are immutable once created;
// one underlying cycle may legitimately surface as several issues.
type Issue struct {
	Type     IssueType `json:"type"`
	FilePath string    `json:"filePath"`
	Message  string    `json:"message"`
}

// Result is the value every downstream consumer reads: reporters take
// Issues, the diagram exporters take Layers and DependencyGraph. Layers is
// empty whenever any cycle was detected at file or folder granularity.
type Result struct {
	Issues          []Issue
	Layers          map[string]int
	DependencyGraph map[string][]string
}

// LayerCount returns max(layers) + 1, or 0 when no layers were assigned.
func (r *Result) LayerCount() int {
	if len(r.Layers) == 0 {
		return 0
	}
	max := 0
	for _, layer := range r.Layers {
		if layer > max {
			max = layer
		}
	}
	return max + 1
}

// EdgeCount returns the total dependency-list length across all files.
func (r *Result) EdgeCount() int {
	total := 0
	for _, deps := range r.DependencyGraph {
		total += len(deps)
	}
	return total
}

// MarshalJSON serializes the result in the wire shape shared with the
// report and diagram consumers, including the derived counts. Empty
// collections marshal as [] and {}, never null.
func (r *Result) MarshalJSON() ([]byte, error) {
	issues := r.Issues
	if issues == nil {
		issues = []Issue{}
	}
	layerMap := r.Layers
	if layerMap == nil {
		layerMap = map[string]int{}
	}
	graph := r.DependencyGraph
	if graph == nil {
		graph = map[string][]string{}
	}

	return json.Marshal(struct {
		Issues          []Issue             `json:"issues"`
		Layers          map[string]int      `json:"layers"`
		DependencyGraph map[string][]string `json:"dependencyGraph"`
		LayerCount      int                 `json:"layerCount"`
		EdgeCount       int                 `json:"edgeCount"`
	}{
		Issues:          issues,
		Layers:          layerMap,
		DependencyGraph: graph,
		LayerCount:      r.LayerCount(),
		EdgeCount:       r.EdgeCount(),
	})
}
