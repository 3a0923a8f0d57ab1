package analyzer

import (
	"fmt"
	"strings"

	"github.com/archlens/archlens/internal/depgraph"
)

// folderLayerViolations flags folder edges whose source folder is not
// strictly shallower than the folder it depends on. A folder's layer is
// the deepest layer of any file inside it.
//
// Exemptions, applied before flagging:
//   - edges touching the root folder;
//   - ancestor/descendant folder pairs (parent/child dependencies are
//     always permitted);
//   - a source folder that sorts before the target at the first differing
//     path segment (a directory-name ordering heuristic, not a semantic
//     judgment).
func folderLayerViolations(folderGraph *depgraph.Graph, fileLayers map[string]int) []Issue {
	folderLayer := make(map[string]int)
	for path, layer := range fileLayers {
		folder := depgraph.FolderOf(path)
		if layer > folderLayer[folder] {
			folderLayer[folder] = layer
		}
	}

	var out []Issue
	for _, src := range folderGraph.Nodes() {
		for _, dst := range folderGraph.Edges(src) {
			if src == "" || dst == "" {
				continue
			}
			if depgraph.IsAncestor(src, dst) || depgraph.IsAncestor(dst, src) {
				continue
			}
			if sortsBefore(src, dst) {
				continue
			}
			if folderLayer[src] >= folderLayer[dst] {
				out = append(out, Issue{
					Type:     IssueWrongFolderLayer,
					FilePath: src,
					Message: fmt.Sprintf("folder layer %d is not shallower than folder %s at layer %d",
						folderLayer[src], dst, folderLayer[dst]),
				})
			}
		}
	}
	return out
}

// sortsBefore reports whether folder a sorts lexicographically before
// folder b at their first differing path segment under the shared ancestor.
func sortsBefore(a, b string) bool {
	as := strings.Split(a, "/")
	bs := strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return false
}
