package depgraph

import (
	"context"
	"strings"

	"github.com/archlens/archlens/internal/ctxlog"
)

// FolderOf returns the parent folder of a slash-separated file path.
// Files at the analysis root map to the empty folder.
func FolderOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// Folders rolls the file graph up to folder granularity: every file edge
// whose endpoints live in different folders contributes one edge between
// those folders. Self-folder edges are dropped and a folder pair appears
// at most once no matter how many file edges connect it.
func Folders(ctx context.Context, g *Graph) *Graph {
	logger := ctxlog.FromContext(ctx)

	fg := New()
	seen := make(map[[2]string]struct{})
	for _, source := range g.Nodes() {
		srcFolder := FolderOf(source)
		if _, exists := fg.adj[srcFolder]; !exists {
			fg.order = append(fg.order, srcFolder)
			fg.adj[srcFolder] = nil
		}
		for _, target := range g.Edges(source) {
			dstFolder := FolderOf(target)
			if srcFolder == dstFolder {
				continue
			}
			pair := [2]string{srcFolder, dstFolder}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			fg.adj[srcFolder] = append(fg.adj[srcFolder], dstFolder)
		}
	}
	logger.Debug("Folder graph built.", "folders", fg.Len(), "edges", fg.EdgeCount())
	return fg
}

// IsAncestor reports whether folder a is an ancestor directory of folder b.
// The root folder is an ancestor of everything.
func IsAncestor(a, b string) bool {
	if a == b {
		return false
	}
	if a == "" {
		return true
	}
	return strings.HasPrefix(b, a+"/")
}
