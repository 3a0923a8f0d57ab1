package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/archlens/archlens/internal/ctxlog"
	"github.com/archlens/archlens/internal/fsutil"
)

// Load reads fact records from the given path. A single file is parsed
// directly; a directory is searched recursively for fact files, which are
// parsed in sorted file-name order so repeated runs see records in the
// same sequence.
func Load(ctx context.Context, path string) ([]FileFact, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat facts path %s: %w", path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFactFiles(path)
		if err != nil {
			return nil, fmt.Errorf("failed to discover fact files under %s: %w", path, err)
		}
	}
	logger.Debug("Discovered fact files.", "count", len(files))

	var all []FileFact
	for _, file := range files {
		recs, err := parseFile(file)
		if err != nil {
			return nil, err
		}
		all = append(all, Validate(ctx, recs)...)
	}
	logger.Debug("Fact loading complete.", "facts", len(all))
	return all, nil
}

// parseFile decodes one fact file into loosely-typed records. Validation
// happens afterwards so a single malformed record never rejects the file.
func parseFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fact file %s: %w", path, err)
	}

	var records []map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON fact file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse YAML fact file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported fact file extension: %s", path)
	}
	return records, nil
}
