package facts

import (
	"context"

	"github.com/archlens/archlens/internal/ctxlog"
)

// FileFact is the validated per-file dependency record supplied by the
// external fact extractor. Path is the graph node key and must be unique
// per analysis run. Dependencies keeps the extractor's order; duplicate
// targets are preserved.
type FileFact struct {
	Path         string   `json:"path" yaml:"path"`
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
	IsEntryPoint bool     `json:"isEntryPoint" yaml:"isEntryPoint"`
}

// Validate converts loosely-typed records into strongly-typed FileFacts.
// Records with a malformed shape (missing or non-string path, missing or
// non-list dependencies, non-string dependency entries, non-bool entry
// flag) are skipped with a debug log; fact data is advisory, never fatal.
func Validate(ctx context.Context, records []map[string]any) []FileFact {
	logger := ctxlog.FromContext(ctx)

	out := make([]FileFact, 0, len(records))
	for i, rec := range records {
		fact, ok := validateRecord(rec)
		if !ok {
			logger.Debug("Skipping malformed fact record.", "index", i)
			continue
		}
		out = append(out, fact)
	}
	return out
}

func validateRecord(rec map[string]any) (FileFact, bool) {
	var fact FileFact

	path, ok := rec["path"].(string)
	if !ok || path == "" {
		return fact, false
	}

	rawDeps, ok := rec["dependencies"].([]any)
	if !ok {
		return fact, false
	}
	deps := make([]string, 0, len(rawDeps))
	for _, d := range rawDeps {
		s, ok := d.(string)
		if !ok {
			return fact, false
		}
		deps = append(deps, s)
	}

	// An absent flag means "not an entry point"; a present flag must be a bool.
	isEntry := false
	if raw, present := rec["isEntryPoint"]; present {
		b, ok := raw.(bool)
		if !ok {
			return fact, false
		}
		isEntry = b
	}

	fact = FileFact{Path: path, Dependencies: deps, IsEntryPoint: isEntry}
	return fact, true
}
