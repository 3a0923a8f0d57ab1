// Package hclcfg loads the optional analyzer configuration file. The
// config selects engine scope and detector toggles; everything has a
// working default so the file is never required.
package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/archlens/archlens/internal/ctxlog"
)

// Model is the decoded analyzer configuration.
type Model struct {
	Analysis Analysis
	Checks   Checks
}

// Analysis scopes the fact ingestion and graph construction.
type Analysis struct {
	// RestrictToKnownFiles drops dependency edges to files outside the
	// fact set. On by default.
	RestrictToKnownFiles bool

	// Ignore holds path globs; matching fact records are dropped before
	// they reach the engine.
	Ignore []string
}

// Checks toggles individual detectors.
type Checks struct {
	// FolderLayers enables the wrongFolderLayer heuristic. Off by default:
	// its sibling-ordering exemption produced excessive false positives.
	FolderLayers bool
}

// Default returns the configuration used when no config file is given.
func Default() *Model {
	return &Model{
		Analysis: Analysis{RestrictToKnownFiles: true},
		Checks:   Checks{FolderLayers: false},
	}
}

// fileRoot decodes the top-level blocks of a config file.
type fileRoot struct {
	Analysis *analysisBlock `hcl:"analysis,block"`
	Checks   *checksBlock   `hcl:"checks,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

type analysisBlock struct {
	RestrictToKnownFiles *bool          `hcl:"restrict_to_known_files,optional"`
	Ignore               hcl.Expression `hcl:"ignore,optional"`
}

type checksBlock struct {
	FolderLayers *bool `hcl:"folder_layers,optional"`
}

// Load parses and decodes the HCL config file at path, applying defaults
// for anything left unset.
func Load(ctx context.Context, path string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading analyzer config.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}

	model := Default()
	if root.Analysis != nil {
		if root.Analysis.RestrictToKnownFiles != nil {
			model.Analysis.RestrictToKnownFiles = *root.Analysis.RestrictToKnownFiles
		}
		ignore, err := evalIgnore(root.Analysis.Ignore)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore attribute in %s: %w", path, err)
		}
		model.Analysis.Ignore = ignore
	}
	if root.Checks != nil && root.Checks.FolderLayers != nil {
		model.Checks.FolderLayers = *root.Checks.FolderLayers
	}

	logger.Debug("Analyzer config loaded.",
		"restrict_to_known_files", model.Analysis.RestrictToKnownFiles,
		"ignore_count", len(model.Analysis.Ignore),
		"folder_layers", model.Checks.FolderLayers)
	return model, nil
}

// evalIgnore evaluates the ignore attribute expression and converts it to
// a string list.
func evalIgnore(expr hcl.Expression) ([]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	converted, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, err
	}

	var globs []string
	for it := converted.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		globs = append(globs, elem.AsString())
	}
	return globs, nil
}
