package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/archlens/archlens/internal/analyzer"
	"github.com/archlens/archlens/internal/ctxlog"
	"github.com/archlens/archlens/internal/facts"
	"github.com/archlens/archlens/internal/hclcfg"
)

// Run executes the analysis and writes the result JSON.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model := hclcfg.Default()
	if a.config.ConfigPath != "" {
		loaded, err := hclcfg.Load(ctx, a.config.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load analyzer config: %w", err)
		}
		model = loaded
	}

	fileFacts, err := facts.Load(ctx, a.config.FactsPath)
	if err != nil {
		return fmt.Errorf("failed to load facts: %w", err)
	}
	fileFacts = dropIgnored(ctx, fileFacts, model.Analysis.Ignore)

	var result *analyzer.Result
	if a.config.SingleFile != "" {
		result, err = a.runSingleFile(ctx, fileFacts)
		if err != nil {
			return err
		}
	} else {
		opts := analyzer.Options{
			RestrictToKnownFiles: model.Analysis.RestrictToKnownFiles,
			FolderLayerChecks:    model.Checks.FolderLayers,
		}
		result = analyzer.Analyze(ctx, fileFacts, opts)
	}
	a.logger.Info("Analysis finished.",
		"issues", len(result.Issues),
		"layer_count", result.LayerCount(),
		"edge_count", result.EdgeCount())

	return a.writeResult(result)
}

// runSingleFile analyzes one fact in isolation, without graph context.
func (a *App) runSingleFile(ctx context.Context, fileFacts []facts.FileFact) (*analyzer.Result, error) {
	for _, fact := range fileFacts {
		if fact.Path != a.config.SingleFile {
			continue
		}
		return &analyzer.Result{
			Issues:          analyzer.AnalyzeFile(fact),
			Layers:          map[string]int{},
			DependencyGraph: map[string][]string{fact.Path: fact.Dependencies},
		}, nil
	}
	return nil, fmt.Errorf("no fact found for file %s", a.config.SingleFile)
}

// dropIgnored removes facts whose path matches any ignore glob. This is
// the suppression marker: matched files are excluded entirely before the
// engine sees them, not merely flagged.
func dropIgnored(ctx context.Context, fileFacts []facts.FileFact, globs []string) []facts.FileFact {
	if len(globs) == 0 {
		return fileFacts
	}
	logger := ctxlog.FromContext(ctx)

	kept := make([]facts.FileFact, 0, len(fileFacts))
	for _, fact := range fileFacts {
		ignored := false
		for _, glob := range globs {
			if ok, err := path.Match(glob, fact.Path); err == nil && ok {
				ignored = true
				break
			}
		}
		if ignored {
			logger.Debug("Dropping ignored file.", "path", fact.Path)
			continue
		}
		kept = append(kept, fact)
	}
	return kept
}

// writeResult serializes the result to the configured destination.
func (a *App) writeResult(result *analyzer.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}
	data = append(data, '\n')

	if a.config.OutPath != "" {
		if err := os.WriteFile(a.config.OutPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write result to %s: %w", a.config.OutPath, err)
		}
		return nil
	}
	_, err = a.outW.Write(data)
	return err
}
