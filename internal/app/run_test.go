package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultDoc struct {
	Issues []struct {
		Type     string `json:"type"`
		FilePath string `json:"filePath"`
		Message  string `json:"message"`
	} `json:"issues"`
	Layers          map[string]int      `json:"layers"`
	DependencyGraph map[string][]string `json:"dependencyGraph"`
	LayerCount      int                 `json:"layerCount"`
	EdgeCount       int                 `json:"edgeCount"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runApp(t *testing.T, cfg Config) (resultDoc, string) {
	t.Helper()

	outW := &bytes.Buffer{}
	errW := &bytes.Buffer{}
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)

	a := NewApp(outW, errW, appConfig)
	require.NoError(t, a.Run(context.Background()))

	var doc resultDoc
	require.NoError(t, json.Unmarshal(outW.Bytes(), &doc), "stdout should hold the result JSON")
	return doc, outW.String()
}

func TestRun_WritesResultJSON(t *testing.T) {
	t.Parallel()

	factsPath := writeFile(t, t.TempDir(), "facts.json", `[
		{"path": "a.ts", "dependencies": ["b.ts"], "isEntryPoint": true},
		{"path": "b.ts", "dependencies": []}
	]`)

	doc, _ := runApp(t, Config{FactsPath: factsPath, LogLevel: "error"})

	assert.Empty(t, doc.Issues)
	assert.Equal(t, map[string]int{"a.ts": 1, "b.ts": 2}, doc.Layers)
	assert.Equal(t, 3, doc.LayerCount)
	assert.Equal(t, 1, doc.EdgeCount)
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	factsPath := writeFile(t, t.TempDir(), "facts.json", `[
		{"path": "a.ts", "dependencies": ["b.ts", "c.ts"]},
		{"path": "b.ts", "dependencies": ["a.ts"]},
		{"path": "c.ts", "dependencies": []}
	]`)
	cfg := Config{FactsPath: factsPath, LogLevel: "error"}

	_, first := runApp(t, cfg)
	_, second := runApp(t, cfg)

	assert.Equal(t, first, second)
}

func TestRun_IgnoreGlobDropsFilesBeforeAnalysis(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	factsPath := writeFile(t, dir, "facts.json", `[
		{"path": "a.ts", "dependencies": ["vendor/lib.ts"]},
		{"path": "vendor/lib.ts", "dependencies": ["a.ts"]}
	]`)
	configPath := writeFile(t, dir, "archlens.hcl", `
analysis {
  restrict_to_known_files = true
  ignore                  = ["vendor/*"]
}
`)

	doc, _ := runApp(t, Config{FactsPath: factsPath, ConfigPath: configPath, LogLevel: "error"})

	// With vendor/lib.ts suppressed, the a <-> vendor cycle disappears and
	// the dangling edge is dropped by the allow-set.
	assert.Empty(t, doc.Issues)
	assert.NotContains(t, doc.DependencyGraph, "vendor/lib.ts")
	assert.Equal(t, map[string]int{"a.ts": 1}, doc.Layers)
}

func TestRun_SingleFileMode(t *testing.T) {
	t.Parallel()

	factsPath := writeFile(t, t.TempDir(), "facts.json", `[
		{"path": "a.ts", "dependencies": ["b.ts"]},
		{"path": "b.ts", "dependencies": []}
	]`)

	doc, _ := runApp(t, Config{FactsPath: factsPath, SingleFile: "a.ts", LogLevel: "error"})

	require.Len(t, doc.Issues, 1)
	assert.Equal(t, "wrongLayer", doc.Issues[0].Type)
	assert.Equal(t, "a.ts", doc.Issues[0].FilePath)
	assert.Empty(t, doc.Layers)
}

func TestRun_SingleFileModeUnknownPath(t *testing.T) {
	t.Parallel()

	factsPath := writeFile(t, t.TempDir(), "facts.json", `[
		{"path": "a.ts", "dependencies": []}
	]`)
	appConfig, err := NewConfig(Config{FactsPath: factsPath, SingleFile: "nope.ts", LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(&bytes.Buffer{}, &bytes.Buffer{}, appConfig)
	err = a.Run(context.Background())

	assert.ErrorContains(t, err, "no fact found")
}

func TestRun_OutPathWritesFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	factsPath := writeFile(t, dir, "facts.json", `[
		{"path": "a.ts", "dependencies": []}
	]`)
	outPath := filepath.Join(dir, "result.json")
	appConfig, err := NewConfig(Config{FactsPath: factsPath, OutPath: outPath, LogLevel: "error"})
	require.NoError(t, err)

	outW := &bytes.Buffer{}
	a := NewApp(outW, &bytes.Buffer{}, appConfig)
	require.NoError(t, a.Run(context.Background()))

	assert.Empty(t, outW.String())
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var doc resultDoc
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, map[string]int{"a.ts": 1}, doc.Layers)
}

func TestNewConfig_RequiresFactsPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})

	assert.Error(t, err)
}
