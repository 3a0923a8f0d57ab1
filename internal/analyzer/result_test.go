package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_LayerCount(t *testing.T) {
	t.Parallel()

	t.Run("empty layers", func(t *testing.T) {
		t.Parallel()
		r := &Result{}
		assert.Equal(t, 0, r.LayerCount())
	})

	t.Run("max layer plus one", func(t *testing.T) {
		t.Parallel()
		r := &Result{Layers: map[string]int{"a.ts": 1, "b.ts": 3}}
		assert.Equal(t, 4, r.LayerCount())
	})
}

func TestResult_EdgeCount(t *testing.T) {
	t.Parallel()

	r := &Result{DependencyGraph: map[string][]string{
		"a.ts": {"b.ts", "c.ts"},
		"b.ts": {"c.ts"},
		"c.ts": {},
	}}

	assert.Equal(t, 3, r.EdgeCount())
}

func TestResult_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("empty result marshals empty collections", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(&Result{})

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"issues": [],
			"layers": {},
			"dependencyGraph": {},
			"layerCount": 0,
			"edgeCount": 0
		}`, string(data))
	})

	t.Run("wire shape", func(t *testing.T) {
		t.Parallel()

		r := &Result{
			Issues: []Issue{{
				Type:     IssueCyclicDependency,
				FilePath: "a.ts",
				Message:  "cyclic dependency: import of b.ts closes a cycle",
			}},
			Layers:          map[string]int{"a.ts": 1},
			DependencyGraph: map[string][]string{"a.ts": {"b.ts"}},
		}

		data, err := json.Marshal(r)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"issues": [{
				"type": "cyclicDependency",
				"filePath": "a.ts",
				"message": "cyclic dependency: import of b.ts closes a cycle"
			}],
			"layers": {"a.ts": 1},
			"dependencyGraph": {"a.ts": ["b.ts"]},
			"layerCount": 2,
			"edgeCount": 1
		}`, string(data))
	})
}
