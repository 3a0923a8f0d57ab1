package cycles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backEdge struct {
	from, to string
}

func detect(roots []string, adj map[string][]string) []backEdge {
	var out []backEdge
	Detect(roots, func(n string) []string { return adj[n] }, func(from, to string) {
		out = append(out, backEdge{from, to})
	})
	return out
}

func TestDetect_AcyclicGraphReportsNothing(t *testing.T) {
	t.Parallel()

	// Diamond: shared sink is reached twice but is never a back edge.
	adj := map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
	}

	assert.Empty(t, detect([]string{"a", "b", "c", "d"}, adj))
}

func TestDetect_SimpleCycle(t *testing.T) {
	t.Parallel()

	adj := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}

	out := detect([]string{"a", "b"}, adj)

	require.Len(t, out, 1)
	assert.Equal(t, backEdge{"b", "a"}, out[0])
}

func TestDetect_SelfLoop(t *testing.T) {
	t.Parallel()

	adj := map[string][]string{"a": {"a"}}

	out := detect([]string{"a"}, adj)

	require.Len(t, out, 1)
	assert.Equal(t, backEdge{"a", "a"}, out[0])
}

func TestDetect_ReportsEveryBackEdge(t *testing.T) {
	t.Parallel()

	// Two distinct cycles sharing node a.
	adj := map[string][]string{
		"a": {"b", "c"},
		"b": {"a"},
		"c": {"a"},
	}

	out := detect([]string{"a", "b", "c"}, adj)

	assert.Equal(t, []backEdge{{"b", "a"}, {"c", "a"}}, out)
}

func TestDetect_Deterministic(t *testing.T) {
	t.Parallel()

	adj := map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a", "b"},
	}
	roots := []string{"a", "b", "c"}

	first := detect(roots, adj)
	second := detect(roots, adj)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestDetect_DeepChainDoesNotOverflow(t *testing.T) {
	t.Parallel()

	// A linear chain far deeper than any goroutine stack would tolerate
	// with naive recursion.
	const depth = 200_000
	adj := make(map[int][]int, depth)
	for i := 0; i < depth-1; i++ {
		adj[i] = []int{i + 1}
	}

	var reports int
	Detect([]int{0}, func(n int) []int { return adj[n] }, func(_, _ int) {
		reports++
	})

	assert.Zero(t, reports)
}
