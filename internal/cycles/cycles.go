// Package cycles implements back-edge detection over directed graphs. One
// generic depth-first routine serves both file-level and folder-level
// cycle detection; callers inject a reporter to translate back edges into
// their own issue taxonomy.
package cycles

// Reporter receives every back edge found during detection: from is the
// node whose outgoing edge closes a cycle, to is the node already on the
// active traversal path. The same underlying cycle may be reported more
// than once; callers get at-least-one report per cycle, never exactly-one.
type Reporter[N comparable] func(from, to N)

// frame is one entry of the explicit traversal stack: a node plus the
// position of the next outgoing edge to examine.
type frame[N comparable] struct {
	node N
	next int
}

// Detect walks the graph depth-first from each root in order, reporting
// every edge that points back into the active traversal path. The search
// uses an explicit work stack so traversal depth is bounded by the heap,
// not the goroutine stack, on large repositories.
//
// Roots and each node's edge list are visited strictly in the order given,
// which keeps reports reproducible across runs on identical input. All
// bookkeeping is local to the call; concurrent detections never share state.
func Detect[N comparable](roots []N, edges func(N) []N, report Reporter[N]) {
	visited := make(map[N]struct{})
	onStack := make(map[N]struct{})

	for _, root := range roots {
		if _, done := visited[root]; done {
			continue
		}

		visited[root] = struct{}{}
		onStack[root] = struct{}{}
		stack := []frame[N]{{node: root}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			out := edges(top.node)

			if top.next < len(out) {
				target := out[top.next]
				top.next++

				// onStack is checked before visited: nodes on the active
				// path are also in visited once entered.
				if _, active := onStack[target]; active {
					report(top.node, target)
					continue
				}
				if _, done := visited[target]; done {
					continue
				}

				visited[target] = struct{}{}
				onStack[target] = struct{}{}
				stack = append(stack, frame[N]{node: target})
				continue
			}

			delete(onStack, top.node)
			stack = stack[:len(stack)-1]
		}
	}
}
