package layers

// sccFrame is one entry of Tarjan's explicit traversal stack: a node plus
// the position of the next outgoing edge to examine.
type sccFrame struct {
	node string
	next int
}

// stronglyConnected runs Tarjan's algorithm over the given node universe
// and returns a component id per node along with the component count.
// The traversal is iterative: recursion depth on large repositories is
// bounded by the heap, not the goroutine stack.
func stronglyConnected(nodes []string, edges func(string) []string) (map[string]int, int) {
	index := make(map[string]int, len(nodes))
	low := make(map[string]int, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	comp := make(map[string]int, len(nodes))

	var stack []string
	counter := 0
	compCount := 0

	for _, root := range nodes {
		if _, visited := index[root]; visited {
			continue
		}

		index[root] = counter
		low[root] = counter
		counter++
		stack = append(stack, root)
		onStack[root] = true
		work := []sccFrame{{node: root}}

		for len(work) > 0 {
			top := &work[len(work)-1]
			out := edges(top.node)

			descended := false
			for top.next < len(out) {
				target := out[top.next]
				top.next++

				if _, visited := index[target]; !visited {
					index[target] = counter
					low[target] = counter
					counter++
					stack = append(stack, target)
					onStack[target] = true
					work = append(work, sccFrame{node: target})
					descended = true
					break
				}
				if onStack[target] && index[target] < low[top.node] {
					low[top.node] = index[target]
				}
			}
			if descended {
				continue
			}

			node := top.node
			if low[node] == index[node] {
				for {
					member := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[member] = false
					comp[member] = compCount
					if member == node {
						break
					}
				}
				compCount++
			}

			work = work[:len(work)-1]
			if len(work) > 0 {
				parent := work[len(work)-1].node
				if low[node] < low[parent] {
					low[parent] = low[node]
				}
			}
		}
	}

	return comp, compCount
}
