package imports

import "strings"

// FindCycles enumerates elementary cycles by depth-first search from every
// unvisited node with a recursion stack. Revisiting a node already on the
// stack emits the path slice from its first stack occurrence to the current
// node; the search continues afterwards so every cycle reachable from a
// start node is found. Duplicates are collapsed by canonical rotation.
func FindCycles(g *Graph) []Cycle {
	n := g.NodeCount()
	visited := make([]bool, n)
	onStack := make([]bool, n)
	stackPos := make([]int, n)
	var stack []int

	var cycles []Cycle
	seen := make(map[string]bool)

	emit := func(path []int) {
		c := make(Cycle, len(path))
		for i, id := range path {
			c[i] = g.Files[id]
		}
		c = canonicalRotation(c)
		key := strings.Join(c, "\x00")
		if !seen[key] {
			seen[key] = true
			cycles = append(cycles, c)
		}
	}

	var dfs func(u int)
	dfs = func(u int) {
		visited[u] = true
		onStack[u] = true
		stackPos[u] = len(stack)
		stack = append(stack, u)

		for _, v := range g.Adjacency[u] {
			if onStack[v] {
				emit(stack[stackPos[v]:])
			} else if !visited[v] {
				dfs(v)
			}
		}

		stack = stack[:len(stack)-1]
		onStack[u] = false
	}

	for u := 0; u < n; u++ {
		if !visited[u] {
			dfs(u)
		}
	}
	return cycles
}

// canonicalRotation rotates c so its lexicographically smallest element is
// first, preserving cyclic order.
func canonicalRotation(c Cycle) Cycle {
	if len(c) <= 1 {
		return c
	}
	min := 0
	for i := 1; i < len(c); i++ {
		if c[i] < c[min] {
			min = i
		}
	}
	if min == 0 {
		return c
	}
	out := make(Cycle, 0, len(c))
	out = append(out, c[min:]...)
	out = append(out, c[:min]...)
	return out
}
