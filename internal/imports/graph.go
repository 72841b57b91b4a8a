package imports

import "sort"

// Graph is a directed file-import graph held as an arena of integer-indexed
// nodes with adjacency lists. Node identity lives in the arena, not in
// pointers, so cyclic structures stay flat and the graph serializes
// directly.
type Graph struct {
	// Files holds the node arena; the index of a file is its node id.
	Files []string `json:"files"`
	// Adjacency maps node id to the ids of files it imports.
	Adjacency [][]int `json:"adjacency"`

	index map[string]int
}

// BuildGraph constructs the graph from resolved import edges. Unresolved
// edges (empty Target) and typing-only edges contribute no arc; the source
// file still gets a node so isolated files are queryable.
func BuildGraph(edges []Edge) *Graph {
	g := &Graph{index: make(map[string]int)}

	for _, e := range edges {
		g.node(e.From)
		if e.Target != "" && !e.TypingOnly {
			g.node(e.Target)
		}
	}

	seen := make(map[[2]int]bool)
	for _, e := range edges {
		if e.Target == "" || e.TypingOnly {
			continue
		}
		from, to := g.index[e.From], g.index[e.Target]
		if from == to {
			continue
		}
		if key := [2]int{from, to}; !seen[key] {
			seen[key] = true
			g.Adjacency[from] = append(g.Adjacency[from], to)
		}
	}

	// Deterministic traversal order regardless of edge input order.
	for i := range g.Adjacency {
		sort.Ints(g.Adjacency[i])
	}
	return g
}

// NodeCount returns the number of files in the arena.
func (g *Graph) NodeCount() int { return len(g.Files) }

// EdgeCount returns the number of distinct arcs.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, adj := range g.Adjacency {
		n += len(adj)
	}
	return n
}

func (g *Graph) node(file string) int {
	if id, ok := g.index[file]; ok {
		return id
	}
	id := len(g.Files)
	g.Files = append(g.Files, file)
	g.Adjacency = append(g.Adjacency, nil)
	g.index[file] = id
	return id
}
