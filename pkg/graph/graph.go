package graph

import (
	"iter"
	"slices"

	"github.com/soniakeys/bits"
)

// Edge is an unordered vertex pair stored with A < B.
type Edge struct {
	A, B int
}

// NewEdge returns the edge {a, b} with its endpoints in ascending order.
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

// Graph is a simple undirected graph on the vertex range [0, n).
//
// During search a Graph is treated as a value: [Graph.WithEdge] and
// [Graph.RemoveVertex] return new graphs and leave the receiver untouched, so a
// backtracking caller abandons a branch by dropping the value. [Graph.AddEdge]
// mutates in place and is meant for linear accumulation.
//
// Self-loops and duplicate edges are not rejected. Callers are expected to keep
// degree bookkeeping that never asks for an edge that already exists.
//
// The zero value is an empty graph with no vertices. Graph is not safe for
// concurrent mutation; concurrent reads are fine.
type Graph struct {
	adj   [][]int // ascending neighbour lists
	edges []Edge  // insertion order
}

// New creates an edgeless graph with n vertices.
func New(n int) *Graph {
	return &Graph{adj: make([][]int, max(n, 0))}
}

// FromEdges builds a graph with n vertices and the given edges. Endpoints at or
// beyond n grow the vertex range.
func FromEdges(n int, edges ...Edge) *Graph {
	g := New(n)
	for _, e := range edges {
		g.AddEdge(e.A, e.B)
	}
	return g
}

// VertexCount returns n, the size of the vertex range.
func (g *Graph) VertexCount() int { return len(g.adj) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of edges incident to v. Vertices outside the range
// have degree 0.
func (g *Graph) Degree(v int) int {
	if v < 0 || v >= len(g.adj) {
		return 0
	}
	return len(g.adj[v])
}

// Degrees returns the degree of every vertex in index order.
func (g *Graph) Degrees() []int {
	out := make([]int, len(g.adj))
	for v, nbrs := range g.adj {
		out[v] = len(nbrs)
	}
	return out
}

// HasEdge reports whether a and b are adjacent.
func (g *Graph) HasEdge(a, b int) bool {
	if a < 0 || a >= len(g.adj) || b < 0 || b >= len(g.adj) {
		return false
	}
	_, found := slices.BinarySearch(g.adj[a], b)
	return found
}

// Neighbors yields the neighbours of v in ascending order.
func (g *Graph) Neighbors(v int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if v < 0 || v >= len(g.adj) {
			return
		}
		for _, w := range g.adj[v] {
			if !yield(w) {
				return
			}
		}
	}
}

// Edges returns a copy of the edge list in insertion order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// SortedEdges returns the edges ordered by (A, B).
func (g *Graph) SortedEdges() []Edge {
	out := slices.Clone(g.edges)
	slices.SortFunc(out, compareEdges)
	return out
}

func compareEdges(x, y Edge) int {
	if x.A != y.A {
		return x.A - y.A
	}
	return x.B - y.B
}

// AddEdge inserts the edge {a, b} in place, growing the vertex range when an
// endpoint lies beyond it.
func (g *Graph) AddEdge(a, b int) {
	g.grow(max(a, b) + 1)
	g.edges = append(g.edges, NewEdge(a, b))
	g.adj[a] = insertSorted(g.adj[a], b)
	g.adj[b] = insertSorted(g.adj[b], a)
}

// WithEdge returns a new graph equal to g plus the edge {a, b}. If the edge
// already exists the result is an unmodified copy.
func (g *Graph) WithEdge(a, b int) *Graph {
	h := g.Clone()
	if !g.HasEdge(a, b) {
		h.AddEdge(a, b)
	}
	return h
}

// RemoveVertex returns a new graph without v and its incident edges. Vertices
// above v are shifted down by one.
func (g *Graph) RemoveVertex(v int) *Graph {
	n := len(g.adj)
	if v < 0 || v >= n {
		return g.Clone()
	}
	h := New(n - 1)
	shift := func(u int) int {
		if u > v {
			return u - 1
		}
		return u
	}
	for _, e := range g.edges {
		if e.A == v || e.B == v {
			continue
		}
		h.AddEdge(shift(e.A), shift(e.B))
	}
	return h
}

// Component returns the set of vertices reachable from seed, seed included.
func (g *Graph) Component(seed int) bits.Bits {
	seen := bits.New(len(g.adj))
	if seed < 0 || seed >= len(g.adj) {
		return seen
	}
	stack := []int{seed}
	seen.SetBit(seed, 1)
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, w := range g.adj[v] {
			if seen.Bit(w) == 0 {
				seen.SetBit(w, 1)
				stack = append(stack, w)
			}
		}
	}
	return seen
}

// IsConnected reports whether every vertex is reachable from vertex 0. Graphs
// with fewer than two vertices are connected.
func (g *Graph) IsConnected() bool {
	if len(g.adj) < 2 {
		return true
	}
	return g.Component(0).OnesCount() == len(g.adj)
}

// Compact drops every zero-degree vertex and renumbers the rest in order. The
// returned slice maps old indices to new ones, with -1 for dropped vertices.
func (g *Graph) Compact() (*Graph, []int) {
	index := make([]int, len(g.adj))
	next := 0
	for v, nbrs := range g.adj {
		if len(nbrs) == 0 {
			index[v] = -1
			continue
		}
		index[v] = next
		next++
	}
	h := New(next)
	for _, e := range g.edges {
		h.AddEdge(index[e.A], index[e.B])
	}
	return h, index
}

// Permute returns the graph with every vertex v relabelled to p[v]. The
// permutation must cover the whole vertex range.
func (g *Graph) Permute(p []int) *Graph {
	h := New(len(g.adj))
	for _, e := range g.edges {
		h.AddEdge(p[e.A], p[e.B])
	}
	return h
}

// Clone returns a deep copy of g.
func (g *Graph) Clone() *Graph {
	h := &Graph{
		adj:   make([][]int, len(g.adj)),
		edges: slices.Clone(g.edges),
	}
	for v, nbrs := range g.adj {
		h.adj[v] = slices.Clone(nbrs)
	}
	return h
}

// Equal reports whether g and o have the same vertex range and edge set.
func (g *Graph) Equal(o *Graph) bool {
	if len(g.adj) != len(o.adj) || len(g.edges) != len(o.edges) {
		return false
	}
	for v := range g.adj {
		if !slices.Equal(g.adj[v], o.adj[v]) {
			return false
		}
	}
	return true
}

func (g *Graph) grow(n int) {
	for len(g.adj) < n {
		g.adj = append(g.adj, nil)
	}
}

func insertSorted(s []int, x int) []int {
	i, _ := slices.BinarySearch(s, x)
	return slices.Insert(s, i, x)
}
