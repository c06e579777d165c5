package refine

import (
	"errors"
	"fmt"
	"slices"

	"github.com/soniakeys/bits"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/partition"
)

var (
	// ErrPartitionMismatch is returned when the initial colouring does not
	// partition exactly the graph's vertex set, or when [Refiner.IsCanonical]
	// is given cells that are not contiguous runs of vertex indices.
	ErrPartitionMismatch = errors.New("partition does not match graph")

	// ErrInconsistent is returned when a search invariant is found broken.
	// It indicates a bug rather than bad input and must not be read as a
	// verdict.
	ErrInconsistent = errors.New("refinement invariant violated")

	// ErrRowBound is returned by [Refiner.IsCanonical] when the number of rows
	// to compare lies outside [0, n].
	ErrRowBound = errors.New("row bound out of range")
)

// Refiner runs individualization-refinement searches over one graph.
//
// A Refiner is created per query by [New] and holds only a read-only copy of
// the adjacency structure, so separate Refiners never share state.
type Refiner struct {
	n   int
	adj []bits.Bits
}

// New binds a search instance to g.
func New(g *graph.Graph) *Refiner {
	n := g.VertexCount()
	r := &Refiner{n: n, adj: make([]bits.Bits, n)}
	for v := range n {
		r.adj[v] = bits.New(n)
		for w := range g.Neighbors(v) {
			r.adj[v].SetBit(w, 1)
		}
	}
	return r
}

// VertexCount returns the number of vertices of the bound graph.
func (r *Refiner) VertexCount() int { return r.n }

func (r *Refiner) adjacent(a, b int) bool { return r.adj[a].Bit(b) == 1 }

// Equitable refines p until every vertex's count of neighbours in each cell
// depends only on its own cell. Split cells stay in place and their parts are
// ordered by neighbour-count signature, so the result is determined by the
// graph and p alone.
func (r *Refiner) Equitable(p partition.Partition) (partition.Partition, error) {
	if err := r.check(p); err != nil {
		return partition.Partition{}, err
	}
	return partition.New(r.equitable(nonEmpty(p.Cells()))...), nil
}

func (r *Refiner) check(p partition.Partition) error {
	if err := p.Validate(r.n); err != nil {
		return fmt.Errorf("%w: %w", ErrPartitionMismatch, err)
	}
	return nil
}

// equitable runs rounds of splitting against the previous round's cells until
// a round splits nothing.
func (r *Refiner) equitable(cells [][]int) [][]int {
	where := make([]int, r.n)
	for {
		for i, c := range cells {
			for _, v := range c {
				where[v] = i
			}
		}
		next := make([][]int, 0, len(cells))
		changed := false
		for _, c := range cells {
			if len(c) == 1 {
				next = append(next, c)
				continue
			}
			parts := r.splitByCounts(c, len(cells), where)
			if len(parts) > 1 {
				changed = true
			}
			next = append(next, parts...)
		}
		cells = next
		if !changed {
			return cells
		}
	}
}

// splitByCounts groups the vertices of cell by their neighbour count in each
// of the k cells, ordering the groups by ascending count vector.
func (r *Refiner) splitByCounts(cell []int, k int, where []int) [][]int {
	type keyed struct {
		key []int
		v   int
	}
	items := make([]keyed, len(cell))
	for i, v := range cell {
		key := make([]int, k)
		r.adj[v].IterateOnes(func(w int) bool {
			key[where[w]]++
			return true
		})
		items[i] = keyed{key: key, v: v}
	}
	slices.SortStableFunc(items, func(x, y keyed) int {
		return slices.Compare(x.key, y.key)
	})
	var parts [][]int
	for i, it := range items {
		if i == 0 || slices.Compare(it.key, items[i-1].key) != 0 {
			parts = append(parts, nil)
		}
		parts[len(parts)-1] = append(parts[len(parts)-1], it.v)
	}
	for _, p := range parts {
		slices.Sort(p)
	}
	return parts
}

// individualize moves v to a singleton cell placed directly before the rest
// of cell ci.
func individualize(cells [][]int, ci, v int) [][]int {
	out := make([][]int, 0, len(cells)+1)
	out = append(out, cells[:ci]...)
	out = append(out, []int{v})
	rest := make([]int, 0, len(cells[ci])-1)
	for _, w := range cells[ci] {
		if w != v {
			rest = append(rest, w)
		}
	}
	out = append(out, rest)
	return append(out, cells[ci+1:]...)
}

// firstNonSingleton returns the index of the first cell with more than one
// vertex, or -1 when the colouring is discrete.
func firstNonSingleton(cells [][]int) int {
	for i, c := range cells {
		if len(c) > 1 {
			return i
		}
	}
	return -1
}

func nonEmpty(cells [][]int) [][]int {
	out := cells[:0]
	for _, c := range cells {
		if len(c) > 0 {
			out = append(out, c)
		}
	}
	return out
}
