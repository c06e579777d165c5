package refine

import (
	"bytes"
	"slices"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/partition"
	"github.com/matzehuels/orbitgen/pkg/perm"
)

// Result is the outcome of an automorphism search.
type Result struct {
	// Group holds the colour-preserving automorphisms found by the search.
	Group *perm.Group

	// Labelling maps each vertex to its position in the canonical order. Two
	// coloured graphs are isomorphic exactly when relabelling both by their
	// labellings gives equal graphs.
	Labelling perm.Permutation

	// Code is the upper-triangle adjacency string of the canonical form, one
	// byte per vertex pair read row by row.
	Code []byte

	// Leaves counts discrete colourings reached during the search.
	Leaves int
}

// Canonical returns g relabelled by the canonical labelling.
func (res *Result) Canonical(g *graph.Graph) *graph.Graph {
	return g.Permute(res.Labelling)
}

// Automorphisms searches the individualization-refinement tree rooted at the
// colouring p and returns the group of automorphisms that map every cell of p
// to itself.
//
// The tree is explored depth first. The first leaf reached is kept as a
// reference; any later leaf with the same adjacency code yields an
// automorphism. Siblings on the leftmost path that lie in one orbit of the
// automorphisms fixing the path are visited once, and once a subtree off the
// leftmost path has produced an automorphism the rest of it is skipped.
func (r *Refiner) Automorphisms(p partition.Partition) (*Result, error) {
	if err := r.check(p); err != nil {
		return nil, err
	}
	s := &autSearch{r: r, group: perm.NewGroup(r.n)}
	if _, err := s.visit(nonEmpty(p.Cells()), nil, true); err != nil {
		return nil, err
	}
	if s.best == nil {
		return nil, ErrInconsistent
	}
	return &Result{
		Group:     s.group,
		Labelling: positions(s.best),
		Code:      s.bestCode,
		Leaves:    s.leaves,
	}, nil
}

type autSearch struct {
	r      *Refiner
	group  *perm.Group
	leaves int

	first     []int // vertex order at the first leaf
	firstCode []byte
	best      []int
	bestCode  []byte
}

// visit explores the subtree below cells, reached by individualizing path in
// order. It reports whether a leaf in the subtree matched the first leaf.
func (s *autSearch) visit(cells [][]int, path []int, leftmost bool) (bool, error) {
	cells = s.r.equitable(cells)
	ci := firstNonSingleton(cells)
	if ci < 0 {
		return s.leaf(cells)
	}
	var explored []int
	for i, v := range cells[ci] {
		if leftmost && i > 0 && s.sameOrbit(path, explored, v) {
			continue
		}
		next := append(path[:len(path):len(path)], v)
		hit, err := s.visit(individualize(cells, ci, v), next, leftmost && i == 0)
		if err != nil {
			return false, err
		}
		explored = append(explored, v)
		if hit && !leftmost {
			return true, nil
		}
	}
	return false, nil
}

func (s *autSearch) leaf(cells [][]int) (bool, error) {
	s.leaves++
	order := make([]int, len(cells))
	for i, c := range cells {
		if len(c) != 1 {
			return false, ErrInconsistent
		}
		order[i] = c[0]
	}
	code := s.r.code(order)
	if s.first == nil {
		s.first, s.firstCode = order, code
		s.best, s.bestCode = order, code
		return false, nil
	}
	if bytes.Equal(code, s.firstCode) {
		s.group.Enter(mapping(s.first, order))
		return true, nil
	}
	switch bytes.Compare(code, s.bestCode) {
	case 0:
		s.group.Enter(mapping(s.best, order))
	case 1:
		s.best, s.bestCode = order, code
	}
	return false, nil
}

// sameOrbit reports whether v shares an orbit with an explored sibling under
// the automorphisms found so far that fix path pointwise.
func (s *autSearch) sameOrbit(path, explored []int, v int) bool {
	if len(explored) == 0 || s.group.IsTrivial() {
		return false
	}
	var gens []perm.Permutation
	for _, g := range s.group.Generators() {
		if g.Fixes(path...) {
			gens = append(gens, g)
		}
	}
	if len(gens) == 0 {
		return false
	}
	for _, orbit := range perm.OrbitsOf(s.r.n, gens) {
		if !slices.Contains(orbit, v) {
			continue
		}
		for _, w := range explored {
			if slices.Contains(orbit, w) {
				return true
			}
		}
		return false
	}
	return false
}

// code returns the upper-triangle adjacency string of the graph read in the
// given vertex order.
func (r *Refiner) code(order []int) []byte {
	out := make([]byte, 0, r.n*(r.n-1)/2)
	for i, a := range order {
		for _, b := range order[i+1:] {
			if r.adjacent(a, b) {
				out = append(out, 1)
			} else {
				out = append(out, 0)
			}
		}
	}
	return out
}

// mapping returns the permutation sending from[i] to to[i].
func mapping(from, to []int) perm.Permutation {
	p := make(perm.Permutation, len(from))
	for i, v := range from {
		p[v] = to[i]
	}
	return p
}

// positions inverts a vertex order into a vertex-to-position map.
func positions(order []int) perm.Permutation {
	p := make(perm.Permutation, len(order))
	for i, v := range order {
		p[v] = i
	}
	return p
}
