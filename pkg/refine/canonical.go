package refine

import (
	"fmt"
	"slices"

	"github.com/matzehuels/orbitgen/pkg/partition"
	"github.com/matzehuels/orbitgen/pkg/perm"
)

// IsCanonical reports whether the bound graph, in its current labelling, has
// the lexicographically greatest adjacency code among all relabellings that
// keep every cell of p in place. Only the first rows rows of the code take
// part in the comparison: with rows equal to the vertex count the answer is
// exact canonicity, and with fewer rows it is the prefix test used while
// those rows are final and later edges may still be added below them.
//
// The cells of p must be contiguous runs of vertex indices listed in
// ascending order, such as the equal-degree classes of a sorted degree
// sequence. Anything else yields [ErrPartitionMismatch].
//
// The search places one vertex per position. At position i it tries each
// vertex of the cell covering i, computes the largest row i that vertex can
// produce given the positions already fixed, and compares it with row i of
// the current labelling. A larger row settles the query as not canonical, a
// smaller one abandons the branch, and a tie splits the remaining cells into
// neighbours then non-neighbours of the placed vertex and descends.
func (r *Refiner) IsCanonical(p partition.Partition, rows int) (bool, error) {
	if err := r.checkContiguous(p); err != nil {
		return false, err
	}
	if rows < 0 || rows > r.n {
		return false, fmt.Errorf("%w: %d rows for %d vertices", ErrRowBound, rows, r.n)
	}
	s := &canonSearch{r: r, rows: rows, full: rows == r.n}
	better, err := s.visit(nonEmpty(p.Cells()), 0)
	if err != nil {
		return false, err
	}
	return !better, nil
}

func (r *Refiner) checkContiguous(p partition.Partition) error {
	if err := r.check(p); err != nil {
		return err
	}
	next := 0
	for i, c := range p.Cells() {
		for _, v := range c {
			if v != next {
				return fmt.Errorf("%w: cell %d is not the position block starting at %d", ErrPartitionMismatch, i, next)
			}
			next++
		}
	}
	return nil
}

type canonSearch struct {
	r    *Refiner
	rows int

	// full is set for exact queries. Every tie reaching the last row is then
	// an automorphism, which prunes siblings at shallower levels.
	full bool
	auts []perm.Permutation
}

// visit explores placements for position i. The first i cells are the
// singletons already placed. It reports whether a relabelling with a larger
// code prefix exists below this node.
func (s *canonSearch) visit(cells [][]int, i int) (bool, error) {
	if i == s.rows {
		if s.full {
			s.recordAutomorphism(cells)
		}
		return false, nil
	}
	if i >= len(cells) {
		return false, fmt.Errorf("%w: no cell covers position %d", ErrInconsistent, i)
	}
	for j := range i {
		if len(cells[j]) != 1 {
			return false, fmt.Errorf("%w: position %d unplaced at level %d", ErrInconsistent, j, i)
		}
	}
	var explored []int
	for _, a := range cells[i] {
		if s.full && s.sameOrbit(cells[:i], explored, a) {
			continue
		}
		next := individualize(cells, i, a)
		switch s.compareRow(next, i, a) {
		case 1:
			return true, nil
		case -1:
			explored = append(explored, a)
			continue
		}
		better, err := s.visit(s.split(next, i, a), i+1)
		if err != nil || better {
			return better, err
		}
		explored = append(explored, a)
	}
	return false, nil
}

// compareRow compares the best row i obtainable by placing a at position i
// with row i of the current labelling. Within each later cell the best row
// puts a's neighbours first.
func (s *canonSearch) compareRow(cells [][]int, i, a int) int {
	pos := i + 1
	for _, c := range cells[i+1:] {
		ones := 0
		for _, w := range c {
			if s.r.adjacent(a, w) {
				ones++
			}
		}
		for t := range c {
			want := t < ones
			have := s.r.adjacent(i, pos)
			if want != have {
				if want {
					return 1
				}
				return -1
			}
			pos++
		}
	}
	return 0
}

// split divides every cell after position i into the neighbours of a followed
// by its non-neighbours, dropping empty parts.
func (s *canonSearch) split(cells [][]int, i, a int) [][]int {
	out := make([][]int, 0, 2*len(cells))
	out = append(out, cells[:i+1]...)
	for _, c := range cells[i+1:] {
		var nbrs, others []int
		for _, w := range c {
			if s.r.adjacent(a, w) {
				nbrs = append(nbrs, w)
			} else {
				others = append(others, w)
			}
		}
		if len(nbrs) > 0 {
			out = append(out, nbrs)
		}
		if len(others) > 0 {
			out = append(out, others)
		}
	}
	return out
}

// recordAutomorphism stores the relabelling of a complete tie. Placing
// cells[j] at position j reproduces every row, so vertex j maps to cells[j][0].
func (s *canonSearch) recordAutomorphism(cells [][]int) {
	p := make(perm.Permutation, len(cells))
	for j, c := range cells {
		p[j] = c[0]
	}
	if !p.IsIdentity() {
		s.auts = append(s.auts, p)
	}
}

// sameOrbit reports whether a lies in the orbit of an explored sibling under
// the recorded automorphisms that fix every placed vertex.
func (s *canonSearch) sameOrbit(placed [][]int, explored []int, a int) bool {
	if len(explored) == 0 || len(s.auts) == 0 {
		return false
	}
	fixed := make([]int, len(placed))
	for j, c := range placed {
		fixed[j] = c[0]
	}
	var gens []perm.Permutation
	for _, g := range s.auts {
		if g.Fixes(fixed...) {
			gens = append(gens, g)
		}
	}
	if len(gens) == 0 {
		return false
	}
	for _, orbit := range perm.OrbitsOf(s.r.n, gens) {
		if !slices.Contains(orbit, a) {
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
