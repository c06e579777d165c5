// Package partition provides ordered partitions of a vertex range into cells.
//
// A partition is used in two roles: as the static grouping of a degree
// sequence into equal-degree cells (orbits), and as a colouring refined by the
// search in package refine. In both roles the cells are pairwise disjoint and
// together cover every vertex exactly once.
package partition

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrNotAPartition is returned by [Partition.Validate] when the cells do not
// cover the vertex range exactly once.
var ErrNotAPartition = errors.New("cells do not partition the vertex range")

// Partition is an ordered list of cells, each an ascending set of vertices.
//
// The zero value is an empty partition ready to use.
type Partition struct {
	cells [][]int
}

// New builds a partition from the given cells. Each cell is copied and sorted.
func New(cells ...[]int) Partition {
	p := Partition{cells: make([][]int, 0, len(cells))}
	for _, c := range cells {
		c = slices.Clone(c)
		slices.Sort(c)
		p.cells = append(p.cells, c)
	}
	return p
}

// Unit returns the partition of [0, n) into a single cell.
func Unit(n int) Partition {
	cell := make([]int, n)
	for i := range cell {
		cell[i] = i
	}
	return Partition{cells: [][]int{cell}}
}

// Discrete returns the partition of [0, n) into singleton cells in index order.
func Discrete(n int) Partition {
	p := Partition{cells: make([][]int, n)}
	for i := range p.cells {
		p.cells[i] = []int{i}
	}
	return p
}

// FromDegrees groups positions of a monotone sequence into cells of equal
// value. Adjacent equal values share a cell; a change of value starts a new
// one.
//
// The sequence must already be sorted. Unsorted input is not detected and
// produces cells that are not degree classes.
func FromDegrees(seq []int) Partition {
	var p Partition
	for i, d := range seq {
		if i == 0 || d != seq[i-1] {
			p.AddSingletonCell(i)
		} else {
			p.AddToCell(p.Size()-1, i)
		}
	}
	return p
}

// Size returns the number of cells.
func (p Partition) Size() int { return len(p.cells) }

// Order returns the number of vertices covered by all cells.
func (p Partition) Order() int {
	n := 0
	for _, c := range p.cells {
		n += len(c)
	}
	return n
}

// Cell returns a copy of cell i.
func (p Partition) Cell(i int) []int { return slices.Clone(p.cells[i]) }

// Cells returns a copy of every cell.
func (p Partition) Cells() [][]int {
	out := make([][]int, len(p.cells))
	for i, c := range p.cells {
		out[i] = slices.Clone(c)
	}
	return out
}

// First returns the smallest vertex of cell i, or -1 if the cell is empty.
func (p Partition) First(i int) int {
	if len(p.cells[i]) == 0 {
		return -1
	}
	return p.cells[i][0]
}

// CellOf returns the index of the cell containing v, or -1.
func (p Partition) CellOf(v int) int {
	for i, c := range p.cells {
		if _, ok := slices.BinarySearch(c, v); ok {
			return i
		}
	}
	return -1
}

// AddSingletonCell appends the cell {v}.
func (p *Partition) AddSingletonCell(v int) {
	p.cells = append(p.cells, []int{v})
}

// AddToCell inserts v into cell i, keeping the cell ascending.
func (p *Partition) AddToCell(i, v int) {
	c := p.cells[i]
	at, found := slices.BinarySearch(c, v)
	if !found {
		p.cells[i] = slices.Insert(c, at, v)
	}
}

// Pop removes and returns the smallest vertex of cell i. It returns false when
// the cell is empty. The partition is modified in place.
func (p *Partition) Pop(i int) (int, bool) {
	c := p.cells[i]
	if len(c) == 0 {
		return 0, false
	}
	v := c[0]
	p.cells[i] = c[1:]
	return v, true
}

// IsDiscrete reports whether every cell is a singleton.
func (p Partition) IsDiscrete() bool {
	for _, c := range p.cells {
		if len(c) != 1 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (p Partition) Clone() Partition {
	return Partition{cells: p.Cells()}
}

// Validate checks that the cells cover [0, n) exactly once.
func (p Partition) Validate(n int) error {
	seen := make([]bool, n)
	count := 0
	for i, c := range p.cells {
		for _, v := range c {
			if v < 0 || v >= n {
				return fmt.Errorf("%w: vertex %d in cell %d outside [0,%d)", ErrNotAPartition, v, i, n)
			}
			if seen[v] {
				return fmt.Errorf("%w: vertex %d repeated", ErrNotAPartition, v)
			}
			seen[v] = true
			count++
		}
	}
	if count != n {
		return fmt.Errorf("%w: %d of %d vertices covered", ErrNotAPartition, count, n)
	}
	return nil
}

// Equal reports whether p and q have identical cells in identical order.
func (p Partition) Equal(q Partition) bool {
	return slices.EqualFunc(p.cells, q.cells, slices.Equal[[]int])
}

// String renders the partition as "[0,1|2|3,4]".
func (p Partition) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range p.cells {
		if i > 0 {
			b.WriteByte('|')
		}
		for j, v := range c {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(v))
		}
	}
	b.WriteByte(']')
	return b.String()
}
