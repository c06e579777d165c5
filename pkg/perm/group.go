package perm

import (
	"fmt"
	"iter"
	"math/big"
)

// Group is a permutation group on [0, n) held as a Sims table.
//
// Level k of the table stores, for every point j in the orbit of k under the
// pointwise stabilizer of {0, ..., k-1}, one representative that fixes
// 0, ..., k-1 and maps k to j. Every element factors uniquely as a product of
// one representative per level, which gives order and membership without
// enumerating elements.
//
// Generators are added with [Group.Enter] using Knuth's incremental
// Schreier-Sims scheme. Group is not safe for concurrent use.
type Group struct {
	n      int
	table  [][]Permutation // table[k][j] fixes 0..k-1 and maps k to j
	strong [][]Permutation // strong generators stored at each level
	gens   []Permutation   // generators passed to Enter that enlarged the group
}

// NewGroup returns the trivial group on [0, n).
func NewGroup(n int) *Group {
	g := &Group{
		n:      n,
		table:  make([][]Permutation, n),
		strong: make([][]Permutation, n),
	}
	id := Identity(n)
	for k := range g.table {
		g.table[k] = make([]Permutation, n)
		g.table[k][k] = id
	}
	return g
}

// Degree returns n, the number of points acted on.
func (g *Group) Degree() int { return g.n }

// Enter adds p to the generating set. It reports whether the group grew; a
// permutation that is already a member is ignored. It panics if p is not a
// permutation of [0, n).
func (g *Group) Enter(p Permutation) bool {
	if len(p) != g.n || !p.Valid() {
		panic(fmt.Sprintf("perm: %v is not a permutation of degree %d", p, g.n))
	}
	if g.Contains(p) {
		return false
	}
	g.gens = append(g.gens, p.Clone())
	g.add(0, p.Clone())
	return true
}

// add inserts p, which fixes 0..k-1, into level k.
func (g *Group) add(k int, p Permutation) {
	if k >= g.n || g.sift(k, p) {
		return
	}
	g.strong[k] = append(g.strong[k], p)
	for _, u := range g.table[k] {
		if u != nil {
			g.extend(k, Compose(p, u))
		}
	}
}

// extend records p as an orbit representative at level k or pushes the
// resulting Schreier generator one level down.
func (g *Group) extend(k int, p Permutation) {
	j := p[k]
	if u := g.table[k][j]; u != nil {
		g.add(k+1, Compose(u.Inverse(), p))
		return
	}
	g.table[k][j] = p
	for _, s := range g.strong[k] {
		g.extend(k, Compose(s, p))
	}
}

// sift reports whether p, which fixes 0..k-1, factors through levels k..n-1.
func (g *Group) sift(k int, p Permutation) bool {
	for i := k; i < g.n; i++ {
		u := g.table[i][p[i]]
		if u == nil {
			return false
		}
		p = Compose(u.Inverse(), p)
	}
	return true
}

// Contains reports whether p is an element of the group.
func (g *Group) Contains(p Permutation) bool {
	if len(p) != g.n {
		return false
	}
	return g.sift(0, p)
}

// Order returns the number of elements.
func (g *Group) Order() *big.Int {
	order := big.NewInt(1)
	for _, level := range g.table {
		count := 0
		for _, u := range level {
			if u != nil {
				count++
			}
		}
		order.Mul(order, big.NewInt(int64(count)))
	}
	return order
}

// IsTrivial reports whether the group holds only the identity.
func (g *Group) IsTrivial() bool { return len(g.gens) == 0 }

// Generators returns the permutations that enlarged the group when entered.
func (g *Group) Generators() []Permutation {
	out := make([]Permutation, len(g.gens))
	for i, p := range g.gens {
		out[i] = p.Clone()
	}
	return out
}

// Orbits returns the orbits of the group on [0, n), each ascending, ordered by
// smallest point.
func (g *Group) Orbits() [][]int {
	return OrbitsOf(g.n, g.gens)
}

// Elements yields every element once. The number of elements is [Group.Order],
// so this is only practical for small groups.
func (g *Group) Elements() iter.Seq[Permutation] {
	return func(yield func(Permutation) bool) {
		g.walk(0, Identity(g.n), yield)
	}
}

func (g *Group) walk(k int, acc Permutation, yield func(Permutation) bool) bool {
	if k == g.n {
		return yield(acc)
	}
	for _, u := range g.table[k] {
		if u == nil {
			continue
		}
		if !g.walk(k+1, Compose(acc, u), yield) {
			return false
		}
	}
	return true
}

// OrbitsOf returns the orbits of the group generated by gens on [0, n), each
// ascending and ordered by smallest point.
func OrbitsOf(n int, gens []Permutation) [][]int {
	parent := Identity(n)
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, p := range gens {
		for i, j := range p {
			a, b := find(i), find(j)
			if a == b {
				continue
			}
			if a < b {
				parent[b] = a
			} else {
				parent[a] = b
			}
		}
	}
	index := make(map[int]int)
	var out [][]int
	for x := range n {
		r := find(x)
		i, ok := index[r]
		if !ok {
			i = len(out)
			index[r] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], x)
	}
	return out
}
