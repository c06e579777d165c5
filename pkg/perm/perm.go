// Package perm provides permutations of [0, n) and a compact permutation group.
//
// A [Permutation] p maps i to p[i]. Composition follows function notation:
// Compose(p, q) applies q first and then p.
//
// [Group] stores a group as a Sims table (a stabilizer chain with coset
// representatives), so order and membership are answered without listing the
// elements. It is the bookkeeping the refinement engine needs for automorphism
// groups: identity tests, order, membership, and orbits of its generators.
package perm

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// Permutation maps each index i in [0, n) to p[i].
type Permutation []int

// Identity returns the identity permutation [0, 1, ..., n-1].
// For n <= 0 it returns an empty permutation.
func Identity(n int) Permutation {
	p := make(Permutation, max(n, 0))
	for i := range p {
		p[i] = i
	}
	return p
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorials grow fast: 21! already overflows int64.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// All yields every permutation of [0, n) using Heap's algorithm.
//
// The yielded slice is reused between iterations; Clone it to keep it.
// For n = 0 a single empty permutation is yielded.
func All(n int) iter.Seq[Permutation] {
	return func(yield func(Permutation) bool) {
		p := Identity(n)
		if !yield(p) || n < 2 {
			return
		}
		state := make([]int, n)
		for i := 0; i < n; {
			if state[i] < i {
				if i&1 == 0 {
					p[0], p[i] = p[i], p[0]
				} else {
					p[state[i]], p[i] = p[i], p[state[i]]
				}
				if !yield(p) {
					return
				}
				state[i]++
				i = 0
			} else {
				state[i] = 0
				i++
			}
		}
	}
}

// Compose returns p∘q, the permutation that applies q first and then p.
func Compose(p, q Permutation) Permutation {
	r := make(Permutation, len(q))
	for i, qi := range q {
		r[i] = p[qi]
	}
	return r
}

// Len returns the degree of the permutation.
func (p Permutation) Len() int { return len(p) }

// IsIdentity reports whether p fixes every point.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}
	return true
}

// Inverse returns p⁻¹.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// Clone returns a copy of p.
func (p Permutation) Clone() Permutation { return slices.Clone(p) }

// Equal reports whether p and q are the same permutation.
func (p Permutation) Equal(q Permutation) bool { return slices.Equal(p, q) }

// Fixes reports whether p fixes every point in pts.
func (p Permutation) Fixes(pts ...int) bool {
	for _, x := range pts {
		if p[x] != x {
			return false
		}
	}
	return true
}

// Valid reports whether p is a bijection of [0, len(p)).
func (p Permutation) Valid() bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Cycles returns the non-trivial cycles of p, each starting at its smallest
// point, ordered by that point.
func (p Permutation) Cycles() [][]int {
	seen := make([]bool, len(p))
	var out [][]int
	for i := range p {
		if seen[i] || p[i] == i {
			continue
		}
		var c []int
		for j := i; !seen[j]; j = p[j] {
			seen[j] = true
			c = append(c, j)
		}
		out = append(out, c)
	}
	return out
}

// CycleType returns the multiset of cycle lengths as counts: entry k-1 holds
// the number of k-cycles, fixed points included.
func (p Permutation) CycleType() []int {
	t := make([]int, len(p))
	fixed := len(p)
	for _, c := range p.Cycles() {
		t[len(c)-1]++
		fixed -= len(c)
	}
	if len(t) > 0 {
		t[0] = fixed
	}
	return t
}

// String renders p in cycle notation, e.g. "(0 1)(2 3 4)". The identity is "()".
func (p Permutation) String() string {
	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "()"
	}
	var b strings.Builder
	for _, c := range cycles {
		b.WriteByte('(')
		for j, v := range c {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.Itoa(v))
		}
		b.WriteByte(')')
	}
	return b.String()
}
