// Package orbit groups the vertices of a partial graph into candidate orbits.
//
// The generator in package degseq asks a [Partitioner] where to continue
// after each saturation step. A partitioner need not find true automorphism
// orbits; it only has to return a partition at least as fine as "same current
// degree and same target degree", with cells ordered by their smallest
// vertex. Finer partitions are cheaper for the generator to walk but cost
// more to compute, so two strategies are offered:
//
//   - [Signature] compares each vertex's degree, residual and the sorted
//     degrees of its neighbours.
//   - [Morgan] iterates extended connectivity values, Morgan style, until the
//     number of classes stops growing.
//
// Both are stateless and safe for concurrent use.
package orbit

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/partition"
)

// ErrUnknownPartitioner is returned by [ByName] for an unrecognized name.
var ErrUnknownPartitioner = errors.New("unknown partitioner")

// Partitioner computes candidate orbits of a partial graph.
//
// residual[v] is the number of edges vertex v still needs. Every returned
// cell must be homogeneous in both g.Degree(v) and residual[v], and cells must
// be ordered by their smallest vertex.
type Partitioner interface {
	Orbits(g *graph.Graph, residual []int) partition.Partition
}

const (
	// NameSignature selects [Signature].
	NameSignature = "signature"
	// NameMorgan selects [Morgan].
	NameMorgan = "morgan"
)

// Names lists the names accepted by [ByName].
func Names() []string { return []string{NameSignature, NameMorgan} }

// ByName returns the partitioner registered under name. The empty name
// selects [Signature].
func ByName(name string) (Partitioner, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameSignature:
		return Signature{}, nil
	case NameMorgan:
		return Morgan{}, nil
	}
	return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownPartitioner, name, strings.Join(Names(), ", "))
}

// NameOf returns the name [ByName] accepts for p, or its Go type for
// partitioners defined elsewhere.
func NameOf(p Partitioner) string {
	switch p.(type) {
	case Signature, *Signature:
		return NameSignature
	case Morgan, *Morgan:
		return NameMorgan
	}
	return fmt.Sprintf("%T", p)
}

// Signature groups vertices by residual, degree and the sorted multiset of
// neighbour degrees.
type Signature struct{}

// Orbits implements [Partitioner].
func (Signature) Orbits(g *graph.Graph, residual []int) partition.Partition {
	return classify(len(residual), func(v int) []int {
		key := []int{residual[v], g.Degree(v)}
		var nbrs []int
		for w := range g.Neighbors(v) {
			nbrs = append(nbrs, g.Degree(w))
		}
		slices.Sort(nbrs)
		return append(key, nbrs...)
	})
}

// Morgan refines the (residual, degree) classes by extended connectivity: in
// each round a vertex's new class is determined by its old class and the
// sorted classes of its neighbours. Rounds stop once the class count no
// longer grows.
type Morgan struct{}

// Orbits implements [Partitioner].
func (Morgan) Orbits(g *graph.Graph, residual []int) partition.Partition {
	n := len(residual)
	class := classIDs(n, func(v int) []int {
		return []int{residual[v], g.Degree(v)}
	})
	count := distinct(class)
	for {
		prev := class
		next := classIDs(n, func(v int) []int {
			key := []int{prev[v]}
			var nbrs []int
			for w := range g.Neighbors(v) {
				nbrs = append(nbrs, prev[w])
			}
			slices.Sort(nbrs)
			return append(key, nbrs...)
		})
		c := distinct(next)
		if c == count {
			break
		}
		class, count = next, c
	}
	return classify(n, func(v int) []int { return []int{class[v]} })
}

// classify puts vertices with equal keys into one cell. Cells appear in
// order of their smallest vertex.
func classify(n int, key func(v int) []int) partition.Partition {
	var p partition.Partition
	index := make(map[string]int)
	for v := range n {
		k := encode(key(v))
		if i, ok := index[k]; ok {
			p.AddToCell(i, v)
			continue
		}
		index[k] = p.Size()
		p.AddSingletonCell(v)
	}
	return p
}

// classIDs numbers the distinct keys in order of first appearance.
func classIDs(n int, key func(v int) []int) []int {
	ids := make([]int, n)
	index := make(map[string]int)
	for v := range n {
		k := encode(key(v))
		id, ok := index[k]
		if !ok {
			id = len(index)
			index[k] = id
		}
		ids[v] = id
	}
	return ids
}

func distinct(ids []int) int {
	seen := make(map[int]bool)
	for _, id := range ids {
		seen[id] = true
	}
	return len(seen)
}

func encode(key []int) string {
	var b strings.Builder
	for i, x := range key {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}
