// Package rigidity classifies graphs by the size of their automorphism group.
//
// A graph is rigid when its only automorphism is the identity. [IsEasy]
// recognizes a family of graphs for which a simple argument settles whether
// removing their most connected vertex leaves something rigid.
package rigidity

import (
	"fmt"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/partition"
	"github.com/matzehuels/orbitgen/pkg/refine"
)

// IsRigid reports whether g has no automorphism besides the identity.
func IsRigid(g *graph.Graph) (bool, error) {
	res, err := refine.New(g).Automorphisms(partition.Unit(g.VertexCount()))
	if err != nil {
		return false, fmt.Errorf("automorphisms of %s: %w", g, err)
	}
	return res.Group.IsTrivial(), nil
}

// UniqueMaxVertex returns the vertex of strictly greatest degree, or -1 when
// the greatest degree is shared or g has no vertices.
func UniqueMaxVertex(g *graph.Graph) int {
	best, at := -1, -1
	for v := range g.VertexCount() {
		switch d := g.Degree(v); {
		case d > best:
			best, at = d, v
		case d == best:
			at = -1
		}
	}
	return at
}

// HasUniversalVertex reports whether some vertex is adjacent to every other.
func HasUniversalVertex(g *graph.Graph) bool {
	n := g.VertexCount()
	for v := range n {
		if g.Degree(v) == n-1 {
			return true
		}
	}
	return false
}

// IsEasy reports whether g has a universal vertex, or has a unique vertex of
// maximum degree whose removal leaves a rigid graph.
func IsEasy(g *graph.Graph) (bool, error) {
	if HasUniversalVertex(g) {
		return true, nil
	}
	v := UniqueMaxVertex(g)
	if v < 0 {
		return false, nil
	}
	return IsRigid(g.RemoveVertex(v))
}
