package graph

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Wire is the serialized form of a [Graph] used for JSON, YAML, caching and
// API responses.
//
//	{"n": 3, "edges": [[0, 1], [0, 2], [1, 2]]}
type Wire struct {
	N     int      `json:"n" yaml:"n"`
	Edges [][2]int `json:"edges" yaml:"edges,flow"`
}

// ToWire converts g to its serialized form with sorted edges.
func ToWire(g *Graph) Wire {
	w := Wire{N: g.VertexCount(), Edges: make([][2]int, 0, g.EdgeCount())}
	for _, e := range g.SortedEdges() {
		w.Edges = append(w.Edges, [2]int{e.A, e.B})
	}
	return w
}

// FromWire rebuilds a graph, rejecting endpoints outside [0, N) and self-loops.
func FromWire(w Wire) (*Graph, error) {
	g := New(w.N)
	for _, e := range w.Edges {
		a, b := e[0], e[1]
		if a < 0 || b < 0 || a >= w.N || b >= w.N {
			return nil, fmt.Errorf("edge %d:%d outside vertex range [0,%d)", a, b, w.N)
		}
		if a == b {
			return nil, fmt.Errorf("edge %d:%d: %w", a, b, ErrSelfLoop)
		}
		g.AddEdge(a, b)
	}
	return g, nil
}

// MarshalJSON implements json.Marshaler.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToWire(g))
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var w Wire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	h, err := FromWire(w)
	if err != nil {
		return err
	}
	*g = *h
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (g *Graph) MarshalYAML() (any, error) {
	return ToWire(g), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Graph) UnmarshalYAML(node *yaml.Node) error {
	var w Wire
	if err := node.Decode(&w); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	h, err := FromWire(w)
	if err != nil {
		return err
	}
	*g = *h
	return nil
}
