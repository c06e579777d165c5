package graph

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		n       int
		wantErr bool
	}{
		{"empty", "", "", 0, false},
		{"single edge", "0:1", "0:1", 2, false},
		{"unordered tokens", "1:2, 0:2 ,1:0", "0:1,0:2,1:2", 3, false},
		{"reversed endpoints", "3:0", "0:3", 4, false},
		{"self loop", "0:1,2:2", "", 0, true},
		{"missing endpoint", "0:", "", 0, true},
		{"garbage", "a-b", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got := g.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if g.VertexCount() != tt.n {
				t.Errorf("VertexCount() = %d, want %d", g.VertexCount(), tt.n)
			}
		})
	}
}

func TestParse_SelfLoopSentinel(t *testing.T) {
	_, err := Parse("1:1")
	if !errors.Is(err, ErrSelfLoop) {
		t.Errorf("expected ErrSelfLoop, got %v", err)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		in      string
		limit   int
		n       int
		wantErr error
	}{
		{"0:1,1:2", 3, 3, nil},
		{"0:3", 4, 4, nil},
		{"0:4", 4, 0, ErrVertexRange},
		{"0:999999999", 64, 0, ErrVertexRange},
		{"7:0,0:1", 5, 0, ErrVertexRange},
		{"0:999", 0, 1000, nil},
		{"2:2", 64, 0, ErrSelfLoop},
	}
	for _, tt := range tests {
		g, err := ParseLimit(tt.in, tt.limit)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseLimit(%q, %d) error = %v, want %v", tt.in, tt.limit, err, tt.wantErr)
			continue
		}
		if err == nil && g.VertexCount() != tt.n {
			t.Errorf("ParseLimit(%q, %d) VertexCount() = %d, want %d", tt.in, tt.limit, g.VertexCount(), tt.n)
		}
	}
}

func TestGraph_Degrees(t *testing.T) {
	g := MustParse("0:1,0:2,0:3,1:2")
	if diff := cmp.Diff([]int{3, 2, 2, 1}, g.Degrees()); diff != "" {
		t.Errorf("Degrees() mismatch (-want +got):\n%s", diff)
	}
	if g.EdgeCount() != 4 {
		t.Errorf("EdgeCount() = %d, want 4", g.EdgeCount())
	}
	if !g.HasEdge(2, 1) || g.HasEdge(1, 3) || g.HasEdge(0, 9) {
		t.Error("HasEdge reported wrong adjacency")
	}
	if g.Degree(-1) != 0 || g.Degree(7) != 0 {
		t.Error("out-of-range vertices should have degree 0")
	}

	var nbrs []int
	for w := range g.Neighbors(0) {
		nbrs = append(nbrs, w)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, nbrs); diff != "" {
		t.Errorf("Neighbors(0) mismatch (-want +got):\n%s", diff)
	}
}

func TestGraph_WithEdgeLeavesReceiver(t *testing.T) {
	g := MustParse("0:1")
	h := g.WithEdge(1, 2)

	if g.EdgeCount() != 1 || g.VertexCount() != 2 {
		t.Errorf("receiver modified: %s on %d vertices", g, g.VertexCount())
	}
	if h.String() != "0:1,1:2" {
		t.Errorf("WithEdge = %s, want 0:1,1:2", h)
	}
	if again := h.WithEdge(2, 1); again.EdgeCount() != 2 {
		t.Errorf("adding an existing edge should not duplicate it, got %s", again)
	}
}

func TestGraph_RemoveVertex(t *testing.T) {
	g := MustParse("0:1,1:2,2:3,0:3")
	h := g.RemoveVertex(1)

	if h.VertexCount() != 3 {
		t.Fatalf("VertexCount() = %d, want 3", h.VertexCount())
	}
	if got := h.String(); got != "0:2,1:2" {
		t.Errorf("RemoveVertex(1) = %s, want 0:2,1:2", got)
	}
	if g.EdgeCount() != 4 {
		t.Error("receiver modified")
	}
}

func TestGraph_Compact(t *testing.T) {
	g := FromEdges(6, NewEdge(0, 2), NewEdge(2, 4))
	h, index := g.Compact()

	if got := h.String(); got != "0:1,1:2" {
		t.Errorf("Compact() = %s, want 0:1,1:2", got)
	}
	if diff := cmp.Diff([]int{0, -1, 1, -1, 2, -1}, index); diff != "" {
		t.Errorf("index mismatch (-want +got):\n%s", diff)
	}
}

func TestGraph_Component(t *testing.T) {
	g := FromEdges(5, NewEdge(0, 1), NewEdge(1, 2), NewEdge(3, 4))

	if got := g.Component(0).OnesCount(); got != 3 {
		t.Errorf("component of 0 has %d vertices, want 3", got)
	}
	if g.Component(4).Bit(3) != 1 {
		t.Error("3 should be reachable from 4")
	}
	if g.IsConnected() {
		t.Error("graph with two components reported connected")
	}
	if !g.WithEdge(2, 3).IsConnected() {
		t.Error("bridged graph reported disconnected")
	}
	if !New(1).IsConnected() || !New(0).IsConnected() {
		t.Error("graphs on fewer than two vertices are connected")
	}
}

func TestGraph_Permute(t *testing.T) {
	g := MustParse("0:1,1:2")
	h := g.Permute([]int{2, 0, 1})

	if got := h.String(); got != "0:1,0:2" {
		t.Errorf("Permute = %s, want 0:1,0:2", got)
	}
	if !g.Permute([]int{0, 1, 2}).Equal(g) {
		t.Error("identity relabelling should give an equal graph")
	}
}

func TestGraph_JSON(t *testing.T) {
	g := MustParse("0:1,0:2,1:2")
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"n":3,"edges":[[0,1],[0,2],[1,2]]}` {
		t.Errorf("json = %s", data)
	}

	var back Graph
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(g) {
		t.Errorf("decoded %s, want %s", &back, g)
	}
}

func TestGraph_YAML(t *testing.T) {
	var g Graph
	if err := yaml.Unmarshal([]byte("n: 4\nedges: [[0, 3], [1, 3]]\n"), &g); err != nil {
		t.Fatal(err)
	}
	if g.String() != "0:3,1:3" || g.VertexCount() != 4 {
		t.Errorf("decoded %s on %d vertices", &g, g.VertexCount())
	}
}

func TestFromWire_Rejects(t *testing.T) {
	tests := []struct {
		name string
		w    Wire
	}{
		{"out of range", Wire{N: 2, Edges: [][2]int{{0, 2}}}},
		{"negative", Wire{N: 2, Edges: [][2]int{{-1, 0}}}},
		{"self loop", Wire{N: 2, Edges: [][2]int{{1, 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromWire(tt.w); err == nil {
				t.Error("expected error")
			}
		})
	}
}
