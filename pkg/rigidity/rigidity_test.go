package rigidity

import (
	"testing"

	"github.com/matzehuels/orbitgen/pkg/graph"
)

func TestIsRigid(t *testing.T) {
	tests := []struct {
		name  string
		graph string
		want  bool
	}{
		{"single vertex", "", true},
		{"edge", "0:1", false},
		{"path", "0:1,1:2", false},
		{"smallest asymmetric tree", "0:1,1:2,2:3,3:4,4:5,2:6", true},
		{"asymmetric six", "0:1,1:2,2:3,3:4,2:5,3:5", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.MustParse(tt.graph)
			if g.VertexCount() == 0 {
				g = graph.New(1)
			}
			got, err := IsRigid(g)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("IsRigid(%s) = %v, want %v", g, got, tt.want)
			}
		})
	}
}

func TestUniqueMaxVertex(t *testing.T) {
	tests := []struct {
		graph string
		want  int
	}{
		{"0:1,0:2,0:3", 0},
		{"0:1,1:2,1:3", 1},
		{"0:1,1:2", 1},
		{"0:1,1:2,2:3", -1},
		{"0:1,1:2,0:2", -1},
		// A later, larger degree wins after an earlier tie.
		{"0:4,1:4,2:3,3:5,3:6,3:7", 3},
	}
	for _, tt := range tests {
		if got := UniqueMaxVertex(graph.MustParse(tt.graph)); got != tt.want {
			t.Errorf("UniqueMaxVertex(%s) = %d, want %d", tt.graph, got, tt.want)
		}
	}
	if UniqueMaxVertex(graph.New(0)) != -1 {
		t.Error("empty graph has no maximum vertex")
	}
}

func TestIsEasy(t *testing.T) {
	tests := []struct {
		name  string
		graph string
		want  bool
	}{
		{"star has universal vertex", "0:1,0:2,0:3", true},
		{"square has tie", "0:1,1:2,2:3,0:3", false},
		// Removing the hub of degree four leaves an asymmetric tree.
		{"hub over asymmetric tree", "7:0,7:4,7:5,7:6,0:1,1:2,2:3,3:4,4:5,2:6", true},
		{"tied maximum", "7:0,7:5,7:6,0:1,1:2,2:3,3:4,4:5,2:6", false},
		// Removing vertex 0 leaves the path 1-2-3, which is symmetric.
		{"hub over path", "0:1,0:3,1:2,2:3,0:4", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsEasy(graph.MustParse(tt.graph))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("IsEasy = %v, want %v", got, tt.want)
			}
		})
	}
}
