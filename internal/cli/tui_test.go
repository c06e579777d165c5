package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/orbitgen/pkg/graph"
)

func testGraphs(t *testing.T, texts ...string) []*graph.Graph {
	t.Helper()
	out := make([]*graph.Graph, len(texts))
	for i, s := range texts {
		g, err := graph.Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = g
	}
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m GraphListModel, keys ...string) (GraphListModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(GraphListModel)
	}
	return m, cmd
}

func TestGraphListNavigation(t *testing.T) {
	graphs := testGraphs(t, "0:1,1:2", "0:1,0:2,1:2", "0:1,2:3", "0:1,0:2,0:3")
	m := NewGraphListModel(graphs)
	m.Height = 2

	tests := []struct {
		keys       []string
		cursor     int
		offset     int
		wantSelect bool
	}{
		{[]string{"down"}, 1, 0, false},
		{[]string{"down", "down"}, 2, 1, false},
		{[]string{"down", "down", "down", "down", "down"}, 3, 2, false},
		{[]string{"up"}, 0, 0, false},
		{[]string{"j", "j", "k"}, 1, 0, false},
		{[]string{"G"}, 3, 2, false},
		{[]string{"G", "g"}, 0, 0, false},
		{[]string{"down", "enter"}, 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.keys, ","), func(t *testing.T) {
			got, _ := press(m, tt.keys...)
			if got.Cursor != tt.cursor || got.Offset != tt.offset {
				t.Errorf("cursor, offset = %d, %d, want %d, %d", got.Cursor, got.Offset, tt.cursor, tt.offset)
			}
			if (got.Selected != nil) != tt.wantSelect {
				t.Errorf("selected = %v, want selection %v", got.Selected, tt.wantSelect)
			}
			if tt.wantSelect && got.Selected != graphs[tt.cursor] {
				t.Errorf("selected %s, want %s", got.Selected, graphs[tt.cursor])
			}
		})
	}
}

func TestGraphListQuit(t *testing.T) {
	m := NewGraphListModel(testGraphs(t, "0:1"))
	for _, k := range []string{"q", "enter"} {
		_, cmd := press(m, k)
		if cmd == nil {
			t.Errorf("%q should quit", k)
			continue
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q did not return tea.Quit", k)
		}
	}
}

func TestGraphListEmpty(t *testing.T) {
	m, cmd := press(NewGraphListModel(nil), "down", "enter")
	if m.Selected != nil || cmd != nil {
		t.Error("empty list should ignore enter")
	}
	if !strings.Contains(m.View(), "[1/0]") {
		t.Errorf("empty view:\n%s", m.View())
	}
}

func TestGraphListView(t *testing.T) {
	m := NewGraphListModel(testGraphs(t, "0:1,1:2", "0:1,0:2,1:2"))
	view := m.View()
	for _, want := range []string{"Generated Graphs", "Edges", "0:1,0:2,1:2", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestGraphListWindowResize(t *testing.T) {
	m := NewGraphListModel(testGraphs(t, "0:1"))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	if got := next.(GraphListModel).Height; got != 5 {
		t.Errorf("Height = %d, want 5", got)
	}
}
