package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/orbitgen/pkg/graph"
	"github.com/matzehuels/orbitgen/pkg/pipeline"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// GraphListModel - Interactive result browser
// =============================================================================

// GraphListModel is the bubbletea model for browsing generated graphs.
// Pressing enter selects the graph under the cursor and quits.
type GraphListModel struct {
	Graphs   []*graph.Graph
	Cursor   int
	Selected *graph.Graph
	Height   int
	Offset   int
}

// NewGraphListModel creates a new graph list model.
func NewGraphListModel(graphs []*graph.Graph) GraphListModel {
	return GraphListModel{Graphs: graphs, Height: 15}
}

func (m GraphListModel) Init() tea.Cmd {
	return nil
}

func (m GraphListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Graphs)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(len(m.Graphs)-1, 0)
			m.Offset = max(m.Cursor-m.Height+1, 0)
		case "enter":
			if len(m.Graphs) == 0 {
				return m, nil
			}
			m.Selected = m.Graphs[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m GraphListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Generated Graphs"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ inspect  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Graphs))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		g := m.Graphs[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(i + 1),
			strconv.Itoa(g.EdgeCount()),
			g.String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Edges", "Graph").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 1 || col == 2 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Graphs))))

	return b.String()
}

// browse opens the result list and prints the automorphism analysis of the
// graph picked by the user.
func (c *CLI) browse(ctx context.Context, runner *pipeline.Runner, graphs []*graph.Graph) error {
	if len(graphs) == 0 {
		printInfo("No graphs to browse")
		return nil
	}
	final, err := tea.NewProgram(NewGraphListModel(graphs), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("interactive list: %w", err)
	}
	m, ok := final.(GraphListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	a, err := runner.Analyze(ctx, m.Selected)
	if err != nil {
		return err
	}
	printAnalysis(os.Stdout, a)
	return nil
}
