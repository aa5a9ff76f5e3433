package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"starflow/internal/scene"
)

var (
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a9e"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#b38bff"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	nodeStyle    = lipgloss.NewStyle().Bold(true)
)

func (m Model) View() string {
	if m.help {
		return m.helpView()
	}

	renderWidth := m.width
	if renderWidth < 1 {
		renderWidth = 1
	}
	renderHeight := m.canvasHeight()

	g := newCellGrid(renderWidth, renderHeight)
	styles := make([]lipgloss.Style, 0, len(m.sc.Flows)+len(m.sc.Nodes))

	// Flows first, nodes on top, cursor last — same layering as the PNG.
	for i, points := range m.flowPaths() {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.sc.Flows[i].Color))
		if i == m.selectedFlow {
			style = style.Bold(true).Underline(true)
		}
		styles = append(styles, style)
		g.plotPath(points, i, m.panX, m.panY)
	}

	for _, n := range m.sc.Nodes {
		color := len(styles)
		styles = append(styles, nodeStyle.Copy().Foreground(lipgloss.Color(scene.DefaultColor(n.Element))))

		x := int(n.Pos.X) - m.panX
		y := int(n.Pos.Y) - m.panY
		glyph := '◉'
		if n.ID == m.flowFromNode {
			glyph = '◎'
		}
		g.set(x, y, glyph, color)
		for i, r := range n.Name {
			g.set(x+2+i, y, r, color)
		}
	}

	g.set(m.cursorX, m.cursorY, '█', -1)

	var result strings.Builder
	for y := 0; y < renderHeight; y++ {
		result.WriteString(renderRow(g, y, styles))
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine(renderWidth))
	return result.String()
}

// renderRow groups runs of equally-colored cells so each lipgloss style is
// applied once per run instead of once per cell.
func renderRow(g *cellGrid, y int, styles []lipgloss.Style) string {
	var row strings.Builder
	var run []rune
	runColor := -1

	flush := func() {
		if len(run) == 0 {
			return
		}
		if runColor >= 0 && runColor < len(styles) {
			row.WriteString(styles[runColor].Render(string(run)))
		} else {
			row.WriteString(string(run))
		}
		run = run[:0]
	}

	for x := 0; x < g.width; x++ {
		color := g.colors[y][x]
		if color != runColor {
			flush()
			runColor = color
		}
		run = append(run, g.runes[y][x])
	}
	flush()
	return row.String()
}

func (m Model) statusLine(width int) string {
	switch m.mode {
	case ModeNameInput:
		return messageStyle.Render("Node name: "+m.nameInput) + "█"
	case ModeConfirmDelete:
		return errorStyle.Render("Delete selected flow? (y/n)")
	}

	if m.errorMessage != "" {
		return errorStyle.Render(m.errorMessage)
	}

	left := "n:node f:flow tab:select s:style +/-:strength a:anim w:save e:export y:yank ?:help q:quit"
	if m.statusMessage != "" {
		left = m.statusMessage
	}

	animState := "paused"
	if m.animating {
		animState = "running"
	}
	right := fmt.Sprintf(" [%s φ=%.2f]", animState, m.offset)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return messageStyle.Render(left)
	}
	return messageStyle.Render(left) + strings.Repeat(" ", gap) + statusStyle.Render(right)
}

func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString("starflow — energy flow canvas\n")
	b.WriteString(strings.Repeat("─", 40) + "\n\n")
	b.WriteString("  arrows/hjkl   move cursor\n")
	b.WriteString("  HJKL          pan canvas\n")
	b.WriteString("  n             add node at cursor\n")
	b.WriteString("  f             start/finish a flow between nodes\n")
	b.WriteString("  tab           cycle flow selection\n")
	b.WriteString("  s             cycle flow style (line/arc/wave)\n")
	b.WriteString("  + / -         adjust flow strength\n")
	b.WriteString("  d             delete selected flow\n")
	b.WriteString("  u / ctrl+r    undo / redo\n")
	b.WriteString("  a             toggle wave animation\n")
	b.WriteString("  enter/click   activate a flow\n")
	b.WriteString("  y             copy flow summary to clipboard\n")
	b.WriteString("  w             save scene\n")
	b.WriteString("  e             export PNG\n")
	b.WriteString("  q             quit\n\n")
	b.WriteString("press ? to close help")
	return b.String()
}
