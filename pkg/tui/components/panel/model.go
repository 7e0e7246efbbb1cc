// Package panel renders framed blocks with a title and body lines.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/memories/pkg/tui/theme"
)

// Model renders a framed panel with a title and body lines.
type Model struct {
	title   string
	lines   []string
	width   int
	focused bool
	th      theme.PanelTheme
}

// New returns an empty panel.
func New(th theme.PanelTheme) Model {
	return Model{th: th}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines ...string) {
	m.title = title
	m.lines = lines
}

// SetWidth sets the outer width; 0 sizes to content.
func (m *Model) SetWidth(w int) { m.width = w }

// SetFocused highlights the frame.
func (m *Model) SetFocused(f bool) { m.focused = f }

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.th.Title.Render(m.title))
	}
	for _, line := range m.lines {
		content = append(content, m.th.Body.Render(line))
	}
	frame := m.th.Frame
	if m.focused {
		frame = m.th.Focused
	}
	if m.width > 0 {
		frame = frame.Width(m.width - frame.GetHorizontalBorderSize())
	}
	view := frame.Render(strings.Join(content, "\n"))
	return view, lipgloss.Height(view)
}
