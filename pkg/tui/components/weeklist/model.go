// Package weeklist renders past weeks with a cursor.
package weeklist

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/tui/theme"
	"tableflip.dev/memories/pkg/week"
)

const (
	badgeWritten = "Escrito"
	badgePending = "Pendiente"
	heading      = "Recuerdos pasados"
)

// Model is the list of past-or-current weeks.
type Model struct {
	rows    []board.Row
	cursor  int
	offset  int
	editing week.Identity
	focused bool
	width   int
	height  int
	th      theme.WeeksTheme
}

// New returns an empty list.
func New(th theme.WeeksTheme) Model {
	return Model{th: th, width: 60}
}

// SetRows replaces the rows. The cursor stays on the same week when it is
// still listed.
func (m *Model) SetRows(rows []board.Row) {
	var keep week.Identity
	if r, ok := m.Selected(); ok {
		keep = r.Week
	}
	m.rows = rows
	m.cursor = 0
	for i, r := range rows {
		if r.Week.Equal(keep) {
			m.cursor = i
			break
		}
	}
	m.ensureVisible()
}

func (m *Model) Rows() []board.Row { return m.rows }

// SetEditing marks the week in edit mode; a zero week clears it.
func (m *Model) SetEditing(w week.Identity) { m.editing = w }

func (m *Model) SetFocused(f bool) { m.focused = f }

// SetSize bounds the rendered list. A zero height shows every row.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

func (m *Model) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
	m.ensureVisible()
}

func (m *Model) Down() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
	m.ensureVisible()
}

func (m *Model) Top() {
	m.cursor = 0
	m.ensureVisible()
}

func (m *Model) Bottom() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
	}
	m.ensureVisible()
}

// Selected returns the row under the cursor.
func (m *Model) Selected() (board.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return board.Row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *Model) ensureVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.height <= 0 {
		return
	}
	// One line goes to the heading.
	for m.offset < m.cursor && m.span(m.offset, m.cursor) > m.height-1 {
		m.offset++
	}
}

func (m *Model) span(from, to int) int {
	n := 0
	for i := from; i <= to && i < len(m.rows); i++ {
		n += lipgloss.Height(m.renderRow(i))
	}
	return n
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]

	cursor := "  "
	if i == m.cursor && m.focused {
		cursor = m.th.Cursor.Render("› ")
	}

	date := m.th.Date.Render("Semana de " + r.Week.String())
	if r.Current {
		date = m.th.Current.Render("Semana de " + r.Week.String())
	}

	var badge string
	switch {
	case r.Status == authority.Written:
		badge = m.th.Written.Render(badgeWritten)
	case !m.editing.IsZero() && r.Week.Equal(m.editing):
		badge = m.th.Editable.Render("Editando")
	case r.Editable:
		badge = m.th.Editable.Render(badgePending)
	default:
		badge = m.th.Pending.Render(badgePending)
	}

	line := cursor + date + "  " + badge
	if r.Author != "" {
		line += "  " + m.th.Author.Render(r.Author)
	}
	if r.Status != authority.Written || r.Text == "" {
		return line
	}
	width := m.width - 4
	if width < 10 {
		width = 10
	}
	text := indent.String(wordwrap.String(r.Text, width), 4)
	return line + "\n" + m.th.Text.Render(text)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.th.Heading.Render(heading))
	if len(m.rows) == 0 {
		b.WriteString("\n  ninguno")
		return b.String()
	}
	used := 1
	for i := m.offset; i < len(m.rows); i++ {
		block := m.renderRow(i)
		h := lipgloss.Height(block)
		if m.height > 0 && used+h > m.height && i > m.offset {
			break
		}
		b.WriteString("\n")
		b.WriteString(block)
		used += h
	}
	return b.String()
}
