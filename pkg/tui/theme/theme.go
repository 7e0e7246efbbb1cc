package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the weeks screen.
type Theme struct {
	Title  lipgloss.Style
	Footer FooterTheme
	Panel  PanelTheme
	Weeks  WeeksTheme
	Banner lipgloss.Style
	Toast  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
}

// WeeksTheme styles the past weeks list.
type WeeksTheme struct {
	Heading  lipgloss.Style
	Cursor   lipgloss.Style
	Date     lipgloss.Style
	Current  lipgloss.Style
	Written  lipgloss.Style
	Pending  lipgloss.Style
	Editable lipgloss.Style
	Author   lipgloss.Style
	Text     lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	rose := lipgloss.Color("168")
	muted := lipgloss.Color("244")

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return Theme{
		Title: lipgloss.NewStyle().Foreground(rose).Bold(true),
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(muted),
		},
		Panel: PanelTheme{
			Frame:   frame,
			Focused: frame.BorderForeground(rose),
			Title:   lipgloss.NewStyle().Foreground(rose),
			Body:    lipgloss.NewStyle(),
			Muted:   lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Weeks: WeeksTheme{
			Heading:  lipgloss.NewStyle().Bold(true),
			Cursor:   lipgloss.NewStyle().Foreground(rose).Bold(true),
			Date:     lipgloss.NewStyle(),
			Current:  lipgloss.NewStyle().Bold(true),
			Written:  lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
			Pending:  lipgloss.NewStyle().Foreground(muted),
			Editable: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Author:   lipgloss.NewStyle().Foreground(rose).Faint(true),
			Text:     lipgloss.NewStyle(),
		},
		Banner: lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Italic(true),
		Toast: lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("35")).
			Padding(0, 1),
	}
}
