package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	appsvc "tableflip.dev/memories/pkg/app"
)

// Run shows the weeks screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc *appsvc.Service, link string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, svc, link)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
