// Package ui runs the full screen weeks interface.
package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/memories/pkg/app"
	tuiapp "tableflip.dev/memories/pkg/tui/app"
)

var ErrNotTerminal = errors.New("ui: standard output is not a terminal")

// UI opens the weeks screen for the token in Link, or the persisted one.
type UI struct {
	Service *app.Service
	Link    string

	// IsTerminal reports whether the screen can be drawn. Defaults to
	// checking stdout.
	IsTerminal func() bool
}

func (u *UI) Do(ctx context.Context) error {
	check := u.IsTerminal
	if check == nil {
		check = stdoutIsTerminal
	}
	if !check() {
		return ErrNotTerminal
	}
	return tuiapp.Run(ctx, u.Service, u.Link)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
