// Package admin exchanges administrator credentials for an admin token.
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"tableflip.dev/memories/pkg/app"
)

var ErrNoPassword = errors.New("admin: password required")

// Login stores an admin token under its own key. The visitor token is not
// touched.
type Login struct {
	Service  *app.Service
	Username string
	Password string
	// ReadPassword prompts for the password when Password is empty. It
	// defaults to reading stdin without echo when stdin is a terminal.
	ReadPassword func() (string, error)
	Out          io.Writer
}

func (l *Login) Do(ctx context.Context) error {
	w := l.Out
	if w == nil {
		w = color.Output
	}
	password := l.Password
	if password == "" {
		read := l.ReadPassword
		if read == nil {
			read = func() (string, error) { return readTerminal(w) }
		}
		var err error
		if password, err = read(); err != nil {
			return err
		}
	}
	if password == "" {
		return ErrNoPassword
	}
	if err := l.Service.AdminLogin(ctx, l.Username, password); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "Sesión de administración guardada")
	return nil
}

func readTerminal(w io.Writer) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoPassword
	}
	_, _ = fmt.Fprint(w, "Contraseña: ")
	b, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
