// Package open resolves and validates an access link.
package open

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/printers"
)

// Open validates the token in Link (or the persisted one). A valid token is
// persisted for later commands; a rejected one is forgotten.
type Open struct {
	Service *app.Service
	Link    string
	JSON    bool
	Out     io.Writer
}

// Output is the JSON shape of an open.
type Output struct {
	Source    string `json:"source"`
	Access    string `json:"access"`
	Author    string `json:"author,omitempty"`
	Canonical string `json:"canonical,omitempty"`
}

func (o *Open) Do(ctx context.Context) error {
	sess, err := o.Service.Open(ctx, o.Link)
	if err != nil {
		return err
	}
	defer sess.Close()

	st := sess.State()
	out := Output{
		Source: sess.Resolution.Source.String(),
		Access: st.Kind().String(),
		Author: st.Author(),
	}
	if c := sess.Resolution.Canonical; c != nil {
		out.Canonical = c.String()
	}

	pp := &printers.PrettyPrint{Out: o.Out}
	if o.JSON {
		return pp.JSON(out)
	}
	w := o.Out
	if w == nil {
		w = color.Output
	}
	if !st.IsValid() {
		_, _ = color.New(color.FgRed, color.Italic).Fprintln(w, board.MsgSplash)
		return nil
	}
	_, _ = fmt.Fprintln(w, board.Greeting(st.Author()))
	if out.Canonical != "" {
		_, _ = color.New(color.Faint).Fprintf(w, "Enlace: %s\n", out.Canonical)
	}
	return nil
}
