// Package weeks prints the weeks board.
package weeks

import (
	"context"
	"io"

	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/printers"
)

// Weeks prints the current week and past weeks for the token resolved from
// Link or the persisted token.
type Weeks struct {
	Service  *app.Service
	Link     string
	JSON     bool
	Calendar bool
	Out      io.Writer
}

// Output is the JSON shape of the board.
type Output struct {
	Access  string      `json:"access"`
	Author  string      `json:"author,omitempty"`
	Current string      `json:"current_week"`
	Form    bool        `json:"form"`
	Weeks   []board.Row `json:"weeks"`
}

func (w *Weeks) Do(ctx context.Context) error {
	sess, err := w.Service.Open(ctx, w.Link)
	if err != nil {
		return err
	}
	defer sess.Close()

	b, err := w.Service.Board(ctx, sess.State())
	if err != nil {
		return err
	}

	pp := &printers.PrettyPrint{Out: w.Out}
	if w.JSON {
		return pp.JSON(NewOutput(b))
	}
	if w.Calendar {
		pp.Year(b.Now().Year(), b.Now(), b.Rows()...)
	}
	pp.Board(b)
	return nil
}

// NewOutput describes b for JSON output.
func NewOutput(b *board.Board) Output {
	st := b.State()
	return Output{
		Access:  st.Kind().String(),
		Author:  st.Author(),
		Current: b.Now().String(),
		Form:    b.CurrentFormVisible(),
		Weeks:   b.Rows(),
	}
}
