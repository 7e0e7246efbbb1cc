// Package write submits this week's memory.
package write

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/printers"
	"tableflip.dev/memories/pkg/submit"
	"tableflip.dev/memories/pkg/week"
)

// Write submits Text under the token resolved from Link or the persisted
// token.
type Write struct {
	Service *app.Service
	Link    string
	Text    string
	// Week opens a past pending week in edit mode first. The authority
	// always files the text under its current week.
	Week string
	JSON bool
	Out  io.Writer
}

// Output is the JSON shape of a successful write.
type Output struct {
	Status string      `json:"status"`
	Toast  string      `json:"toast,omitempty"`
	Weeks  []board.Row `json:"weeks"`
}

// ErrNotEditable rejects --week for a week that cannot be opened.
var ErrNotEditable = errors.New("week is not editable")

func (w *Write) Do(ctx context.Context) error {
	log := logrus.WithField("component", "write")

	sess, err := w.Service.Open(ctx, w.Link)
	if err != nil {
		return err
	}
	defer sess.Close()

	b, err := w.Service.Board(ctx, sess.State())
	if err != nil {
		return err
	}

	draft := &submit.Draft{Text: w.Text}
	if w.Week != "" {
		id, err := week.Parse(w.Week)
		if err != nil {
			return err
		}
		switch b.Select(id) {
		case board.Editing:
			draft.Week = id
		case board.Explained:
			return fmt.Errorf("%s: %w", b.Message(), ErrNotEditable)
		default:
			return fmt.Errorf("%s: %w", id, ErrNotEditable)
		}
	}

	sub := w.Service.NewSubmitter(sess, func(ctx context.Context) {
		records, err := w.Service.Weeks(ctx)
		if err != nil {
			log.WithError(err).Warn("refresh weeks")
			return
		}
		b.SetRecords(records)
	})
	err = sub.SubmitDraft(ctx, sess.Token(), draft)
	sub.Wait()
	if err != nil {
		return fmt.Errorf("%s (%w)", submit.Message(err), err)
	}
	b.CancelEdit()

	pp := &printers.PrettyPrint{Out: w.Out}
	if w.JSON {
		return pp.JSON(Output{
			Status: submit.Message(nil),
			Toast:  sub.Toast().Text(),
			Weeks:  b.Rows(),
		})
	}
	pp.Message(submit.Message(nil))
	pp.Message(sub.Toast().Text())
	pp.NewLine()
	pp.Board(b)
	return nil
}
