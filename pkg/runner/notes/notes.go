// Package notes lists, adds and removes goals and unlinked memories.
package notes

import (
	"context"
	"fmt"
	"io"

	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/printers"
)

// Action is what Notes does.
type Action int

const (
	List Action = iota
	Add
	Remove
)

var titles = map[authority.Kind]string{
	authority.Goals:    "Objetivos",
	authority.Unlinked: "Recuerdos sin fecha",
}

// Title is the heading for kind.
func Title(kind authority.Kind) string {
	if t, ok := titles[kind]; ok {
		return t
	}
	return string(kind)
}

type Notes struct {
	Service *app.Service
	Link    string
	Kind    authority.Kind
	Action  Action
	Text    string
	ID      int64
	JSON    bool
	Out     io.Writer
}

func (n *Notes) Do(ctx context.Context) error {
	sess, err := n.Service.Open(ctx, n.Link)
	if err != nil {
		return err
	}
	defer sess.Close()

	svc := n.Service.Notes(n.Kind, sess)
	pp := &printers.PrettyPrint{Out: n.Out}

	switch n.Action {
	case Add:
		note, err := svc.Add(ctx, sess.Token(), n.Text)
		if err != nil {
			return err
		}
		if n.JSON {
			return pp.JSON(note)
		}
		pp.Message(fmt.Sprintf("Añadido #%d", note.ID))
		return nil
	case Remove:
		if err := svc.Remove(ctx, sess.Token(), n.ID); err != nil {
			return err
		}
		if n.JSON {
			return pp.JSON(map[string]interface{}{"removed": n.ID})
		}
		pp.Message(fmt.Sprintf("Eliminado #%d", n.ID))
		return nil
	default:
		list, err := svc.List(ctx, sess.Token())
		if err != nil {
			return err
		}
		if n.JSON {
			if list == nil {
				list = []authority.Note{}
			}
			return pp.JSON(list)
		}
		pp.Notes(Title(n.Kind), list...)
		return nil
	}
}
