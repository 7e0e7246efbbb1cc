package printers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/week"
)

const (
	BadgeWritten = "Escrito"
	BadgePending = "Pendiente"

	HeadingCurrent = "Semana actual"
	HeadingPast    = "Recuerdos pasados"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Width wraps memory text; 0 means 72 columns.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 72
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " recuerdo")
	default:
		_, _ = c.Fprintln(pp.out(), " recuerdos")
	}
}

// Message prints a status line, if any.
func (pp *PrettyPrint) Message(msg string) {
	if msg == "" {
		return
	}
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintln(pp.out(), msg)
}

// Current prints the current week block: the author line when the form is
// available, the read-only hint otherwise.
func (pp *PrettyPrint) Current(b *board.Board) {
	pp.Title(HeadingCurrent)
	d := color.New(color.FgHiMagenta, color.Bold)
	_, _ = d.Fprintln(pp.out(), b.Now().String())

	if !b.CurrentFormVisible() {
		i := color.New(color.FgRed, color.Italic)
		_, _ = i.Fprintln(pp.out(), board.MsgReadOnly)
		return
	}
	_, _ = fmt.Fprintln(pp.out(), b.Greeting())
	if r, ok := b.Row(b.Now()); ok && r.Status == authority.Written {
		pp.memory(r)
	}
}

// Board prints the current week block followed by past weeks.
func (pp *PrettyPrint) Board(b *board.Board) {
	pp.Current(b)
	pp.NewLine()
	pp.Rows(b.Rows()...)
	pp.Message(b.Message())
}

// Rows prints past-or-current weeks with their status badge and text.
func (pp *PrettyPrint) Rows(rows ...board.Row) {
	pp.TitleWithCount(HeadingPast, written(rows))
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " ninguno\n\n")
		return
	}

	for _, r := range rows {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow(weekLabel(r), badge(r), r.Author)
		_, _ = fmt.Fprintln(pp.out(), tbl)
		if r.Status == authority.Written {
			pp.memory(r)
		}
	}
	pp.NewLine()
}

func (pp *PrettyPrint) memory(r board.Row) {
	text := wordwrap.String(r.Text, pp.width()-4)
	_, _ = fmt.Fprintln(pp.out(), indent.String(text, 4))
}

func written(rows []board.Row) int {
	n := 0
	for _, r := range rows {
		if r.Status == authority.Written {
			n++
		}
	}
	return n
}

func weekLabel(r board.Row) string {
	label := "Semana de " + r.Week.String()
	if r.Current {
		return color.New(color.Bold).Sprint(label)
	}
	return label
}

func badge(r board.Row) string {
	if r.Status == authority.Written {
		return color.New(color.FgGreen).Sprint(BadgeWritten)
	}
	if r.Editable {
		return color.New(color.FgYellow).Sprint(BadgePending)
	}
	return color.New(color.Faint).Sprint(BadgePending)
}

// Notes prints goals or unlinked notes with their ids.
func (pp *PrettyPrint) Notes(title string, notes ...authority.Note) {
	pp.Title(title)
	if len(notes) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " ninguno\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = uint(pp.width())
	for _, n := range notes {
		created := ""
		if !n.CreatedAt.IsZero() {
			created = n.CreatedAt.Local().Format(week.Layout)
		}
		tbl.AddRow(y.Sprint(strconv.FormatInt(n.ID, 10)), created, strings.TrimSpace(n.Text))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}
