package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/week"
)

func init() {
	color.NoColor = true
}

func sampleBoard(st access.State) *board.Board {
	return board.New(week.MustParse("2026-01-12"), []authority.WeekRecord{
		{Week: week.MustParse("2026-01-05"), Status: authority.Written, Author: "Jaime", Text: "Hola"},
	}, st, board.Options{})
}

func TestBoardValid(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Board(sampleBoard(access.Valid("Gabriela")))
	out := buf.String()

	for _, want := range []string{
		HeadingCurrent,
		"2026-01-12",
		"Escribes como Gabriela",
		HeadingPast + " - 1 recuerdo",
		"Semana de 2026-01-05",
		BadgeWritten,
		"Jaime",
		"    Hola",
		BadgePending,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, board.MsgReadOnly) {
		t.Errorf("read-only hint shown with valid access:\n%s", out)
	}
	if strings.Index(out, "2026-01-12  ") > strings.Index(out, "2026-01-05") {
		t.Errorf("weeks not most recent first:\n%s", out)
	}
}

func TestBoardReadOnly(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Board(sampleBoard(access.Invalid()))
	out := buf.String()

	if !strings.Contains(out, board.MsgReadOnly) {
		t.Errorf("read-only hint missing:\n%s", out)
	}
	if strings.Contains(out, "Escribes como") {
		t.Errorf("author line shown without access:\n%s", out)
	}
}

func TestRowsWrap(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf, Width: 24}
	pp.Rows(board.Row{
		Week:   week.MustParse("2026-01-05"),
		Status: authority.Written,
		Author: "Ana",
		Text:   "una semana muy larga con muchas palabras",
	})
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "    ") && len(line) > 24 {
			t.Errorf("line not wrapped: %q", line)
		}
	}
}

func TestNotes(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Notes("Objetivos", authority.Note{
		ID:        7,
		Text:      "Correr 10k",
		CreatedAt: authority.Timestamp{Time: time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)},
	})
	out := buf.String()
	for _, want := range []string{"Objetivos", "7", "Correr 10k"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	pp.Notes("Sin fecha")
	if !strings.Contains(buf.String(), "ninguno") {
		t.Errorf("empty notes: %q", buf.String())
	}
}

func TestYear(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	now := week.MustParse("2026-01-12")
	pp.Year(2026, now, board.Row{Week: week.MustParse("2026-01-05"), Status: authority.Written})

	lines := strings.Split(buf.String(), "\n")
	if lines[0] != "Recuerdos 2026" {
		t.Fatalf("title = %q", lines[0])
	}
	// 2026 starts on a Thursday; its first Monday is January 5th.
	if got, want := lines[1], "ene  ■ □ · ·"; got != want {
		t.Errorf("january = %q, want %q", got, want)
	}
	if !strings.HasPrefix(lines[12], "dic") {
		t.Errorf("december line = %q", lines[12])
	}
}
