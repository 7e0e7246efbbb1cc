package printers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/week"
)

const (
	cellWritten = "■"
	cellPending = "□"
	cellFuture  = "·"
)

var months = []string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// Year prints one line per month with a cell per week starting in that
// month: written, pending, or not yet reached.
func (pp *PrettyPrint) Year(year int, now week.Identity, rows ...board.Row) {
	pp.Title("Recuerdos " + strconv.Itoa(year))

	status := make(map[string]authority.Status, len(rows))
	for _, r := range rows {
		status[r.Week.String()] = r.Status
	}

	w := color.New(color.FgGreen)
	p := color.New(color.FgYellow)
	f := color.New(color.Faint)

	first := week.Of(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
	if first.Year() < year {
		first = first.Next()
	}
	for m := time.January; m <= time.December; m++ {
		var cells []string
		for id := first; id.Year() == year && id.Month() <= m; id = id.Next() {
			if id.Month() != m {
				continue
			}
			switch {
			case id.After(now):
				cells = append(cells, f.Sprint(cellFuture))
			case status[id.String()] == authority.Written:
				cells = append(cells, w.Sprint(cellWritten))
			default:
				cells = append(cells, p.Sprint(cellPending))
			}
		}
		_, _ = fmt.Fprintf(pp.out(), "%s  %s\n", months[m-1], strings.Join(cells, " "))
	}
	pp.NewLine()
}
