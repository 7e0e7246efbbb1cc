// Package board decides which weeks are shown, their status, and which of
// them can be written.
package board

import (
	"sort"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/week"
)

// Row is one past-or-current week.
type Row struct {
	Week     week.Identity    `json:"week_monday"`
	Status   authority.Status `json:"status"`
	Author   string           `json:"author,omitempty"`
	Text     string           `json:"text,omitempty"`
	Current  bool             `json:"current"`
	Editable bool             `json:"editable"`
}

// Options tune Reconcile.
type Options struct {
	// Since is the first week shown. Unset, the earliest listed week is used.
	Since week.Identity
}

// Reconcile merges the authority's week list with now. The result holds
// every week from the first shown week up to now, most recent first. Weeks
// the authority does not list are pending.
func Reconcile(now week.Identity, records []authority.WeekRecord, st access.State, opts Options) []Row {
	known := make(map[string]authority.WeekRecord, len(records))
	first := opts.Since
	for _, r := range records {
		if r.Week.IsZero() || r.Week.After(now) {
			continue
		}
		if prev, ok := known[r.Week.String()]; ok && prev.Status == authority.Written {
			continue
		}
		known[r.Week.String()] = r
		if opts.Since.IsZero() && (first.IsZero() || r.Week.Before(first)) {
			first = r.Week
		}
	}

	// The current week is always shown, listed or not.
	if first.IsZero() || first.After(now) {
		first = now
	}
	rows := make([]Row, 0, len(known)+1)
	for w := now; !w.Before(first); w = w.Prev() {
		rows = append(rows, row(w, known[w.String()], now, st))
		delete(known, w.String())
	}
	// Listed weeks before Since are still shown.
	for _, r := range known {
		rows = append(rows, row(r.Week, r, now, st))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Week.After(rows[j].Week) })
	return rows
}

func row(w week.Identity, r authority.WeekRecord, now week.Identity, st access.State) Row {
	out := Row{
		Week:    w,
		Status:  authority.Pending,
		Current: w.Equal(now),
	}
	if r.Status == authority.Written {
		out.Status = authority.Written
		out.Author = r.Author
		out.Text = r.Text
	}
	out.Editable = out.Status == authority.Pending && st.IsValid()
	return out
}
