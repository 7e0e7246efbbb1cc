package board

import (
	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/week"
)

const (
	// MsgPastWeekNeedsLink explains why a pending week cannot be opened.
	MsgPastWeekNeedsLink = "Para escribir en semanas pasadas abre el enlace recibido por email (token en la URL)"
	// MsgReadOnly replaces the current week form when access is not valid.
	MsgReadOnly = "Abre este enlace desde el email para escribir (token en la URL). Si ya abriste el enlace y ves este mensaje, el token pudo expirar."
	// MsgSplash is shown instead of any content while no valid token is known.
	MsgSplash = "Accede desde el enlace proporcionado en el email para ver el contenido de la web."
)

// Outcome is what selecting a week did.
type Outcome int

const (
	// Ignored: written or unknown weeks do nothing.
	Ignored Outcome = iota
	// Editing: the week is now in edit mode.
	Editing
	// Explained: the week is pending but access is not valid; Message says why.
	Explained
)

// Board is the weeks screen state. It is not safe for concurrent use; the
// owner (a command run or the terminal UI loop) serializes access.
type Board struct {
	opts    Options
	now     week.Identity
	records []authority.WeekRecord
	state   access.State
	rows    []Row

	editing week.Identity
	message string
}

// New reconciles records against now.
func New(now week.Identity, records []authority.WeekRecord, st access.State, opts Options) *Board {
	b := &Board{opts: opts}
	b.Update(now, records, st)
	return b
}

// Update replaces the inputs and reconciles again. Edit mode survives only
// while its week stays editable.
func (b *Board) Update(now week.Identity, records []authority.WeekRecord, st access.State) {
	b.now = now
	b.records = records
	b.state = st
	b.rows = Reconcile(now, records, st, b.opts)
	if !b.editing.IsZero() {
		if r, ok := b.Row(b.editing); !ok || !r.Editable {
			b.editing = week.Identity{}
		}
	}
}

// SetRecords is Update with a new week list.
func (b *Board) SetRecords(records []authority.WeekRecord) {
	b.Update(b.now, records, b.state)
}

// SetState is Update with a new access state.
func (b *Board) SetState(st access.State) {
	b.Update(b.now, b.records, st)
}

// SetNow is Update with a new current week.
func (b *Board) SetNow(now week.Identity) {
	b.Update(now, b.records, b.state)
}

func (b *Board) Now() week.Identity  { return b.now }
func (b *Board) State() access.State { return b.state }
func (b *Board) Rows() []Row         { return b.rows }

// Row returns the row for w.
func (b *Board) Row(w week.Identity) (Row, bool) {
	for _, r := range b.rows {
		if r.Week.Equal(w) {
			return r, true
		}
	}
	return Row{}, false
}

// Select is a click on a week.
func (b *Board) Select(w week.Identity) Outcome {
	r, ok := b.Row(w)
	if !ok || r.Status != authority.Pending {
		return Ignored
	}
	if !r.Editable {
		b.message = MsgPastWeekNeedsLink
		return Explained
	}
	b.editing = r.Week
	b.message = ""
	return Editing
}

// Editing returns the week in edit mode.
func (b *Board) Editing() (week.Identity, bool) {
	return b.editing, !b.editing.IsZero()
}

// CancelEdit leaves edit mode.
func (b *Board) CancelEdit() {
	b.editing = week.Identity{}
}

// Message is the last explanatory message, or "".
func (b *Board) Message() string { return b.message }

// SetMessage replaces the status message.
func (b *Board) SetMessage(m string) { b.message = m }

// CurrentFormVisible reports whether the current week form is shown. It does
// not depend on the current week's status.
func (b *Board) CurrentFormVisible() bool {
	return b.state.IsValid()
}

// Greeting is the author line above the current week form.
func (b *Board) Greeting() string {
	if !b.state.IsValid() {
		return ""
	}
	return Greeting(b.state.Author())
}

// Greeting formats the author line for author.
func Greeting(author string) string {
	return "Escribes como " + author
}
