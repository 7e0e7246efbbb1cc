// Package authority talks to the remote service of record for week records,
// goals and unlinked notes.
package authority

import (
	"context"
	"fmt"

	"tableflip.dev/memories/pkg/week"
)

// Status of a week's single memory slot.
type Status string

const (
	Pending Status = "pending"
	Written Status = "written"
)

// WeekRecord is one week as listed by the authority.
type WeekRecord struct {
	Week   week.Identity `json:"week_monday"`
	Status Status        `json:"status"`
	Author string        `json:"author,omitempty"`
	Text   string        `json:"text,omitempty"`
}

// Kind selects one of the note collections.
type Kind string

const (
	Goals    Kind = "goals"
	Unlinked Kind = "unlinked"
)

// Note is a goal or an unlinked memory.
type Note struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt Timestamp `json:"created_at"`
}

// Error is a non-2xx answer from the authority.
type Error struct {
	Status int    `json:"-"`
	Detail string `json:"detail"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("authority: %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("authority: status %d", e.Status)
}

// Client is the set of authority endpoints the client consumes.
type Client interface {
	// Weeks lists week records. No token is required.
	Weeks(ctx context.Context) ([]WeekRecord, error)
	// Token validates token and returns the author it belongs to.
	Token(ctx context.Context, token string) (string, error)
	// SubmitWeekly stores text as the current week's memory.
	SubmitWeekly(ctx context.Context, token, text string) error

	Notes(ctx context.Context, kind Kind, token string) ([]Note, error)
	AddNote(ctx context.Context, kind Kind, token, text string) (*Note, error)
	DeleteNote(ctx context.Context, kind Kind, token string, id int64) error

	// AdminLogin exchanges admin credentials for an administrative token.
	AdminLogin(ctx context.Context, username, password string) (string, error)
}
