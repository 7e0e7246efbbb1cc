// Package week maps instants onto the Monday that identifies their calendar
// week.
package week

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// Layout is the rendering of a week identity.
	Layout = "2006-01-02"

	// Length is the span of one week.
	Length = 7 * 24 * time.Hour
)

// Identity is the civil date of the Monday that starts a week. The embedded
// time is always midnight UTC so identities compare by calendar date only.
type Identity struct {
	time.Time
}

// Start returns the Monday at midnight, in t's location, of the week that
// contains t. Sunday counts as the seventh day of the week.
func Start(t time.Time) time.Time {
	day := int(t.Weekday())
	if day == 0 {
		day = 7
	}
	diff := day - 1
	monday := t.AddDate(0, 0, -diff)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// Of returns the identity of the week containing t.
func Of(t time.Time) Identity {
	return civil(Start(t))
}

// Current returns the identity of the week containing c.Now(). It reads the
// clock on every call.
func Current(c clock.Clock) Identity {
	if c == nil {
		c = clock.New()
	}
	return Of(c.Now())
}

func civil(t time.Time) Identity {
	return Identity{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	Layout,
}

// Parse reads a week identity from a date or timestamp. The civil date in the
// value's own offset is used, so "2026-01-05T00:00:00+01:00" and "2026-01-05"
// name the same week. Dates that are not Mondays are moved back to theirs.
func Parse(v string) (Identity, error) {
	v = strings.TrimSpace(v)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return Of(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)), nil
		}
	}
	return Identity{}, fmt.Errorf("week: unrecognized week identity %q", v)
}

// MustParse is Parse for literals; it panics on error.
func MustParse(v string) Identity {
	id, err := Parse(v)
	if err != nil {
		panic(err)
	}
	return id
}

func (id Identity) String() string {
	if id.IsZero() {
		return ""
	}
	return id.Format(Layout)
}

// Before reports whether id starts earlier than other.
func (id Identity) Before(other Identity) bool {
	return id.Time.Before(other.Time)
}

// After reports whether id starts later than other.
func (id Identity) After(other Identity) bool {
	return id.Time.After(other.Time)
}

// Equal reports whether both identities name the same week.
func (id Identity) Equal(other Identity) bool {
	return id.Time.Equal(other.Time)
}

// Next returns the following week.
func (id Identity) Next() Identity {
	return Identity{Time: id.AddDate(0, 0, 7)}
}

// Prev returns the preceding week.
func (id Identity) Prev() Identity {
	return Identity{Time: id.AddDate(0, 0, -7)}
}

// In returns the Monday midnight of id in loc, for display.
func (id Identity) In(loc *time.Location) time.Time {
	return time.Date(id.Year(), id.Month(), id.Day(), 0, 0, 0, 0, loc)
}

func (id Identity) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *Identity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*id = Identity{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *Identity) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
