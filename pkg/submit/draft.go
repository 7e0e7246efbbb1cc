package submit

import (
	"fmt"
	"unicode/utf8"

	"tableflip.dev/memories/pkg/validation"
	"tableflip.dev/memories/pkg/week"
)

// Draft is text being written for a week.
type Draft struct {
	// Week is the week being edited; zero for the current week form.
	Week week.Identity
	Text string
}

// Clear empties the draft and leaves edit mode for its week.
func (d *Draft) Clear() {
	d.Week = week.Identity{}
	d.Text = ""
}

// Counter renders the "n / 1000" length indicator.
func (d *Draft) Counter() string {
	return fmt.Sprintf("%d / %d", utf8.RuneCountInString(d.Text), validation.MaxText)
}
