package submit

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Toast is a message that clears itself after a fixed delay.
type Toast struct {
	clock clock.Clock
	after time.Duration

	mu    sync.Mutex
	text  string
	seq   uint64
	timer *clock.Timer
}

// NewToast returns a Toast driven by c. A nil c uses the wall clock.
func NewToast(c clock.Clock, after time.Duration) *Toast {
	if c == nil {
		c = clock.New()
	}
	return &Toast{clock: c, after: after}
}

// Show displays msg, replacing any current message and restarting the
// delay.
func (t *Toast) Show(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.seq++
	seq := t.seq
	t.text = msg
	t.timer = t.clock.AfterFunc(t.after, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.seq == seq {
			t.text = ""
		}
	})
}

// Text is the visible message, or "".
func (t *Toast) Text() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.text
}
