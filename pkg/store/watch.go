package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a storage change notification.
type EventType int

const (
	// EventKeyChanged indicates the value under Key was written.
	EventKeyChanged EventType = iota

	// EventKeyRemoved indicates the value under Key was erased.
	EventKeyRemoved
)

// Event is emitted by Store.Watch when a key changes, including changes
// made by other processes sharing the same base path.
type Event struct {
	Type EventType
	Key  string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid dropped events. The channel is closed once ctx is
// done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o700); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	if err := watcher.Add(p.basePath); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		}()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; it re-reads the key on the next event.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				key := filepath.Base(evt.Name)
				if !validKey.MatchString(key) {
					continue
				}
				switch {
				case evt.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
					throttle.Enqueue(Event{Type: EventKeyRemoved, Key: key}, send)
				case evt.Op&(fsnotify.Create|fsnotify.Write) != 0:
					throttle.Enqueue(Event{Type: EventKeyChanged, Key: key}, send)
				}
			}
		}
	}()

	return events, nil
}

// eventThrottle coalesces rapid change notifications so a writer truncating
// and rewriting a file produces one event per burst.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]EventType
	order   []string
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]EventType),
	}
}

// Enqueue records ev; the last event type seen for a key wins.
func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if _, ok := t.pending[ev.Key]; !ok {
		t.order = append(t.order, ev.Key)
	}
	t.pending[ev.Key] = ev.Type

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush holds the lock while sending so nothing is sent after Stop returns;
// send must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	for _, key := range t.order {
		send(Event{Type: t.pending[key], Key: key})
	}
	t.pending = make(map[string]EventType)
	t.order = nil
	t.timer = nil
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
