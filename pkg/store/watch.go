package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"tableflip.dev/kammi/pkg/session"
)

// EventType describes the nature of a journal change notification.
type EventType int

const (
	// EventSessionChanged indicates a single session file was written,
	// created or removed.
	EventSessionChanged EventType = iota

	// EventCatalogInvalidated signals that the journal changed in a way that
	// could not be attributed to one session and callers should relist.
	EventCatalogInvalidated
)

// Event is emitted by Gateway.Watch when the journal directory changes.
type Event struct {
	Type     EventType
	Filename string
}

const watchThrottle = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid dropping events. The channel is closed once ctx is
// done or the watcher fails.
func (g *Gateway) Watch(ctx context.Context) (<-chan Event, error) {
	if err := g.EnsureJournalDirectory(); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				log.Printf("store: watcher close: %v", err)
			}
		})
	}

	if err := watcher.Add(g.journalDir); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", g.journalDir, err)
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is busy; its next relist picks the change up.
			}
		}

		throttle := newEventThrottle(watchThrottle)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("store: watch: %v", err)
				throttle.Enqueue(Event{Type: EventCatalogInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := g.sessionForPath(evt.Name)
				switch {
				case name == "" && session.IsTemp(evt.Name):
					// Half of an atomic write; the rename reports the real file.
				case name == "":
					throttle.Enqueue(Event{Type: EventCatalogInvalidated}, send)
				default:
					throttle.Enqueue(Event{Type: EventSessionChanged, Filename: name}, send)
				}
			}
		}
	}()

	return events, nil
}

// sessionForPath returns the session filename for a path directly inside the
// journal directory, or "" when path is not a session file.
func (g *Gateway) sessionForPath(path string) string {
	rel, err := filepath.Rel(g.journalDir, path)
	if err != nil || rel == "." {
		return ""
	}
	if filepath.Dir(rel) != "." {
		return ""
	}
	if !session.IsSessionFile(rel) {
		return ""
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return ""
	}
	return rel
}

// eventThrottle coalesces rapid change notifications so listeners refresh
// once per burst of filesystem activity instead of on every write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
	stopped bool
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	t.pending[ev.Type][ev.Filename] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

// flush sends while holding the lock so Stop cannot return mid-flush; send
// must not block.
func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	if t.stopped {
		return
	}

	for eventType, names := range pending {
		for name := range names {
			send(Event{Type: eventType, Filename: name})
		}
	}
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
