// Package autosave debounces editor changes into atomic session writes and
// keeps the settings last-session pointer in step with what is on disk.
package autosave

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"tableflip.dev/kammi/pkg/document"
)

// DefaultDelay is the quiet period after the last change before a save.
const DefaultDelay = time.Second

// State is the coordinator's position in its save loop.
type State int

// Coordinator states. The loop is Idle -> PendingSave -> Saving -> Idle;
// FlushOnExit is only entered by Flush.
const (
	StateIdle State = iota
	StatePendingSave
	StateSaving
	StateFlushOnExit
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePendingSave:
		return "pending"
	case StateSaving:
		return "saving"
	case StateFlushOnExit:
		return "flushing"
	default:
		return "unknown"
	}
}

// Writer durably replaces a session file. store.Gateway implements it.
type Writer interface {
	WriteAtomic(filename string, content []byte) error
}

// Reconciler records the most recently written session. settings.Manager
// implements it.
type Reconciler interface {
	SetLastSession(filename string) error
}

// Result describes one save attempt.
type Result struct {
	Filename string
	Revision uint64
	// Skipped is set when the content was empty and nothing was written.
	Skipped bool
	// Final is set for the save performed by Flush.
	Final bool
	// Err is the content write failure, if any.
	Err error
	// SettingsErr is the last-session reconciliation failure, if any. It is
	// only ever set after a successful content write.
	SettingsErr error
}

// ErrClosed is returned by Flush on a coordinator that was already flushed.
var ErrClosed = errors.New("autosave: coordinator closed")

// Coordinator autosaves one session.
//
// Every Changed call re-arms a debounce timer; only the trailing edit after a
// quiet period is saved. At most one save runs at a time, and a timer that
// fires during a save waits for it, so writes to the file are never
// interleaved or reordered.
type Coordinator struct {
	filename   string
	writer     Writer
	reconciler Reconciler
	delay      time.Duration
	logger     *log.Logger
	onResult   func(Result)
	after      <-chan struct{}
	done       chan struct{}

	// saveMu is held for the duration of a save.
	saveMu sync.Mutex

	mu            sync.Mutex
	state         State
	content       string
	revision      uint64
	savedRevision uint64
	timer         *time.Timer
	generation    uint64
	saves         int
	closed        bool
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDelay sets the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithResultHook is called after every save attempt, outside internal locks
// but before the next save may start. It must not block for long.
func WithResultHook(fn func(Result)) Option {
	return func(c *Coordinator) {
		c.onResult = fn
	}
}

// WithInitialContent seeds the coordinator with content already on disk, so
// it is not rewritten until it changes.
func WithInitialContent(content string) Option {
	return func(c *Coordinator) {
		c.content = content
	}
}

// WithAfter holds back every save until done is closed. It orders a new
// coordinator behind an earlier one for the same file whose final save may
// still be running.
func WithAfter(done <-chan struct{}) Option {
	return func(c *Coordinator) {
		c.after = done
	}
}

// New returns an idle coordinator for filename. reconciler may be nil.
func New(filename string, writer Writer, reconciler Reconciler, opts ...Option) *Coordinator {
	c := &Coordinator{
		filename:   filename,
		writer:     writer,
		reconciler: reconciler,
		delay:      DefaultDelay,
		logger:     log.Default(),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Filename is the session this coordinator writes.
func (c *Coordinator) Filename() string {
	return c.filename
}

// Done is closed once the save started by Flush has returned, even when
// Flush itself gave up waiting for it.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// State reports the current loop state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Saves counts successful content writes.
func (c *Coordinator) Saves() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saves
}

// Dirty reports whether there are changes not yet handled by a save.
func (c *Coordinator) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.revision != c.savedRevision
}

// Changed records the latest serialized document and restarts the debounce
// timer. Calls after Flush are ignored.
func (c *Coordinator) Changed(content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.content = content
	c.revision++
	if c.timer != nil {
		c.timer.Stop()
	}
	c.generation++
	gen := c.generation
	c.timer = time.AfterFunc(c.delay, func() { c.fire(gen) })
	if c.state == StateIdle {
		c.state = StatePendingSave
	}
}

// Flush cancels the pending timer and performs one final save, waiting behind
// any save already in flight. ctx bounds only the wait; a save that has
// started is allowed to finish in the background. The coordinator accepts no
// further changes afterwards.
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.generation++
	c.state = StateFlushOnExit
	c.mu.Unlock()

	done := make(chan Result, 1)
	go func() {
		defer close(c.done)
		done <- c.save(true)
	}()

	select {
	case res := <-done:
		return errors.Join(res.Err, res.SettingsErr)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Coordinator) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		// Superseded by a newer timer or by Flush.
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	c.save(false)
}

func (c *Coordinator) save(final bool) Result {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	if c.after != nil {
		<-c.after
	}

	c.mu.Lock()
	content, rev := c.content, c.revision
	res := Result{Filename: c.filename, Revision: rev, Final: final}
	if rev == c.savedRevision {
		c.settleLocked(final)
		c.mu.Unlock()
		res.Skipped = true
		return res
	}
	if final {
		c.state = StateFlushOnExit
	} else {
		c.state = StateSaving
	}
	c.mu.Unlock()

	switch {
	case document.IsEmpty(content):
		res.Skipped = true
		c.markSaved(rev, false)
	default:
		if err := c.writer.WriteAtomic(c.filename, []byte(content)); err != nil {
			res.Err = err
			c.logger.Printf("autosave: write %q: %v", c.filename, err)
			break
		}
		c.markSaved(rev, true)
		// The pointer only moves once the file it names exists.
		if c.reconciler != nil {
			if err := c.reconciler.SetLastSession(c.filename); err != nil {
				res.SettingsErr = err
				c.logger.Printf("autosave: update last session %q: %v", c.filename, err)
			}
		}
	}

	c.mu.Lock()
	c.settleLocked(final)
	c.mu.Unlock()

	if c.onResult != nil {
		c.onResult(res)
	}
	return res
}

func (c *Coordinator) markSaved(rev uint64, wrote bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rev > c.savedRevision {
		c.savedRevision = rev
	}
	if wrote {
		c.saves++
	}
}

// settleLocked picks the state after a save. c.mu must be held.
func (c *Coordinator) settleLocked(final bool) {
	switch {
	case final:
		c.state = StateIdle
	case c.timer != nil:
		c.state = StatePendingSave
	default:
		c.state = StateIdle
	}
}
