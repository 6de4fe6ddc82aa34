package autosave

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kammi/pkg/document"
	"tableflip.dev/kammi/pkg/settings"
)

const testFile = "On 21st of Mar, 2024, 2-05 pm.html"

type write struct {
	filename string
	content  string
}

// recordingWriter captures writes and the order of writes and reconciles.
type recordingWriter struct {
	mu      sync.Mutex
	writes  []write
	events  *[]string
	err     error
	gate    chan struct{}
	active  int
	maxConc int
	started chan struct{}
}

func (w *recordingWriter) WriteAtomic(filename string, content []byte) error {
	w.mu.Lock()
	w.active++
	if w.active > w.maxConc {
		w.maxConc = w.active
	}
	gate, started := w.gate, w.started
	w.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.active--
	if w.err != nil {
		return w.err
	}
	w.writes = append(w.writes, write{filename: filename, content: string(content)})
	if w.events != nil {
		*w.events = append(*w.events, "write")
	}
	return nil
}

func (w *recordingWriter) Writes() []write {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]write(nil), w.writes...)
}

func (w *recordingWriter) setErr(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.err = err
}

type memorySettings struct {
	mu       sync.Mutex
	record   settings.Record
	writeErr error
	events   *[]string
}

func (s *memorySettings) ReadSettings() (settings.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone(), nil
}

func (s *memorySettings) WriteSettingsAtomic(r settings.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.record = r.Clone()
	if s.events != nil {
		*s.events = append(*s.events, "reconcile")
	}
	return nil
}

func (s *memorySettings) setWriteErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

func (s *memorySettings) persisted() settings.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

func quiet() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newManager(t *testing.T, store *memorySettings) *settings.Manager {
	t.Helper()
	store.record = settings.Defaults()
	m := settings.NewManager(store, settings.WithLogger(quiet()))
	_, err := m.Load()
	require.NoError(t, err)
	return m
}

func TestDebounce_RapidChangesProduceOneWrite(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	c := New(testFile, w, nil, WithDelay(60*time.Millisecond), WithLogger(quiet()))

	for i := 1; i <= 20; i++ {
		c.Changed(fmt.Sprintf("<p>draft %d</p>", i))
		time.Sleep(2 * time.Millisecond)
	}
	assert.Equal(t, StatePendingSave, c.State())

	require.Eventually(t, func() bool { return len(w.Writes()) == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	writes := w.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, "<p>draft 20</p>", writes[0].content)
	assert.Equal(t, testFile, writes[0].filename)
	assert.Equal(t, StateIdle, c.State())
	assert.False(t, c.Dirty())
}

func TestDebounce_SpacedChangesProduceOneWriteEach(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	c := New(testFile, w, nil, WithDelay(20*time.Millisecond), WithLogger(quiet()))

	for i := 1; i <= 3; i++ {
		c.Changed(fmt.Sprintf("<p>entry %d</p>", i))
		want := i
		require.Eventually(t, func() bool { return len(w.Writes()) == want }, 2*time.Second, 5*time.Millisecond)
	}
	assert.Equal(t, 3, c.Saves())
}

func TestEmptyContentIsNeverPersisted(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	store := &memorySettings{}
	m := newManager(t, store)

	results := make(chan Result, 4)
	c := New(testFile, w, m, WithDelay(10*time.Millisecond), WithLogger(quiet()),
		WithResultHook(func(r Result) { results <- r }))

	c.Changed(document.Empty)

	select {
	case r := <-results:
		assert.True(t, r.Skipped)
		assert.NoError(t, r.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("no save attempt")
	}
	require.NoError(t, c.Flush(context.Background()))

	assert.Empty(t, w.Writes())
	assert.Empty(t, m.Current().LastSessionFile)
	assert.Empty(t, store.persisted().LastSessionFile)
}

func TestReconcile_OnlyAfterSuccessfulWrite(t *testing.T) {
	t.Parallel()

	var events []string
	w := &recordingWriter{events: &events, err: errors.New("disk full")}
	store := &memorySettings{events: &events}
	m := newManager(t, store)

	results := make(chan Result, 4)
	c := New(testFile, w, m, WithDelay(10*time.Millisecond), WithLogger(quiet()),
		WithResultHook(func(r Result) { results <- r }))

	c.Changed("<p>lost for now</p>")
	r := <-results
	require.Error(t, r.Err)
	assert.NoError(t, r.SettingsErr)
	assert.Empty(t, m.Current().LastSessionFile)
	assert.Empty(t, store.persisted().LastSessionFile)
	assert.True(t, c.Dirty())

	// The next edit arms the timer normally and the failure heals.
	w.setErr(nil)
	c.Changed("<p>saved now</p>")
	r = <-results
	require.NoError(t, r.Err)
	require.NoError(t, r.SettingsErr)

	assert.Equal(t, testFile, m.Current().LastSessionFile)
	assert.Equal(t, testFile, store.persisted().LastSessionFile)
	assert.Equal(t, []string{"write", "reconcile"}, events)
}

func TestReconcile_SettingsFailureLeavesPointerStale(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	store := &memorySettings{}
	m := newManager(t, store)
	require.NoError(t, m.SetLastSession("older.html"))
	store.setWriteErr(errors.New("read-only"))

	results := make(chan Result, 4)
	c := New(testFile, w, m, WithDelay(10*time.Millisecond), WithLogger(quiet()),
		WithResultHook(func(r Result) { results <- r }))

	c.Changed("<p>one</p>")
	r := <-results
	require.NoError(t, r.Err)
	require.Error(t, r.SettingsErr)
	assert.Equal(t, "older.html", m.Current().LastSessionFile)
	require.Len(t, w.Writes(), 1)

	store.setWriteErr(nil)
	c.Changed("<p>two</p>")
	r = <-results
	require.NoError(t, r.SettingsErr)
	assert.Equal(t, testFile, m.Current().LastSessionFile)
}

func TestSingleFlight_SavesQueueBehindInFlightWrite(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{gate: make(chan struct{}), started: make(chan struct{}, 4)}
	c := New(testFile, w, nil, WithDelay(5*time.Millisecond), WithLogger(quiet()))

	c.Changed("<p>first</p>")
	<-w.started
	assert.Equal(t, StateSaving, c.State())

	// A newer change fires while the first write is blocked.
	c.Changed("<p>second</p>")
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, StateSaving, c.State())

	w.gate <- struct{}{}
	<-w.started
	w.gate <- struct{}{}

	require.Eventually(t, func() bool { return len(w.Writes()) == 2 }, 2*time.Second, 5*time.Millisecond)
	writes := w.Writes()
	assert.Equal(t, "<p>first</p>", writes[0].content)
	assert.Equal(t, "<p>second</p>", writes[1].content)

	w.mu.Lock()
	assert.Equal(t, 1, w.maxConc)
	w.mu.Unlock()
}

func TestFlush_SavesPendingContentImmediately(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	store := &memorySettings{}
	m := newManager(t, store)
	c := New(testFile, w, m, WithDelay(time.Hour), WithLogger(quiet()))

	c.Changed("<p>closing the window</p>")
	require.NoError(t, c.Flush(context.Background()))

	writes := w.Writes()
	require.Len(t, writes, 1)
	assert.Equal(t, "<p>closing the window</p>", writes[0].content)
	assert.Equal(t, testFile, m.Current().LastSessionFile)

	c.Changed("<p>after close</p>")
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, w.Writes(), 1)
	assert.ErrorIs(t, c.Flush(context.Background()), ErrClosed)
	assert.Equal(t, StateIdle, c.State())
}

func TestFlush_NothingChanged(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{}
	c := New(testFile, w, nil, WithInitialContent("<p>already on disk</p>"), WithLogger(quiet()))

	require.NoError(t, c.Flush(context.Background()))
	assert.Empty(t, w.Writes())
}

func TestFlush_ReportsWriteError(t *testing.T) {
	t.Parallel()

	writeErr := errors.New("permission denied")
	w := &recordingWriter{err: writeErr}
	c := New(testFile, w, nil, WithDelay(time.Hour), WithLogger(quiet()))

	c.Changed("<p>x</p>")
	assert.ErrorIs(t, c.Flush(context.Background()), writeErr)
}

func TestFlush_ContextBoundsWait(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{gate: make(chan struct{}), started: make(chan struct{}, 4)}
	c := New(testFile, w, nil, WithDelay(5*time.Millisecond), WithLogger(quiet()))

	c.Changed("<p>slow disk</p>")
	<-w.started

	c.Changed("<p>more</p>")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.Flush(ctx), context.DeadlineExceeded)

	// Release the stuck write and the queued final save.
	close(w.gate)
	require.Eventually(t, func() bool { return len(w.Writes()) == 2 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "<p>more</p>", w.Writes()[1].content)
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "pending", StatePendingSave.String())
	assert.Equal(t, "saving", StateSaving.String())
	assert.Equal(t, "flushing", StateFlushOnExit.String())
}

func TestWithAfter_WaitsForEarlierCoordinator(t *testing.T) {
	t.Parallel()

	w := &recordingWriter{gate: make(chan struct{}), started: make(chan struct{}, 4)}
	first := New(testFile, w, nil, WithDelay(5*time.Millisecond), WithLogger(quiet()))

	first.Changed("<p>slow disk</p>")
	<-w.started
	first.Changed("<p>more</p>")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, first.Flush(ctx), context.DeadlineExceeded)

	// The replacement must not touch the file while the first one is busy.
	second := New(testFile, w, nil, WithDelay(5*time.Millisecond), WithLogger(quiet()), WithAfter(first.Done()))
	second.Changed("<p>next</p>")
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, w.Writes())

	close(w.gate)
	<-first.Done()
	require.Eventually(t, func() bool { return len(w.Writes()) == 3 }, 2*time.Second, 5*time.Millisecond)
	writes := w.Writes()
	assert.Equal(t, "<p>more</p>", writes[1].content)
	assert.Equal(t, "<p>next</p>", writes[2].content)

	w.mu.Lock()
	assert.Equal(t, 1, w.maxConc)
	w.mu.Unlock()
	require.NoError(t, second.Flush(context.Background()))
}
