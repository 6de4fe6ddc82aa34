package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kammi/pkg/store"
)

type fakeSource struct {
	files     []store.FileInfo
	listErr   error
	ensureErr error
	ensured   int
	events    chan store.Event
}

func (f *fakeSource) EnsureJournalDirectory() error {
	f.ensured++
	return f.ensureErr
}

func (f *fakeSource) ListDirectory(context.Context) ([]store.FileInfo, error) {
	return f.files, f.listErr
}

func (f *fakeSource) Watch(context.Context) (<-chan store.Event, error) {
	return f.events, nil
}

func TestList_NewestFirst(t *testing.T) {
	t.Parallel()

	t1 := time.Date(2024, 3, 21, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)
	src := &fakeSource{files: []store.FileInfo{
		{Name: "A.html", Modified: t1},
		{Name: "C.html", Modified: t3},
		{Name: "B.html", Modified: t2},
	}}

	entries, err := New(src).List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "C.html", entries[0].Filename)
	assert.Equal(t, "B.html", entries[1].Filename)
	assert.Equal(t, "A.html", entries[2].Filename)
	assert.Equal(t, "C", entries[0].DisplayName)
	assert.Equal(t, 1, src.ensured)
}

func TestList_TiesOrderedByName(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 21, 9, 0, 0, 0, time.UTC)
	src := &fakeSource{files: []store.FileInfo{
		{Name: "b.html", Modified: at},
		{Name: "a.html", Modified: at},
	}}

	entries, err := New(src).List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.html", entries[0].Filename)
	assert.Equal(t, "b.html", entries[1].Filename)
}

func TestList_FiltersNonSessions(t *testing.T) {
	t.Parallel()

	now := time.Now()
	src := &fakeSource{files: []store.FileInfo{
		{Name: "keep.html", Modified: now},
		{Name: "keep.html.tmp", Modified: now},
		{Name: "notes.txt", Modified: now},
		{Name: ".hidden.html", Modified: now},
	}}

	entries, err := New(src).List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keep.html", entries[0].Filename)
}

func TestList_Errors(t *testing.T) {
	t.Parallel()

	src := &fakeSource{ensureErr: store.ErrStorageWrite}
	_, err := New(src).List(context.Background())
	assert.ErrorIs(t, err, store.ErrStorageWrite)

	src = &fakeSource{listErr: store.ErrStorageRead}
	_, err = New(src).List(context.Background())
	assert.ErrorIs(t, err, store.ErrStorageRead)

	ok, err := New(src).HasSessions(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestHasSessions(t *testing.T) {
	t.Parallel()

	empty := &fakeSource{}
	ok, err := New(empty).HasSessions(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	one := &fakeSource{files: []store.FileInfo{{Name: "x.html", Modified: time.Now()}}}
	ok, err = New(one).HasSessions(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWatch_ForwardsSourceEvents(t *testing.T) {
	t.Parallel()

	src := &fakeSource{events: make(chan store.Event, 1)}
	src.events <- store.Event{Type: store.EventSessionChanged, Filename: "x.html"}

	ch, err := New(src).Watch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x.html", (<-ch).Filename)
}

func TestList_Gateway(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	g, err := store.New(filepath.Join(base, "journal"), filepath.Join(base, "settings.json"))
	require.NoError(t, err)
	c := New(g)

	// The directory is created on first list.
	entries, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	names := []string{"first.html", "second.html", "third.html"}
	start := time.Date(2024, 3, 21, 9, 0, 0, 0, time.UTC)
	for i, name := range names {
		require.NoError(t, g.WriteAtomic(name, []byte("<p>x</p>")))
		at := start.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(filepath.Join(g.JournalDir(), name), at, at))
	}
	require.NoError(t, os.WriteFile(filepath.Join(g.JournalDir(), "orphan.html.tmp"), []byte("x"), 0o644))

	entries, err = c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third.html", entries[0].Filename)
	assert.Equal(t, "first.html", entries[2].Filename)
	assert.True(t, entries[0].Modified.Equal(start.Add(2*time.Minute)))
}

var _ Source = (*store.Gateway)(nil)

func TestErrorsWrapped(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := New(&fakeSource{listErr: boom}).List(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "catalog:")
}
