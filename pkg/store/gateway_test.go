package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kammi/pkg/settings"
)

const sampleSession = "On 21st of Mar, 2024, 2-05 pm.html"

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	base := t.TempDir()
	g, err := New(filepath.Join(base, "Documents", "Kammi"), filepath.Join(base, "config", "kammi", "settings.json"))
	require.NoError(t, err)
	return g
}

func TestEnsureJournalDirectory_Idempotent(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, g.EnsureJournalDirectory())
	require.NoError(t, g.EnsureJournalDirectory())

	info, err := os.Stat(g.JournalDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteAtomic_ReadFile(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, g.EnsureJournalDirectory())

	require.NoError(t, g.WriteAtomic(sampleSession, []byte("<p>a much longer first draft</p>")))
	require.NoError(t, g.WriteAtomic(sampleSession, []byte("<p>short</p>")))

	got, err := g.ReadFile(sampleSession)
	require.NoError(t, err)
	assert.Equal(t, "<p>short</p>", string(got))

	_, err = os.Stat(filepath.Join(g.JournalDir(), sampleSession+".tmp"))
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestWriteAtomic_MissingDirectory(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	err := g.WriteAtomic(sampleSession, []byte("<p>x</p>"))
	require.ErrorIs(t, err, ErrStorageWrite)
}

func TestWriteAtomic_RenameFailureKeepsTarget(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, g.EnsureJournalDirectory())

	// A non-empty directory at the target path makes the rename fail.
	blocked := filepath.Join(g.JournalDir(), sampleSession)
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0o755))

	err := g.WriteAtomic(sampleSession, []byte("<p>x</p>"))
	require.ErrorIs(t, err, ErrStorageWrite)

	_, statErr := os.Stat(blocked + ".tmp")
	assert.True(t, os.IsNotExist(statErr), "failed write should remove its temp file")
}

func TestWriteAtomic_InterruptedWriteLeavesPreviousVersion(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, g.EnsureJournalDirectory())
	require.NoError(t, g.WriteAtomic(sampleSession, []byte("<p>complete version</p>")))

	// Simulate a process killed between temp write and rename.
	orphan := filepath.Join(g.JournalDir(), sampleSession+".tmp")
	require.NoError(t, os.WriteFile(orphan, []byte("<p>compl"), 0o644))

	got, err := g.ReadFile(sampleSession)
	require.NoError(t, err)
	assert.Equal(t, "<p>complete version</p>", string(got))

	files, err := g.ListDirectory(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, sampleSession, files[0].Name)

	// The next save truncates the stale temp file before renaming.
	require.NoError(t, g.WriteAtomic(sampleSession, []byte("<p>next</p>")))
	got, err = g.ReadFile(sampleSession)
	require.NoError(t, err)
	assert.Equal(t, "<p>next</p>", string(got))
}

func TestWriteAtomic_NeverCreatedFileStaysAbsent(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, g.EnsureJournalDirectory())
	require.NoError(t, os.WriteFile(filepath.Join(g.JournalDir(), sampleSession+".tmp"), []byte("<p>par"), 0o644))

	_, err := g.ReadFile(sampleSession)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReadFile_NotFound(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	_, err := g.ReadFile("missing.html")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, g.EnsureJournalDirectory())
	_, err = g.ReadFile("missing.html")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFilenameValidation(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, g.EnsureJournalDirectory())

	for _, name := range []string{"", ".", "..", "../escape.html", "a/b.html", `a\b.html`, "/abs.html", "x.html.tmp"} {
		err := g.WriteAtomic(name, []byte("x"))
		require.ErrorIs(t, err, ErrInvalidFilename, "write %q", name)
		require.ErrorIs(t, err, ErrStorageWrite, "write %q", name)

		_, err = g.ReadFile(name)
		require.ErrorIs(t, err, ErrInvalidFilename, "read %q", name)
		require.ErrorIs(t, err, ErrStorageRead, "read %q", name)
	}
}

func TestListDirectory_MissingDirectoryIsEmpty(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	files, err := g.ListDirectory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestListDirectory_FiltersAndStats(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, g.EnsureJournalDirectory())

	require.NoError(t, g.WriteAtomic("a.html", []byte("<p>a</p>")))
	require.NoError(t, g.WriteAtomic("b.html", []byte("<p>bb</p>")))
	dir := g.JournalDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.html.tmp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "d.html"), []byte("x"), 0o644))

	stamp := time.Date(2024, time.March, 21, 14, 5, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "a.html"), stamp, stamp))

	files, err := g.ListDirectory(context.Background())
	require.NoError(t, err)

	byName := make(map[string]FileInfo, len(files))
	for _, f := range files {
		byName[f.Name] = f
	}
	require.Len(t, byName, 2)
	assert.True(t, byName["a.html"].Modified.Equal(stamp))
	assert.Equal(t, int64(len("<p>bb</p>")), byName["b.html"].Size)
}

func TestListDirectory_NotADirectory(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	file := filepath.Join(base, "journal")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	g, err := New(file, filepath.Join(base, "settings.json"))
	require.NoError(t, err)

	_, err = g.ListDirectory(context.Background())
	require.ErrorIs(t, err, ErrStorageRead)
}

func TestReadSettings_FirstLaunchDefaults(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	rec, err := g.ReadSettings()
	require.NoError(t, err)

	assert.Empty(t, rec.Name)
	assert.Equal(t, settings.DefaultTheme, rec.Theme)
	assert.True(t, rec.FadeEffect)
	assert.Empty(t, rec.LastSessionFile)
}

func TestWriteSettingsAtomic_RoundTrip(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	rec := settings.Defaults()
	rec.Name = "Ada"
	rec.Theme = "paper"
	rec.LastSessionFile = sampleSession

	require.NoError(t, g.WriteSettingsAtomic(rec))
	rec.Theme = "focus"
	require.NoError(t, g.WriteSettingsAtomic(rec))

	got, err := g.ReadSettings()
	require.NoError(t, err)
	assert.True(t, rec.Equal(got))

	data, err := os.ReadFile(g.SettingsPath())
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Ada", raw["name"])
	assert.Equal(t, sampleSession, raw["lastSessionFile"])

	entries, err := os.ReadDir(filepath.Dir(g.SettingsPath()))
	require.NoError(t, err)
	require.Len(t, entries, 1, "settings write should not leave temp files behind")
}

func TestReadSettings_Corrupt(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(g.SettingsPath()), 0o700))
	require.NoError(t, os.WriteFile(g.SettingsPath(), []byte("{not json"), 0o600))

	rec, err := g.ReadSettings()
	require.ErrorIs(t, err, ErrSettingsCorrupt)
	assert.True(t, rec.Equal(settings.Defaults()))
}

func TestNew_RequiresPaths(t *testing.T) {
	t.Parallel()

	_, err := New("", "settings.json")
	require.Error(t, err)
	_, err = New("journal", " ")
	require.Error(t, err)
}

func TestStat(t *testing.T) {
	t.Parallel()

	g := newTestGateway(t)
	require.NoError(t, g.EnsureJournalDirectory())

	_, err := g.Stat(sampleSession)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, g.WriteAtomic(sampleSession, []byte("<p>hello</p>")))
	fi, err := g.Stat(sampleSession)
	require.NoError(t, err)
	assert.Equal(t, sampleSession, fi.Name)
	assert.EqualValues(t, len("<p>hello</p>"), fi.Size)
	assert.WithinDuration(t, time.Now(), fi.Modified, time.Minute)

	_, err = g.Stat("../outside.html")
	assert.ErrorIs(t, err, ErrInvalidFilename)
}
