// Package store is the only code that touches the journal directory and the
// settings document on disk.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/kammi/pkg/session"
	"tableflip.dev/kammi/pkg/settings"
)

const (
	dirPerm      = 0o755
	filePerm     = 0o644
	settingsPerm = 0o600
)

// FileInfo describes one session file in the journal directory.
type FileInfo struct {
	Name     string
	Modified time.Time
	Size     int64
}

// Gateway owns the journal directory and the settings document.
//
// Session content is written with a fixed "<name>.tmp" sibling followed by a
// rename, so readers never see a partial file. A crash between the two steps
// leaves the previous version intact next to an orphaned .tmp file; nothing
// cleans those up automatically, and ListDirectory never reports them.
type Gateway struct {
	journalDir   string
	settingsPath string

	journal *diskv.Diskv
	prefs   *diskv.Diskv
}

// Load creates a Gateway for cfg, reading the default configuration when cfg
// is nil.
func Load(cfg Config) (*Gateway, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return New(cfg.JournalPath(), cfg.SettingsPath())
}

// New creates a Gateway over an explicit journal directory and settings path.
func New(journalDir, settingsPath string) (*Gateway, error) {
	if strings.TrimSpace(journalDir) == "" {
		return nil, errors.New("store: journal path required")
	}
	if strings.TrimSpace(settingsPath) == "" {
		return nil, errors.New("store: settings path required")
	}
	settingsDir := filepath.Dir(settingsPath)
	return &Gateway{
		journalDir:   journalDir,
		settingsPath: settingsPath,
		// Content writes bypass diskv, so its cache stays off.
		journal: diskv.New(diskv.Options{
			BasePath:          journalDir,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverseTransform,
			CacheSizeMax:      0,
			PathPerm:          dirPerm,
			FilePerm:          filePerm,
		}),
		prefs: diskv.New(diskv.Options{
			BasePath:          settingsDir,
			TempDir:           settingsDir,
			AdvancedTransform: flatTransform,
			InverseTransform:  flatInverseTransform,
			CacheSizeMax:      64 * 1024,
			PathPerm:          0o700,
			FilePerm:          settingsPerm,
		}),
	}, nil
}

// JournalDir is the directory holding session files.
func (g *Gateway) JournalDir() string {
	return g.journalDir
}

// SettingsPath is the location of the settings document.
func (g *Gateway) SettingsPath() string {
	return g.settingsPath
}

// EnsureJournalDirectory creates the journal directory and any missing
// parents. It is a no-op when the directory exists.
func (g *Gateway) EnsureJournalDirectory() error {
	if err := os.MkdirAll(g.journalDir, dirPerm); err != nil {
		return fmt.Errorf("%w: ensure journal directory: %w", ErrStorageWrite, err)
	}
	return nil
}

// WriteAtomic replaces filename with content via a temp sibling and rename.
// The journal directory must already exist.
func (g *Gateway) WriteAtomic(filename string, content []byte) error {
	if err := validateFilename(filename); err != nil {
		return fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}
	target := filepath.Join(g.journalDir, filename)
	tmp := target + session.TempSuffix

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrStorageWrite, err)
	}
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: write temp file: %w", ErrStorageWrite, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: sync temp file: %w", ErrStorageWrite, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %w", ErrStorageWrite, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("%w: rename temp file: %w", ErrStorageWrite, err)
	}
	cleanup = false

	syncDirectory(g.journalDir)
	return nil
}

// ReadFile returns the content of filename.
func (g *Gateway) ReadFile(filename string) ([]byte, error) {
	if err := validateFilename(filename); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	data, err := g.journal.Read(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorageRead, filename, err)
	}
	return data, nil
}

// Stat describes one session file.
func (g *Gateway) Stat(filename string) (FileInfo, error) {
	if err := validateFilename(filename); err != nil {
		return FileInfo{}, fmt.Errorf("%w: %w", ErrStorageRead, err)
	}
	fi, err := os.Stat(filepath.Join(g.journalDir, filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return FileInfo{}, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return FileInfo{}, fmt.Errorf("%w: stat %s: %w", ErrStorageRead, filename, err)
	}
	return FileInfo{Name: filename, Modified: fi.ModTime(), Size: fi.Size()}, nil
}

// ListDirectory returns every saved session file with its modification time.
// A missing journal directory yields an empty list.
func (g *Gateway) ListDirectory(ctx context.Context) ([]FileInfo, error) {
	info, err := os.Stat(g.journalDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []FileInfo{}, nil
		}
		return nil, fmt.Errorf("%w: stat journal directory: %w", ErrStorageRead, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrStorageRead, g.journalDir)
	}
	// diskv swallows walk errors, so check readability up front.
	if _, err := os.ReadDir(g.journalDir); err != nil {
		return nil, fmt.Errorf("%w: list journal directory: %w", ErrStorageRead, err)
	}

	files := make([]FileInfo, 0)
	for key := range g.journal.Keys(ctx.Done()) {
		if strings.ContainsRune(key, filepath.Separator) || !session.IsSessionFile(key) {
			continue
		}
		fi, err := os.Stat(filepath.Join(g.journalDir, key))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Renamed or removed while listing.
				continue
			}
			return nil, fmt.Errorf("%w: stat %s: %w", ErrStorageRead, key, err)
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		files = append(files, FileInfo{Name: key, Modified: fi.ModTime(), Size: fi.Size()})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

// ReadSettings loads the settings document. A missing file is the first
// launch and yields the default record without error. A file that does not
// parse yields the default record together with ErrSettingsCorrupt.
func (g *Gateway) ReadSettings() (settings.Record, error) {
	key := filepath.Base(g.settingsPath)
	data, err := g.prefs.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return settings.Defaults(), nil
		}
		return settings.Defaults(), fmt.Errorf("%w: read settings: %w", ErrStorageRead, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return settings.Defaults(), fmt.Errorf("%w: %s is empty", ErrSettingsCorrupt, g.settingsPath)
	}
	var rec settings.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return settings.Defaults(), fmt.Errorf("%w: %w", ErrSettingsCorrupt, err)
	}
	return rec, nil
}

// WriteSettingsAtomic replaces the settings document. diskv writes into a
// temp file in the settings directory and renames it into place.
func (g *Gateway) WriteSettingsAtomic(rec settings.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode settings: %w", ErrStorageWrite, err)
	}
	key := filepath.Base(g.settingsPath)
	if err := g.prefs.WriteStream(key, bytes.NewReader(data), true); err != nil {
		return fmt.Errorf("%w: write settings: %w", ErrStorageWrite, err)
	}
	return nil
}

func validateFilename(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if strings.ContainsAny(name, `/\`) || !filepath.IsLocal(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	if session.IsTemp(name) {
		return fmt.Errorf("%w: %q is reserved for temp files", ErrInvalidFilename, name)
	}
	return nil
}

func syncDirectory(dir string) {
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
}

func flatTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func flatInverseTransform(pathKey *diskv.PathKey) string {
	return filepath.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName)...)
}
