// Package catalog lists the sessions in the journal, newest first.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tableflip.dev/kammi/pkg/session"
	"tableflip.dev/kammi/pkg/store"
)

// Source is the storage the catalog reads. store.Gateway implements it.
type Source interface {
	EnsureJournalDirectory() error
	ListDirectory(ctx context.Context) ([]store.FileInfo, error)
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Entry is one session as shown in the browse list.
type Entry struct {
	Filename    string    `json:"filename"`
	Modified    time.Time `json:"modified"`
	DisplayName string    `json:"displayName"`
	Size        int64     `json:"size"`
}

// Catalog enumerates sessions. It holds no state between calls; every List
// reflects the directory as it is now.
type Catalog struct {
	source Source
}

// New returns a Catalog reading from source.
func New(source Source) *Catalog {
	return &Catalog{source: source}
}

// List returns every session file ordered by modification time, most recent
// first. Files with equal times are ordered by name so the result is stable.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	if err := c.source.EnsureJournalDirectory(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	files, err := c.source.ListDirectory(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	entries := make([]Entry, 0, len(files))
	for _, f := range files {
		if !session.IsSessionFile(f.Name) {
			continue
		}
		entries = append(entries, Entry{
			Filename:    f.Name,
			Modified:    f.Modified,
			DisplayName: session.DisplayName(f.Name),
			Size:        f.Size,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Modified.Equal(entries[j].Modified) {
			return entries[i].Modified.After(entries[j].Modified)
		}
		return entries[i].Filename < entries[j].Filename
	})
	return entries, nil
}

// HasSessions reports whether at least one session exists.
func (c *Catalog) HasSessions(ctx context.Context) (bool, error) {
	entries, err := c.List(ctx)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// Watch forwards journal change events until ctx is done.
func (c *Catalog) Watch(ctx context.Context) (<-chan store.Event, error) {
	return c.source.Watch(ctx)
}
