package app

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/kammi/pkg/settings"
	"tableflip.dev/kammi/pkg/store"
)

// NotFoundMessage is the error text of ReadContent for a missing file.
const NotFoundMessage = "File not found"

// Result is the outcome of an operation with no payload.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SettingsResult carries the settings record on success.
type SettingsResult struct {
	Result
	Settings *settings.Record `json:"settings,omitempty"`
}

// ContentResult carries a session's content on success.
type ContentResult struct {
	Result
	Content string `json:"content"`
}

// SessionInfo is one row of ListSessions.
type SessionInfo struct {
	Filename    string    `json:"filename"`
	Modified    time.Time `json:"modified"`
	DisplayName string    `json:"displayName"`
}

// SessionsResult carries the catalog on success.
type SessionsResult struct {
	Result
	Sessions []SessionInfo `json:"sessions"`
}

func ok() Result {
	return Result{Success: true}
}

func failed(err error) Result {
	return Result{Error: err.Error()}
}

// GetSettings rereads the settings document. A missing or corrupt document
// still succeeds with the defaults; only other storage failures are
// reported.
func (s *Service) GetSettings() SettingsResult {
	if err := s.ready(); err != nil {
		return SettingsResult{Result: failed(err)}
	}
	rec, err := s.Settings.Load()
	if err != nil && !errors.Is(err, store.ErrSettingsCorrupt) {
		return SettingsResult{Result: failed(err)}
	}
	return SettingsResult{Result: ok(), Settings: &rec}
}

// SaveSettings replaces the whole settings record.
func (s *Service) SaveSettings(rec settings.Record) Result {
	if err := s.ready(); err != nil {
		return failed(err)
	}
	if err := s.Settings.Save(rec); err != nil {
		return failed(err)
	}
	return ok()
}

// SaveContent writes a session file, creating the journal directory first.
func (s *Service) SaveContent(filename, content string) Result {
	if err := s.ready(); err != nil {
		return failed(err)
	}
	if err := s.Gateway.EnsureJournalDirectory(); err != nil {
		s.logger().Printf("app: save %q: %v", filename, err)
		return failed(err)
	}
	if err := s.Gateway.WriteAtomic(filename, []byte(content)); err != nil {
		s.logger().Printf("app: save %q: %v", filename, err)
		return failed(err)
	}
	return ok()
}

// ReadContent returns a session file's content.
func (s *Service) ReadContent(filename string) ContentResult {
	if err := s.ready(); err != nil {
		return ContentResult{Result: failed(err)}
	}
	data, err := s.Gateway.ReadFile(filename)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ContentResult{Result: Result{Error: NotFoundMessage}}
		}
		return ContentResult{Result: failed(err)}
	}
	return ContentResult{Result: ok(), Content: string(data)}
}

// ListSessions returns every session, most recently modified first.
func (s *Service) ListSessions(ctx context.Context) SessionsResult {
	if s.Catalog == nil {
		return SessionsResult{Result: failed(errNoCatalog)}
	}
	entries, err := s.Catalog.List(ctx)
	if err != nil {
		return SessionsResult{Result: failed(err)}
	}
	out := make([]SessionInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, SessionInfo{
			Filename:    e.Filename,
			Modified:    e.Modified,
			DisplayName: e.DisplayName,
		})
	}
	return SessionsResult{Result: ok(), Sessions: out}
}
