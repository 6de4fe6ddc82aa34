// Package mcp provides the Model Context Protocol server integration for kammi.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/document"
	"tableflip.dev/kammi/pkg/session"
	"tableflip.dev/kammi/pkg/settings"
	"tableflip.dev/kammi/pkg/store"
	"tableflip.dev/kammi/pkg/theme"
)

// Service adapts the application service to the shapes the MCP server
// returns.
type Service struct {
	App *app.Service
}

// ErrSessionNotFound is returned when a session file does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionDTO is a transport-friendly projection of a session.
type SessionDTO struct {
	Filename    string `json:"filename"`
	DisplayName string `json:"displayName"`
	Modified    string `json:"modified,omitempty"`
	Words       int    `json:"words,omitempty"`
	Text        string `json:"text,omitempty"`
}

// SettingsDTO is the settings record plus the colours it resolves to.
type SettingsDTO struct {
	settings.Record
	Appearance theme.Bundle `json:"appearance"`
}

// NewService builds a service wrapper around svc.
func NewService(svc *app.Service) *Service {
	return &Service{App: svc}
}

func (s *Service) ready() error {
	if s.App == nil {
		return errors.New("service is not configured")
	}
	return nil
}

// Settings returns the current record. A corrupt settings file reads as
// defaults.
func (s *Service) Settings() (SettingsDTO, error) {
	if err := s.ready(); err != nil {
		return SettingsDTO{}, err
	}
	res := s.App.GetSettings()
	if !res.Success || res.Settings == nil {
		return SettingsDTO{}, errors.New(res.Error)
	}
	return SettingsDTO{Record: *res.Settings, Appearance: theme.Resolve(*res.Settings)}, nil
}

// ListSessions returns every session, newest first, limited to limit when it
// is positive.
func (s *Service) ListSessions(ctx context.Context, limit int) ([]SessionDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	res := s.App.ListSessions(ctx)
	if !res.Success {
		return nil, errors.New(res.Error)
	}
	infos := res.Sessions
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	out := make([]SessionDTO, 0, len(infos))
	for _, info := range infos {
		out = append(out, SessionDTO{
			Filename:    info.Filename,
			DisplayName: info.DisplayName,
			Modified:    formatTime(info.Modified),
		})
	}
	return out, nil
}

// ReadSession returns a session with its plain text.
func (s *Service) ReadSession(filename string) (SessionDTO, error) {
	if err := s.ready(); err != nil {
		return SessionDTO{}, err
	}
	name := session.FilenameFor(filename)
	if name == "" {
		return SessionDTO{}, errors.New("filename is required")
	}
	sess, err := s.App.OpenSession(name)
	if errors.Is(err, store.ErrNotFound) {
		return SessionDTO{}, fmt.Errorf("%w: %s", ErrSessionNotFound, name)
	}
	if err != nil {
		return SessionDTO{}, err
	}
	return toDTO(sess.Filename, sess.Content, sess.ModifiedAt), nil
}

// SaveSession writes text to filename, or to a new session when filename is
// empty.
func (s *Service) SaveSession(ctx context.Context, filename, text string, appendText bool) (SessionDTO, error) {
	if err := s.ready(); err != nil {
		return SessionDTO{}, err
	}
	if strings.TrimSpace(text) == "" {
		return SessionDTO{}, errors.New("text is required")
	}
	sess, err := s.App.SaveText(ctx, filename, text, appendText)
	if err != nil {
		return SessionDTO{}, err
	}
	return toDTO(sess.Filename, sess.Content, time.Time{}), nil
}

// Report summarizes the sessions of the last days days.
func (s *Service) Report(ctx context.Context, days int) (app.ReportResult, error) {
	if err := s.ready(); err != nil {
		return app.ReportResult{}, err
	}
	if days <= 0 {
		days = 7
	}
	until := time.Now()
	if s.App.Now != nil {
		until = s.App.Now()
	}
	return s.App.Report(ctx, until.AddDate(0, 0, -days), until)
}

func toDTO(filename, content string, modified time.Time) SessionDTO {
	return SessionDTO{
		Filename:    filename,
		DisplayName: session.DisplayName(filename),
		Modified:    formatTime(modified),
		Words:       document.WordCount(content),
		Text:        document.ToText(content),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
