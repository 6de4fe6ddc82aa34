package app

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kammi/pkg/autosave"
	"tableflip.dev/kammi/pkg/document"
	"tableflip.dev/kammi/pkg/session"
	"tableflip.dev/kammi/pkg/store"
)

// StartNewSession names a fresh, empty session after the current time.
// Nothing is written until the session has content.
func (s *Service) StartNewSession() *session.Session {
	return session.New(s.now())
}

// ContinueLastSession reopens the session named by the settings record. The
// pointer is advisory: if its file is gone the session comes back empty and
// is recreated on the next save.
func (s *Service) ContinueLastSession() (*session.Session, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	name := s.Settings.Current().LastSessionFile
	if name == "" {
		return nil, ErrNoLastSession
	}
	sess, err := s.OpenSession(name)
	if errors.Is(err, store.ErrNotFound) {
		s.logger().Printf("app: last session %q is missing, starting it empty", name)
		return &session.Session{Filename: name}, nil
	}
	return sess, err
}

// OpenSession loads an existing session by filename.
func (s *Service) OpenSession(filename string) (*session.Session, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	data, err := s.Gateway.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("app: open %q: %w", filename, err)
	}
	sess := &session.Session{Filename: filename, Content: string(data)}
	if fi, err := s.Gateway.Stat(filename); err == nil {
		sess.ModifiedAt = fi.Modified
	}
	return sess, nil
}

// Autosave returns an idle coordinator for sess, seeded with its current
// content. Every save recreates the journal directory if it has gone away.
func (s *Service) Autosave(sess *session.Session, opts ...autosave.Option) *autosave.Coordinator {
	base := []autosave.Option{
		autosave.WithDelay(s.delay()),
		autosave.WithLogger(s.logger()),
		autosave.WithInitialContent(sess.Content),
	}
	return autosave.New(sess.Filename, journalWriter{s.Gateway}, s.Settings, append(base, opts...)...)
}

// journalWriter ensures the journal directory before each atomic write.
type journalWriter struct {
	storage Storage
}

func (w journalWriter) WriteAtomic(filename string, content []byte) error {
	if err := w.storage.EnsureJournalDirectory(); err != nil {
		return err
	}
	return w.storage.WriteAtomic(filename, content)
}

// SaveText writes plain text to filename, or to a new session when filename
// is empty, through a one-shot autosave so the last-session pointer follows
// the same rules as the editor. With appendText the text goes after the
// session's existing content. Empty text writes nothing.
func (s *Service) SaveText(ctx context.Context, filename, text string, appendText bool) (*session.Session, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	sess := s.StartNewSession()
	if name := session.FilenameFor(filename); name != "" {
		var err error
		sess, err = s.OpenSession(name)
		switch {
		case errors.Is(err, store.ErrNotFound):
			sess = &session.Session{Filename: name}
		case err != nil:
			return nil, err
		}
	}
	if appendText && !document.IsEmpty(sess.Content) {
		text = document.ToText(sess.Content) + "\n" + text
	}

	doc := document.FromText(text)
	c := s.Autosave(sess)
	c.Changed(doc)
	if err := c.Flush(ctx); err != nil {
		return nil, err
	}
	sess.Content = doc
	return sess, nil
}
