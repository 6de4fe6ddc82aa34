// Package app is the boundary between the user interfaces and the journal.
// It wires storage, settings and autosave together and converts failures
// into plain result values.
package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"tableflip.dev/kammi/pkg/autosave"
	"tableflip.dev/kammi/pkg/catalog"
	"tableflip.dev/kammi/pkg/settings"
	"tableflip.dev/kammi/pkg/store"
)

// Storage is the session file access the service needs. store.Gateway
// implements it.
type Storage interface {
	EnsureJournalDirectory() error
	WriteAtomic(filename string, content []byte) error
	ReadFile(filename string) ([]byte, error)
	Stat(filename string) (store.FileInfo, error)
}

// Service provides the journal operations shared by the CLI and the TUI.
type Service struct {
	Gateway  Storage
	Settings *settings.Manager
	Catalog  *catalog.Catalog
	// Now is the clock used for new session names and greetings.
	Now func() time.Time
	// Delay is the autosave quiet period.
	Delay  time.Duration
	Logger *log.Logger
}

var (
	// ErrNoLastSession is returned when there is no session to continue.
	ErrNoLastSession = errors.New("app: no last session")

	errNoCatalog = errors.New("app: no catalog configured")
)

// New wires a Service over the gateway described by cfg and loads settings.
// A settings load failure is logged and the defaults are used.
func New(cfg store.Config, logger *log.Logger) (*Service, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg == nil {
		var err error
		if cfg, err = store.LoadConfig(); err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
	}
	g, err := store.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	mgr := settings.NewManager(g, settings.WithLogger(logger))
	if _, err := mgr.Load(); err != nil {
		logger.Printf("app: %v", err)
	}
	return &Service{
		Gateway:  g,
		Settings: mgr,
		Catalog:  catalog.New(g),
		Now:      time.Now,
		Delay:    cfg.AutosaveDelay(),
		Logger:   logger,
	}, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

func (s *Service) delay() time.Duration {
	if s.Delay > 0 {
		return s.Delay
	}
	return autosave.DefaultDelay
}

func (s *Service) ready() error {
	if s.Gateway == nil || s.Settings == nil {
		return errors.New("app: service not configured")
	}
	return nil
}
