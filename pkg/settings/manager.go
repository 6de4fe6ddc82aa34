package settings

import (
	"errors"
	"fmt"
	"log"
	"sync"
)

// Store persists the settings record. store.Gateway implements it.
type Store interface {
	ReadSettings() (Record, error)
	WriteSettingsAtomic(Record) error
}

// ErrNoStore is returned when a Manager has nothing to persist to.
var ErrNoStore = errors.New("settings: no store configured")

// Manager mediates all reads and mutations of the settings record.
//
// Manager is safe for concurrent use. Every mutation is a whole-record
// read-modify-write performed under one lock, so a theme change and an
// autosave reconciliation cannot drop each other's update.
type Manager struct {
	store  Store
	logger *log.Logger

	mu      sync.Mutex
	current Record
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager returns a Manager holding the default record until Load.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		logger:  log.Default(),
		current: Defaults(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads the record from the store. On failure the manager keeps a
// default record so onboarding can still proceed, and the error is returned
// as a warning for the caller.
func (m *Manager) Load() (Record, error) {
	if m.store == nil {
		return Defaults(), ErrNoStore
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.store.ReadSettings()
	if err != nil {
		m.logger.Printf("settings: load: %v (using defaults)", err)
		m.current = Defaults()
		return m.current.Clone(), err
	}
	m.current = rec.Clone()
	return rec, nil
}

// Current returns a copy of the in-memory record.
func (m *Manager) Current() Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.Clone()
}

// IsFirstLaunch reports whether the user still needs onboarding.
func (m *Manager) IsFirstLaunch() bool {
	return m.Current().IsFirstLaunch()
}

// Save replaces the whole record. The in-memory copy changes only after the
// store accepted it.
func (m *Manager) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persist(rec)
}

// Update applies fn to a copy of the current record and persists the result.
// Nothing is written when fn leaves the record unchanged.
func (m *Manager) Update(fn func(*Record) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.current.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if next.Equal(m.current) {
		return nil
	}
	return m.persist(next)
}

// SetLastSession points the record at filename.
func (m *Manager) SetLastSession(filename string) error {
	return m.Update(func(r *Record) error {
		r.LastSessionFile = filename
		return nil
	})
}

func (m *Manager) persist(rec Record) error {
	if m.store == nil {
		return ErrNoStore
	}
	if err := m.store.WriteSettingsAtomic(rec); err != nil {
		m.logger.Printf("settings: save: %v", err)
		return fmt.Errorf("settings: save: %w", err)
	}
	m.current = rec.Clone()
	return nil
}
