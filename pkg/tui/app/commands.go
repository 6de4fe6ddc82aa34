package teaui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/autosave"
	"tableflip.dev/kammi/pkg/catalog"
	"tableflip.dev/kammi/pkg/session"
	"tableflip.dev/kammi/pkg/settings"
	"tableflip.dev/kammi/pkg/store"
)

const flushTimeout = 5 * time.Second

type errMsg struct {
	err error
}

type sessionOpenedMsg struct {
	sess *session.Session
	err  error
	// prev is the coordinator that could not be flushed. Its final save may
	// still be running.
	prev *autosave.Coordinator
}

type catalogLoadedMsg struct {
	entries []catalog.Entry
	err     error
}

type saveResultMsg struct {
	result autosave.Result
}

type settingsSavedMsg struct {
	err error
}

type flushedMsg struct {
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

// openCmd flushes the session being edited, if any, before loading the next.
func (m *Model) openCmd(load func() (*session.Session, error)) tea.Cmd {
	prev := m.coord
	m.coord = nil
	ctx := m.ctx
	return func() tea.Msg {
		if err := flushCoordinator(ctx, prev); err != nil {
			return sessionOpenedMsg{err: err, prev: prev}
		}
		sess, err := load()
		return sessionOpenedMsg{sess: sess, err: err}
	}
}

func (m *Model) openNew() tea.Cmd {
	return m.openCmd(func() (*session.Session, error) {
		return m.svc.StartNewSession(), nil
	})
}

func (m *Model) loadCatalog() tea.Cmd {
	ctx := m.ctx
	cat := m.svc.Catalog
	return func() tea.Msg {
		entries, err := cat.List(ctx)
		return catalogLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) saveSettings(fn func(*settings.Record) error) tea.Cmd {
	mgr := m.svc.Settings
	return func() tea.Msg {
		return settingsSavedMsg{err: mgr.Update(fn)}
	}
}

// onResult runs on the coordinator's goroutine and must not block.
func (m *Model) onResult(res autosave.Result) {
	select {
	case m.results <- res:
	default:
	}
}

func (m *Model) waitForSave() tea.Cmd {
	ch := m.results
	return func() tea.Msg {
		return saveResultMsg{result: <-ch}
	}
}

func flushCoordinator(parent context.Context, coord *autosave.Coordinator) error {
	if coord == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(parent, flushTimeout)
	defer cancel()
	err := coord.Flush(ctx)
	if errors.Is(err, autosave.ErrClosed) {
		return nil
	}
	return err
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	return func() tea.Msg {
		if svc == nil || svc.Catalog == nil {
			return watchStartedMsg{err: errors.New("catalog unavailable")}
		}
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Catalog.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}
