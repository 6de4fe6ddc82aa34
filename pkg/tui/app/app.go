// Package teaui hosts the Bubble Tea program for the kammi TUI.
package teaui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/autosave"
	"tableflip.dev/kammi/pkg/session"
	"tableflip.dev/kammi/pkg/store"
	"tableflip.dev/kammi/pkg/tui/components/help"
	palette "tableflip.dev/kammi/pkg/theme"
	"tableflip.dev/kammi/pkg/tui/theme"
)

type screen int

const (
	screenOnboardName screen = iota
	screenOnboardTheme
	screenGreeting
	screenWriting
	screenMenu
	screenBrowse
	screenSettings
)

// Start selects what the program shows after onboarding.
type Start int

const (
	// StartGreeting shows the greeting with its choices.
	StartGreeting Start = iota
	// StartNew opens a fresh session.
	StartNew
	// StartContinue reopens the last session.
	StartContinue
	// StartOpen opens Options.Filename.
	StartOpen
)

// Options configure the program.
type Options struct {
	Start    Start
	Filename string
}

const maxEditorWidth = 80

// Model is the root Bubble Tea model.
type Model struct {
	svc    *app.Service
	ctx    context.Context
	cancel context.CancelFunc
	opts   Options

	screen     screen
	returnTo   screen
	termWidth  int
	termHeight int

	bundle palette.Bundle
	theme  theme.Theme

	nameInput   textinput.Model
	themeChoice int

	options []option
	cursor  int

	editor   textarea.Model
	sess     *session.Session
	coord    *autosave.Coordinator
	lastText string
	results  chan autosave.Result
	lastSave autosave.Result
	savedAt  time.Time

	browse      list.Model
	hasSessions bool

	form *settingsForm
	help *help.Model

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	status   string
	quitting bool
}

// New builds the model. svc must be fully configured. The model's background
// work stops when ctx is cancelled.
func New(ctx context.Context, svc *app.Service, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = 64
	ti.Prompt = ""
	ti.VirtualCursor = true

	ta := textarea.New()
	ta.Placeholder = "Start writing..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0

	delegate := list.NewDefaultDelegate()
	browse := list.New([]list.Item{}, delegate, 40, 20)
	browse.Title = "Sessions"
	browse.SetShowStatusBar(false)
	browse.KeyMap.Quit.SetEnabled(false)
	browse.KeyMap.ForceQuit.SetEnabled(false)

	ctx, cancel := context.WithCancel(ctx)
	m := &Model{
		svc:       svc,
		ctx:       ctx,
		cancel:    cancel,
		opts:      opts,
		nameInput: ti,
		editor:    ta,
		browse:    browse,
		results:   make(chan autosave.Result, 16),
	}
	m.applyBundle(palette.Resolve(svc.Settings.Current()))
	return m
}

// Init decides the first screen and starts background watchers.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{startWatchCmd(m.ctx, m.svc), m.waitForSave(), m.loadCatalog()}
	if m.svc.Settings.IsFirstLaunch() {
		m.screen = screenOnboardName
		cmds = append(cmds, m.nameInput.Focus())
		return tea.Batch(cmds...)
	}
	cmds = append(cmds, m.start())
	return tea.Batch(cmds...)
}

// start leaves onboarding for the screen the options ask for.
func (m *Model) start() tea.Cmd {
	switch m.opts.Start {
	case StartNew:
		return m.openNew()
	case StartContinue:
		return m.openCmd(m.svc.ContinueLastSession)
	case StartOpen:
		name := session.FilenameFor(m.opts.Filename)
		return m.openCmd(func() (*session.Session, error) { return m.svc.OpenSession(name) })
	default:
		m.showGreeting()
		return nil
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.setStatus("ERR: " + msg.err.Error())
	case sessionOpenedMsg:
		m.handleSessionOpened(msg, &cmds)
	case catalogLoadedMsg:
		m.handleCatalogLoaded(msg, &cmds)
	case saveResultMsg:
		m.handleSaveResult(msg.result)
		cmds = append(cmds, m.waitForSave())
	case settingsSavedMsg:
		m.handleSettingsSaved(msg, &cmds)
	case flushedMsg:
		if msg.err != nil {
			m.setStatus("ERR: " + msg.err.Error())
		}
		if m.quitting {
			m.stopWatch()
			m.cancel()
			return m, tea.Quit
		}
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("ERR: watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.loadCatalog())
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		if !m.quitting {
			cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
		}
	case tea.KeyPressMsg:
		if m.quitting {
			break
		}
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.handleHelpKey(msg, &cmds) {
			break
		}
		m.handleKeyPress(msg, &cmds)
	default:
		if m.help != nil {
			if cmd := m.help.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
			break
		}
		m.routeToFocused(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

// handleHelpKey opens and drives the help overlay. It reports whether the
// key was consumed.
func (m *Model) handleHelpKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) bool {
	key := msg.String()
	if m.help != nil {
		switch key {
		case "f1", "esc", "q", "?":
			m.help = nil
		default:
			if cmd := m.help.Update(msg); cmd != nil {
				*cmds = append(*cmds, cmd)
			}
		}
		return true
	}
	open := key == "f1"
	if key == "?" && (m.screen == screenGreeting || m.screen == screenMenu) {
		open = true
	}
	if !open {
		return false
	}
	m.help = help.New(m.termWidth-4, m.termHeight-2, m.theme.Modal.Frame, m.theme.Modal.Title)
	return true
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch m.screen {
	case screenOnboardName:
		m.handleOnboardNameKey(msg, cmds)
	case screenOnboardTheme:
		m.handleOnboardThemeKey(msg, cmds)
	case screenGreeting, screenMenu:
		m.handleOptionsKey(msg, cmds)
	case screenWriting:
		m.handleWritingKey(msg, cmds)
	case screenBrowse:
		m.handleBrowseKey(msg, cmds)
	case screenSettings:
		m.handleSettingsKey(msg, cmds)
	}
}

// routeToFocused passes non-key messages such as cursor blinks to the
// component that has focus.
func (m *Model) routeToFocused(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd
	switch m.screen {
	case screenOnboardName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case screenWriting:
		m.editor, cmd = m.editor.Update(msg)
	case screenBrowse:
		m.browse, cmd = m.browse.Update(msg)
	case screenSettings:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	}
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) View() string {
	if m.help != nil {
		return m.page(m.help.View(), lipgloss.Center)
	}
	var body string
	switch m.screen {
	case screenOnboardName:
		body = m.viewOnboardName()
	case screenOnboardTheme:
		body = m.viewOnboardTheme()
	case screenGreeting, screenMenu:
		body = m.viewOptions()
	case screenWriting:
		return m.page(m.viewWriting(), lipgloss.Top)
	case screenBrowse:
		return m.page(m.viewBrowse(), lipgloss.Top)
	case screenSettings:
		body = m.viewSettings()
	}
	if m.status != "" {
		body = lipgloss.JoinVertical(lipgloss.Center, body, "", m.theme.Footer.Status.Render(m.status))
	}
	return m.page(body, lipgloss.Center)
}

// page fills the terminal with the theme background.
func (m *Model) page(body string, vertical lipgloss.Position) string {
	if m.termWidth == 0 || m.termHeight == 0 {
		return body
	}
	return m.theme.Page.Base.
		Width(m.termWidth).
		Height(m.termHeight).
		Align(lipgloss.Center).
		AlignVertical(vertical).
		Render(body)
}

func (m *Model) applyBundle(b palette.Bundle) {
	m.bundle = b
	m.theme = theme.FromBundle(b)
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	width := m.termWidth - 4
	if width > maxEditorWidth {
		width = maxEditorWidth
	}
	if width < 10 {
		width = 10
	}
	height := m.termHeight - 3
	if height < 3 {
		height = 3
	}
	if m.help != nil {
		m.help.SetSize(m.termWidth-4, m.termHeight-2)
	}
	m.editor.SetWidth(width)
	m.editor.SetHeight(height)
	m.browse.SetSize(width, height)
}

func (m *Model) setStatus(s string) {
	m.status = strings.TrimSpace(s)
}

// quit flushes the open session before the program exits.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	coord := m.coord
	return func() tea.Msg {
		return flushedMsg{err: flushCoordinator(m.ctx, coord)}
	}
}

// Flush saves the open session, if any. It is safe to call after the program
// has exited.
func (m *Model) Flush(ctx context.Context) error {
	return flushCoordinator(ctx, m.coord)
}

// Run launches the Bubble Tea UI and flushes the open session on exit.
// Cancelling ctx stops the program the same way quitting does.
func Run(ctx context.Context, svc *app.Service, opts Options) error {
	m := New(ctx, svc, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return m.finish(ctx, err)
}

// finish saves what is left once the program has stopped. A program stopped
// by ctx is not an error.
func (m *Model) finish(ctx context.Context, runErr error) error {
	if ctx.Err() != nil {
		runErr = nil
	}
	m.cancel()
	if err := m.Flush(context.WithoutCancel(ctx)); err != nil && runErr == nil {
		return err
	}
	return runErr
}
