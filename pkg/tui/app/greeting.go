package teaui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/session"
)

type action int

const (
	actContinue action = iota
	actNew
	actBrowse
	actResume
	actSettings
	actQuit
)

type option struct {
	label string
	act   action
}

func (m *Model) showGreeting() {
	m.screen = screenGreeting
	m.cursor = 0
	m.options = m.greetingOptions()
}

func (m *Model) greetingOptions() []option {
	var opts []option
	if m.svc.Settings.Current().LastSessionFile != "" {
		opts = append(opts, option{label: "Continue writing", act: actContinue})
	}
	opts = append(opts, option{label: "Start a new session", act: actNew})
	if m.hasSessions {
		opts = append(opts, option{label: "Browse sessions", act: actBrowse})
	}
	return opts
}

func (m *Model) showMenu() {
	m.screen = screenMenu
	m.cursor = 0
	m.options = []option{
		{label: "Resume writing", act: actResume},
		{label: "New session", act: actNew},
	}
	if m.hasSessions {
		m.options = append(m.options, option{label: "Browse sessions", act: actBrowse})
	}
	m.options = append(m.options,
		option{label: "Settings", act: actSettings},
		option{label: "Quit", act: actQuit},
	)
}

func (m *Model) handleOptionsKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "q":
		if m.screen == screenGreeting {
			*cmds = append(*cmds, m.quit())
		}
	case "esc":
		if m.screen == screenMenu {
			m.resumeWriting(cmds)
		}
	case "enter":
		if m.cursor < len(m.options) {
			m.choose(m.options[m.cursor].act, cmds)
		}
	}
}

func (m *Model) choose(act action, cmds *[]tea.Cmd) {
	m.setStatus("")
	switch act {
	case actContinue:
		*cmds = append(*cmds, m.openCmd(m.svc.ContinueLastSession))
	case actNew:
		*cmds = append(*cmds, m.openNew())
	case actBrowse:
		m.showBrowse()
		*cmds = append(*cmds, m.loadCatalog())
	case actResume:
		m.resumeWriting(cmds)
	case actSettings:
		*cmds = append(*cmds, m.showSettings())
	case actQuit:
		*cmds = append(*cmds, m.quit())
	}
}

func (m *Model) resumeWriting(cmds *[]tea.Cmd) {
	if m.sess == nil {
		m.showGreeting()
		return
	}
	m.screen = screenWriting
	*cmds = append(*cmds, m.editor.Focus())
}

func (m *Model) handleSessionOpened(msg sessionOpenedMsg, cmds *[]tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, app.ErrNoLastSession) {
			m.setStatus("No previous session yet")
		} else {
			m.setStatus("ERR: " + msg.err.Error())
		}
		if m.reattach(msg.prev) {
			return
		}
		if m.screen != screenBrowse {
			m.showGreeting()
		}
		return
	}
	m.attach(msg.sess)
	m.setStatus("")
	m.screen = screenWriting
	*cmds = append(*cmds, m.editor.Focus())
}

func (m *Model) viewOptions() string {
	t := m.theme
	var title string
	if m.screen == screenGreeting {
		title = m.svc.Greeting()
	} else if m.sess != nil {
		title = session.DisplayName(m.sess.Filename)
	} else {
		title = "kammi"
	}
	lines := []string{t.Page.Title.Render(title), ""}
	for i, opt := range m.options {
		lines = append(lines, m.menuLine(opt.label, i == m.cursor))
	}
	hint := "↑/↓ move • enter choose • ? keys • q quit"
	if m.screen == screenMenu {
		hint = "↑/↓ move • enter choose • ? keys • esc resume"
	}
	lines = append(lines, "", t.Footer.Help.Render(hint))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
