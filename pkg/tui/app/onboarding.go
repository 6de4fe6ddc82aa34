package teaui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/kammi/pkg/settings"
	palette "tableflip.dev/kammi/pkg/theme"
)

func (m *Model) handleOnboardNameKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	switch msg.String() {
	case "enter":
		if strings.TrimSpace(m.nameInput.Value()) == "" {
			m.setStatus("Tell us what to call you")
			return
		}
		m.nameInput.Blur()
		m.setStatus("")
		m.themeChoice = indexOf(palette.Names(), palette.Suggest())
		m.previewChoice()
		m.screen = screenOnboardTheme
		return
	case "esc":
		*cmds = append(*cmds, m.quit())
		return
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) handleOnboardThemeKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	names := palette.Names()
	switch msg.String() {
	case "up", "k", "left", "h", "shift+tab":
		m.themeChoice = (m.themeChoice + len(names) - 1) % len(names)
		m.previewChoice()
	case "down", "j", "right", "l", "tab":
		m.themeChoice = (m.themeChoice + 1) % len(names)
		m.previewChoice()
	case "esc":
		m.screen = screenOnboardName
		*cmds = append(*cmds, m.nameInput.Focus())
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		choice := names[m.themeChoice]
		*cmds = append(*cmds, m.saveSettings(func(r *settings.Record) error {
			r.Name = name
			r.Theme = choice
			return nil
		}))
	}
}

// previewChoice restyles the screen with the highlighted theme.
func (m *Model) previewChoice() {
	rec := m.svc.Settings.Current()
	rec.Theme = palette.Names()[m.themeChoice]
	m.applyBundle(palette.Resolve(rec))
}

func (m *Model) viewOnboardName() string {
	t := m.theme
	return lipgloss.JoinVertical(lipgloss.Left,
		t.Modal.Title.Render("Welcome to kammi"),
		"",
		t.Modal.Body.Render("What should we call you?"),
		"",
		t.Page.Text.Render(m.nameInput.View()),
		"",
		t.Footer.Help.Render("enter continue • esc quit"),
	)
}

func (m *Model) viewOnboardTheme() string {
	t := m.theme
	lines := []string{
		t.Modal.Title.Render("Pick a look"),
		"",
	}
	for i, name := range palette.Names() {
		lines = append(lines, m.menuLine(name, i == m.themeChoice))
	}
	lines = append(lines, "", t.Footer.Help.Render("↑/↓ preview • enter save • esc back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) menuLine(label string, selected bool) string {
	if selected {
		return m.theme.Menu.Selected.Render(label)
	}
	return m.theme.Menu.Item.Render(label)
}

func indexOf(list []string, want string) int {
	for i, s := range list {
		if s == want {
			return i
		}
	}
	return 0
}
