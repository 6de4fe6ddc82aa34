package teaui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/kammi/pkg/settings"
	palette "tableflip.dev/kammi/pkg/theme"
)

type settingsField int

const (
	fieldName settingsField = iota
	fieldTheme
	fieldBackground
	fieldFade
	fieldCount
)

// settingsForm edits a working copy of the settings record. Nothing is
// persisted until it is submitted.
type settingsForm struct {
	focus      settingsField
	name       textinput.Model
	background textinput.Model
	theme      string
	fade       bool
	original   settings.Record
}

func newSettingsForm(rec settings.Record) *settingsForm {
	name := textinput.New()
	name.Prompt = ""
	name.CharLimit = 64
	name.Placeholder = "Your name"
	name.VirtualCursor = true
	name.SetValue(rec.Name)

	bg := textinput.New()
	bg.Prompt = ""
	bg.CharLimit = 7
	bg.Placeholder = "#1a1a1a"
	bg.VirtualCursor = true
	bg.SetValue(rec.CustomTheme.BgColor)

	return &settingsForm{
		name:       name,
		background: bg,
		theme:      rec.Theme,
		fade:       rec.FadeEffect,
		original:   rec,
	}
}

func (f *settingsForm) focusField(field settingsField) tea.Cmd {
	f.focus = field
	f.name.Blur()
	f.background.Blur()
	switch field {
	case fieldName:
		return f.name.Focus()
	case fieldBackground:
		return f.background.Focus()
	}
	return nil
}

func (f *settingsForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldBackground:
		f.background, cmd = f.background.Update(msg)
	}
	return cmd
}

// record applies the form to a copy of rec.
func (f *settingsForm) record(rec settings.Record) (settings.Record, error) {
	if name := strings.TrimSpace(f.name.Value()); name != "" {
		rec.Name = name
	}
	rec.FadeEffect = f.fade
	if f.theme != settings.ThemeCustom {
		rec.Theme = f.theme
		return rec, nil
	}
	custom, err := palette.Custom(rec.CustomTheme.FontFamily, rec.CustomTheme.FontSize, f.background.Value())
	if err != nil {
		return rec, err
	}
	if rec.Theme != settings.ThemeCustom {
		saved := palette.Resolve(rec).Theme
		rec.SavedTheme = &saved
	}
	rec.Theme = settings.ThemeCustom
	rec.CustomTheme = custom.Theme
	return rec, nil
}

func (m *Model) showSettings() tea.Cmd {
	if m.screen != screenSettings {
		m.returnTo = m.screen
	}
	m.screen = screenSettings
	m.form = newSettingsForm(m.svc.Settings.Current())
	return m.form.focusField(fieldName)
}

func (m *Model) closeSettings() {
	m.form = nil
	m.applyBundle(palette.Resolve(m.svc.Settings.Current()))
	if m.returnTo == screenMenu && m.sess != nil {
		m.showMenu()
		return
	}
	m.showGreeting()
}

func (m *Model) handleSettingsKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	f := m.form
	if f == nil {
		return
	}
	switch msg.String() {
	case "esc":
		m.setStatus("")
		m.closeSettings()
		return
	case "tab", "down":
		*cmds = append(*cmds, f.focusField((f.focus+1)%fieldCount))
		return
	case "shift+tab", "up":
		*cmds = append(*cmds, f.focusField((f.focus+fieldCount-1)%fieldCount))
		return
	case "enter":
		if _, err := f.record(m.svc.Settings.Current()); err != nil {
			m.setStatus(fmt.Sprintf("Background %q is not a colour", f.background.Value()))
			return
		}
		*cmds = append(*cmds, m.saveSettings(func(r *settings.Record) error {
			next, err := f.record(*r)
			if err != nil {
				return err
			}
			*r = next
			return nil
		}))
		return
	}

	switch f.focus {
	case fieldTheme:
		switch msg.String() {
		case "left", "h":
			f.theme = prevTheme(f.theme)
		case "right", "l", "space", " ":
			f.theme = palette.Next(f.theme)
		default:
			return
		}
		m.previewForm()
	case fieldFade:
		switch msg.String() {
		case "left", "right", "h", "l", "space", " ":
			f.fade = !f.fade
		}
	default:
		if cmd := f.update(msg); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
		if f.focus == fieldBackground {
			m.previewForm()
		}
	}
}

// previewForm restyles the screen with the form's appearance when it is valid.
func (m *Model) previewForm() {
	rec, err := m.form.record(m.svc.Settings.Current())
	if err != nil {
		return
	}
	m.applyBundle(palette.Resolve(rec))
}

func (m *Model) handleSettingsSaved(msg settingsSavedMsg, cmds *[]tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, palette.ErrInvalidColor) {
			m.setStatus("That background is not a colour")
		} else {
			m.setStatus("Settings not saved: " + msg.err.Error())
		}
		return
	}
	m.applyBundle(palette.Resolve(m.svc.Settings.Current()))
	switch m.screen {
	case screenOnboardTheme:
		m.setStatus("")
		if cmd := m.start(); cmd != nil {
			*cmds = append(*cmds, cmd)
		}
	case screenSettings:
		m.setStatus("Settings saved")
		m.closeSettings()
	}
}

func (m *Model) viewSettings() string {
	t := m.theme
	f := m.form
	if f == nil {
		return ""
	}
	label := func(field settingsField, text string) string {
		return m.menuLine(fmt.Sprintf("%-11s", text), f.focus == field)
	}
	fade := "off"
	if f.fade {
		fade = "on"
	}
	themeValue := "‹ " + f.theme + " ›"
	bgValue := f.background.View()
	if f.theme != settings.ThemeCustom {
		bgValue = t.Page.Dim.Render(f.background.Value() + " (custom only)")
	}
	rows := []string{
		t.Modal.Title.Render("Settings"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldName, "Name"), t.Page.Text.Render(f.name.View())),
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldTheme, "Theme"), t.Page.Text.Render(themeValue)),
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldBackground, "Background"), bgValue),
		lipgloss.JoinHorizontal(lipgloss.Top, label(fieldFade, "Fade"), t.Page.Text.Render(fade)),
		"",
		t.Footer.Help.Render("tab move • ←/→ change • enter save • esc cancel"),
	}
	return t.Modal.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func prevTheme(current string) string {
	names := palette.Names()
	i := indexOf(names, current)
	return names[(i+len(names)-1)%len(names)]
}
