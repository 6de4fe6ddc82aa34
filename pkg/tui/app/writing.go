package teaui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/kammi/pkg/autosave"
	"tableflip.dev/kammi/pkg/document"
	"tableflip.dev/kammi/pkg/session"
)

// attach makes sess the document being edited.
func (m *Model) attach(sess *session.Session) {
	m.sess = sess
	m.coord = m.svc.Autosave(sess, autosave.WithResultHook(m.onResult))
	m.editor.SetValue(document.ToText(sess.Content))
	m.lastText = m.editor.Value()
	m.lastSave = autosave.Result{}
	m.savedAt = time.Time{}
}

// reattach resumes autosaving the current session after a failed switch.
// When prev is set its edits were not saved, so they are queued again on a
// coordinator that writes only after prev's final save has returned. It
// reports whether there was a session to go back to.
func (m *Model) reattach(prev *autosave.Coordinator) bool {
	if m.sess == nil {
		return false
	}
	if m.coord == nil {
		content := document.FromText(m.editor.Value())
		opts := []autosave.Option{autosave.WithResultHook(m.onResult)}
		if prev == nil {
			m.sess.Content = content
		} else {
			opts = append(opts, autosave.WithAfter(prev.Done()))
		}
		m.coord = m.svc.Autosave(m.sess, opts...)
		if prev != nil {
			m.coord.Changed(content)
		}
	}
	return true
}

func (m *Model) handleWritingKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if msg.String() == "esc" {
		m.editor.Blur()
		m.showMenu()
		return
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	m.noteEdit()
}

// noteEdit hands the editor text to the autosave coordinator when it changed.
func (m *Model) noteEdit() {
	value := m.editor.Value()
	if value == m.lastText || m.coord == nil {
		return
	}
	m.lastText = value
	m.coord.Changed(document.FromText(value))
}

func (m *Model) handleSaveResult(res autosave.Result) {
	if m.coord == nil || res.Filename != m.coord.Filename() {
		return
	}
	m.lastSave = res
	switch {
	case res.Err != nil:
		m.setStatus("Not saved: " + res.Err.Error())
	case res.Skipped:
	default:
		m.savedAt = m.now()
		m.hasSessions = true
		if res.SettingsErr != nil {
			m.setStatus("Saved, but the last session was not recorded")
		} else if m.screen == screenWriting {
			m.setStatus("")
		}
	}
}

// saveState renders the autosave indicator for the status line.
func (m *Model) saveState() string {
	if m.coord == nil {
		return ""
	}
	switch m.coord.State() {
	case autosave.StatePendingSave:
		return "editing"
	case autosave.StateSaving, autosave.StateFlushOnExit:
		return "saving…"
	}
	switch {
	case m.lastSave.Err != nil:
		return "not saved"
	case !m.savedAt.IsZero():
		return "saved " + m.savedAt.Format(time.Kitchen)
	}
	return ""
}

func (m *Model) viewWriting() string {
	t := m.theme
	editor := t.Page.Text.Render(m.editor.View())

	words := document.WordCount(document.FromText(m.editor.Value()))
	var left string
	if m.sess != nil {
		left = m.sess.DisplayName()
	}
	right := fmt.Sprintf("%d %s", words, pluralWords(words))
	if state := m.saveState(); state != "" {
		right += " • " + state
	}
	footer := m.footerLine(left, right)

	// While typing with the fade effect on, the chrome steps aside.
	if m.fadeEnabled() && m.coord != nil && m.coord.State() == autosave.StatePendingSave {
		footer = t.Page.Base.Render("")
	}
	if m.status != "" {
		footer = t.Footer.Error.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, editor, "", footer)
}

func (m *Model) footerLine(left, right string) string {
	t := m.theme
	width := m.editor.Width()
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return t.Footer.Help.Render(left) + t.Page.Base.Render(strings.Repeat(" ", gap)) + t.Footer.Status.Render(right)
}

func (m *Model) fadeEnabled() bool {
	return m.svc.Settings.Current().FadeEffect
}

func (m *Model) now() time.Time {
	if m.svc.Now != nil {
		return m.svc.Now()
	}
	return time.Now()
}

func pluralWords(n int) string {
	if n == 1 {
		return "word"
	}
	return "words"
}
