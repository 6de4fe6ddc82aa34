package teaui

import (
	"github.com/charmbracelet/bubbles/v2/list"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/kammi/pkg/catalog"
	"tableflip.dev/kammi/pkg/printers"
	"tableflip.dev/kammi/pkg/session"
)

type browseItem struct {
	entry catalog.Entry
	ago   string
}

func (i browseItem) Title() string       { return i.entry.DisplayName }
func (i browseItem) Description() string { return i.ago }
func (i browseItem) FilterValue() string { return i.entry.DisplayName }

func (m *Model) showBrowse() {
	if m.screen != screenBrowse {
		m.returnTo = m.screen
	}
	m.screen = screenBrowse
}

func (m *Model) leaveBrowse() {
	if m.returnTo == screenMenu && m.sess != nil {
		m.showMenu()
		return
	}
	m.showGreeting()
}

func (m *Model) handleCatalogLoaded(msg catalogLoadedMsg, cmds *[]tea.Cmd) {
	if msg.err != nil {
		m.setStatus("ERR: " + msg.err.Error())
		return
	}
	m.hasSessions = len(msg.entries) > 0
	now := m.now()
	items := make([]list.Item, 0, len(msg.entries))
	for _, e := range msg.entries {
		items = append(items, browseItem{entry: e, ago: printers.Ago(now, e.Modified)})
	}
	if cmd := m.browse.SetItems(items); cmd != nil {
		*cmds = append(*cmds, cmd)
	}
	if m.screen == screenGreeting {
		cursor := m.cursor
		m.options = m.greetingOptions()
		if cursor < len(m.options) {
			m.cursor = cursor
		}
	}
	if m.screen == screenMenu && m.sess != nil {
		cursor := m.cursor
		m.showMenu()
		if cursor < len(m.options) {
			m.cursor = cursor
		}
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyPressMsg, cmds *[]tea.Cmd) {
	if m.browse.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc":
			if m.browse.FilterState() == list.FilterApplied {
				m.browse.ResetFilter()
				return
			}
			m.leaveBrowse()
			return
		case "enter":
			item, ok := m.browse.SelectedItem().(browseItem)
			if !ok {
				return
			}
			name := item.entry.Filename
			if m.sess != nil && m.sess.Filename == name {
				m.resumeWriting(cmds)
				return
			}
			*cmds = append(*cmds, m.openCmd(func() (*session.Session, error) {
				return m.svc.OpenSession(name)
			}))
			return
		}
	}
	var cmd tea.Cmd
	m.browse, cmd = m.browse.Update(msg)
	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) viewBrowse() string {
	if len(m.browse.Items()) == 0 {
		return m.theme.Page.Dim.Render("No sessions yet. Press esc to go back.")
	}
	return m.browse.View()
}
