// Package help renders the key binding overlay shown by the writing UI.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Binding is one key and what it does on a screen.
type Binding struct {
	Screen string
	Keys   string
	Does   string
}

// Bindings lists the keys the writing UI understands.
func Bindings() []Binding {
	return []Binding{
		{"everywhere", "ctrl+c", "save and quit"},
		{"everywhere", "f1", "toggle this help"},
		{"greeting", "↑/↓ enter", "choose"},
		{"greeting", "q", "quit"},
		{"writing", "esc", "open the menu"},
		{"menu", "esc", "resume writing"},
		{"browse", "/", "filter sessions"},
		{"browse", "enter", "open the selected session"},
		{"browse", "esc", "clear the filter or go back"},
		{"settings", "tab", "next field"},
		{"settings", "←/→", "change theme or fade"},
		{"settings", "enter", "save"},
		{"settings", "esc", "discard changes"},
	}
}

// Model shows Bindings in a scrollable framed viewport.
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	frame lipgloss.Style
	title lipgloss.Style
}

// New constructs a help overlay sized to the provided bounds.
func New(width, height int, frame, title lipgloss.Style) *Model {
	vp := viewport.New(
		viewport.WithWidth(max(width, 1)),
		viewport.WithHeight(max(height, 1)),
	)
	vp.MouseWheelEnabled = true
	m := &Model{
		viewport: vp,
		frame:    frame,
		title:    title,
	}
	m.SetSize(width, height)
	return m
}

// Update forwards scrolling to the viewport.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	vp, cmd := m.viewport.Update(msg)
	m.viewport = vp
	return cmd
}

// View renders the bindings inside the frame.
func (m *Model) View() string {
	return m.frame.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.title.Render("Keys"),
		"",
		m.viewport.View(),
	))
}

// SetSize fits the overlay to width by height, never smaller than the table.
func (m *Model) SetSize(width, height int) {
	content := Render()
	contentWidth := lipgloss.Width(content)
	frameX := m.frame.GetHorizontalFrameSize()
	frameY := m.frame.GetVerticalFrameSize() + 2

	innerWidth := min(max(width-frameX, 1), contentWidth)
	innerHeight := min(max(height-frameY, 1), lipgloss.Height(content))
	if m.width == innerWidth && m.height == innerHeight {
		return
	}
	m.width = innerWidth
	m.height = innerHeight
	m.viewport.SetWidth(innerWidth)
	m.viewport.SetHeight(innerHeight)
	m.viewport.SetContent(content)
	m.viewport.SetYOffset(0)
}

// Render lays Bindings out as aligned plain text.
func Render() string {
	bindings := Bindings()
	screenWidth, keysWidth := 0, 0
	for _, b := range bindings {
		screenWidth = max(screenWidth, lipgloss.Width(b.Screen))
		keysWidth = max(keysWidth, lipgloss.Width(b.Keys))
	}
	var sb strings.Builder
	last := ""
	for i, b := range bindings {
		screen := b.Screen
		if screen == last {
			screen = ""
		}
		last = b.Screen
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s  %s  %s", pad(screen, screenWidth), pad(b.Keys, keysWidth), b.Does)
	}
	return sb.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
