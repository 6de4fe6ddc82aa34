package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	palette "tableflip.dev/kammi/pkg/theme"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Page   PageTheme
	Footer FooterTheme
	Menu   MenuTheme
	Modal  ModalTheme
}

// PageTheme styles the full screen background and the writing surface.
type PageTheme struct {
	Base  lipgloss.Style
	Text  lipgloss.Style
	Dim   lipgloss.Style
	Title lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// MenuTheme styles vertical option lists.
type MenuTheme struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
}

// ModalTheme styles centered panels such as onboarding and settings.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// FromBundle derives the UI styles from an appearance bundle.
func FromBundle(b palette.Bundle) Theme {
	bg := lipgloss.Color(b.BgColor)
	fg := lipgloss.Color(b.TextColor)
	dim := lipgloss.Color(palette.DimColor(b))

	base := lipgloss.NewStyle().Background(bg).Foreground(fg)
	dimmed := base.Foreground(dim)

	return Theme{
		Page: PageTheme{
			Base:  base,
			Text:  base,
			Dim:   dimmed,
			Title: base.Bold(true),
		},
		Footer: FooterTheme{
			Help:   dimmed,
			Status: dimmed.Italic(true),
			Error:  base.Bold(true),
		},
		Menu: MenuTheme{
			Item:     dimmed.PaddingLeft(3),
			Selected: base.Bold(true).PaddingLeft(1).SetString("›"),
		},
		Modal: ModalTheme{
			Frame: base.
				Border(lipgloss.RoundedBorder()).
				BorderForeground(dim).
				BorderBackground(bg).
				Padding(1, 3),
			Title: base.Bold(true),
			Body:  base,
		},
	}
}
