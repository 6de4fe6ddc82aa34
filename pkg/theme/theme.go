// Package theme resolves the appearance settings into concrete colours.
package theme

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/kammi/pkg/settings"
)

// Preset names.
const (
	Midnight = "midnight"
	Paper    = "paper"
	Focus    = "focus"
)

const (
	lightText = "#2d2d2d"
	darkText  = "#e8e0d0"
)

// ErrInvalidColor is returned for a background that is not a #rrggbb hex.
var ErrInvalidColor = errors.New("theme: invalid colour")

// Bundle is a named set of appearance attributes.
type Bundle struct {
	Name string `json:"name" yaml:"name"`
	settings.Theme
}

var presets = map[string]settings.Theme{
	Midnight: {FontFamily: "Georgia", FontSize: 20, BgColor: "#1a1a1a", TextColor: "#c4b69c"},
	Paper:    {FontFamily: "Times New Roman", FontSize: 20, BgColor: "#f5f5dc", TextColor: "#3d3d3d"},
	Focus:    {FontFamily: "Inter", FontSize: 20, BgColor: "#ffffff", TextColor: "#1a1a1a"},
}

// Presets lists the built-in theme names in a fixed order.
func Presets() []string {
	return []string{Midnight, Paper, Focus}
}

// Names lists every selectable theme, custom last.
func Names() []string {
	return append(Presets(), settings.ThemeCustom)
}

// Preset returns the named built-in theme.
func Preset(name string) (Bundle, bool) {
	t, ok := presets[name]
	if !ok {
		return Bundle{}, false
	}
	return Bundle{Name: name, Theme: t}, true
}

// IsKnown reports whether name is a preset or "custom".
func IsKnown(name string) bool {
	_, ok := presets[name]
	return ok || name == settings.ThemeCustom
}

// Next cycles through Names after current.
func Next(current string) string {
	names := Names()
	for i, n := range names {
		if n == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}

// Resolve picks the bundle a record asks for. Unknown names fall back to the
// default preset.
func Resolve(rec settings.Record) Bundle {
	if rec.Theme == settings.ThemeCustom {
		return Bundle{Name: settings.ThemeCustom, Theme: rec.CustomTheme}
	}
	if b, ok := Preset(rec.Theme); ok {
		return b
	}
	b, _ := Preset(settings.DefaultTheme)
	return b
}

// ContrastColor picks a readable text colour for bgHex.
func ContrastColor(bgHex string) string {
	c, err := colorful.Hex(normalizeHex(bgHex))
	if err != nil {
		return darkText
	}
	if 0.299*c.R+0.587*c.G+0.114*c.B > 0.5 {
		return lightText
	}
	return darkText
}

// Custom builds a custom bundle from a background colour, deriving the text
// colour from it.
func Custom(fontFamily string, fontSize int, bgHex string) (Bundle, error) {
	c, err := colorful.Hex(normalizeHex(bgHex))
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: %q", ErrInvalidColor, bgHex)
	}
	def := settings.DefaultCustomTheme()
	if strings.TrimSpace(fontFamily) == "" {
		fontFamily = def.FontFamily
	}
	if fontSize <= 0 {
		fontSize = def.FontSize
	}
	return Bundle{
		Name: settings.ThemeCustom,
		Theme: settings.Theme{
			FontFamily: fontFamily,
			FontSize:   fontSize,
			BgColor:    c.Hex(),
			TextColor:  ContrastColor(c.Hex()),
		},
	}, nil
}

// Suggest proposes a preset that suits the terminal's background.
func Suggest() string {
	if termenv.HasDarkBackground() {
		return Midnight
	}
	return Paper
}

// DimColor is halfway between the background and the text colour, for
// secondary text.
func DimColor(b Bundle) string {
	bg := parseOr(b.BgColor, "#1a1a1a")
	fg := parseOr(b.TextColor, ContrastColor(b.BgColor))
	return bg.BlendLab(fg, 0.5).Clamped().Hex()
}

// Describe renders a short human description of every selectable theme, in
// name order, for help text.
func Describe() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names)+1)
	for _, name := range names {
		t := presets[name]
		out = append(out, fmt.Sprintf("%s (%s on %s)", name, t.TextColor, t.BgColor))
	}
	return append(out, settings.ThemeCustom+" (your own background)")
}

func normalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return s
}

func parseOr(hex, fallback string) colorful.Color {
	if c, err := colorful.Hex(normalizeHex(hex)); err == nil {
		return c
	}
	c, _ := colorful.Hex(normalizeHex(fallback))
	return c
}
