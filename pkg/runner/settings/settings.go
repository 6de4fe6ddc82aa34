// Package settings provides the runners that show and change the settings
// record.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/printers"
	"tableflip.dev/kammi/pkg/settings"
	"tableflip.dev/kammi/pkg/theme"
)

// Output formats for Show.
const (
	FormatPretty = ""
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Show prints the current settings.
type Show struct {
	Service *app.Service
	Format  string
	Out     io.Writer
}

// Do reads and prints the settings record.
func (n *Show) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not show settings, no service")
	}
	res := n.Service.GetSettings()
	switch n.Format {
	case FormatJSON:
		return printers.JSON(n.Out, res)
	case FormatYAML:
		if !res.Success {
			return errors.New(res.Error)
		}
		return printers.YAML(n.Out, res.Settings)
	}
	if !res.Success {
		return errors.New(res.Error)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Settings(*res.Settings)
	return nil
}

// Set changes individual settings. Nil fields are left alone.
type Set struct {
	Service *app.Service
	Name    *string
	Theme   *string
	Fade    *bool
	// Background switches to the custom theme with this background colour.
	Background *string
	Font       *string
	FontSize   *int
	Out        io.Writer
}

// Do applies the changes as one read-modify-write of the record.
func (n *Set) Do(_ context.Context) error {
	if n.Service == nil || n.Service.Settings == nil {
		return errors.New("can not set, no service")
	}
	if err := n.Service.Settings.Update(n.apply); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Settings(n.Service.Settings.Current())
	return nil
}

func (n *Set) apply(rec *settings.Record) error {
	if n.Name != nil {
		name := strings.TrimSpace(*n.Name)
		if name == "" {
			return errors.New("name can not be empty")
		}
		rec.Name = name
	}
	if n.Theme != nil {
		if !theme.IsKnown(*n.Theme) {
			return fmt.Errorf("unknown theme %q, expected one of %s", *n.Theme, strings.Join(theme.Names(), ", "))
		}
		rec.Theme = *n.Theme
	}
	if n.Fade != nil {
		rec.FadeEffect = *n.Fade
	}
	if n.Background != nil || n.Font != nil || n.FontSize != nil {
		return applyCustom(rec, n.Background, n.Font, n.FontSize)
	}
	return nil
}

// applyCustom switches rec to its custom theme, remembering the bundle that
// was in use before.
func applyCustom(rec *settings.Record, bg, font *string, size *int) error {
	current := theme.Resolve(*rec)
	family, fontSize, bgColor := current.FontFamily, current.FontSize, current.BgColor
	if font != nil {
		family = *font
	}
	if size != nil {
		fontSize = *size
	}
	if bg != nil {
		bgColor = *bg
	}
	b, err := theme.Custom(family, fontSize, bgColor)
	if err != nil {
		return err
	}
	if rec.Theme != settings.ThemeCustom {
		saved := current.Theme
		rec.SavedTheme = &saved
	}
	rec.Theme = settings.ThemeCustom
	rec.CustomTheme = b.Theme
	return nil
}
