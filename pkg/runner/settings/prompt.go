package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/printers"
	"tableflip.dev/kammi/pkg/settings"
	"tableflip.dev/kammi/pkg/theme"
)

var promptTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// Prompt walks through the settings one question at a time.
type Prompt struct {
	Service *app.Service
	Out     io.Writer
}

// Do asks for each setting, defaulting to the current value, and saves the
// answers as one update.
func (n *Prompt) Do(_ context.Context) error {
	if n.Service == nil || n.Service.Settings == nil {
		return errors.New("can not set, no service")
	}
	rec := n.Service.Settings.Current()
	set := Set{Service: n.Service, Out: n.Out}

	name, err := (&promptui.Prompt{
		Label:     "Name",
		Default:   rec.Name,
		Templates: promptTemplates,
		Validate:  validateName,
	}).Run()
	if err != nil {
		return err
	}
	set.Name = &name

	names := theme.Names()
	_, themeName, err := (&promptui.Select{
		Label:     "Theme",
		Items:     names,
		CursorPos: indexOf(names, rec.Theme),
	}).Run()
	if err != nil {
		return err
	}
	if themeName == settings.ThemeCustom {
		bg, err := (&promptui.Prompt{
			Label:     "Background",
			Default:   rec.CustomTheme.BgColor,
			Templates: promptTemplates,
			Validate:  validateColor,
		}).Run()
		if err != nil {
			return err
		}
		set.Background = &bg
	} else {
		set.Theme = &themeName
	}

	fadeChoices := []string{"on", "off"}
	pos := 0
	if !rec.FadeEffect {
		pos = 1
	}
	_, fadeAnswer, err := (&promptui.Select{
		Label:     "Fade the status line while typing",
		Items:     fadeChoices,
		CursorPos: pos,
	}).Run()
	if err != nil {
		return err
	}
	fade := fadeAnswer == "on"
	set.Fade = &fade

	if err := n.Service.Settings.Update(set.apply); err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Settings(n.Service.Settings.Current())
	return nil
}

func validateName(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("name can not be empty")
	}
	return nil
}

func validateColor(input string) error {
	if _, err := theme.Custom("", 0, input); err != nil {
		return fmt.Errorf("%q is not a colour like #1a1a1a", input)
	}
	return nil
}

func indexOf(list []string, want string) int {
	for i, s := range list {
		if s == want {
			return i
		}
	}
	return 0
}
