// Package key provides the runner that prints the editor key bindings and the
// available themes.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/kammi/pkg/theme"
	"tableflip.dev/kammi/pkg/tui/components/help"
)

// Key prints the bindings legend and the theme list.
type Key struct {
	Out io.Writer
}

// Do renders both tables.
func (k *Key) Do(_ context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Screen"), bold.Sprint("Keys"), bold.Sprint("Does"))
	last := ""
	for _, b := range help.Bindings() {
		screen := b.Screen
		if screen == last {
			screen = ""
		}
		last = b.Screen
		tbl.AddRow(screen, b.Keys, b.Does)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")

	_, _ = fmt.Fprintln(out, bold.Sprint("Themes"))
	for _, line := range theme.Describe() {
		_, _ = fmt.Fprintln(out, "  "+line)
	}
	_, _ = fmt.Fprintln(out, "")
	return nil
}
