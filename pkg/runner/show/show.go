// Package show provides the runner that prints one session as text.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/document"
	"tableflip.dev/kammi/pkg/printers"
	"tableflip.dev/kammi/pkg/session"
)

// Show prints a session's text, word wrapped.
type Show struct {
	Service  *app.Service
	Filename string
	Width    int
	// Raw prints the stored markup unchanged.
	Raw bool
	Out io.Writer
}

// Do reads and prints the session.
func (n *Show) Do(_ context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no service")
	}
	name := session.FilenameFor(n.Filename)
	res := n.Service.ReadContent(name)
	if !res.Success {
		return fmt.Errorf("%s: %s", name, res.Error)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	if n.Raw {
		_, _ = fmt.Fprintln(pp.Writer(), res.Content)
		return nil
	}
	pp.Text(session.DisplayName(name), document.ToText(res.Content), n.Width)
	return nil
}
