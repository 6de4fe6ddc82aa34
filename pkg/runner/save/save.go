// Package save provides the runner that stores text from a reader as a
// session.
package save

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/document"
	"tableflip.dev/kammi/pkg/printers"
)

// Save writes plain text into a session file.
type Save struct {
	Service *app.Service
	// Filename is the session to write; a new session is named when empty.
	Filename string
	// Append adds the text after the session's existing content.
	Append bool
	In     io.Reader
	Out    io.Writer
}

// Do reads all of In and saves it. Empty input writes nothing.
func (n *Save) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not save, no service")
	}
	if n.In == nil {
		return errors.New("can not save, no input")
	}
	raw, err := io.ReadAll(n.In)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	text := strings.TrimRight(string(raw), "\n")

	sess, err := n.Service.SaveText(ctx, n.Filename, text, n.Append)
	if err != nil {
		return err
	}
	doc := sess.Content

	pp := printers.PrettyPrint{Out: n.Out}
	if document.IsEmpty(doc) {
		_, _ = fmt.Fprintln(pp.Writer(), "nothing to save")
		return nil
	}
	_, _ = fmt.Fprintf(pp.Writer(), "saved %s (%d words)\n", sess.DisplayName(), document.WordCount(doc))
	return nil
}
