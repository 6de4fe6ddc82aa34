// Package sessions provides the runner that lists saved sessions.
package sessions

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/printers"
)

// Sessions prints the catalog.
type Sessions struct {
	Service *app.Service
	JSON    bool
	Out     io.Writer
}

// Do lists the sessions, newest first.
func (n *Sessions) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list, no service")
	}
	res := n.Service.ListSessions(ctx)
	if n.JSON {
		return printers.JSON(n.Out, res)
	}
	if !res.Success {
		return errors.New(res.Error)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Sessions(res.Sessions)
	return nil
}
