// Package report provides the runners that summarize writing over time.
package report

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/printers"
)

// Report prints the sessions written in a window, grouped by day.
type Report struct {
	Service *app.Service
	Since   time.Time
	Until   time.Time
	// Label names the window in the heading, for example "last 1w".
	Label string
	JSON  bool
	Out     io.Writer
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	until := n.Until
	if until.IsZero() {
		until = time.Now()
	}
	since := n.Since
	if since.IsZero() {
		since = until.AddDate(0, 0, -7)
	}
	res, err := n.Service.Report(ctx, since, until)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, res)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.Report(res, n.Label)
	return nil
}

// Calendar prints a month grid with the days that have sessions highlighted.
type Calendar struct {
	Service *app.Service
	Month   time.Time
	// Months is how many months to print, starting at Month.
	Months int
	Out    io.Writer
}

func (n *Calendar) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not print calendar, no service")
	}
	res := n.Service.ListSessions(ctx)
	if !res.Success {
		return errors.New(res.Error)
	}
	month := n.Month
	if month.IsZero() {
		month = time.Now()
	}
	count := n.Months
	if count < 1 {
		count = 1
	}
	pp := printers.PrettyPrint{Out: n.Out}
	for i := 0; i < count; i++ {
		pp.Calendar(month, res.Sessions...)
		month = printers.NextMonth(month)
	}
	return nil
}
