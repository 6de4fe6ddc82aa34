package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/kammi/pkg/timeutil"
)

// WindowOptions pick a span of days.
type WindowOptions struct {
	Last  string
	Since string
	Until string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.DefaultWindow,
		`How far back to look, example: --last=3d or --last=1w2d.`)
	cmd.Flags().StringVar(&o.Since, "since", "",
		`First day to include, example: --since="2024-3-1" or --since="3/1". Overrides --last.`)
	cmd.Flags().StringVar(&o.Until, "until", "",
		`Last day to include, defaults to now.`)
}

// Range resolves the flags against now. The label describes the window for
// headings.
func (o *WindowOptions) Range(now time.Time) (since, until time.Time, label string, err error) {
	until = now
	if o.Until != "" {
		day, err := timeutil.ParseDay(o.Until, now)
		if err != nil {
			return since, until, "", err
		}
		until = timeutil.EndOfDay(day)
	}
	if o.Since != "" {
		since, err = timeutil.ParseDay(o.Since, now)
		if err != nil {
			return since, until, "", err
		}
		return since, until, since.Format(time.DateOnly) + " → " + until.Format(time.DateOnly), nil
	}
	d, label, err := timeutil.ParseWindow(o.Last)
	if err != nil {
		return since, until, "", err
	}
	return until.Add(-d), until, "last " + label, nil
}
