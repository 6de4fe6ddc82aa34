package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/kammi/pkg/commands/options"
	"tableflip.dev/kammi/pkg/runner/report"
	"tableflip.dev/kammi/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Sessions and word counts grouped by day.",
		Long: `Report lists the sessions written within a time window, grouped by day,
with word counts per session, per day and in total.`,
		Example: `
kammi report
kammi report --last 3d
kammi report --since 3/1 --until 3/10 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			since, until, label, err := wo.Range(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			r := report.Report{
				Service: svc,
				Since:   since,
				Until:   until,
				Label:   label,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}
	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addCalendar(topLevel *cobra.Command) {
	var (
		month  string
		months int
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Month grid with the days you wrote on highlighted.",
		Example: `
kammi calendar
kammi calendar --month 2024-1 --months 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			start, err := timeutil.ParseMonth(month, time.Now())
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			c := report.Calendar{
				Service: svc,
				Month:   start,
				Months:  months,
				Out:     cmd.OutOrStdout(),
			}
			return c.Do(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", `First month to print, example: --month=2024-3. Defaults to this month.`)
	cmd.Flags().IntVar(&months, "months", 1, "How many months to print.")

	topLevel.AddCommand(cmd)
}
