package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/kammi/pkg/commands/options"
	"tableflip.dev/kammi/pkg/runner/save"
	"tableflip.dev/kammi/pkg/runner/sessions"
	"tableflip.dev/kammi/pkg/runner/show"
)

func addSessions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"ls"},
		Short:   "List saved sessions, newest first.",
		Example: `
kammi sessions
kammi sessions --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService()
			if err != nil {
				return oo.HandleError(err)
			}
			s := sessions.Sessions{
				Service: svc,
				JSON:    oo.JSON,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	var (
		width int
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a session as text.",
		Example: `
kammi show "On 21st of Mar, 2024, 2-05 pm"
kammi show "On 21st of Mar, 2024, 2-05 pm.html" --raw
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: sessionCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := show.Show{
				Service:  svc,
				Filename: args[0],
				Width:    width,
				Raw:      raw,
				Out:      cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Wrap text at this many columns.")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the stored markup.")

	topLevel.AddCommand(cmd)
}

func addSave(topLevel *cobra.Command) {
	var appendText bool

	cmd := &cobra.Command{
		Use:   "save [NAME]",
		Short: "Save text from stdin as a session.",
		Long: `Save reads plain text from stdin, one paragraph per line, and writes it
as a session. Without NAME a new session is named after the current time.`,
		Example: `
echo "a thought" | kammi save
pbpaste | kammi save "On 21st of Mar, 2024, 2-05 pm" --append
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: sessionCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := save.Save{
				Service: svc,
				Append:  appendText,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}
			if len(args) > 0 {
				s.Filename = args[0]
			}
			return s.Do(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&appendText, "append", "a", false, "Add to the end of the session instead of replacing it.")

	topLevel.AddCommand(cmd)
}
