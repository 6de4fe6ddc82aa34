package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/kammi/pkg/commands/options"
	"tableflip.dev/kammi/pkg/runner/write"
)

func addWrite(topLevel *cobra.Command) {
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:     "write",
		Aliases: []string{"ui"},
		Short:   "Open the full screen editor.",
		Example: `
kammi write
kammi write --new
kammi write --continue
kammi write --session "On 21st of Mar, 2024, 2-05 pm"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWrite(cmd, so)
		},
	}
	options.AddSessionArgs(cmd, so)
	_ = cmd.RegisterFlagCompletionFunc("session", sessionCompletions)

	topLevel.AddCommand(cmd)
}

func runWrite(cmd *cobra.Command, so *options.SessionOptions) error {
	cmd.SilenceUsage = true
	w := write.Write{
		New:      so.New,
		Continue: so.Continue,
		Session:  so.Session,
	}
	return w.Do(cmd.Context())
}
