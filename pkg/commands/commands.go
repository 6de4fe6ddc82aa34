package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/kammi/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "kammi",
		Short: base.Wrap80("A quiet place to write. Every session is saved as you type."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !isatty.IsTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, so)
		},
	}
	options.AddSessionArgs(cmd, so)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addWrite(topLevel)
	addSessions(topLevel)
	addShow(topLevel)
	addSave(topLevel)
	addSettings(topLevel)
	addInfo(topLevel)
	addReport(topLevel)
	addCalendar(topLevel)
	addKey(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}
