package options

import (
	"github.com/spf13/cobra"
)

// SessionOptions choose what the editor opens.
type SessionOptions struct {
	New      bool
	Continue bool
	Session  string
}

func AddSessionArgs(cmd *cobra.Command, o *SessionOptions) {
	cmd.Flags().BoolVarP(&o.New, "new", "n", false,
		"Start a new session right away.")
	cmd.Flags().BoolVarP(&o.Continue, "continue", "c", false,
		"Reopen the last session.")
	cmd.Flags().StringVarP(&o.Session, "session", "s", "",
		`Open a session by name, example: --session="On 21st of Mar, 2024, 2-05 pm".`)
}
