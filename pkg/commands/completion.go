package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kammi/pkg/session"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(kammi completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(kammi completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

// sessionCompletions offers session display names, newest first.
func sessionCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, err := loadService()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	res := svc.ListSessions(context.Background())
	if !res.Success {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(res.Sessions))
	for _, s := range res.Sessions {
		name := session.DisplayName(s.Filename)
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			names = append(names, name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
