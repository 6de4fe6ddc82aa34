package commands

import (
	"log"

	"github.com/spf13/cobra"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/runner/info"
	"tableflip.dev/kammi/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Where kammi keeps sessions and settings.",
		Example: `
kammi info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			svc, err := app.New(cfg, log.Default())
			if err != nil {
				return err
			}
			s := info.Info{
				Config:  cfg,
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
