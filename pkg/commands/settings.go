package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kammi/pkg/commands/options"
	"tableflip.dev/kammi/pkg/runner/settings"
	"tableflip.dev/kammi/pkg/theme"
)

func addSettings(topLevel *cobra.Command) {
	fo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the settings record.",
		Example: `
kammi settings
kammi settings --yaml
kammi settings set --theme paper --fade=false
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			format, err := fo.Format()
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return fo.HandleError(err)
			}
			s := settings.Show{
				Service: svc,
				Format:  format,
				Out:     cmd.OutOrStdout(),
			}
			return fo.HandleError(s.Do(cmd.Context()))
		},
	}
	options.AddFormatArgs(cmd, fo)

	addSettingsSet(cmd)
	topLevel.AddCommand(cmd)
}

func addSettingsSet(parent *cobra.Command) {
	iop := &options.InteractiveOptions{}
	var (
		name       string
		themeName  string
		fade       bool
		background string
		font       string
		fontSize   int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change individual settings.",
		Long: `Set changes only the settings named by flags. Giving --background,
--font or --font-size switches to the custom theme; the preset in use is
remembered so it can be restored.

Themes:
  ` + strings.Join(theme.Describe(), "\n  "),
		Example: `
kammi settings set --name Ada
kammi settings set -i
kammi settings set --theme focus
kammi settings set --background "#fdf6e3" --font Georgia --font-size 18
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if cmd.Flags().NFlag() == 0 {
				return fmt.Errorf("nothing to set, see --help or try --interactive")
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			if iop.Interactive {
				p := settings.Prompt{Service: svc, Out: cmd.OutOrStdout()}
				return p.Do(cmd.Context())
			}
			s := settings.Set{
				Service: svc,
				Out:     cmd.OutOrStdout(),
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				s.Name = &name
			}
			if flags.Changed("theme") {
				s.Theme = &themeName
			}
			if flags.Changed("fade") {
				s.Fade = &fade
			}
			if flags.Changed("background") {
				s.Background = &background
			}
			if flags.Changed("font") {
				s.Font = &font
			}
			if flags.Changed("font-size") {
				s.FontSize = &fontSize
			}
			return s.Do(cmd.Context())
		},
	}
	options.InteractiveArgs(cmd, iop)
	cmd.Flags().StringVar(&name, "name", "", "What kammi calls you.")
	cmd.Flags().StringVar(&themeName, "theme", "", "Theme preset, or custom.")
	cmd.Flags().BoolVar(&fade, "fade", true, "Hide the status line while typing.")
	cmd.Flags().StringVar(&background, "background", "", "Custom theme background colour, for example #1a1a1a.")
	cmd.Flags().StringVar(&font, "font", "", "Custom theme font family.")
	cmd.Flags().IntVar(&fontSize, "font-size", 0, "Custom theme font size in pixels.")
	_ = cmd.RegisterFlagCompletionFunc("theme", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return theme.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	parent.AddCommand(cmd)
}
