// Package info provides the runner that reports where kammi keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("KAMMI_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "KAMMI_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "KAMMI_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Journal: ", n.Config.JournalPath())
	_, _ = fmt.Fprintln(out, "Settings:", n.Config.SettingsPath())
	_, _ = fmt.Fprintln(out, "Log:     ", n.Config.LogPath())
	_, _ = fmt.Fprintln(out, "Autosave:", n.Config.AutosaveDelay())

	if n.Service == nil {
		return fmt.Errorf("failed to create service")
	}

	res := n.Service.ListSessions(ctx)
	if !res.Success {
		return fmt.Errorf("list sessions: %s", res.Error)
	}
	switch len(res.Sessions) {
	case 0:
		_, _ = fmt.Fprintln(out, "Sessions: none")
	default:
		_, _ = fmt.Fprintf(out, "Sessions: %d, latest %s\n", len(res.Sessions), res.Sessions[0].DisplayName)
	}
	if last := n.Service.Settings.Current().LastSessionFile; last != "" {
		_, _ = fmt.Fprintln(out, "Last:    ", last)
	}
	return nil
}
