// Package write provides the runner that opens the writing UI.
package write

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"tableflip.dev/kammi/pkg/app"
	"tableflip.dev/kammi/pkg/store"
	teaui "tableflip.dev/kammi/pkg/tui/app"
)

// Write launches the full screen editor.
type Write struct {
	Config   store.Config
	New      bool
	Continue bool
	Session  string
}

// Do validates the terminal, routes logs to a file and runs the UI until the
// user quits.
func (w *Write) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("kammi needs an interactive terminal, try `kammi save` to write from a pipe")
	}
	opts, err := w.options()
	if err != nil {
		return err
	}

	cfg := w.Config
	if cfg == nil {
		if cfg, err = store.LoadConfig(); err != nil {
			return err
		}
	}

	// The UI owns the terminal, so diagnostics go to a file.
	logger := log.Default()
	if path := cfg.LogPath(); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		f, err := tea.LogToFile(path, "kammi")
		if err != nil {
			return fmt.Errorf("open log %q: %w", path, err)
		}
		defer f.Close()
	}

	svc, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	return teaui.Run(ctx, svc, opts)
}

func (w *Write) options() (teaui.Options, error) {
	set := 0
	for _, b := range []bool{w.New, w.Continue, w.Session != ""} {
		if b {
			set++
		}
	}
	if set > 1 {
		return teaui.Options{}, errors.New("choose one of --new, --continue or --session")
	}
	switch {
	case w.New:
		return teaui.Options{Start: teaui.StartNew}, nil
	case w.Continue:
		return teaui.Options{Start: teaui.StartContinue}, nil
	case w.Session != "":
		return teaui.Options{Start: teaui.StartOpen, Filename: w.Session}, nil
	}
	return teaui.Options{Start: teaui.StartGreeting}, nil
}
