package main

import (
	"context"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/andyrewlee/gridterm/internal/config"
	"github.com/andyrewlee/gridterm/internal/logging"
	"github.com/andyrewlee/gridterm/internal/safego"
	"github.com/andyrewlee/gridterm/internal/ui/viewer"
)

func (c *cli) newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Replay input in an interactive viewer",
		Long: `Replays a capture (or stdin) into a terminal sized to the window.

Scroll through history with pgup/pgdown, the arrow keys or the mouse wheel.
Press y to copy the screen, ? for help and q to quit. Edits to the config
file are applied while the viewer runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runView(cmd.Context(), args)
		},
	}
}

func (c *cli) runView(ctx context.Context, args []string) error {
	name, data, err := c.readInput(args)
	if err != nil {
		return err
	}
	m, err := viewer.New(c.cfg, name, data)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if w := c.watchConfig(ctx, p); w != nil {
		defer w.Close()
	}

	logging.Info("viewer started on %s (%d bytes)", name, len(data))
	if _, err := p.Run(); err != nil {
		logging.Error("viewer exited with error: %v", err)
		return err
	}
	logging.Info("viewer closed")
	return nil
}

// watchConfig forwards config reloads to the program. It returns nil when
// there is no config file to watch.
func (c *cli) watchConfig(ctx context.Context, p *tea.Program) *config.Watcher {
	path := c.cfg.Paths.ConfigPath
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	w, err := config.NewWatcher(path, func(cfg *config.Config, err error) {
		if cfg != nil && c.logLevel != "" {
			cfg.Logging.Level = c.logLevel
		}
		p.Send(viewer.ConfigReloadedMsg{Config: cfg, Err: err})
	})
	if err != nil {
		logging.Warn("config watcher unavailable: %v", err)
		return nil
	}
	safego.Go("config-watcher", func() {
		_ = w.Run(ctx)
	})
	return w
}
