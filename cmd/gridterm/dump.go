package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andyrewlee/gridterm/internal/render"
	"github.com/andyrewlee/gridterm/internal/vterm"
)

type dumpOptions struct {
	format     string
	scrollback bool
	cursor     bool
	cols       int
	rows       int
	resize     string
}

func (c *cli) newDumpCmd() *cobra.Command {
	var opts dumpOptions
	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Replay input headlessly and print the resulting screen",
		Long: `Replays a capture (or stdin) into a terminal and prints the viewport.

Example:
  gridterm dump session.log --format plain --scrollback
  gridterm dump session.log --cols 120 --rows 40 --resize 80x24`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDump(args, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "ansi", "output format: ansi, styled or plain")
	f.BoolVar(&opts.scrollback, "scrollback", false, "print archived rows before the screen")
	f.BoolVar(&opts.cursor, "cursor", false, "highlight the cursor cell")
	f.IntVar(&opts.cols, "cols", 0, "terminal width (default from config)")
	f.IntVar(&opts.rows, "rows", 0, "terminal height (default from config)")
	f.StringVar(&opts.resize, "resize", "", "resize to COLSxROWS after the replay")
	return cmd
}

func (c *cli) runDump(args []string, opts dumpOptions) error {
	format, err := render.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	var resizeTo *vterm.Size
	if opts.resize != "" {
		size, err := parseSize(opts.resize)
		if err != nil {
			return err
		}
		resizeTo = &size
	}
	palette, err := c.cfg.ResolvedPalette()
	if err != nil {
		return err
	}
	_, data, err := c.readInput(args)
	if err != nil {
		return err
	}

	cols, rows := c.cfg.Terminal.Cols, c.cfg.Terminal.Rows
	if opts.cols > 0 {
		cols = opts.cols
	}
	if opts.rows > 0 {
		rows = opts.rows
	}
	t := vterm.New(cols, rows, c.cfg.TerminalOptions()...)
	t.Write(data)
	if resizeTo != nil {
		t.Resize(resizeTo.Cols, resizeTo.Rows)
	}

	w := render.NewWriter(c.stdout, format, palette, opts.cursor)
	if opts.scrollback && t.ScrollbackLen() > 0 && !t.InAltScreen() {
		history := historyFrame(t)
		w.RenderFrame(&history)
	}
	t.Render(w)
	return w.Err()
}

// historyFrame returns the archived rows, oldest first, as a frame.
func historyFrame(t *vterm.Terminal) vterm.Frame {
	cols := t.Size().Cols
	n := t.ScrollbackLen()
	lines := make([]vterm.Row, n)
	for i := range lines {
		lines[i] = t.ScrollbackRow(i).Fit(cols)
	}
	return vterm.Frame{Cols: cols, Rows: n, Lines: lines}
}

// parseSize parses COLSxROWS.
func parseSize(s string) (vterm.Size, error) {
	colsStr, rowsStr, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return vterm.Size{}, fmt.Errorf("invalid size %q (want COLSxROWS)", s)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(colsStr))
	if err != nil {
		return vterm.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	rows, err := strconv.Atoi(strings.TrimSpace(rowsStr))
	if err != nil {
		return vterm.Size{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if cols < 1 || rows < 1 {
		return vterm.Size{}, fmt.Errorf("invalid size %q: must be positive", s)
	}
	return vterm.Size{Cols: cols, Rows: rows}, nil
}
