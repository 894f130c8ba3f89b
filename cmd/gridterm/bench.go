package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andyrewlee/gridterm/internal/bench"
	"github.com/andyrewlee/gridterm/internal/logging"
)

func (c *cli) newBenchCmd() *cobra.Command {
	opts := bench.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time writes, renders and resizes against synthetic output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("scrollback") {
				opts.Scrollback = c.cfg.Terminal.Scrollback
			}
			res, err := bench.Run(opts)
			if err != nil {
				return err
			}
			logging.Info("bench: %d frames in %s", opts.Frames, res.Total)
			_, err = fmt.Fprintln(c.stdout, res.String())
			return err
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Cols, "width", opts.Cols, "screen width in columns")
	f.IntVar(&opts.Rows, "height", opts.Rows, "screen height in rows")
	f.IntVar(&opts.Scrollback, "scrollback", opts.Scrollback, "scrollback capacity (default from config)")
	f.IntVar(&opts.Frames, "frames", opts.Frames, "number of measured frames")
	f.IntVar(&opts.Warmup, "warmup", opts.Warmup, "warmup frames to ignore")
	f.IntVar(&opts.PayloadBytes, "payload-bytes", opts.PayloadBytes, "bytes written per frame")
	f.IntVar(&opts.NewlineEvery, "newline-every", opts.NewlineEvery, "emit newline every N frames (0 disables)")
	f.IntVar(&opts.ResizeEvery, "resize-every", opts.ResizeEvery, "toggle size every N frames (0 disables)")
	return cmd
}
