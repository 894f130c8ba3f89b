package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/andyrewlee/gridterm/internal/config"
	"github.com/andyrewlee/gridterm/internal/logging"
)

// cli carries state shared by the subcommands.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string

	cfg *config.Config
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "gridterm",
		Short: "Replay terminal output through an in-memory terminal emulator",
		Long: `gridterm interprets a stream of text and ANSI escape sequences into a
character grid with scrollback and an alternate screen.

Use "view" to watch a capture in an interactive viewer, "dump" to print the
resulting screen, and "bench" to time the emulator.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logging.Close()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.gridterm/config.yaml)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		c.newViewCmd(),
		c.newDumpCmd(),
		c.newBenchCmd(),
		c.newVersionCmd(),
	)
	return root
}

// setup loads the config and starts logging.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		if _, err := logging.ParseLevel(c.logLevel); err != nil {
			return err
		}
		c.cfg.Logging.Level = c.logLevel
	}
	if !c.cfg.Logging.Enabled {
		logging.SetEnabled(false)
		return nil
	}
	if err := logging.Initialize(c.cfg.Paths.LogDir, c.cfg.LogLevel()); err != nil {
		fmt.Fprintf(c.stderr, "Warning: could not initialize logging: %v\n", err)
	}
	logging.Debug("gridterm %s: %s", version, cmd.CommandPath())
	return nil
}

// readInput returns the name and contents of the file argument, or of
// stdin when no file is given.
func (c *cli) readInput(args []string) (string, string, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return args[0], string(data), nil
	}
	if f, ok := c.stdin.(*os.File); ok && term.IsTerminal(f.Fd()) {
		return "", "", fmt.Errorf("no input: pass a file or pipe data on stdin")
	}
	data, err := io.ReadAll(c.stdin)
	if err != nil {
		return "", "", err
	}
	return "stdin", string(data), nil
}
