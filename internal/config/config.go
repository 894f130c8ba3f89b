package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/andyrewlee/gridterm/internal/logging"
	"github.com/andyrewlee/gridterm/internal/render"
	"github.com/andyrewlee/gridterm/internal/vterm"
)

// Config holds the application configuration
type Config struct {
	Paths    *Paths         `yaml:"-"`
	Terminal TerminalConfig `yaml:"terminal"`
	Palette  PaletteConfig  `yaml:"palette"`
	Logging  LoggingConfig  `yaml:"logging"`
	Viewer   ViewerConfig   `yaml:"viewer"`
}

// TerminalConfig sizes and tunes the emulated terminal
type TerminalConfig struct {
	Cols            int  `yaml:"cols"`
	Rows            int  `yaml:"rows"`
	Scrollback      int  `yaml:"scrollback"`
	MinCols         int  `yaml:"min_cols"`
	MinRows         int  `yaml:"min_rows"`
	CursorBlink     bool `yaml:"cursor_blink"`
	BlinkIntervalMs int  `yaml:"blink_interval_ms"`
}

// PaletteConfig overrides palette entries; empty entries keep the default
type PaletteConfig struct {
	Fg []string `yaml:"fg,omitempty"`
	Bg []string `yaml:"bg,omitempty"`
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	Level   string `yaml:"level"`
	Enabled bool   `yaml:"enabled"`
}

// ViewerConfig tunes the interactive viewer
type ViewerConfig struct {
	FeedChunkLines int `yaml:"feed_chunk_lines"`
	FeedIntervalMs int `yaml:"feed_interval_ms"`
	WheelLines     int `yaml:"wheel_lines"`
}

func defaults() *Config {
	return &Config{
		Terminal: TerminalConfig{
			Cols:            80,
			Rows:            24,
			Scrollback:      vterm.DefaultScrollback,
			MinCols:         vterm.MinCols,
			MinRows:         vterm.MinRows,
			CursorBlink:     true,
			BlinkIntervalMs: int(vterm.DefaultBlinkInterval / time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:   "info",
			Enabled: true,
		},
		Viewer: ViewerConfig{
			FeedChunkLines: 64,
			FeedIntervalMs: 16,
			WheelLines:     3,
		},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	cfg := defaults()
	cfg.Paths = paths
	return cfg, nil
}

// Load loads overrides from ~/.gridterm/config.yaml if present.
func Load() (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(cfg.Paths.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Paths.ConfigPath, err)
	}
	return cfg, nil
}

// LoadFile loads overrides from an explicit path. The file must exist.
// Paths other than ConfigPath are laid out next to it.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()
	cfg.Paths = PathsFor(filepath.Dir(path))
	cfg.Paths.ConfigPath = path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return c.Validate()
}

// Validate checks ranges and palette entries
func (c *Config) Validate() error {
	t := c.Terminal
	switch {
	case t.Cols < 1 || t.Rows < 1:
		return fmt.Errorf("terminal size %dx%d must be positive", t.Cols, t.Rows)
	case t.Scrollback < 0:
		return fmt.Errorf("terminal.scrollback %d must not be negative", t.Scrollback)
	case t.MinCols < 1 || t.MinRows < 1:
		return fmt.Errorf("terminal minimum size %dx%d must be positive", t.MinCols, t.MinRows)
	case t.BlinkIntervalMs < 0:
		return fmt.Errorf("terminal.blink_interval_ms %d must not be negative", t.BlinkIntervalMs)
	}
	v := c.Viewer
	if v.FeedChunkLines < 1 || v.FeedIntervalMs < 0 || v.WheelLines < 1 {
		return fmt.Errorf("viewer settings out of range: %+v", v)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := c.ResolvedPalette(); err != nil {
		return err
	}
	return nil
}

// ResolvedPalette applies the overrides to the default palette
func (c *Config) ResolvedPalette() (render.Palette, error) {
	return render.DefaultPalette().WithOverrides(c.Palette.Fg, c.Palette.Bg)
}

// LogLevel returns the parsed log level, defaulting to info
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// BlinkInterval returns the cursor blink half-period; zero selects the default
func (c *Config) BlinkInterval() time.Duration {
	if c.Terminal.BlinkIntervalMs <= 0 {
		return vterm.DefaultBlinkInterval
	}
	return time.Duration(c.Terminal.BlinkIntervalMs) * time.Millisecond
}

// FeedInterval returns the delay between input chunks in the viewer
func (c *Config) FeedInterval() time.Duration {
	return time.Duration(c.Viewer.FeedIntervalMs) * time.Millisecond
}

// TerminalOptions returns the vterm options described by the config
func (c *Config) TerminalOptions() []vterm.Option {
	return []vterm.Option{
		vterm.WithScrollbackCapacity(c.Terminal.Scrollback),
		vterm.WithCursorBlink(c.Terminal.CursorBlink),
		vterm.WithBlinkInterval(c.BlinkInterval()),
	}
}

// Marshal renders the config as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
