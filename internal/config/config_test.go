package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/andyrewlee/gridterm/internal/logging"
	"github.com/andyrewlee/gridterm/internal/vterm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if cfg.Terminal.Scrollback != vterm.DefaultScrollback {
		t.Fatalf("Scrollback = %d", cfg.Terminal.Scrollback)
	}
	if cfg.BlinkInterval() != vterm.DefaultBlinkInterval {
		t.Fatalf("BlinkInterval = %v", cfg.BlinkInterval())
	}
	if !cfg.Terminal.CursorBlink {
		t.Fatal("cursor blink should default on")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := defaults()
	want.Paths = cfg.Paths
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadReadsHomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".gridterm")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, dir, "terminal:\n  cols: 100\n")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Terminal.Cols != 100 || cfg.Terminal.Rows != 24 {
		t.Fatalf("size = %dx%d, want 100x24", cfg.Terminal.Cols, cfg.Terminal.Rows)
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
terminal:
  cols: 120
  rows: 40
  scrollback: 500
  cursor_blink: false
  blink_interval_ms: 250
palette:
  fg: ["", "#ff0000"]
logging:
  level: debug
viewer:
  wheel_lines: 5
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	want := defaults()
	want.Paths = PathsFor(filepath.Dir(path))
	want.Terminal.Cols = 120
	want.Terminal.Rows = 40
	want.Terminal.Scrollback = 500
	want.Terminal.CursorBlink = false
	want.Terminal.BlinkIntervalMs = 250
	want.Palette.Fg = []string{"", "#ff0000"}
	want.Logging.Level = "debug"
	want.Viewer.WheelLines = 5
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("LoadFile() mismatch (-want +got):\n%s", diff)
	}
	if cfg.BlinkInterval() != 250*time.Millisecond {
		t.Fatalf("BlinkInterval = %v", cfg.BlinkInterval())
	}
	if cfg.LogLevel() != logging.LevelDebug {
		t.Fatalf("LogLevel = %v", cfg.LogLevel())
	}
	pal, err := cfg.ResolvedPalette()
	if err != nil {
		t.Fatalf("ResolvedPalette() error = %v", err)
	}
	if pal.Fg[1] != "#ff0000" || pal.Fg[0] != "#000000" {
		t.Fatalf("palette = %v", pal.Fg)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Terminal.Cols != 80 {
		t.Fatalf("Cols = %d", cfg.Terminal.Cols)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "terminal:\n  colz: 3\n", "colz"},
		{"bad size", "terminal:\n  cols: 0\n", "must be positive"},
		{"negative scrollback", "terminal:\n  scrollback: -1\n", "scrollback"},
		{"bad level", "logging:\n  level: loud\n", "loud"},
		{"bad palette", "palette:\n  bg: [\"red\"]\n", "invalid color"},
		{"bad viewer", "viewer:\n  feed_chunk_lines: 0\n", "viewer"},
		{"bad yaml", "terminal: [\n", "config.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); !os.IsNotExist(err) {
		t.Fatalf("LoadFile() error = %v, want not-exist", err)
	}
}

func TestTerminalOptionsApply(t *testing.T) {
	cfg := defaults()
	cfg.Terminal.Scrollback = 7
	cfg.Terminal.CursorBlink = false
	term := vterm.New(10, 3, cfg.TerminalOptions()...)
	if term.ScrollbackCap() != 7 {
		t.Fatalf("ScrollbackCap = %d", term.ScrollbackCap())
	}
	if term.CursorBlink() {
		t.Fatal("cursor blink should be off")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := defaults()
	cfg.Terminal.Cols = 99
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	path := writeConfig(t, t.TempDir(), string(data))
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got.Terminal != cfg.Terminal {
		t.Fatalf("Terminal = %+v, want %+v", got.Terminal, cfg.Terminal)
	}
}
