package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type reload struct {
	cfg *Config
	err error
}

func startWatcherForTest(t *testing.T, path string, reloads chan<- reload) *Watcher {
	t.Helper()
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		select {
		case reloads <- reload{cfg: cfg, err: err}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		_ = w.Close()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("watcher did not stop")
		}
	})
	return w
}

func waitForReload(t *testing.T, reloads <-chan reload, timeout time.Duration) reload {
	t.Helper()
	select {
	case r := <-reloads:
		return r
	case <-time.After(timeout):
		t.Fatal("timed out waiting for reload")
		return reload{}
	}
}

func ensureNoReload(t *testing.T, reloads <-chan reload, wait time.Duration) {
	t.Helper()
	select {
	case r := <-reloads:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(wait):
	}
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "terminal:\n  cols: 90\n")
	reloads := make(chan reload, 4)
	w := startWatcherForTest(t, path, reloads)
	if w.Path() != path {
		t.Fatalf("Path() = %q", w.Path())
	}

	if err := os.WriteFile(path, []byte("terminal:\n  cols: 132\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := waitForReload(t, reloads, 2*time.Second)
	if r.err != nil {
		t.Fatalf("reload error = %v", r.err)
	}
	if r.cfg.Terminal.Cols != 132 {
		t.Fatalf("Cols = %d, want 132", r.cfg.Terminal.Cols)
	}
}

func TestWatcher_ReportsInvalidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	reloads := make(chan reload, 4)
	startWatcherForTest(t, path, reloads)

	if err := os.WriteFile(path, []byte("terminal:\n  rows: -4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := waitForReload(t, reloads, 2*time.Second)
	if r.err == nil {
		t.Fatal("expected reload error")
	}
	if r.cfg != nil {
		t.Fatalf("cfg = %+v, want nil on error", r.cfg)
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "")
	reloads := make(chan reload, 4)
	startWatcherForTest(t, path, reloads)

	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ensureNoReload(t, reloads, 200*time.Millisecond)
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	reloads := make(chan reload, 8)
	w := startWatcherForTest(t, path, reloads)
	w.SetDebounce(150 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte("viewer:\n  wheel_lines: 4\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	r := waitForReload(t, reloads, 2*time.Second)
	if r.err != nil || r.cfg.Viewer.WheelLines != 4 {
		t.Fatalf("reload = %+v", r)
	}
	ensureNoReload(t, reloads, 300*time.Millisecond)
}

func TestWatcher_CloseCancelsPendingReload(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	reloads := make(chan reload, 4)
	w := startWatcherForTest(t, path, reloads)
	w.SetDebounce(300 * time.Millisecond)

	if err := os.WriteFile(path, []byte("terminal:\n  cols: 70\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(50 * time.Millisecond)
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Second close is a no-op.
	if err := w.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	ensureNoReload(t, reloads, 500*time.Millisecond)
}

func TestWatcher_RunStopsOnContextCancel(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "")
	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "config.yaml"), nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
