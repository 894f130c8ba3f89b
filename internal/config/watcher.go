package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyrewlee/gridterm/internal/logging"
)

const watcherDebounce = 150 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk. Bursts of
// events (editors often write, chmod and rename in quick succession) are
// coalesced into a single reload.
type Watcher struct {
	watcher *fsnotify.Watcher

	path string
	dir  string

	onChange func(cfg *Config, err error)
	debounce time.Duration

	mu        sync.Mutex
	timer     *time.Timer
	closed    bool
	closeOnce sync.Once
}

// NewWatcher watches the directory containing path so that atomic
// replacements of the file are observed.
func NewWatcher(path string, onChange func(cfg *Config, err error)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		watcher:  watcher,
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: watcherDebounce,
	}
	w.dir = filepath.Dir(w.path)
	if err := watcher.Add(w.dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce changes the quiet period before a reload.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

// Path returns the watched config file.
func (w *Watcher) Path() string { return w.path }

// Run consumes file system events until ctx is done or the watcher closes.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isConfigEvent(event) {
				w.scheduleReload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("config watcher: %v", err)
		}
	}
}

// Close stops the watcher and cancels any pending reload.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) isConfigEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) scheduleReload() {
	if w.onChange == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
	} else {
		w.timer.Reset(w.debounce)
	}
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	// A rename away leaves nothing to load; the replacement triggers its own event.
	if _, err := os.Stat(w.path); os.IsNotExist(err) {
		return
	}
	cfg, err := LoadFile(w.path)
	if err != nil {
		logging.Warn("config reload failed: %v", err)
	} else {
		logging.Info("config reloaded from %s", w.path)
	}
	w.onChange(cfg, err)
}
