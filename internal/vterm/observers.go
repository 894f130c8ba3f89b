package vterm

import (
	"fmt"

	"github.com/andyrewlee/gridterm/internal/logging"
	"github.com/andyrewlee/gridterm/internal/safego"
)

// ResizeEvent describes a size change
type ResizeEvent struct {
	Cols     int
	Rows     int
	PrevCols int
	PrevRows int
}

// App is the foreground application hosted in the terminal
type App interface {
	OnResize(ev ResizeEvent)
}

type resizeObserver struct {
	id int
	fn func(ResizeEvent)
}

// OnResize registers fn for resize notifications. fn is called once
// immediately with the current size as both new and previous size. The
// returned function unregisters fn and may be called more than once.
func (t *Terminal) OnResize(fn func(ResizeEvent)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	t.nextObserverID++
	id := t.nextObserverID
	t.observers = append(t.observers, resizeObserver{id: id, fn: fn})

	ev := ResizeEvent{Cols: t.cols, Rows: t.rows, PrevCols: t.cols, PrevRows: t.rows}
	callIsolated(fmt.Sprintf("resize observer %d", id), fn, ev)

	return func() { t.removeObserver(id) }
}

func (t *Terminal) removeObserver(id int) {
	for i, o := range t.observers {
		if o.id == id {
			t.observers = append(t.observers[:i:i], t.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of registered resize observers
func (t *Terminal) ObserverCount() int { return len(t.observers) }

// SetApp sets the foreground application; nil clears it
func (t *Terminal) SetApp(app App) { t.app = app }

// App returns the foreground application, if any
func (t *Terminal) App() App { return t.app }

func (t *Terminal) notifyApp(ev ResizeEvent) {
	if t.app == nil {
		return
	}
	callIsolated("app resize", t.app.OnResize, ev)
}

func (t *Terminal) emitResize(ev ResizeEvent) {
	// Observers may unsubscribe while being notified.
	observers := append([]resizeObserver(nil), t.observers...)
	for _, o := range observers {
		callIsolated(fmt.Sprintf("resize observer %d", o.id), o.fn, ev)
	}
}

func callIsolated(name string, fn func(ResizeEvent), ev ResizeEvent) {
	if safego.Call(name, func() { fn(ev) }) {
		logging.Warn("vterm: %s panicked during resize to %dx%d", name, ev.Cols, ev.Rows)
	}
}
