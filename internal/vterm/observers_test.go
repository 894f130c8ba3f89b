package vterm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingApp struct {
	events []ResizeEvent
}

func (a *recordingApp) OnResize(ev ResizeEvent) {
	a.events = append(a.events, ev)
}

type panickingApp struct{}

func (panickingApp) OnResize(ResizeEvent) { panic("app failed") }

func TestOnResizeCalledImmediately(t *testing.T) {
	term := New(30, 10)
	var got []ResizeEvent
	term.OnResize(func(ev ResizeEvent) { got = append(got, ev) })
	want := []ResizeEvent{{Cols: 30, Rows: 10, PrevCols: 30, PrevRows: 10}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	term.Resize(40, 12)
	want = append(want, ResizeEvent{Cols: 40, Rows: 12, PrevCols: 30, PrevRows: 10})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestOnResizeUnsubscribe(t *testing.T) {
	term := New(30, 10)
	calls := 0
	unsubscribe := term.OnResize(func(ResizeEvent) { calls++ })
	unsubscribe()
	unsubscribe()
	term.Resize(31, 10)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
	if term.ObserverCount() != 0 {
		t.Fatalf("observer count = %d", term.ObserverCount())
	}
}

func TestOnResizeNilCallback(t *testing.T) {
	term := New(30, 10)
	term.OnResize(nil)()
	if term.ObserverCount() != 0 {
		t.Fatal("nil callback should not register")
	}
}

func TestObserverPanicIsolated(t *testing.T) {
	term := New(30, 10)
	var order []string
	term.OnResize(func(ev ResizeEvent) {
		if ev.Cols != ev.PrevCols {
			order = append(order, "first")
		}
	})
	term.OnResize(func(ev ResizeEvent) {
		if ev.Cols != ev.PrevCols {
			panic("observer failed")
		}
	})
	term.OnResize(func(ev ResizeEvent) {
		if ev.Cols != ev.PrevCols {
			order = append(order, "third")
		}
	})

	term.Resize(50, 10)
	if diff := cmp.Diff([]string{"first", "third"}, order); diff != "" {
		t.Fatalf("notification order mismatch (-want +got):\n%s", diff)
	}
	if got := term.Size(); got != (Size{Cols: 50, Rows: 10}) {
		t.Fatalf("resize not applied: %+v", got)
	}
}

func TestUnsubscribeDuringNotification(t *testing.T) {
	term := New(30, 10)
	var unsubscribe func()
	calls := 0
	unsubscribe = term.OnResize(func(ev ResizeEvent) {
		if ev.Cols != ev.PrevCols {
			unsubscribe()
		}
	})
	term.OnResize(func(ResizeEvent) { calls++ })
	term.Resize(20, 10)
	term.Resize(25, 10)
	if calls != 3 {
		t.Fatalf("second observer calls = %d, want 3", calls)
	}
	if term.ObserverCount() != 1 {
		t.Fatalf("observer count = %d, want 1", term.ObserverCount())
	}
}

func TestAppNotifiedBeforeObservers(t *testing.T) {
	term := New(30, 10)
	app := &recordingApp{}
	term.SetApp(app)
	appSeenFirst := false
	term.OnResize(func(ev ResizeEvent) {
		if ev.Cols != ev.PrevCols {
			appSeenFirst = len(app.events) == 1
		}
	})
	term.Resize(40, 10)
	if !appSeenFirst {
		t.Fatal("app should be notified before observers")
	}
	if term.App() != app {
		t.Fatal("App() should return the registered app")
	}
}

func TestAppPanicIsolated(t *testing.T) {
	term := New(30, 10)
	term.SetApp(panickingApp{})
	notified := false
	term.OnResize(func(ev ResizeEvent) { notified = ev.Cols == 35 })
	term.Resize(35, 10)
	if !notified {
		t.Fatal("observers should run after a panicking app")
	}
}
