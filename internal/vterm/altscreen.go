package vterm

import "github.com/andyrewlee/gridterm/internal/logging"

// mainState is the main-buffer state captured on entering the alternate
// screen and restored on leaving it.
type mainState struct {
	cursor        Position
	saved         Position
	attr          Attr
	cursorVisible bool
	scrollTop     int
	scrollBottom  int
	fullRegion    bool
	viewOffset    int
}

func (t *Terminal) saveMainState() {
	b := t.main
	top, bottom := b.ScrollRegion()
	t.saved = &mainState{
		cursor:        b.Cursor(),
		saved:         b.SavedCursor(),
		attr:          b.Attr(),
		cursorVisible: b.CursorVisible(),
		scrollTop:     top,
		scrollBottom:  bottom,
		fullRegion:    b.FullScreenRegion(),
		viewOffset:    t.viewOffset,
	}
}

func (t *Terminal) restoreMainState() {
	s := t.saved
	if s == nil {
		return
	}
	t.saved = nil

	b := t.main
	b.MoveCursor(s.cursor.Row, s.cursor.Col)
	b.setSavedCursor(s.saved)
	b.SetAttr(s.attr)
	b.SetCursorVisible(s.cursorVisible)
	// A full-screen region stays full-screen across resizes made while
	// the alternate screen was active.
	if s.fullRegion {
		b.ResetScrollRegion()
	} else {
		b.SetScrollRegion(s.scrollTop, s.scrollBottom)
	}
	b.wrapPending = false
	t.viewOffset = clamp(s.viewOffset, 0, t.scrollback.Len())
}

// enterAlt switches to the alternate buffer. The main state is captured
// only on the first entry; clearAlt resets the alternate buffer.
func (t *Terminal) enterAlt(clearAlt bool) {
	if !t.useAlt {
		t.saveMainState()
	}
	t.useAlt = true
	t.viewOffset = 0
	if clearAlt {
		t.alt.Reset()
	}
}

func (t *Terminal) leaveAlt() {
	t.useAlt = false
	t.restoreMainState()
}

// EnterAltScreen switches to a freshly cleared alternate buffer. It is a
// no-op when the alternate buffer is already active.
func (t *Terminal) EnterAltScreen() {
	if t.useAlt {
		return
	}
	t.enterAlt(true)
	logging.Debug("vterm: entered alternate screen")
	t.markDirty()
}

// LeaveAltScreen returns to the main buffer and restores its saved state.
// It is a no-op when the main buffer is active.
func (t *Terminal) LeaveAltScreen() {
	if !t.useAlt {
		return
	}
	t.leaveAlt()
	logging.Debug("vterm: left alternate screen")
	t.markDirty()
}
