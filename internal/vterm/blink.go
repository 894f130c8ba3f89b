package vterm

import "time"

// Renderer draws frames
type Renderer interface {
	RenderFrame(f *Frame)
}

// Tick advances the cursor blink clock. The phase toggles once at least one
// blink interval has passed since the previous toggle, and only while
// blinking is enabled and the active buffer shows its cursor. It reports
// whether a redraw was requested. Content is never modified.
func (t *Terminal) Tick(now time.Time) bool {
	if !t.cursorBlink {
		return false
	}
	if t.lastBlink.IsZero() {
		t.lastBlink = now
		return false
	}
	if now.Sub(t.lastBlink) < t.blinkInterval {
		return false
	}
	t.lastBlink = now
	if !t.ActiveBuffer().CursorVisible() {
		return false
	}
	t.blinkOn = !t.blinkOn
	t.requestRedraw()
	return true
}

// BlinkOn returns the current blink phase
func (t *Terminal) BlinkOn() bool { return t.blinkOn }

// CursorBlink reports whether blinking is enabled
func (t *Terminal) CursorBlink() bool { return t.cursorBlink }

// BlinkInterval returns the blink half-period
func (t *Terminal) BlinkInterval() time.Duration { return t.blinkInterval }

// SetCursorBlink enables or disables blinking. Disabling leaves the cursor
// in the on phase.
func (t *Terminal) SetCursorBlink(enabled bool) {
	if t.cursorBlink == enabled {
		return
	}
	t.cursorBlink = enabled
	t.blinkOn = true
	t.lastBlink = time.Time{}
	t.requestRedraw()
}

// SetBlinkInterval changes the blink half-period; non-positive values are ignored
func (t *Terminal) SetBlinkInterval(d time.Duration) {
	if d > 0 {
		t.blinkInterval = d
	}
}

// RenderPending reports whether something changed since the last Render
func (t *Terminal) RenderPending() bool { return t.redrawPending }

// Render hands the current frame to r and clears the pending redraw
func (t *Terminal) Render(r Renderer) {
	f := t.Viewport()
	t.redrawPending = false
	r.RenderFrame(&f)
}
