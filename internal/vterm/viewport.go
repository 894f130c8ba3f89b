package vterm

// Frame is a snapshot of what should be on screen
type Frame struct {
	Cols int
	Rows int
	// Lines holds exactly Rows rows of exactly Cols cells
	Lines []Row
	// Cursor is relative to Lines
	Cursor Position
	// CursorVisible is false while scrolled into history or when the
	// application hid the cursor
	CursorVisible bool
	// BlinkOn is the current blink phase; always true when blinking is off
	BlinkOn       bool
	AltScreen     bool
	ViewOffset    int
	ScrollbackLen int
}

// ShowCursor reports whether a renderer should draw the cursor now
func (f *Frame) ShowCursor() bool {
	return f.CursorVisible && f.BlinkOn
}

// Viewport composes the rows to display. On the main buffer the view
// covers the archived rows followed by the live rows, ending ViewOffset
// rows above the live tail.
func (t *Terminal) Viewport() Frame {
	f := Frame{
		Cols:          t.cols,
		Rows:          t.rows,
		BlinkOn:       t.blinkOn || !t.cursorBlink,
		AltScreen:     t.useAlt,
		ViewOffset:    t.viewOffset,
		ScrollbackLen: t.scrollback.Len(),
	}

	if t.useAlt {
		f.Lines = make([]Row, t.rows)
		for r := range f.Lines {
			f.Lines[r] = t.alt.Row(r)
		}
		f.Cursor = t.alt.Cursor()
		f.CursorVisible = t.alt.CursorVisible()
		return f
	}

	sb := t.scrollback.Len()
	total := sb + t.main.Rows()
	offset := clamp(t.viewOffset, 0, max(0, total-t.rows))
	end := total - offset
	start := max(0, end-t.rows)

	lines := make([]Row, 0, t.rows)
	for pad := t.rows - (end - start); pad > 0; pad-- {
		lines = append(lines, BlankRow(t.cols))
	}
	for i := start; i < end; i++ {
		if i < sb {
			lines = append(lines, t.scrollback.At(i).Fit(t.cols))
		} else {
			lines = append(lines, t.main.Row(i-sb))
		}
	}
	f.Lines = lines

	cur := t.main.Cursor()
	f.Cursor = Position{Row: sb + cur.Row - start + (t.rows - (end - start)), Col: cur.Col}
	f.CursorVisible = offset == 0 && t.main.CursorVisible()
	return f
}

// ScrollbackScroll moves the view into history by delta rows (negative
// moves back toward the live tail). It does nothing on the alternate screen.
func (t *Terminal) ScrollbackScroll(delta int) {
	if t.useAlt {
		return
	}
	next := clamp(satAdd(t.viewOffset, delta), 0, t.scrollback.Len())
	if next == t.viewOffset {
		return
	}
	t.viewOffset = next
	t.markDirty()
}

// ScrollbackToBottom returns the view to the live tail. It does nothing on
// the alternate screen.
func (t *Terminal) ScrollbackToBottom() {
	if t.useAlt || t.viewOffset == 0 {
		return
	}
	t.viewOffset = 0
	t.markDirty()
}
