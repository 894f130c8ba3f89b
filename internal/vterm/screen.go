package vterm

// RowSink receives rows leaving the top of a screen. Rows passed to a sink
// are owned by the receiver.
type RowSink func(Row)

// ScreenBuffer is a fixed grid of cells with a cursor, a current attribute
// and a scroll region. It knows nothing about escape sequences.
type ScreenBuffer struct {
	cols int
	rows int

	cells []Row
	// overflow[i] holds cells trimmed from the right of cells[i] by a
	// column shrink, in column order. It travels with its row.
	overflow []Row

	cx, cy         int
	savedX, savedY int
	attr           Attr
	cursorVisible  bool

	scrollTop    int
	scrollBottom int

	// wrapPending is set after writing the last column; the next printable
	// character wraps first.
	wrapPending bool
}

// NewScreenBuffer creates a blank buffer of cols x rows cells.
func NewScreenBuffer(cols, rows int) *ScreenBuffer {
	b := &ScreenBuffer{cols: max(cols, 1), rows: max(rows, 1)}
	b.Reset()
	return b
}

// Reset clears content, cursor, saved cursor, attribute, scroll region and
// the overflow stash. The grid shape is kept.
func (b *ScreenBuffer) Reset() {
	b.cells = make([]Row, b.rows)
	for i := range b.cells {
		b.cells[i] = BlankRow(b.cols)
	}
	b.overflow = make([]Row, b.rows)
	b.cx, b.cy = 0, 0
	b.savedX, b.savedY = 0, 0
	b.attr = Attr{}
	b.cursorVisible = true
	b.scrollTop = 0
	b.scrollBottom = b.rows - 1
	b.wrapPending = false
}

// Cols returns the buffer width
func (b *ScreenBuffer) Cols() int { return b.cols }

// Rows returns the buffer height
func (b *ScreenBuffer) Rows() int { return b.rows }

// Cursor returns the cursor position
func (b *ScreenBuffer) Cursor() Position { return Position{Row: b.cy, Col: b.cx} }

// SavedCursor returns the position stored by SaveCursor
func (b *ScreenBuffer) SavedCursor() Position { return Position{Row: b.savedY, Col: b.savedX} }

// CursorVisible reports the DECTCEM state
func (b *ScreenBuffer) CursorVisible() bool { return b.cursorVisible }

// SetCursorVisible shows or hides the cursor
func (b *ScreenBuffer) SetCursorVisible(visible bool) { b.cursorVisible = visible }

// WrapPending reports whether the next printable character wraps first
func (b *ScreenBuffer) WrapPending() bool { return b.wrapPending }

// Attr returns the attribute applied to newly written characters
func (b *ScreenBuffer) Attr() Attr { return b.attr }

// SetAttr replaces the current attribute
func (b *ScreenBuffer) SetAttr(a Attr) { b.attr = a }

// ScrollRegion returns the inclusive scroll region bounds
func (b *ScreenBuffer) ScrollRegion() (top, bottom int) { return b.scrollTop, b.scrollBottom }

// FullScreenRegion reports whether the scroll region covers every row
func (b *ScreenBuffer) FullScreenRegion() bool {
	return b.scrollTop == 0 && b.scrollBottom == b.rows-1
}

// Cell returns the cell at row, col or a blank cell when out of range
func (b *ScreenBuffer) Cell(row, col int) Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return BlankCell()
	}
	return b.cells[row][col]
}

// Row returns a copy of the visible cells of a row
func (b *ScreenBuffer) Row(row int) Row {
	if row < 0 || row >= b.rows {
		return BlankRow(b.cols)
	}
	return b.cells[row].Clone()
}

// Overflow returns a copy of the cells stashed for a row by column shrinks
func (b *ScreenBuffer) Overflow(row int) Row {
	if row < 0 || row >= b.rows {
		return nil
	}
	return b.overflow[row].Clone()
}

// FullRow returns the visible cells of a row followed by its stash
func (b *ScreenBuffer) FullRow(row int) Row {
	if row < 0 || row >= b.rows {
		return nil
	}
	return b.materialize(row)
}

func (b *ScreenBuffer) materialize(row int) Row {
	out := make(Row, 0, b.cols+len(b.overflow[row]))
	out = append(out, b.cells[row]...)
	return append(out, b.overflow[row]...)
}

// MoveCursor moves to an absolute zero-based position, clamped to the grid.
func (b *ScreenBuffer) MoveCursor(row, col int) {
	b.cy = clamp(row, 0, b.rows-1)
	b.cx = clamp(col, 0, b.cols-1)
	b.wrapPending = false
}

// MoveCursorRelative moves by the given deltas, clamped to the grid.
func (b *ScreenBuffer) MoveCursorRelative(dRow, dCol int) {
	b.MoveCursor(satAdd(b.cy, dRow), satAdd(b.cx, dCol))
}

// SaveCursor stores the cursor position only.
func (b *ScreenBuffer) SaveCursor() {
	b.savedX, b.savedY = b.cx, b.cy
	b.wrapPending = false
}

// RestoreCursor moves to the saved position.
func (b *ScreenBuffer) RestoreCursor() {
	b.MoveCursor(b.savedY, b.savedX)
}

func (b *ScreenBuffer) setSavedCursor(p Position) {
	b.savedX = clamp(p.Col, 0, b.cols-1)
	b.savedY = clamp(p.Row, 0, b.rows-1)
}

// SetScrollRegion sets the inclusive zero-based region. Out-of-range bounds
// are clamped; bottom < top resets to the full screen. The cursor is not moved.
func (b *ScreenBuffer) SetScrollRegion(top, bottom int) {
	top = clamp(top, 0, b.rows-1)
	bottom = clamp(bottom, 0, b.rows-1)
	if bottom < top {
		b.ResetScrollRegion()
		return
	}
	b.scrollTop, b.scrollBottom = top, bottom
	b.wrapPending = false
}

// ResetScrollRegion makes the region cover the whole screen.
func (b *ScreenBuffer) ResetScrollRegion() {
	b.scrollTop = 0
	b.scrollBottom = b.rows - 1
	b.wrapPending = false
}

func (b *ScreenBuffer) clampCursor() {
	b.cx = clamp(b.cx, 0, b.cols-1)
	b.cy = clamp(b.cy, 0, b.rows-1)
	if b.cx != b.cols-1 {
		b.wrapPending = false
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// satAdd adds without wrapping around on overflow.
func satAdd(a, b int) int {
	s := a + b
	if b > 0 && s < a {
		return int(^uint(0) >> 1)
	}
	if b < 0 && s > a {
		return -int(^uint(0)>>1) - 1
	}
	return s
}
