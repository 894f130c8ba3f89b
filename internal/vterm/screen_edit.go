package vterm

import "github.com/mattn/go-runewidth"

const tabWidth = 8

// PutChar writes one character at the cursor. Newline, carriage return,
// backspace and tab move the cursor; other control characters and
// zero-width runes are dropped. Rows scrolled off a full-screen region are
// handed to sink when it is non-nil.
func (b *ScreenBuffer) PutChar(r rune, sink RowSink) {
	switch r {
	case '\n':
		b.cx = 0
		b.wrapPending = false
		b.LineFeed(sink)
		return
	case '\r':
		b.CarriageReturn()
		return
	case '\b':
		b.Backspace()
		return
	case '\t':
		b.Tab()
		return
	}
	if r < 0x20 || r == 0x7f {
		return
	}
	if runewidth.RuneWidth(r) == 0 {
		return
	}

	if b.wrapPending {
		b.wrapPending = false
		b.cx = 0
		b.LineFeed(sink)
	}

	b.cells[b.cy][b.cx] = Cell{Ch: r, Attr: b.attr}
	if b.cx == b.cols-1 {
		b.wrapPending = true
		return
	}
	b.cx++
}

// LineFeed moves down one row, scrolling the region when the cursor sits
// on its bottom row. A cursor below the region stops at the last row.
func (b *ScreenBuffer) LineFeed(sink RowSink) {
	if b.cy == b.scrollBottom {
		b.ScrollUp(1, sink)
		return
	}
	if b.cy < b.rows-1 {
		b.cy++
	}
}

// CarriageReturn moves to column 0
func (b *ScreenBuffer) CarriageReturn() {
	b.cx = 0
	b.wrapPending = false
}

// Backspace moves left one column without erasing
func (b *ScreenBuffer) Backspace() {
	b.wrapPending = false
	if b.cx > 0 {
		b.cx--
	}
}

// Tab advances to the next tab stop, stopping at the last column
func (b *ScreenBuffer) Tab() {
	b.wrapPending = false
	next := (b.cx/tabWidth + 1) * tabWidth
	b.cx = min(next, b.cols-1)
}

// EraseInDisplay implements ED. Mode 0 erases from the cursor to the end of
// the screen, 1 from the start to the cursor, 2 resets the whole buffer.
func (b *ScreenBuffer) EraseInDisplay(mode int) {
	b.wrapPending = false
	switch mode {
	case 0:
		b.blank(b.cy, b.cx, b.cols)
		b.overflow[b.cy] = nil
		for r := b.cy + 1; r < b.rows; r++ {
			b.cells[r] = BlankRow(b.cols)
			b.overflow[r] = nil
		}
	case 1:
		for r := 0; r < b.cy; r++ {
			b.cells[r] = BlankRow(b.cols)
			b.overflow[r] = nil
		}
		b.blank(b.cy, 0, b.cx+1)
	case 2:
		b.Reset()
	}
}

// EraseInLine implements EL with the same modes as EraseInDisplay,
// limited to the cursor row.
func (b *ScreenBuffer) EraseInLine(mode int) {
	b.wrapPending = false
	switch mode {
	case 0:
		b.blank(b.cy, b.cx, b.cols)
		b.overflow[b.cy] = nil
	case 1:
		b.blank(b.cy, 0, b.cx+1)
	case 2:
		b.blank(b.cy, 0, b.cols)
		b.overflow[b.cy] = nil
	}
}

// blank resets cells [from, to) of a row to default blanks
func (b *ScreenBuffer) blank(row, from, to int) {
	line := b.cells[row]
	to = min(to, len(line))
	for c := max(from, 0); c < to; c++ {
		line[c] = BlankCell()
	}
}

// SetSGR applies select-graphic-rendition codes left to right. An empty
// list resets the attribute. Unknown codes are ignored.
func (b *ScreenBuffer) SetSGR(params []int) {
	if len(params) == 0 {
		b.attr = Attr{}
		return
	}
	for _, p := range params {
		switch {
		case p == 0:
			b.attr = Attr{}
		case p == 1:
			b.attr.Bold = true
		case p == 4:
			b.attr.Underline = true
		case p == 7:
			b.attr.Inverse = true
		case p == 22:
			b.attr.Bold = false
		case p == 24:
			b.attr.Underline = false
		case p == 27:
			b.attr.Inverse = false
		case p >= 30 && p <= 37:
			b.attr.Fg = PaletteColor(p - 30)
		case p == 39:
			b.attr.Fg = Color{}
		case p >= 40 && p <= 47:
			b.attr.Bg = PaletteColor(p - 40)
		case p == 49:
			b.attr.Bg = Color{}
		case p >= 90 && p <= 97:
			b.attr.Fg = PaletteColor(p - 90 + 8)
		case p >= 100 && p <= 107:
			b.attr.Bg = PaletteColor(p - 100 + 8)
		}
	}
}

// InsertChars shifts the rest of the cursor row right by n, filling the gap
// with blanks in the current attribute. Cells pushed past the edge are lost.
func (b *ScreenBuffer) InsertChars(n int) {
	b.wrapPending = false
	n = min(n, b.cols-b.cx)
	if n <= 0 {
		return
	}
	row := b.cells[b.cy]
	copy(row[b.cx+n:], row[b.cx:b.cols-n])
	for i := 0; i < n; i++ {
		row[b.cx+i] = Cell{Ch: ' ', Attr: b.attr}
	}
}

// DeleteChars removes n cells at the cursor, shifting the rest left and
// padding the right edge with default blanks.
func (b *ScreenBuffer) DeleteChars(n int) {
	b.wrapPending = false
	n = min(n, b.cols-b.cx)
	if n <= 0 {
		return
	}
	row := b.cells[b.cy]
	copy(row[b.cx:], row[b.cx+n:])
	b.blank(b.cy, b.cols-n, b.cols)
}

// EraseChars blanks n cells starting at the cursor
func (b *ScreenBuffer) EraseChars(n int) {
	b.wrapPending = false
	n = min(n, b.cols-b.cx)
	if n <= 0 {
		return
	}
	b.blank(b.cy, b.cx, b.cx+n)
}

// InsertLines inserts n blank rows at the cursor row (clamped into the
// scroll region). Rows pushed past the region bottom are discarded.
func (b *ScreenBuffer) InsertLines(n int) {
	b.wrapPending = false
	b.shiftDown(clamp(b.cy, b.scrollTop, b.scrollBottom), n)
}

// DeleteLines removes n rows at the cursor row (clamped into the scroll
// region) and pulls blank rows in at the region bottom.
func (b *ScreenBuffer) DeleteLines(n int) {
	b.wrapPending = false
	b.shiftUp(clamp(b.cy, b.scrollTop, b.scrollBottom), n, nil)
}

// ScrollUp scrolls the region up by n rows. When sink is non-nil each row
// leaving the top is passed to it, stash included.
func (b *ScreenBuffer) ScrollUp(n int, sink RowSink) {
	b.wrapPending = false
	b.shiftUp(b.scrollTop, n, sink)
}

// ScrollDown scrolls the region down by n rows, inserting blanks at the top.
func (b *ScreenBuffer) ScrollDown(n int) {
	b.wrapPending = false
	b.shiftDown(b.scrollTop, n)
}

func (b *ScreenBuffer) shiftUp(top, n int, sink RowSink) {
	bottom := b.scrollBottom
	n = min(n, bottom-top+1)
	if n <= 0 {
		return
	}
	if sink != nil {
		for r := top; r < top+n; r++ {
			sink(b.materialize(r))
		}
	}
	copy(b.cells[top:bottom+1], b.cells[top+n:bottom+1])
	copy(b.overflow[top:bottom+1], b.overflow[top+n:bottom+1])
	for r := bottom - n + 1; r <= bottom; r++ {
		b.cells[r] = BlankRow(b.cols)
		b.overflow[r] = nil
	}
}

func (b *ScreenBuffer) shiftDown(top, n int) {
	bottom := b.scrollBottom
	n = min(n, bottom-top+1)
	if n <= 0 {
		return
	}
	copy(b.cells[top+n:bottom+1], b.cells[top:bottom+1-n])
	copy(b.overflow[top+n:bottom+1], b.overflow[top:bottom+1-n])
	for r := top; r < top+n; r++ {
		b.cells[r] = BlankRow(b.cols)
		b.overflow[r] = nil
	}
}
