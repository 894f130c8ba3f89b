package vterm

// ResizeSmart reshapes the grid while preserving content. Shrinking the
// width moves trimmed cells into the row's stash; growing it pulls them back
// oldest first before padding with blanks. When the height shrinks, each
// dropped bottom row (stash included) is passed to onRowEvicted if non-nil.
// Cursor and scroll region are clamped and a pending wrap is cleared.
func (b *ScreenBuffer) ResizeSmart(cols, rows int, onRowEvicted RowSink) {
	cols = max(cols, 1)
	rows = max(rows, 1)
	oldRows := b.rows

	if rows < oldRows && onRowEvicted != nil {
		for r := rows; r < oldRows; r++ {
			onRowEvicted(b.materialize(r))
		}
	}

	cells := make([]Row, rows)
	overflow := make([]Row, rows)
	for r := 0; r < rows; r++ {
		if r >= oldRows {
			cells[r] = BlankRow(cols)
			continue
		}
		cells[r], overflow[r] = reflowRow(b.cells[r], b.overflow[r], cols)
	}

	b.cells = cells
	b.overflow = overflow
	b.cols = cols
	b.rows = rows

	b.cx = min(b.cx, cols-1)
	b.cy = min(b.cy, rows-1)
	b.savedX = min(b.savedX, cols-1)
	b.savedY = min(b.savedY, rows-1)

	b.scrollTop = clamp(b.scrollTop, 0, rows-1)
	b.scrollBottom = clamp(b.scrollBottom, 0, rows-1)
	if b.scrollBottom < b.scrollTop {
		b.scrollTop = 0
		b.scrollBottom = rows - 1
	}
	b.wrapPending = false
}

// reflowRow fits a row and its stash to cols cells, returning the new
// visible row and the new stash.
func reflowRow(src, stash Row, cols int) (Row, Row) {
	if cols <= len(src) {
		row := make(Row, cols)
		copy(row, src)
		var kept Row
		if lost := src[cols:]; len(lost) > 0 || len(stash) > 0 {
			kept = make(Row, 0, len(lost)+len(stash))
			kept = append(kept, lost...)
			kept = append(kept, stash...)
		}
		return row, kept
	}

	row := make(Row, 0, cols)
	row = append(row, src...)
	take := min(cols-len(row), len(stash))
	row = append(row, stash[:take]...)
	for len(row) < cols {
		row = append(row, BlankCell())
	}
	var rest Row
	if take < len(stash) {
		rest = stash[take:].Clone()
	}
	return row, rest
}
