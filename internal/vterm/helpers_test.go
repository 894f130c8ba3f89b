package vterm

import (
	"strings"
	"testing"
)

func rowText(b *ScreenBuffer, r int) string {
	return strings.TrimRight(b.Row(r).String(), " ")
}

func writeRow(b *ScreenBuffer, r int, s string) {
	b.MoveCursor(r, 0)
	for _, ch := range s {
		b.PutChar(ch, nil)
	}
}

func fillRows(b *ScreenBuffer, rows ...string) {
	for i, s := range rows {
		writeRow(b, i, s)
	}
	b.MoveCursor(0, 0)
}

func assertRows(t *testing.T, b *ScreenBuffer, want ...string) {
	t.Helper()
	if len(want) != b.Rows() {
		t.Fatalf("assertRows: want %d rows, buffer has %d", len(want), b.Rows())
	}
	for i, w := range want {
		if got := rowText(b, i); got != w {
			t.Errorf("row %d = %q, want %q", i, got, w)
		}
	}
}

func assertCursor(t *testing.T, b *ScreenBuffer, row, col int) {
	t.Helper()
	if got := b.Cursor(); got.Row != row || got.Col != col {
		t.Fatalf("cursor = (%d,%d), want (%d,%d)", got.Row, got.Col, row, col)
	}
}

func assertShape(t *testing.T, b *ScreenBuffer) {
	t.Helper()
	for r := 0; r < b.Rows(); r++ {
		if n := len(b.Row(r)); n != b.Cols() {
			t.Fatalf("row %d has %d cells, want %d", r, n, b.Cols())
		}
	}
	c := b.Cursor()
	if c.Row < 0 || c.Row >= b.Rows() || c.Col < 0 || c.Col >= b.Cols() {
		t.Fatalf("cursor (%d,%d) outside %dx%d", c.Row, c.Col, b.Cols(), b.Rows())
	}
	if b.WrapPending() && c.Col != b.Cols()-1 {
		t.Fatalf("wrap pending with cursor at column %d", c.Col)
	}
}

type rowCollector struct {
	rows []Row
}

func (c *rowCollector) sink(r Row) {
	c.rows = append(c.rows, r)
}

func (c *rowCollector) texts() []string {
	out := make([]string, len(c.rows))
	for i, r := range c.rows {
		out[i] = strings.TrimRight(r.String(), " ")
	}
	return out
}
