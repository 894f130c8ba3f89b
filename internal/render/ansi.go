package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/andyrewlee/gridterm/internal/vterm"
)

// ANSI renders f with basic 16-color SGR sequences, one row per line joined
// by CRLF. Writing the result into a terminal of the same size reproduces
// the frame. With cursor set, the cursor cell is drawn in reverse video
// when the frame shows it.
func ANSI(f *vterm.Frame, cursor bool) string {
	var buf strings.Builder
	buf.Grow(f.Cols * f.Rows * 2)

	for y, line := range f.Lines {
		if y > 0 {
			buf.WriteString("\r\n")
		}
		var run strings.Builder
		var runStyle ansi.Style
		flush := func() {
			if run.Len() == 0 {
				return
			}
			buf.WriteString(runStyle.Styled(run.String()))
			run.Reset()
		}
		for x, cell := range line {
			onCursor := cursor && f.ShowCursor() && y == f.Cursor.Row && x == f.Cursor.Col
			style := sgrStyle(cell.Attr, onCursor)
			if !sameStyle(style, runStyle) {
				flush()
				runStyle = style
			}
			run.WriteRune(cellRune(cell))
		}
		flush()
	}
	return buf.String()
}

func sgrStyle(a vterm.Attr, cursor bool) ansi.Style {
	var s ansi.Style
	if a.Bold {
		s = s.Bold()
	}
	if a.Underline {
		s = s.Underline(true)
	}
	if a.Inverse != cursor {
		s = s.Reverse(true)
	}
	if !a.Fg.IsDefault() {
		s = s.ForegroundColor(ansi.BasicColor(a.Fg.Index))
	}
	if !a.Bg.IsDefault() {
		s = s.BackgroundColor(ansi.BasicColor(a.Bg.Index))
	}
	return s
}

func sameStyle(a, b ansi.Style) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cellRune(c vterm.Cell) rune {
	if c.Ch == 0 {
		return ' '
	}
	return c.Ch
}
