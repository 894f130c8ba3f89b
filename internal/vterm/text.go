package vterm

import "strings"

// Text returns the visible rows as plain text, one line per row with
// trailing blanks and trailing empty lines removed. With withScrollback on
// the main screen, archived rows precede the live rows instead.
func (t *Terminal) Text(withScrollback bool) string {
	var rows []Row
	if withScrollback && !t.useAlt {
		for i := 0; i < t.scrollback.Len(); i++ {
			rows = append(rows, t.scrollback.At(i))
		}
		for r := 0; r < t.main.Rows(); r++ {
			rows = append(rows, t.main.cells[r])
		}
	} else {
		rows = t.Viewport().Lines
	}
	return RowsText(rows)
}

// RowsText joins rows into text, trimming trailing blanks per row and
// trailing empty lines.
func RowsText(rows []Row) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.TrimRight(r.String(), " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
