package vterm

// ColorType distinguishes the default color from palette entries
type ColorType uint8

const (
	ColorDefault ColorType = iota
	ColorPalette
)

// PaletteSize is the number of entries in the fixed color palette.
// Entries 0-7 are the normal colors, 8-15 the bright ones.
const PaletteSize = 16

// Color is either the renderer's default or one of the 16 palette entries
type Color struct {
	Type  ColorType
	Index uint8
}

// PaletteColor returns the palette entry idx (0-15).
func PaletteColor(idx int) Color {
	if idx < 0 || idx >= PaletteSize {
		return Color{}
	}
	return Color{Type: ColorPalette, Index: uint8(idx)}
}

// IsDefault reports whether c is the default color
func (c Color) IsDefault() bool {
	return c.Type == ColorDefault
}

// Attr holds the styling applied to a cell
type Attr struct {
	Fg        Color
	Bg        Color
	Bold      bool
	Underline bool
	Inverse   bool
}

// IsZero reports whether a is the default attribute
func (a Attr) IsZero() bool {
	return a == Attr{}
}

// Cell is a single character cell
type Cell struct {
	Ch   rune
	Attr Attr
}

// BlankCell returns a space with the default attribute
func BlankCell() Cell {
	return Cell{Ch: ' '}
}

// Row is one line of cells
type Row []Cell

// BlankRow creates a row of blank cells
func BlankRow(cols int) Row {
	return blankRowWith(cols, Attr{})
}

func blankRowWith(cols int, attr Attr) Row {
	if cols < 0 {
		cols = 0
	}
	row := make(Row, cols)
	for i := range row {
		row[i] = Cell{Ch: ' ', Attr: attr}
	}
	return row
}

// Clone deep copies a row
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	dst := make(Row, len(r))
	copy(dst, r)
	return dst
}

// Fit returns a copy of r truncated or blank-padded to cols cells.
func (r Row) Fit(cols int) Row {
	out := BlankRow(cols)
	copy(out, r)
	return out
}

// String returns the row's characters, trailing spaces included.
func (r Row) String() string {
	buf := make([]rune, len(r))
	for i, c := range r {
		if c.Ch == 0 {
			buf[i] = ' '
			continue
		}
		buf[i] = c.Ch
	}
	return string(buf)
}

// Position is a zero-based cell coordinate
type Position struct {
	Row int
	Col int
}
