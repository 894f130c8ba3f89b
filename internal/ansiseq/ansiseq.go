// Package ansiseq builds the escape sequences understood by the vterm
// interpreter. Counts below 1 are sent as the default of 1.
package ansiseq

import "github.com/charmbracelet/x/ansi"

// Palette indexes accepted by Fg and Bg
const (
	Black = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

const (
	// Reset clears every text attribute
	Reset = ansi.ResetStyle
	// ClearScreen erases the display and resets the buffer state
	ClearScreen = "\x1b[2J"
	// ClearLine erases the whole cursor row
	ClearLine = "\x1b[2K"
	// ClearToEOL erases from the cursor to the end of the row
	ClearToEOL = "\x1b[K"
	// ResetScrollRegion restores the full-screen scroll region
	ResetScrollRegion = "\x1b[r"
	// SaveCursor stores the cursor position
	SaveCursor = ansi.SaveCurrentCursorPosition
	// RestoreCursor moves back to the stored position
	RestoreCursor = ansi.RestoreCurrentCursorPosition
	// ShowCursor and HideCursor toggle cursor visibility
	ShowCursor = ansi.ShowCursor
	HideCursor = ansi.HideCursor
	// AltScreenOn switches to a cleared alternate screen; AltScreenOff
	// returns to the main screen.
	AltScreenOn  = ansi.SetModeAltScreenSaveCursor
	AltScreenOff = ansi.ResetModeAltScreenSaveCursor
)

func basic(idx int) ansi.BasicColor {
	if idx < 0 || idx > BrightWhite {
		idx = White
	}
	return ansi.BasicColor(idx)
}

// Fg selects palette entry idx (0-15) as foreground
func Fg(idx int) string {
	return ansi.Style{}.ForegroundColor(basic(idx)).String()
}

// Bg selects palette entry idx (0-15) as background
func Bg(idx int) string {
	return ansi.Style{}.BackgroundColor(basic(idx)).String()
}

// Bold, Underline and Inverse turn on the named attribute
func Bold() string      { return ansi.Style{}.Bold().String() }
func Underline() string { return ansi.Style{}.Underline(true).String() }
func Inverse() string   { return ansi.Style{}.Reverse(true).String() }

// Colored wraps s in a foreground color followed by a reset
func Colored(idx int, s string) string {
	return ansi.Style{}.ForegroundColor(basic(idx)).Styled(s)
}

// Up, Down, Right and Left move the cursor by n cells
func Up(n int) string    { return ansi.CursorUp(n) }
func Down(n int) string  { return ansi.CursorDown(n) }
func Right(n int) string { return ansi.CursorForward(n) }
func Left(n int) string  { return ansi.CursorBackward(n) }

// MoveTo positions the cursor at a 1-based row and column
func MoveTo(row, col int) string {
	return ansi.CursorPosition(max(col, 1), max(row, 1))
}

// ScrollRegion limits scrolling to 1-based rows top through bottom
func ScrollRegion(top, bottom int) string {
	return ansi.SetTopBottomMargins(max(top, 1), max(bottom, 1))
}

// ScrollUp and ScrollDown scroll the region by n rows
func ScrollUp(n int) string   { return ansi.ScrollUp(n) }
func ScrollDown(n int) string { return ansi.ScrollDown(n) }

// InsertLines and DeleteLines insert or remove n rows at the cursor
func InsertLines(n int) string { return ansi.InsertLine(n) }
func DeleteLines(n int) string { return ansi.DeleteLine(n) }

// InsertChars, DeleteChars and EraseChars edit n cells at the cursor
func InsertChars(n int) string { return ansi.InsertCharacter(n) }
func DeleteChars(n int) string { return ansi.DeleteCharacter(n) }
func EraseChars(n int) string  { return ansi.EraseCharacter(n) }
