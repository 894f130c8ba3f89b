package ansiseq

import (
	"strings"
	"testing"

	"github.com/andyrewlee/gridterm/internal/vterm"
)

func TestSequencesDriveTerminal(t *testing.T) {
	term := vterm.New(20, 6)
	var b strings.Builder
	b.WriteString(MoveTo(2, 3))
	b.WriteString(Fg(Red))
	b.WriteString(Bg(BrightBlue))
	b.WriteString(Bold())
	b.WriteString("X")
	b.WriteString(Reset)
	b.WriteString("Y")
	term.Write(b.String())

	main := term.Main()
	want := vterm.Attr{Fg: vterm.PaletteColor(Red), Bg: vterm.PaletteColor(BrightBlue), Bold: true}
	if got := main.Cell(1, 2); got.Ch != 'X' || got.Attr != want {
		t.Fatalf("cell = %+v, want X with %+v", got, want)
	}
	if got := main.Cell(1, 3); got.Ch != 'Y' || !got.Attr.IsZero() {
		t.Fatalf("cell after reset = %+v", got)
	}
}

func TestCursorMoves(t *testing.T) {
	term := vterm.New(20, 6)
	term.Write(MoveTo(4, 10) + Up(2) + Left(3) + Down(1) + Right(0))
	if got := term.Main().Cursor(); got != (vterm.Position{Row: 2, Col: 7}) {
		t.Fatalf("cursor = %+v", got)
	}
	term.Write(MoveTo(0, 0))
	if got := term.Main().Cursor(); got != (vterm.Position{}) {
		t.Fatalf("cursor after MoveTo(0,0) = %+v", got)
	}
}

func TestRegionAndScroll(t *testing.T) {
	term := vterm.New(10, 4)
	term.Write("a\r\nb\r\nc\r\nd")
	term.Write(ScrollRegion(2, 3) + ScrollUp(1))
	main := term.Main()
	if top, bottom := main.ScrollRegion(); top != 1 || bottom != 2 {
		t.Fatalf("region = %d..%d", top, bottom)
	}
	if got := strings.TrimRight(main.Row(1).String(), " "); got != "c" {
		t.Fatalf("row 1 = %q", got)
	}
	term.Write(ResetScrollRegion)
	if !main.FullScreenRegion() {
		t.Fatal("expected full-screen region")
	}
}

func TestEditSequences(t *testing.T) {
	term := vterm.New(6, 3)
	term.Write("abcdef" + MoveTo(1, 2) + DeleteChars(2) + InsertChars(1) + EraseChars(1))
	if got := term.Main().Row(0).String(); got != "a def " {
		t.Fatalf("row = %q", got)
	}
	term.Write(MoveTo(1, 1) + InsertLines(1) + "z" + DeleteLines(1))
	if got := strings.TrimRight(term.Main().Row(0).String(), " "); got != "a def" {
		t.Fatalf("row after line edits = %q", got)
	}
}

func TestModesAndClears(t *testing.T) {
	term := vterm.New(10, 3)
	term.Write(HideCursor)
	if term.Main().CursorVisible() {
		t.Fatal("expected hidden cursor")
	}
	term.Write(ShowCursor + AltScreenOn)
	if !term.InAltScreen() {
		t.Fatal("expected alternate screen")
	}
	term.Write(AltScreenOff + "hello" + MoveTo(1, 3) + ClearToEOL)
	if got := strings.TrimRight(term.Main().Row(0).String(), " "); got != "he" {
		t.Fatalf("row = %q", got)
	}
	term.Write(SaveCursor + MoveTo(3, 3) + RestoreCursor + ClearLine)
	if got := term.Main().Cursor(); got != (vterm.Position{Row: 0, Col: 2}) {
		t.Fatalf("cursor = %+v", got)
	}
	if got := strings.TrimSpace(term.Main().Row(0).String()); got != "" {
		t.Fatalf("row after ClearLine = %q", got)
	}
	term.Write(Colored(Green, "g") + ClearScreen)
	if got := term.Main().Cursor(); got != (vterm.Position{}) {
		t.Fatalf("ClearScreen should home the cursor, got %+v", got)
	}
}

func TestOutOfRangeColorFallsBack(t *testing.T) {
	if Fg(99) != Fg(White) {
		t.Fatalf("Fg(99) = %q", Fg(99))
	}
}
