package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/andyrewlee/gridterm/internal/ansiseq"
	"github.com/andyrewlee/gridterm/internal/vterm"
)

func sampleTerminal() *vterm.Terminal {
	term := vterm.New(12, 4)
	term.Write("plain\r\n")
	term.Write(ansiseq.Fg(ansiseq.Red) + "red" + ansiseq.Reset + " " + ansiseq.Bold() + ansiseq.Bg(ansiseq.BrightBlue) + "bb" + ansiseq.Reset + "\r\n")
	term.Write(ansiseq.Inverse() + ansiseq.Underline() + "inv" + ansiseq.Reset + "\r\n")
	term.Write("0123456789AB")
	return term
}

func TestANSIRoundTrip(t *testing.T) {
	src := sampleTerminal()
	frame := src.Viewport()
	out := ANSI(&frame, false)

	dst := vterm.New(12, 4)
	dst.Write(out)
	got := dst.Viewport()
	if diff := cmp.Diff(frame.Lines, got.Lines); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestANSIPlainRowsHaveNoEscapes(t *testing.T) {
	term := vterm.New(5, 2)
	term.Write("hi")
	frame := term.Viewport()
	if got := ANSI(&frame, false); got != "hi   \r\n     " {
		t.Fatalf("ANSI = %q", got)
	}
}

func TestANSICursorReverse(t *testing.T) {
	term := vterm.New(3, 1)
	term.Write("ab")
	frame := term.Viewport()
	out := ANSI(&frame, true)
	if !strings.Contains(out, ansi.Style{}.Reverse(true).Styled(" ")) {
		t.Fatalf("expected reversed cursor cell in %q", out)
	}
	frame.CursorVisible = false
	if strings.Contains(ANSI(&frame, true), "\x1b[") {
		t.Fatal("hidden cursor should not be drawn")
	}
}

func TestStylerKeepsText(t *testing.T) {
	term := sampleTerminal()
	frame := term.Viewport()
	s := NewStyler(DefaultPalette())
	out := s.Render(&frame)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	want := []string{"plain       ", "red bb      ", "inv         ", "0123456789AB"}
	for i, line := range lines {
		if got := ansi.Strip(line); got != want[i] {
			t.Errorf("line %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestStylerSwapsInverseColors(t *testing.T) {
	s := NewStyler(DefaultPalette())
	a := vterm.Attr{Fg: vterm.PaletteColor(1), Bg: vterm.PaletteColor(4), Inverse: true}
	st := s.style(a, false)
	if fg := st.GetForeground(); fg != s.palette.BgColor(a.Bg) {
		t.Fatalf("inverse foreground = %v", fg)
	}
	if bg := st.GetBackground(); bg != s.palette.FgColor(a.Fg) {
		t.Fatalf("inverse background = %v", bg)
	}
	if !s.style(vterm.Attr{Inverse: true}, false).GetReverse() {
		t.Fatal("inverse with default colors should use reverse video")
	}
	if s.style(vterm.Attr{Inverse: true}, true).GetReverse() {
		t.Fatal("cursor on an inverse cell should cancel reverse video")
	}
}

func TestPaletteOverrides(t *testing.T) {
	p, err := DefaultPalette().WithOverrides([]string{"", "#abc"}, []string{"#010203"})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	if p.Fg[0] != "#000000" || p.Fg[1] != "#abc" || p.Bg[0] != "#010203" {
		t.Fatalf("unexpected palette: fg0=%s fg1=%s bg0=%s", p.Fg[0], p.Fg[1], p.Bg[0])
	}
	if _, err := DefaultPalette().WithOverrides([]string{"red"}, nil); err == nil {
		t.Fatal("expected error for non-hex color")
	}
	if _, err := DefaultPalette().WithOverrides(make([]string, 17), nil); err == nil {
		t.Fatal("expected error for too many entries")
	}
}

func TestPaletteDefaultColorIsNil(t *testing.T) {
	p := DefaultPalette()
	if p.FgColor(vterm.Color{}) != nil || p.BgColor(vterm.Color{}) != nil {
		t.Fatal("default colors should resolve to nil")
	}
	if p.FgColor(vterm.PaletteColor(9)) == nil {
		t.Fatal("palette color should resolve")
	}
}

func TestValidHex(t *testing.T) {
	for _, s := range []string{"#fff", "#A0b1C2"} {
		if !ValidHex(s) {
			t.Errorf("ValidHex(%q) = false", s)
		}
	}
	for _, s := range []string{"fff", "#ffff", "#gggggg", ""} {
		if ValidHex(s) {
			t.Errorf("ValidHex(%q) = true", s)
		}
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatANSI, "ANSI": FormatANSI, "styled": FormatStyled, "text": FormatPlain}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("html"); err == nil {
		t.Fatal("expected error")
	}
}

func TestWriterRendersThroughTerminal(t *testing.T) {
	term := sampleTerminal()
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatPlain, DefaultPalette(), false)
	term.Render(w)
	if err := w.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	want := "plain\nred bb\ninv\n0123456789AB\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
	if term.RenderPending() {
		t.Fatal("render should clear pending redraw")
	}
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write([]byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestWriterKeepsFirstError(t *testing.T) {
	fw := &failingWriter{}
	w := NewWriter(fw, FormatANSI, DefaultPalette(), false)
	frame := vterm.New(4, 1).Viewport()
	w.RenderFrame(&frame)
	w.RenderFrame(&frame)
	if w.Err() == nil || fw.calls != 1 {
		t.Fatalf("err=%v calls=%d", w.Err(), fw.calls)
	}
}
