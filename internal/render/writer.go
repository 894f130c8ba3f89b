package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/andyrewlee/gridterm/internal/vterm"
)

// Format selects how a Writer renders frames
type Format int

const (
	FormatANSI Format = iota
	FormatStyled
	FormatPlain
)

func (f Format) String() string {
	switch f {
	case FormatANSI:
		return "ansi"
	case FormatStyled:
		return "styled"
	case FormatPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// ParseFormat maps a flag value onto a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ansi":
		return FormatANSI, nil
	case "styled":
		return FormatStyled, nil
	case "plain", "text":
		return FormatPlain, nil
	}
	return FormatANSI, fmt.Errorf("unknown format %q (want ansi, styled or plain)", s)
}

// Plain returns the frame's text with trailing blanks trimmed
func Plain(f *vterm.Frame) string {
	return vterm.RowsText(f.Lines)
}

// Writer renders frames to an io.Writer. It implements vterm.Renderer; the
// first write error is kept and returned by Err.
type Writer struct {
	out    io.Writer
	format Format
	cursor bool
	styler *Styler
	err    error
}

// NewWriter creates a Writer. cursor controls whether the cursor cell is
// highlighted.
func NewWriter(out io.Writer, format Format, palette Palette, cursor bool) *Writer {
	return &Writer{
		out:    out,
		format: format,
		cursor: cursor,
		styler: NewStyler(palette),
	}
}

// RenderFrame writes f followed by a newline
func (w *Writer) RenderFrame(f *vterm.Frame) {
	if w.err != nil {
		return
	}
	var s string
	switch w.format {
	case FormatStyled:
		if !w.cursor {
			cp := *f
			cp.CursorVisible = false
			f = &cp
		}
		s = w.styler.Render(f)
	case FormatPlain:
		s = Plain(f)
	default:
		s = ANSI(f, w.cursor)
	}
	_, w.err = io.WriteString(w.out, s+"\n")
}

// Err returns the first write error
func (w *Writer) Err() error { return w.err }
