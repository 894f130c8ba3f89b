package render

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/gridterm/internal/vterm"
)

type styleKey struct {
	attr   vterm.Attr
	cursor bool
}

// Styler renders frames with lipgloss using palette hex colors. Inverse
// cells swap foreground and background. Styles are cached per attribute.
type Styler struct {
	palette Palette
	cache   map[styleKey]lipgloss.Style
}

// NewStyler creates a Styler for palette p
func NewStyler(p Palette) *Styler {
	return &Styler{palette: p, cache: make(map[styleKey]lipgloss.Style)}
}

// SetPalette swaps the palette and drops cached styles
func (s *Styler) SetPalette(p Palette) {
	s.palette = p
	clear(s.cache)
}

// Palette returns the active palette
func (s *Styler) Palette() Palette { return s.palette }

func (s *Styler) style(a vterm.Attr, cursor bool) lipgloss.Style {
	key := styleKey{attr: a, cursor: cursor}
	if st, ok := s.cache[key]; ok {
		return st
	}
	fg := s.palette.FgColor(a.Fg)
	bg := s.palette.BgColor(a.Bg)
	st := lipgloss.NewStyle().Bold(a.Bold).Underline(a.Underline)
	reverse := cursor
	if a.Inverse {
		if fg == nil && bg == nil {
			reverse = !reverse
		} else {
			fg, bg = bg, fg
		}
	}
	if fg != nil {
		st = st.Foreground(fg)
	}
	if bg != nil {
		st = st.Background(bg)
	}
	if reverse {
		st = st.Reverse(true)
	}
	s.cache[key] = st
	return st
}

// Render returns the frame as styled lines joined by newlines. The cursor
// cell is drawn in reverse video when the frame shows it.
func (s *Styler) Render(f *vterm.Frame) string {
	lines := make([]string, len(f.Lines))
	for y, line := range f.Lines {
		var out, run strings.Builder
		runKey := styleKey{}
		started := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			text := run.String()
			if runKey == (styleKey{}) {
				out.WriteString(text)
			} else {
				out.WriteString(s.style(runKey.attr, runKey.cursor).Render(text))
			}
			run.Reset()
		}
		for x, cell := range line {
			key := styleKey{
				attr:   cell.Attr,
				cursor: f.ShowCursor() && y == f.Cursor.Row && x == f.Cursor.Col,
			}
			if !started || key != runKey {
				flush()
				runKey = key
				started = true
			}
			run.WriteRune(cellRune(cell))
		}
		flush()
		lines[y] = out.String()
	}
	return strings.Join(lines, "\n")
}
