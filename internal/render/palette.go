// Package render turns vterm frames into text for a console.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/andyrewlee/gridterm/internal/vterm"
)

// Palette maps the 16 color indexes to hex colors. Foreground and
// background use separate tables so backgrounds can stay dim.
type Palette struct {
	Fg [vterm.PaletteSize]string
	Bg [vterm.PaletteSize]string
}

// DefaultPalette returns the built-in dark palette
func DefaultPalette() Palette {
	return Palette{
		Fg: [vterm.PaletteSize]string{
			"#000000", "#ff7b72", "#7ee787", "#f2cc60", "#79c0ff", "#d2a8ff", "#7bdff2", "#d7e0ea",
			"#6e7681", "#ffaba8", "#aff5b4", "#f8e3a1", "#a5d6ff", "#e2c5ff", "#b3f0ff", "#ffffff",
		},
		Bg: [vterm.PaletteSize]string{
			"#000000", "#5a1a1a", "#173b23", "#3a2f14", "#132a4a", "#2a1644", "#0f3a44", "#2b323b",
			"#2b2f36", "#7a2f2f", "#2e6b3e", "#6b5a2e", "#2b4f78", "#5a3a86", "#2f7280", "#d7e0ea",
		},
	}
}

// WithOverrides returns a copy of p with non-empty entries of fg and bg
// replacing the defaults. Entries must be #rgb or #rrggbb.
func (p Palette) WithOverrides(fg, bg []string) (Palette, error) {
	if len(fg) > vterm.PaletteSize || len(bg) > vterm.PaletteSize {
		return p, fmt.Errorf("palette overrides: at most %d entries per table", vterm.PaletteSize)
	}
	for i, hex := range fg {
		if hex == "" {
			continue
		}
		if !ValidHex(hex) {
			return p, fmt.Errorf("palette fg[%d]: invalid color %q", i, hex)
		}
		p.Fg[i] = hex
	}
	for i, hex := range bg {
		if hex == "" {
			continue
		}
		if !ValidHex(hex) {
			return p, fmt.Errorf("palette bg[%d]: invalid color %q", i, hex)
		}
		p.Bg[i] = hex
	}
	return p, nil
}

// ValidHex reports whether s is a #rgb or #rrggbb color
func ValidHex(s string) bool {
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// FgColor resolves a foreground color; nil means the terminal default
func (p Palette) FgColor(c vterm.Color) color.Color {
	if c.IsDefault() || int(c.Index) >= vterm.PaletteSize {
		return nil
	}
	return lipgloss.Color(p.Fg[c.Index])
}

// BgColor resolves a background color; nil means the terminal default
func (p Palette) BgColor(c vterm.Color) color.Color {
	if c.IsDefault() || int(c.Index) >= vterm.PaletteSize {
		return nil
	}
	return lipgloss.Color(p.Bg[c.Index])
}
