package diagram

import (
	"fmt"
	"image/color"
)

// Palette is the fixed colour set shared by every generated diagram.
type Palette struct {
	Primary   color.NRGBA
	Secondary color.NRGBA
	Accent    color.NRGBA
	Success   color.NRGBA
	Info      color.NRGBA
	Warning   color.NRGBA
	Light     color.NRGBA
	Dark      color.NRGBA
	White     color.NRGBA
}

// DefaultPalette returns the project colours.
func DefaultPalette() Palette {
	return Palette{
		Primary:   rgb(0x2E, 0x86, 0xAB),
		Secondary: rgb(0xA2, 0x3B, 0x72),
		Accent:    rgb(0xF1, 0x8F, 0x01),
		Success:   rgb(0xC7, 0x3E, 0x1D),
		Info:      rgb(0x6C, 0x5B, 0x7B),
		Warning:   rgb(0xF7, 0x93, 0x1E),
		Light:     rgb(0xE8, 0xF4, 0xFD),
		Dark:      rgb(0x1A, 0x1A, 0x1A),
		White:     rgb(0xFF, 0xFF, 0xFF),
	}
}

func rgb(r, g, b uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

// WithAlpha returns c with its alpha set to a (0..1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}

// Hex formats c as "#RRGGBB", the form used in notation style statements.
// Alpha is dropped.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
