package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Color is a packed 0xRRGGBBAA value.
type Color uint32

// RGBA unpacks the colour.
func (c Color) RGBA() (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// WithAlpha replaces the alpha channel.
func (c Color) WithAlpha(a uint8) Color {
	return c&^0xff | Color(a)
}

// Blend mixes c over dst using c's alpha.
func (c Color) Blend(dst Color) Color {
	sr, sg, sb, sa := c.RGBA()
	dr, dg, db, _ := dst.RGBA()
	mix := func(s, d uint8) uint32 {
		return (uint32(s)*uint32(sa) + uint32(d)*(255-uint32(sa))) / 255
	}
	return Color(mix(sr, dr)<<24 | mix(sg, dg)<<16 | mix(sb, db)<<8 | 0xff)
}

// Hex formats the colour as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Lipgloss converts the colour for terminal rendering.
func (c Color) Lipgloss() lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// Scheme colours one class of keys. Index 0 is used for ordinary keys and the
// keyboard background, index 1 for special keys and the suggestion bar.
type Scheme struct {
	Fg       Color
	Bg       Color
	High     Color
	Swipe    Color
	Text     Color
	Font     string
	Rounding int
}

// DefaultSchemes returns the built-in dark colour schemes.
func DefaultSchemes() []Scheme {
	return []Scheme{
		{
			Fg:       0x222222ff,
			Bg:       0x000000ff,
			High:     0x5555ffff,
			Swipe:    0xff55ff80,
			Text:     0xffffffff,
			Font:     "Sans 14",
			Rounding: 5,
		},
		{
			Fg:       0x333333ff,
			Bg:       0x111111ff,
			High:     0x5555ffff,
			Swipe:    0xff55ff80,
			Text:     0xffffffff,
			Font:     "Sans 14",
			Rounding: 5,
		},
	}
}
