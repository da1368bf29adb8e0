package paintsync

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear 0-1 RGB triple.
type Color struct {
	R, G, B float32
}

// NeutralGray replaces colors that fail to parse.
var NeutralGray = Color{R: 200.0 / 255, G: 200.0 / 255, B: 200.0 / 255}

// ParseHex parses "#rrggbb" or "rrggbb" (any case).
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return Color{}, fmt.Errorf("color %q: invalid hex digit %q", s, r)
		}
	}

	c, err := colorful.Hex("#" + s)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}, nil
}

// MustParseHex is ParseHex for constants; it panics on bad input.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// Hex formats the color as lowercase "#rrggbb", clamping out-of-range channels.
func (c Color) Hex() string {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
}

// Array returns the color as a packed rgb triple.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// FromArray converts a packed rgb triple.
func FromArray(a [3]float32) Color {
	return Color{R: a[0], G: a[1], B: a[2]}
}

func (c Color) String() string {
	return c.Hex()
}
