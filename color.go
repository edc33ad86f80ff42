package glimmer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque Color.
func ParseHexColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// Hex formats the color as "#rrggbb". Alpha is dropped.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// HueShift rotates the hue by turns (1.0 is a full revolution), keeping
// saturation, lightness and alpha.
func (c Color) HueShift(turns float64) Color {
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	h = math.Mod(h+turns*360, 360)
	if h < 0 {
		h += 360
	}
	out := colorful.Hsl(h, s, l).Clamped()
	return Color{R: out.R, G: out.G, B: out.B, A: c.A}
}

// Mix linearly blends c toward other by t.
func (c Color) Mix(other Color, t float64) Color {
	return Color{
		R: lerp(c.R, other.R, t),
		G: lerp(c.G, other.G, t),
		B: lerp(c.B, other.B, t),
		A: lerp(c.A, other.A, t),
	}
}

// RGBA converts to a premultiplied color.RGBA for image APIs.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
