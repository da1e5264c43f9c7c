// Package rgb provides the opaque 24-bit colour used for walls and pixels.
package rgb

import "image/color"

// Color is an RGB colour with three 8-bit channels and no alpha.
type Color struct {
	R, G, B uint8
}

// Named colours used by the default palette and the renderer.
var (
	Black    = Color{0, 0, 0}
	DarkGray = Color{50, 50, 50}
	Red      = Color{180, 0, 0}
	Green    = Color{50, 128, 0}
	Blue     = Color{0, 64, 128}
	Yellow   = Color{255, 184, 0}
	Orange   = Color{255, 80, 0}
)

// AdjustLightIntensity darkens the colour to the given fraction.
// A channel is never brightened beyond its unlit value.
func (c Color) AdjustLightIntensity(intensity float64) Color {
	return Color{
		R: darken(c.R, intensity),
		G: darken(c.G, intensity),
		B: darken(c.B, intensity),
	}
}

func darken(channel uint8, intensity float64) uint8 {
	v := float64(channel) * intensity
	if v <= 0 || v != v {
		return 0
	}
	if v >= float64(channel) {
		return channel
	}
	return uint8(v)
}

// RGBA converts the colour to an opaque image/color value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
