package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/backrooms/debris"
)

// RGB is an opaque 8-bit color
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack     = RGB{0, 0, 0}
	RGBCrosshair = RGB{255, 255, 100}
)

// clamp converts float to uint8 efficiently
func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	// Clamp to not wrap on factor > 1.0
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Tint multiplies each channel by its own factor
func Tint(c RGB, f [3]float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * f[0]),
		G: clamp(float64(c.G) * f[1]),
		B: clamp(float64(c.B) * f[2]),
	}
}

// Offset adds delta to every channel with clamping
func Offset(c RGB, delta int) RGB {
	ch := func(v uint8) uint8 { return uint8(max(0, min(255, int(v)+delta))) }
	return RGB{R: ch(c.R), G: ch(c.G), B: ch(c.B)}
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// FromColorful quantizes a colorful.Color
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Colorful lifts the color into colorful space for blending
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func (c RGB) RGBA() color.RGBA { return color.RGBA{c.R, c.G, c.B, 255} }

func fromDebris(c debris.Color) RGB { return RGB{c.R, c.G, c.B} }
