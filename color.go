package minirt

import "image/color"

// Color is a linear RGB color. Components are nominally in [0, 1] but may
// exceed that range while light is accumulated; they are clamped only when
// converted for output.
type Color struct {
	R, G, B float64
}

// Common colors.
var (
	Black = Color{}
	White = Color{R: 1, G: 1, B: 1}
)

// Gray returns a color with all components set to v.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

// Add returns the component-wise sum c + o.
func (c Color) Add(o Color) Color {
	return Color{R: c.R + o.R, G: c.G + o.G, B: c.B + o.B}
}

// Mul returns the component-wise product c * o.
func (c Color) Mul(o Color) Color {
	return Color{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B}
}

// Scale returns c with every component multiplied by k.
func (c Color) Scale(k float64) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// ToRGBA converts c to an opaque 8-bit color, clamping each component.
func (c Color) ToRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: 255,
	}
}

// clamp255 clamps a value to the range [0, 255].
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
