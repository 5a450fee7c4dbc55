package render

import "fmt"

// Color is an SVG paint value, expressed either as a plain CSS color string
// ("red", "#fff") or as RGB/RGBA components, mirroring render_settings'
// color shapes.
type Color struct {
	Named    string
	R, G, B  int
	A        float64
	HasRGB   bool
	HasAlpha bool
}

// NamedColor builds a Color from a plain CSS color string.
func NamedColor(name string) Color {
	return Color{Named: name}
}

// RGB builds an opaque Color from 0-255 components.
func RGB(r, g, b int) Color {
	return Color{R: r, G: g, B: b, HasRGB: true}
}

// RGBA builds a translucent Color from 0-255 components and a 0-1 alpha.
func RGBA(r, g, b int, a float64) Color {
	return Color{R: r, G: g, B: b, A: a, HasRGB: true, HasAlpha: true}
}

// CSS renders the color as a value usable in an SVG style attribute.
func (c Color) CSS() string {
	switch {
	case c.HasAlpha:
		return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.A)
	case c.HasRGB:
		return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
	default:
		return c.Named
	}
}
