package hud

import "image/color"

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Readout colours.
var (
	ColorPanelBg     = Color{0.08, 0.08, 0.12, 0.6}
	ColorPanelBorder = Color{0.3, 0.3, 0.4, 0.8}
	ColorText        = Color{0.9, 0.9, 0.9, 1}
	ColorReverse     = Color{0.95, 0.6, 0.2, 1}
)

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// NRGBA converts to a non-premultiplied 8-bit colour, clamping each
// component to [0, 1].
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
