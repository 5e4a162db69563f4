// Package hud draws the on-screen speed readout.
package hud

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/hajimehoshi/bitmapfont/v4"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	padding     = 6 // pixels around the text at scale 1
	borderWidth = 1
)

// Readout renders vehicle speed as text on a translucent panel.
type Readout struct {
	unit    string
	perUnit float64 // display units per world unit/s
	scale   int     // integer pixel upscaling

	face font.Face

	text  string
	speed float64
	img   *image.RGBA
}

// NewReadout creates a readout labelled unit that multiplies world speed
// by perUnit. scale below 1 is treated as 1.
func NewReadout(unit string, perUnit float64, scale int) *Readout {
	if scale < 1 {
		scale = 1
	}
	return &Readout{
		unit:    unit,
		perUnit: perUnit,
		scale:   scale,
		face:    bitmapfont.Face,
	}
}

// Text formats speed, in world units per second, for display. Reversing
// shows the same magnitude as driving forward.
func (r *Readout) Text(speed float64) string {
	v := math.Abs(speed) * r.perUnit
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return fmt.Sprintf("%3.0f %s", v, r.unit)
}

// Dirty reports whether Render would produce a different image for speed.
func (r *Readout) Dirty(speed float64) bool {
	return r.img == nil || r.Text(speed) != r.text || reversing(speed) != reversing(r.speed)
}

// Render returns the readout image for speed. The previous image is
// returned unchanged when the displayed text is the same.
func (r *Readout) Render(speed float64) *image.RGBA {
	if !r.Dirty(speed) {
		return r.img
	}
	r.text = r.Text(speed)
	r.speed = speed

	textColor := ColorText
	if reversing(speed) {
		textColor = ColorReverse
	}

	base := r.draw(r.text, textColor)
	if r.scale == 1 {
		r.img = base
		return r.img
	}

	b := base.Bounds()
	scaled := image.NewRGBA(image.Rect(0, 0, b.Dx()*r.scale, b.Dy()*r.scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, b, xdraw.Src, nil)
	r.img = scaled
	return r.img
}

// draw rasterises text at 1x onto a bordered panel.
func (r *Readout) draw(text string, textColor Color) *image.RGBA {
	metrics := r.face.Metrics()
	width := font.MeasureString(r.face, text).Ceil() + 2*padding
	height := metrics.Height.Ceil() + 2*padding

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(ColorPanelBorder.NRGBA()), image.Point{}, draw.Src)
	inner := img.Bounds().Inset(borderWidth)
	draw.Draw(img, inner, image.NewUniform(ColorPanelBg.NRGBA()), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor.NRGBA()),
		Face: r.face,
		Dot:  fixed.P(padding, padding+metrics.Ascent.Ceil()),
	}
	d.DrawString(text)
	return img
}

func reversing(speed float64) bool {
	return speed < 0
}
