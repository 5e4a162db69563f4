package camera

import (
	gomath "math"

	"github.com/taharazashaikh97/roads/pkg/math"
)

// Projection is a perspective projection that follows the viewport size.
type Projection struct {
	FOV    float64 // vertical, degrees
	Near   float64
	Far    float64
	Aspect float64
}

// NewProjection returns a projection for a width x height viewport.
func NewProjection(fov, near, far float64, width, height int) *Projection {
	p := &Projection{FOV: fov, Near: near, Far: far, Aspect: 1}
	p.Resize(width, height)
	return p
}

// Resize recomputes the aspect ratio. A zero or negative size is ignored
// so a minimised window keeps the last usable aspect.
func (p *Projection) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.Aspect = float64(width) / float64(height)
}

// Matrix returns the projection matrix.
func (p *Projection) Matrix() math.Mat4 {
	fov := p.FOV * gomath.Pi / 180
	return math.Perspective(float32(fov), float32(p.Aspect), float32(p.Near), float32(p.Far))
}
