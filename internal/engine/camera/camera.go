// Package camera provides the follow camera and projection for the drive view.
package camera

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/taharazashaikh97/roads/internal/engine/vehicle"
	"github.com/taharazashaikh97/roads/pkg/math"
)

// ErrInvalidParams is wrapped by camera parameter validation failures.
var ErrInvalidParams = errors.New("invalid camera parameters")

// FollowParams tunes the follow camera.
type FollowParams struct {
	Distance   float64 // behind the target along its heading
	Height     float64 // above the target
	LookHeight float64 // look-at point above the target
	Blend      float64 // fraction of the gap closed per update, (0,1]

	MinDistance float64
	MaxDistance float64
	ZoomStep    float64 // fraction of Distance per zoom notch
}

// Validate reports whether p is usable.
func (p FollowParams) Validate() error {
	if !(p.Blend > 0 && p.Blend <= 1) {
		return fmt.Errorf("%w: blend %v must be in (0,1]", ErrInvalidParams, p.Blend)
	}
	if p.Distance < 0 {
		return fmt.Errorf("%w: distance %v must not be negative", ErrInvalidParams, p.Distance)
	}
	if p.MaxDistance > 0 && p.MinDistance > p.MaxDistance {
		return fmt.Errorf("%w: zoom range [%v, %v] inverted", ErrInvalidParams, p.MinDistance, p.MaxDistance)
	}
	return nil
}

// FollowCamera trails a vehicle, easing toward a point behind and above it.
type FollowCamera struct {
	params FollowParams
	pos    vehicle.Point
	look   vehicle.Point
	placed bool
}

// NewFollowCamera validates p and returns an unplaced camera. The first
// Update snaps to the target.
func NewFollowCamera(p FollowParams) (*FollowCamera, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &FollowCamera{params: p}, nil
}

// Desired returns the resting camera position for target.
func (c *FollowCamera) Desired(target vehicle.State) vehicle.Point {
	h := target.Heading
	return vehicle.Point{
		X: target.Position.X + gomath.Sin(h)*c.params.Distance,
		Y: target.Position.Y + c.params.Height,
		Z: target.Position.Z + gomath.Cos(h)*c.params.Distance,
	}
}

// Update moves the camera toward its resting position behind target.
func (c *FollowCamera) Update(target vehicle.State) {
	want := c.Desired(target)
	if !c.placed {
		c.pos = want
		c.placed = true
	} else {
		b := c.params.Blend
		c.pos.X = math.Lerp(c.pos.X, want.X, b)
		c.pos.Y = math.Lerp(c.pos.Y, want.Y, b)
		c.pos.Z = math.Lerp(c.pos.Z, want.Z, b)
	}
	c.look = c.lookAt(target)
}

func (c *FollowCamera) lookAt(target vehicle.State) vehicle.Point {
	return vehicle.Point{
		X: target.Position.X,
		Y: target.Position.Y + c.params.LookHeight,
		Z: target.Position.Z,
	}
}

// Pose returns the eye and look-at points. An unplaced camera reports its
// resting pose behind target without moving.
func (c *FollowCamera) Pose(target vehicle.State) (eye, look vehicle.Point) {
	if c.placed {
		return c.pos, c.look
	}
	return c.Desired(target), c.lookAt(target)
}

// Placed reports whether Update has run at least once.
func (c *FollowCamera) Placed() bool {
	return c.placed
}

// Position returns the camera position.
func (c *FollowCamera) Position() vehicle.Point {
	return c.pos
}

// LookAt returns the point the camera faces.
func (c *FollowCamera) LookAt() vehicle.Point {
	return c.look
}

// Zoom changes the follow distance by delta notches, clamped to the zoom
// range when one is set.
func (c *FollowCamera) Zoom(delta float64) {
	d := c.params.Distance - delta*c.params.Distance*c.params.ZoomStep
	if c.params.MaxDistance > 0 {
		d = math.Clamp(d, c.params.MinDistance, c.params.MaxDistance)
	}
	c.params.Distance = gomath.Max(d, 0)
}

// Distance returns the current follow distance.
func (c *FollowCamera) Distance() float64 {
	return c.params.Distance
}

// ViewMatrix returns the view matrix for the current pose.
func (c *FollowCamera) ViewMatrix() math.Mat4 {
	return ViewMatrix(c.pos, c.look)
}

// ViewMatrix returns a Y-up view matrix looking from eye to look.
func ViewMatrix(eye, look vehicle.Point) math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(math.V3(eye.X, eye.Y, eye.Z), math.V3(look.X, look.Y, look.Z), up)
}
