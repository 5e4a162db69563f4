package camera

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/taharazashaikh97/roads/internal/engine/vehicle"
)

func testFollow() FollowParams {
	return FollowParams{Distance: 12, Height: 5, LookHeight: 1.5, Blend: 0.1}
}

func newTestCamera(t *testing.T, p FollowParams) *FollowCamera {
	t.Helper()
	c, err := NewFollowCamera(p)
	if err != nil {
		t.Fatalf("NewFollowCamera: %v", err)
	}
	return c
}

func near(a, b float64) bool {
	return gomath.Abs(a-b) < 1e-9
}

func TestFirstUpdateSnaps(t *testing.T) {
	c := newTestCamera(t, testFollow())
	target := vehicle.State{Position: vehicle.Point{X: 2, Y: 1, Z: -40}}

	if c.Placed() {
		t.Fatal("camera placed before first update")
	}
	c.Update(target)

	pos := c.Position()
	if !near(pos.X, 2) || !near(pos.Y, 6) || !near(pos.Z, -28) {
		t.Errorf("snapped to %+v, want (2, 6, -28)", pos)
	}
	look := c.LookAt()
	if !near(look.Y, 2.5) || !near(look.Z, -40) {
		t.Errorf("look-at %+v, want (2, 2.5, -40)", look)
	}
}

func TestOffsetFollowsHeading(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		wantX   float64
		wantZ   float64
	}{
		{"facing -z", 0, 0, 12},
		{"facing -x", gomath.Pi / 2, 12, 0},
		{"facing +z", gomath.Pi, 0, -12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCamera(t, testFollow())
			d := c.Desired(vehicle.State{Heading: tt.heading})
			if gomath.Abs(d.X-tt.wantX) > 1e-9 || gomath.Abs(d.Z-tt.wantZ) > 1e-9 {
				t.Errorf("offset (%v, %v), want (%v, %v)", d.X, d.Z, tt.wantX, tt.wantZ)
			}
		})
	}
}

func TestPoseBeforeAndAfterPlacement(t *testing.T) {
	c := newTestCamera(t, testFollow())
	target := vehicle.State{Position: vehicle.Point{Y: 2}}

	eye, look := c.Pose(target)
	if c.Placed() {
		t.Fatal("Pose must not place the camera")
	}
	if !near(eye.Y, 7) || !near(eye.Z, 12) || !near(look.Y, 3.5) {
		t.Errorf("resting pose eye %+v look %+v", eye, look)
	}

	c.Update(target)
	moved := vehicle.State{Position: vehicle.Point{Z: -100}}
	eye, _ = c.Pose(moved)
	if !near(eye.Z, 12) {
		t.Errorf("placed camera should report its own position, got %+v", eye)
	}
}

func TestUpdateEasesTowardTarget(t *testing.T) {
	c := newTestCamera(t, testFollow())
	c.Update(vehicle.State{})

	moved := vehicle.State{Position: vehicle.Point{Z: -100}}
	c.Update(moved)

	// One blend step covers 10% of the 100 unit gap.
	if z := c.Position().Z; !near(z, 12-10) {
		t.Errorf("camera z = %v after one step, want 2", z)
	}

	for i := 0; i < 500; i++ {
		c.Update(moved)
	}
	if z := c.Position().Z; gomath.Abs(z-(-88)) > 1e-6 {
		t.Errorf("camera z = %v after settling, want -88", z)
	}
}

func TestZoom(t *testing.T) {
	p := testFollow()
	p.MinDistance = 6
	p.MaxDistance = 20
	p.ZoomStep = 0.1
	c := newTestCamera(t, p)

	c.Zoom(1)
	if d := c.Distance(); !near(d, 10.8) {
		t.Errorf("distance after zoom in = %v, want 10.8", d)
	}
	for i := 0; i < 50; i++ {
		c.Zoom(1)
	}
	if d := c.Distance(); d != 6 {
		t.Errorf("distance clamped to %v, want 6", d)
	}
	for i := 0; i < 50; i++ {
		c.Zoom(-1)
	}
	if d := c.Distance(); d != 20 {
		t.Errorf("distance clamped to %v, want 20", d)
	}
}

func TestViewMatrixLooksAtTarget(t *testing.T) {
	c := newTestCamera(t, testFollow())
	c.Update(vehicle.State{Position: vehicle.Point{X: 5, Z: -30}})

	view := c.ViewMatrix()
	look := c.LookAt()
	p := view.TransformPoint([3]float32{float32(look.X), float32(look.Y), float32(look.Z)})
	// The look-at point lies on the view axis in front of the camera.
	if gomath.Abs(float64(p[0])) > 1e-4 || gomath.Abs(float64(p[1])) > 1e-4 || p[2] >= 0 {
		t.Errorf("look-at point in view space = %v, want on -z axis", p)
	}
}

func TestFollowParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*FollowParams)
	}{
		{"zero blend", func(p *FollowParams) { p.Blend = 0 }},
		{"blend above one", func(p *FollowParams) { p.Blend = 1.5 }},
		{"negative distance", func(p *FollowParams) { p.Distance = -1 }},
		{"inverted zoom", func(p *FollowParams) { p.MinDistance = 30; p.MaxDistance = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testFollow()
			tt.modify(&p)
			if _, err := NewFollowCamera(p); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestProjectionResize(t *testing.T) {
	p := NewProjection(75, 0.1, 1000, 1280, 720)
	if !near(p.Aspect, 1280.0/720.0) {
		t.Errorf("aspect = %v", p.Aspect)
	}

	p.Resize(800, 800)
	if p.Aspect != 1 {
		t.Errorf("aspect after resize = %v, want 1", p.Aspect)
	}

	p.Resize(800, 0)
	if p.Aspect != 1 {
		t.Errorf("zero height changed aspect to %v", p.Aspect)
	}

	m := p.Matrix()
	if m[0] == 0 || m[5] == 0 || m[11] != -1 {
		t.Errorf("unexpected perspective matrix %v", m)
	}
	if !near(float64(m[0]), float64(m[5])) {
		t.Errorf("square viewport should scale x and y equally: %v vs %v", m[0], m[5])
	}
}
