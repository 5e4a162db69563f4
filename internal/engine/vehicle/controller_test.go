package vehicle

import (
	"errors"
	gomath "math"
	"math/rand/v2"
	"testing"

	"github.com/taharazashaikh97/roads/internal/game/controls"
)

const tick = 1.0 / 60

func testParams() Params {
	return Params{
		Acceleration:     20,
		Deceleration:     30,
		Friction:         0.97,
		MinSpeed:         -10,
		MaxSpeed:         40,
		TurnRate:         1.8,
		SteeringDeadband: 0.1,
		ScaleTurnBySpeed: true,
		PitchFactor:      0.002,
		PitchLimit:       0.08,
		RollFactor:       0.004,
		RollLimit:        0.1,
		SuspensionBlend:  0.1,
	}
}

func newAttached(t *testing.T, p Params) *Controller {
	t.Helper()
	c, err := NewController(p)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	c.Attach()
	return c
}

func held(cs ...controls.Control) controls.State {
	var s controls.State
	for _, c := range cs {
		s.Set(c, true)
	}
	return s
}

func TestForwardAsymptote(t *testing.T) {
	c := newAttached(t, testParams())
	in := held(controls.Forward)

	prev := 0.0
	for i := 0; i < 60; i++ {
		c.Update(tick, in)
		s := c.State()
		if s.Speed < 0 {
			t.Fatalf("tick %d: negative speed %v", i, s.Speed)
		}
		if s.Speed <= prev {
			t.Fatalf("tick %d: speed %v did not increase from %v", i, s.Speed, prev)
		}
		prev = s.Speed
	}

	s := c.State()
	p := testParams()
	asymptote := p.Acceleration * tick * p.Friction / (1 - p.Friction)
	if s.Speed >= asymptote || asymptote >= p.MaxSpeed {
		t.Errorf("speed %v should stay below asymptote %v below max %v", s.Speed, asymptote, p.MaxSpeed)
	}
	if s.Speed < 8.9 || s.Speed > 9.2 {
		t.Errorf("speed after 1s = %v, want about 9.05", s.Speed)
	}
	if s.Position.Z >= 0 || s.Position.X != 0 {
		t.Errorf("expected straight travel toward -z, got %+v", s.Position)
	}
	if s.Heading != 0 {
		t.Errorf("heading changed without steering: %v", s.Heading)
	}

	for i := 0; i < 6000; i++ {
		c.Update(tick, in)
	}
	if got := c.State().Speed; gomath.Abs(got-asymptote) > 1e-6 {
		t.Errorf("speed converged to %v, want %v", got, asymptote)
	}
}

func TestSpeedSaturation(t *testing.T) {
	p := testParams()
	p.Acceleration = 5000
	p.Deceleration = 5000
	c := newAttached(t, p)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5000; i++ {
		var in controls.State
		in.Set(controls.Forward, rng.IntN(3) == 0)
		in.Set(controls.Back, rng.IntN(3) == 0)
		in.Set(controls.Left, rng.IntN(2) == 0)
		in.Set(controls.Right, rng.IntN(2) == 0)
		c.Update(rng.Float64()*0.1+0.001, in)

		s := c.State()
		if s.Speed < p.MinSpeed || s.Speed > p.MaxSpeed {
			t.Fatalf("tick %d: speed %v outside [%v, %v]", i, s.Speed, p.MinSpeed, p.MaxSpeed)
		}
		if gomath.Abs(s.Pitch) > p.PitchLimit || gomath.Abs(s.Roll) > p.RollLimit {
			t.Fatalf("tick %d: pitch %v / roll %v beyond limits", i, s.Pitch, s.Roll)
		}
	}
}

func TestSteeringDeadband(t *testing.T) {
	tests := []struct {
		name  string
		steer controls.Control
	}{
		{"left", controls.Left},
		{"right", controls.Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newAttached(t, testParams())
			for i := 0; i < 120; i++ {
				c.Update(tick, held(tt.steer))
			}
			if h := c.State().Heading; h != 0 {
				t.Errorf("heading changed at rest: %v", h)
			}
		})
	}
}

func TestSteeringDirection(t *testing.T) {
	c := newAttached(t, testParams())
	for i := 0; i < 120; i++ {
		c.Update(tick, held(controls.Forward, controls.Left))
	}
	s := c.State()
	if s.Heading <= 0 {
		t.Errorf("left steer should increase heading, got %v", s.Heading)
	}
	// Turning left from -z heads toward -x.
	if s.Position.X >= 0 {
		t.Errorf("left turn should drift toward -x, got x=%v", s.Position.X)
	}
	if s.Roll <= 0 {
		t.Errorf("expected positive roll into a left turn, got %v", s.Roll)
	}
	if s.Pitch >= 0 {
		t.Errorf("expected negative pitch while moving forward, got %v", s.Pitch)
	}
}

func TestFixedTurnRate(t *testing.T) {
	p := testParams()
	p.ScaleTurnBySpeed = false
	c := newAttached(t, p)

	c.Update(tick, held(controls.Forward))
	before := c.State().Heading
	c.Update(tick, held(controls.Forward, controls.Right))
	got := c.State().Heading - before
	if want := -tick * p.TurnRate; gomath.Abs(got-want) > 1e-12 {
		t.Errorf("heading delta = %v, want %v", got, want)
	}
}

func TestNoOpBeforeAttach(t *testing.T) {
	c, err := NewController(testParams())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	in := held(controls.Forward, controls.Left)
	for i := 0; i < 100; i++ {
		if c.Update(tick, in) {
			t.Fatalf("tick %d: update ran before attach", i)
		}
	}
	if c.State() != (State{}) {
		t.Errorf("state mutated before attach: %+v", c.State())
	}
	if c.Attached() {
		t.Error("controller reports attached")
	}
}

func TestUpdateIgnoresBadDelta(t *testing.T) {
	c := newAttached(t, testParams())
	in := held(controls.Forward)
	for _, dt := range []float64{0, -1, gomath.NaN(), gomath.Inf(1)} {
		if c.Update(dt, in) {
			t.Errorf("update ran for dt=%v", dt)
		}
	}
	if c.State() != (State{}) {
		t.Errorf("state mutated: %+v", c.State())
	}
}

type slope struct{ k float64 }

func (s slope) Height(x, z float64) float64 { return s.k * -z }

func TestGroundFollowing(t *testing.T) {
	p := testParams()
	p.RideHeight = 0.5
	c, err := NewController(p)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	c.SetGround(slope{k: 0.1})
	c.Attach()

	if y := c.State().Position.Y; y != 0.5 {
		t.Errorf("attached Y = %v, want ride height 0.5", y)
	}
	for i := 0; i < 60; i++ {
		c.Update(tick, held(controls.Forward))
	}
	s := c.State()
	want := 0.1*-s.Position.Z + 0.5
	if gomath.Abs(s.Position.Y-want) > 1e-12 {
		t.Errorf("Y = %v, want %v", s.Position.Y, want)
	}
	if s.Progress() <= 0 {
		t.Errorf("expected forward progress, got %v", s.Progress())
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"friction zero", func(p *Params) { p.Friction = 0 }},
		{"friction one", func(p *Params) { p.Friction = 1 }},
		{"min above max", func(p *Params) { p.MinSpeed = 50 }},
		{"no max speed", func(p *Params) { p.MaxSpeed = 0 }},
		{"negative accel", func(p *Params) { p.Acceleration = -1 }},
		{"blend above one", func(p *Params) { p.SuspensionBlend = 2 }},
		{"negative deadband", func(p *Params) { p.SteeringDeadband = -0.1 }},
	}

	if err := testParams().Validate(); err != nil {
		t.Fatalf("test params invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.modify(&p)
			if _, err := NewController(p); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestModelMatrixFacesHeading(t *testing.T) {
	s := State{Position: Point{X: 3, Y: 1, Z: -7}, Heading: gomath.Pi / 2}
	m := s.ModelMatrix()

	origin := m.TransformPoint([3]float32{0, 0, 0})
	if gomath.Abs(float64(origin[0]-3)) > 1e-5 || gomath.Abs(float64(origin[2]+7)) > 1e-5 {
		t.Errorf("origin maps to %v, want (3, 1, -7)", origin)
	}
	fwd := m.TransformDirection([3]float32{0, 0, -1})
	// Heading pi/2 travels toward -x.
	if gomath.Abs(float64(fwd[0]+1)) > 1e-5 || gomath.Abs(float64(fwd[2])) > 1e-5 {
		t.Errorf("forward axis = %v, want (-1, 0, 0)", fwd)
	}
}
