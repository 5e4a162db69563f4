package vehicle

import (
	gomath "math"

	"github.com/taharazashaikh97/roads/internal/game/controls"
	"github.com/taharazashaikh97/roads/pkg/math"
)

// Controller owns the vehicle state and advances it once per tick. It does
// nothing until Attach is called, so the frame loop can run before the
// vehicle model has loaded.
type Controller struct {
	params   Params
	state    State
	ground   Ground
	attached bool
}

// NewController validates p and returns a detached controller at the
// origin facing -z.
func NewController(p Params) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Controller{params: p}, nil
}

// SetGround makes the vehicle ride on g. A nil g keeps Y unchanged.
func (c *Controller) SetGround(g Ground) {
	c.ground = g
}

// Attach enables updates. Calling it again has no effect.
func (c *Controller) Attach() {
	if c.attached {
		return
	}
	c.attached = true
	c.settle()
}

// Attached reports whether Attach has been called.
func (c *Controller) Attached() bool {
	return c.attached
}

// State returns a copy of the current vehicle state.
func (c *Controller) State() State {
	return c.state
}

// Params returns the tuning in use.
func (c *Controller) Params() Params {
	return c.params
}

// Update advances the vehicle by dt seconds using the held controls and
// reports whether it ran. Before Attach, or for a
// non-positive dt, it is a no-op.
func (c *Controller) Update(dt float64, in controls.State) bool {
	if !c.attached || !(dt > 0) || gomath.IsInf(dt, 0) {
		return false
	}
	p := &c.params
	s := &c.state

	switch throttle := in.Throttle(); {
	case throttle > 0:
		s.Speed += dt * p.Acceleration
	case throttle < 0:
		s.Speed -= dt * p.Deceleration
	}
	s.Speed *= p.Friction
	s.Speed = math.Clamp(s.Speed, p.MinSpeed, p.MaxSpeed)

	steer := in.Steer()
	if gomath.Abs(s.Speed) > p.SteeringDeadband {
		k := 1.0
		if p.ScaleTurnBySpeed {
			k = gomath.Abs(s.Speed) / p.MaxSpeed
		}
		s.Heading += dt * p.TurnRate * math.Sign(steer) * k
	}

	s.Position.X -= gomath.Sin(s.Heading) * s.Speed * dt
	s.Position.Z -= gomath.Cos(s.Heading) * s.Speed * dt

	pitch := math.Clamp(-s.Speed*p.PitchFactor, -p.PitchLimit, p.PitchLimit)
	roll := math.Clamp(steer*s.Speed*p.RollFactor, -p.RollLimit, p.RollLimit)
	s.Pitch = math.Lerp(s.Pitch, pitch, p.SuspensionBlend)
	s.Roll = math.Lerp(s.Roll, roll, p.SuspensionBlend)

	c.settle()
	return true
}

// settle places the vehicle on the ground.
func (c *Controller) settle() {
	if c.ground != nil {
		c.state.Position.Y = c.ground.Height(c.state.Position.X, c.state.Position.Z) + c.params.RideHeight
	}
}

// ModelMatrix returns the vehicle transform for rendering.
func (s State) ModelMatrix() math.Mat4 {
	pos := math.V3(s.Position.X, s.Position.Y, s.Position.Z)
	return math.Euler(pos, float32(s.Heading), float32(s.Pitch), float32(s.Roll))
}
