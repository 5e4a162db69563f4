// Package vehicle integrates the drive kinematics of the player vehicle.
package vehicle

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is wrapped by every Params validation failure.
var ErrInvalidParams = errors.New("invalid vehicle parameters")

// Params tunes the kinematics integrator.
type Params struct {
	Acceleration     float64 // units/s^2 while forward is held
	Deceleration     float64 // units/s^2 while back is held
	Friction         float64 // per-tick speed multiplier in (0,1)
	MinSpeed         float64 // negative allows reversing
	MaxSpeed         float64
	TurnRate         float64 // rad/s at full steer
	SteeringDeadband float64 // no steering at or below this |speed|
	ScaleTurnBySpeed bool    // scale turn rate by |speed|/MaxSpeed

	PitchFactor     float64
	PitchLimit      float64
	RollFactor      float64
	RollLimit       float64
	SuspensionBlend float64 // fraction of the gap to target closed per tick

	RideHeight float64 // added to the ground height when a Ground is set
}

// Validate reports whether p describes a usable vehicle.
func (p Params) Validate() error {
	var errs []error
	if !(p.Friction > 0 && p.Friction < 1) {
		errs = append(errs, fmt.Errorf("friction %v must be in (0,1)", p.Friction))
	}
	if p.MaxSpeed <= 0 {
		errs = append(errs, fmt.Errorf("max speed %v must be positive", p.MaxSpeed))
	}
	if p.MinSpeed > 0 {
		errs = append(errs, fmt.Errorf("min speed %v must not be positive", p.MinSpeed))
	}
	if p.MinSpeed > p.MaxSpeed {
		errs = append(errs, fmt.Errorf("min speed %v above max speed %v", p.MinSpeed, p.MaxSpeed))
	}
	if p.Acceleration < 0 || p.Deceleration < 0 {
		errs = append(errs, fmt.Errorf("acceleration %v and deceleration %v must not be negative", p.Acceleration, p.Deceleration))
	}
	if p.TurnRate < 0 || p.SteeringDeadband < 0 {
		errs = append(errs, fmt.Errorf("turn rate %v and deadband %v must not be negative", p.TurnRate, p.SteeringDeadband))
	}
	if p.PitchLimit < 0 || p.RollLimit < 0 {
		errs = append(errs, fmt.Errorf("pitch limit %v and roll limit %v must not be negative", p.PitchLimit, p.RollLimit))
	}
	if p.SuspensionBlend < 0 || p.SuspensionBlend > 1 {
		errs = append(errs, fmt.Errorf("suspension blend %v must be in [0,1]", p.SuspensionBlend))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParams, errors.Join(errs...))
	}
	return nil
}

// Ground provides terrain height for the vehicle to ride on.
type Ground interface {
	// Height returns the terrain height at the given world position.
	Height(x, z float64) float64
}

// Point is a world position.
type Point struct {
	X, Y, Z float64
}

// State is the vehicle pose. Heading 0 faces -z and grows when turning
// left.
type State struct {
	Position Point
	Heading  float64
	Speed    float64
	Pitch    float64
	Roll     float64
}

// Progress returns the distance travelled along the road axis.
func (s State) Progress() float64 {
	return -s.Position.Z
}
