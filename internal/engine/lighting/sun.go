// Package lighting provides lighting utilities for 3D rendering.
package lighting

import "math"

// SunDirection converts azimuth/elevation angles in degrees to a unit
// vector pointing towards the sun. Azimuth turns around Y starting at +z;
// elevation is measured up from the horizon.
func SunDirection(azimuth, elevation float64) [3]float32 {
	az := azimuth * math.Pi / 180.0
	el := elevation * math.Pi / 180.0

	// Spherical to Cartesian conversion
	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Sin(el))
	z := float32(math.Cos(el) * math.Cos(az))

	return [3]float32{x, y, z}
}

// Light is a directional sun plus flat ambient term.
type Light struct {
	Direction [3]float32 // towards the sun
	Color     [3]float32
	Ambient   [3]float32
}

// NewLight builds a Light from angles in degrees and RGB colours.
func NewLight(azimuth, elevation float64, color, ambient [3]float32) Light {
	return Light{
		Direction: SunDirection(azimuth, elevation),
		Color:     color,
		Ambient:   ambient,
	}
}
