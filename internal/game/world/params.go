package world

import (
	"github.com/taharazashaikh97/roads/internal/config"
	"github.com/taharazashaikh97/roads/internal/engine/camera"
	"github.com/taharazashaikh97/roads/internal/engine/terrain"
	"github.com/taharazashaikh97/roads/internal/engine/vehicle"
)

// Zoom range as multiples of the configured follow distance.
const (
	minZoom  = 0.5
	maxZoom  = 3.0
	zoomStep = 0.1
)

func hillParams(c config.TerrainConfig) terrain.HillParams {
	hills := make(terrain.HillParams, 0, len(c.Hills))
	for _, h := range c.Hills {
		hills = append(hills, terrain.Hill{Amplitude: h.Amplitude, Frequency: h.Frequency})
	}
	return hills
}

func roadParams(c config.RoadConfig) terrain.RoadParams {
	return terrain.RoadParams{
		Width:          c.Width,
		EdgeBand:       c.EdgeBand,
		CurveAmplitude: c.CurveAmplitude,
		CurveFrequency: c.CurveFrequency,
		Flatten:        c.Flatten,
	}
}

func tileParams(c config.TerrainConfig) terrain.TileParams {
	return terrain.TileParams{
		Size:     c.TileSize,
		Width:    c.TileWidth,
		Segments: c.Segments,
	}
}

func decorParams(c config.DecorConfig) terrain.DecorParams {
	return terrain.DecorParams{
		TreesPerTile: c.TreesPerTile,
		Clearance:    c.Clearance,
		Seed:         c.Seed,
	}
}

func vehicleParams(c config.VehicleConfig) vehicle.Params {
	return vehicle.Params{
		Acceleration:     c.Acceleration,
		Deceleration:     c.Deceleration,
		Friction:         c.Friction,
		MinSpeed:         c.MinSpeed,
		MaxSpeed:         c.MaxSpeed,
		TurnRate:         c.TurnRate,
		SteeringDeadband: c.SteeringDeadband,
		ScaleTurnBySpeed: c.ScaleTurnBySpeed,
		PitchFactor:      c.PitchFactor,
		PitchLimit:       c.PitchLimit,
		RollFactor:       c.RollFactor,
		RollLimit:        c.RollLimit,
		SuspensionBlend:  c.SuspensionBlend,
		RideHeight:       c.RideHeight,
	}
}

func followParams(c config.CameraConfig) camera.FollowParams {
	return camera.FollowParams{
		Distance:    c.Distance,
		Height:      c.Height,
		LookHeight:  c.LookHeight,
		Blend:       c.Blend,
		MinDistance: c.Distance * minZoom,
		MaxDistance: c.Distance * maxZoom,
		ZoomStep:    zoomStep,
	}
}
