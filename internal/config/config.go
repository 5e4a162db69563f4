// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/taharazashaikh97/roads/internal/logger"
)

// Config holds all demo settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Road     RoadConfig     `yaml:"road"`
	Decor    DecorConfig    `yaml:"decor"`
	Vehicle  VehicleConfig  `yaml:"vehicle"`
	Camera   CameraConfig   `yaml:"camera"`
	Scene    SceneConfig    `yaml:"scene"`
	Assets   AssetsConfig   `yaml:"assets"`
	Controls ControlsConfig `yaml:"controls"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// HillTerm is one sinusoidal component of the rolling terrain.
type HillTerm struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

// TerrainConfig holds heightfield and tile settings.
type TerrainConfig struct {
	Hills           []HillTerm `yaml:"hills"` // large hills first
	TileSize        float64    `yaml:"tile_size"`
	TileWidth       float64    `yaml:"tile_width"`
	TileCount       int        `yaml:"tile_count"`
	Trailing        int        `yaml:"trailing"` // tiles kept behind the vehicle
	Segments        int        `yaml:"segments"`
	RebakeOnRecycle bool       `yaml:"rebake_on_recycle"`
}

// RoadConfig holds road carving settings.
type RoadConfig struct {
	Width          float64 `yaml:"width"`
	EdgeBand       float64 `yaml:"edge_band"`
	CurveAmplitude float64 `yaml:"curve_amplitude"`
	CurveFrequency float64 `yaml:"curve_frequency"`
	Flatten        bool    `yaml:"flatten"`
}

// DecorConfig holds tree scatter settings.
type DecorConfig struct {
	TreesPerTile int     `yaml:"trees_per_tile"`
	Clearance    float64 `yaml:"clearance"`
	Seed         int64   `yaml:"seed"`
}

// VehicleConfig holds kinematics tuning.
type VehicleConfig struct {
	Acceleration     float64 `yaml:"acceleration"`
	Deceleration     float64 `yaml:"deceleration"`
	Friction         float64 `yaml:"friction"`
	MinSpeed         float64 `yaml:"min_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	TurnRate         float64 `yaml:"turn_rate"`
	SteeringDeadband float64 `yaml:"steering_deadband"`
	ScaleTurnBySpeed bool    `yaml:"scale_turn_by_speed"`
	PitchFactor      float64 `yaml:"pitch_factor"`
	PitchLimit       float64 `yaml:"pitch_limit"`
	RollFactor       float64 `yaml:"roll_factor"`
	RollLimit        float64 `yaml:"roll_limit"`
	SuspensionBlend  float64 `yaml:"suspension_blend"`
	RideHeight       float64 `yaml:"ride_height"`
	FollowTerrain    bool    `yaml:"follow_terrain"`
}

// CameraConfig holds follow camera and projection settings.
type CameraConfig struct {
	Distance   float64 `yaml:"distance"`
	Height     float64 `yaml:"height"`
	LookHeight float64 `yaml:"look_height"`
	Blend      float64 `yaml:"blend"`
	FOV        float64 `yaml:"fov"` // degrees
	Near       float64 `yaml:"near"`
	Far        float64 `yaml:"far"`
}

// SceneConfig holds sky, fog and light settings.
type SceneConfig struct {
	SkyColor      string  `yaml:"sky_color"`
	FogDensity    float64 `yaml:"fog_density"`
	SunAzimuth    float64 `yaml:"sun_azimuth"`   // degrees around Y
	SunElevation  float64 `yaml:"sun_elevation"` // degrees above horizon
	SunColor      string  `yaml:"sun_color"`
	AmbientColor  string  `yaml:"ambient_color"`
	SpeedUnit     string  `yaml:"speed_unit"`
	SpeedPerUnit  float64 `yaml:"speed_per_unit"` // display units per world unit/s
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// AssetsConfig holds asset locations.
type AssetsConfig struct {
	Root         string `yaml:"root"`
	VehicleModel string `yaml:"vehicle_model"` // relative to Root
}

// ControlsConfig maps each drive control to key names.
type ControlsConfig struct {
	Forward []string `yaml:"forward"`
	Back    []string `yaml:"back"`
	Left    []string `yaml:"left"`
	Right   []string `yaml:"right"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Terrain: TerrainConfig{
			Hills: []HillTerm{
				{Amplitude: 10, Frequency: 0.012},
				{Amplitude: 4, Frequency: 0.035},
				{Amplitude: 1.2, Frequency: 0.11},
			},
			TileSize:        220,
			TileWidth:       400,
			TileCount:       6,
			Trailing:        1,
			Segments:        64,
			RebakeOnRecycle: true,
		},
		Road: RoadConfig{
			Width:          6,
			EdgeBand:       1.5,
			CurveAmplitude: 30,
			CurveFrequency: 0.005,
			Flatten:        true,
		},
		Decor: DecorConfig{
			TreesPerTile: 24,
			Clearance:    3,
			Seed:         1,
		},
		Vehicle: VehicleConfig{
			Acceleration:     60,
			Deceleration:     80,
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
			RideHeight:       0,
			FollowTerrain:    true,
		},
		Camera: CameraConfig{
			Distance:   12,
			Height:     5,
			LookHeight: 1.5,
			Blend:      0.08,
			FOV:        75,
			Near:       0.1,
			Far:        1000,
		},
		Scene: SceneConfig{
			SkyColor:      "#87ceeb",
			FogDensity:    0.01,
			SunAzimuth:    45,
			SunElevation:  74,
			SunColor:      "#ffffff",
			AmbientColor:  "#404040",
			SpeedUnit:     "km/h",
			SpeedPerUnit:  3.6,
			ScreenshotDir: "screenshots",
		},
		Assets: AssetsConfig{
			Root:         "assets",
			VehicleModel: "models/roadster.yaml",
		},
		Controls: ControlsConfig{
			Forward: []string{"up", "w"},
			Back:    []string{"down", "s"},
			Left:    []string{"left", "a"},
			Right:   []string{"right", "d"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks settings that are not owned by a simulation package.
// Terrain, road and vehicle tuning is validated where it is consumed.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	for name, col := range map[string]string{
		"scene.sky_color":     c.Scene.SkyColor,
		"scene.sun_color":     c.Scene.SunColor,
		"scene.ambient_color": c.Scene.AmbientColor,
	} {
		if !hexColor.MatchString(col) {
			errs = append(errs, fmt.Errorf("%s: %q is not a #rrggbb colour", name, col))
		}
	}
	if c.Scene.FogDensity < 0 {
		errs = append(errs, fmt.Errorf("scene.fog_density: %v must not be negative", c.Scene.FogDensity))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: near/far %v/%v out of order", c.Camera.Near, c.Camera.Far))
	}
	if c.Assets.VehicleModel == "" {
		errs = append(errs, errors.New("assets.vehicle_model: empty"))
	}
	for name, keys := range map[string][]string{
		"forward": c.Controls.Forward,
		"back":    c.Controls.Back,
		"left":    c.Controls.Left,
		"right":   c.Controls.Right,
	} {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("controls.%s: no keys bound", name))
		}
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level: unknown level %q", c.Logging.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
