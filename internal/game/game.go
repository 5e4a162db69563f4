// Package game wires the window, input, renderer and drive world into the
// main loop.
package game

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/taharazashaikh97/roads/internal/assets"
	"github.com/taharazashaikh97/roads/internal/config"
	"github.com/taharazashaikh97/roads/internal/engine/camera"
	"github.com/taharazashaikh97/roads/internal/engine/debug"
	"github.com/taharazashaikh97/roads/internal/engine/input"
	"github.com/taharazashaikh97/roads/internal/engine/lighting"
	"github.com/taharazashaikh97/roads/internal/engine/model"
	"github.com/taharazashaikh97/roads/internal/engine/renderer"
	"github.com/taharazashaikh97/roads/internal/engine/scene"
	"github.com/taharazashaikh97/roads/internal/engine/window"
	"github.com/taharazashaikh97/roads/internal/game/controls"
	"github.com/taharazashaikh97/roads/internal/game/hud"
	"github.com/taharazashaikh97/roads/internal/game/world"
	"github.com/taharazashaikh97/roads/internal/logger"
	"github.com/taharazashaikh97/roads/pkg/math"
)

// MaxFrameDelta caps the simulated time of one frame so a stall (window
// drag, breakpoint) does not turn into one huge step.
const MaxFrameDelta = 0.1

// hudScale doubles the bitmap font so it stays readable.
const hudScale = 2

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool

	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	assets     *assets.Manager
	world      *world.World
	hud        *hud.Readout
	screenshot *debug.ScreenshotCapture

	log *zap.Logger
}

// New creates a new game instance.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int64("seed", cfg.Decor.Seed),
	)

	sceneParams, err := sceneParams(cfg)
	if err != nil {
		return nil, err
	}

	bindings, err := controls.NewBindings(
		cfg.Controls.Forward, cfg.Controls.Back, cfg.Controls.Left, cfg.Controls.Right)
	if err != nil {
		return nil, fmt.Errorf("controls: %w", err)
	}

	g := &Game{
		config:     cfg,
		input:      input.New(bindings),
		assets:     assets.NewManager(),
		hud:        hud.NewReadout(cfg.Scene.SpeedUnit, cfg.Scene.SpeedPerUnit, hudScale),
		screenshot: debug.NewScreenshotCapture(cfg.Scene.ScreenshotDir, "roads"),
		log:        log,
	}

	// A missing asset root is not fatal; the vehicle load will fail and
	// the world stays still.
	if err := g.assets.AddDir(cfg.Assets.Root); err != nil {
		log.Warn("asset root unavailable", zap.Error(err))
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      "Roads",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		Scene:  sceneParams,
	})
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.world, err = world.New(cfg, g.assets)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	g.world.Resize(width, height)

	tiles, err := g.world.InitialTiles()
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to bake terrain: %w", err)
	}
	g.applyTiles(tiles)

	log.Info("game initialized successfully")
	return g, nil
}

// sceneParams converts the configured look into renderer parameters.
func sceneParams(cfg *config.Config) (scene.Params, error) {
	sky, err := model.ParseColor(cfg.Scene.SkyColor)
	if err != nil {
		return scene.Params{}, fmt.Errorf("sky color: %w", err)
	}
	sun, err := model.ParseColor(cfg.Scene.SunColor)
	if err != nil {
		return scene.Params{}, fmt.Errorf("sun color: %w", err)
	}
	ambient, err := model.ParseColor(cfg.Scene.AmbientColor)
	if err != nil {
		return scene.Params{}, fmt.Errorf("ambient color: %w", err)
	}

	return scene.Params{
		Sky:        sky,
		FogDensity: float32(cfg.Scene.FogDensity),
		Light: lighting.NewLight(cfg.Scene.SunAzimuth, cfg.Scene.SunElevation,
			[3]float32{sun[0], sun[1], sun[2]},
			[3]float32{ambient[0], ambient[1], ambient[2]}),
		Slots: cfg.Terrain.TileCount,
	}, nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	if g.running {
		return errors.New("game already running")
	}
	g.running = true

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		// Calculate delta time
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), MaxFrameDelta)
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Update world
		frame := g.world.Tick(dt, g.input.State())
		g.sync(frame)

		// 3. Render
		g.render(frame)

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float64("speed", frame.Vehicle.Speed),
				zap.Float64("progress", frame.Vehicle.Progress()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			width, height := g.window.DrawableSize()
			g.renderer.Resize(width, height)
			g.world.Resize(width, height)
		case input.EventZoom:
			g.world.Zoom(event.Wheel)
		case input.EventScreenshot:
			g.captureScreenshot()
		}
	}
}

// sync pushes world changes to the renderer.
func (g *Game) sync(frame world.Frame) {
	if frame.VehicleMesh != nil {
		g.renderer.Scene().SetVehicle(frame.VehicleMesh)
	}
	g.applyTiles(frame.Tiles)

	if g.hud.Dirty(frame.Vehicle.Speed) {
		g.renderer.Scene().SetOverlay(g.hud.Render(frame.Vehicle.Speed))
	}
}

func (g *Game) applyTiles(tiles []world.TileUpdate) {
	s := g.renderer.Scene()
	for _, u := range tiles {
		if u.Rebaked() {
			s.SetTile(u.Slot, u.Index, u.Offset, u.Mesh, u.Trees)
		} else {
			s.MoveTile(u.Slot, u.Index, u.Offset)
		}
	}
}

// render draws the current frame.
func (g *Game) render(frame world.Frame) {
	eye, look := g.world.Camera().Pose(frame.Vehicle)
	view := scene.View{
		ViewProj:  g.world.Projection().Matrix().Mul(camera.ViewMatrix(eye, look)),
		CameraPos: [3]float32{float32(eye.X), float32(eye.Y), float32(eye.Z)},
	}

	vehicleModel := math.Identity()
	if frame.Attached {
		vehicleModel = frame.Vehicle.ModelMatrix()
	}
	g.renderer.Draw(view, vehicleModel)
}

func (g *Game) captureScreenshot() {
	path, err := g.screenshot.CaptureFromImage(g.renderer.Capture())
	if err != nil {
		g.log.Error("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.renderer != nil {
		g.renderer.Close()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
	if g.assets != nil {
		g.assets.Close()
	}
}
