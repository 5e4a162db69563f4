// Package renderer owns the OpenGL context state and presents the scene.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/taharazashaikh97/roads/internal/engine/scene"
	"github.com/taharazashaikh97/roads/internal/logger"
	"github.com/taharazashaikh97/roads/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int // drawable size in pixels
	Height int
	Scene  scene.Params
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	scene  *scene.Scene
	log    *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	r.log.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	cfg.Scene.Width = int32(cfg.Width)
	cfg.Scene.Height = int32(cfg.Height)
	var err error
	r.scene, err = scene.New(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	return r, nil
}

// Scene returns the scene being presented.
func (r *Renderer) Scene() *scene.Scene {
	return r.scene
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.scene != nil {
		r.scene.Destroy()
		r.scene = nil
	}
}

// Resize handles window resize. Zero sizes, as reported while minimised,
// are ignored.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.scene.Resize(int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the drawable size in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Draw renders one frame.
func (r *Renderer) Draw(view scene.View, vehicleModel math.Mat4) {
	r.scene.Render(view, vehicleModel, int32(r.config.Width), int32(r.config.Height))
}

// Capture reads back the last frame.
func (r *Renderer) Capture() *image.RGBA {
	return r.scene.CaptureImage()
}
