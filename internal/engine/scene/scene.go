// Package scene renders the road world: terrain tiles, trees, the
// vehicle and a 2D overlay.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/taharazashaikh97/roads/internal/engine/framebuffer"
	"github.com/taharazashaikh97/roads/internal/engine/lighting"
	"github.com/taharazashaikh97/roads/internal/engine/model"
	"github.com/taharazashaikh97/roads/internal/engine/terrain"
	"github.com/taharazashaikh97/roads/pkg/math"
)

// Params contains scene configuration options.
type Params struct {
	Width  int32
	Height int32

	Sky        [4]float32 // clear and fog colour
	FogDensity float32
	Light      lighting.Light

	Slots int // terrain ring length
}

// View is the per-frame camera state.
type View struct {
	ViewProj  math.Mat4
	CameraPos [3]float32
}

// Scene manages the GPU side of the world.
type Scene struct {
	params Params

	// Framebuffer for offscreen rendering
	framebuffer *framebuffer.Framebuffer

	// Renderers
	program         *litProgram
	terrainRenderer *TerrainRenderer
	modelRenderer   *ModelRenderer
	overlayRenderer *OverlayRenderer
}

// New creates a new scene with the given configuration.
func New(p Params) (*Scene, error) {
	if p.Slots <= 0 {
		return nil, fmt.Errorf("scene needs at least one terrain slot, got %d", p.Slots)
	}
	s := &Scene{params: p}

	var err error
	s.framebuffer, err = framebuffer.New(p.Width, p.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	if s.program, err = newLitProgram(); err != nil {
		s.Destroy()
		return nil, err
	}

	s.terrainRenderer = NewTerrainRenderer(p.Slots)

	if s.modelRenderer, err = NewModelRenderer(p.Slots); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating model renderer: %w", err)
	}

	if s.overlayRenderer, err = NewOverlayRenderer(); err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating overlay renderer: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	return s, nil
}

// SetTile uploads a freshly baked tile and its trees into slot.
func (s *Scene) SetTile(slot, index int, offset float64, mesh *terrain.Mesh, trees []terrain.Tree) {
	s.terrainRenderer.SetTile(slot, index, float32(offset), mesh)
	s.modelRenderer.SetTrees(slot, float32(offset), trees)
}

// MoveTile translates slot to index, keeping its current geometry.
func (s *Scene) MoveTile(slot, index int, offset float64) {
	s.terrainRenderer.MoveTile(slot, index, float32(offset))
	s.modelRenderer.MoveTrees(slot, float32(offset))
}

// SetVehicle uploads the vehicle mesh.
func (s *Scene) SetVehicle(mesh *model.Mesh) {
	s.modelRenderer.SetVehicle(mesh)
}

// SetOverlay replaces the 2D overlay image.
func (s *Scene) SetOverlay(img image.Image) {
	s.overlayRenderer.Update(img)
}

// Render draws one frame into the offscreen target and presents it on a
// window surface of width x height pixels. vehicleModel is ignored until
// a vehicle mesh is set.
func (s *Scene) Render(v View, vehicleModel math.Mat4, width, height int32) {
	s.framebuffer.Bind()
	sky := s.params.Sky
	s.framebuffer.Clear(sky[0], sky[1], sky[2], sky[3])
	gl.Enable(gl.DEPTH_TEST)

	s.program.begin(s, v)
	s.terrainRenderer.Render(s.program)
	s.modelRenderer.Render(s.program, vehicleModel)

	fw, fh := s.framebuffer.Size()
	s.overlayRenderer.Render(fw, fh)

	s.framebuffer.Unbind()
	s.framebuffer.Blit(width, height)
}

// Resize resizes the offscreen target.
func (s *Scene) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	s.params.Width = width
	s.params.Height = height
	s.framebuffer.Resize(width, height)
}

// CaptureImage returns the last rendered frame.
func (s *Scene) CaptureImage() *image.RGBA {
	return s.framebuffer.Image()
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.overlayRenderer != nil {
		s.overlayRenderer.Destroy()
		s.overlayRenderer = nil
	}
	if s.modelRenderer != nil {
		s.modelRenderer.Destroy()
		s.modelRenderer = nil
	}
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
		s.terrainRenderer = nil
	}
	if s.program != nil {
		s.program.destroy()
		s.program = nil
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
		s.framebuffer = nil
	}
}
