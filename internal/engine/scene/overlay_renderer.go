package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/taharazashaikh97/roads/internal/engine/scene/shaders"
	"github.com/taharazashaikh97/roads/internal/engine/shader"
	"github.com/taharazashaikh97/roads/internal/engine/texture"
)

// overlayMargin is the gap in pixels between the overlay and the window
// corner.
const overlayMargin = 10

// OverlayRenderer draws a 2D image in the top-left corner of the screen,
// pixel for pixel.
type OverlayRenderer struct {
	program    uint32
	locRect    int32
	locTexture int32

	vao uint32
	vbo uint32

	tex *texture.Texture
}

// NewOverlayRenderer compiles the overlay program and builds the unit quad.
func NewOverlayRenderer() (*OverlayRenderer, error) {
	program, err := shader.CompileProgram(shaders.OverlayVertexShader, shaders.OverlayFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("overlay shader: %w", err)
	}

	or := &OverlayRenderer{
		program:    program,
		locRect:    shader.GetUniform(program, "uRect"),
		locTexture: shader.GetUniform(program, "uTexture"),
	}

	corners := []float32{
		0, 0,
		1, 0,
		1, 1,
		0, 0,
		1, 1,
		0, 1,
	}
	gl.GenVertexArrays(1, &or.vao)
	gl.BindVertexArray(or.vao)
	gl.GenBuffers(1, &or.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, or.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(corners)*4, unsafe.Pointer(&corners[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return or, nil
}

// Update replaces the overlay image.
func (or *OverlayRenderer) Update(img image.Image) {
	if or.tex == nil {
		or.tex = texture.New(img)
		return
	}
	or.tex.Update(img)
}

// Render draws the overlay on a viewport of width x height pixels.
func (or *OverlayRenderer) Render(width, height int32) {
	if or.tex == nil || width <= 0 || height <= 0 {
		return
	}
	tw, th := or.tex.Size()

	// Pixel rectangle to NDC, y up.
	x := -1 + 2*float32(overlayMargin)/float32(width)
	y := 1 - 2*float32(overlayMargin)/float32(height)
	w := 2 * float32(tw) / float32(width)
	h := 2 * float32(th) / float32(height)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.UseProgram(or.program)
	gl.Uniform4f(or.locRect, x, y, w, h)
	gl.Uniform1i(or.locTexture, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, or.tex.ID())

	gl.BindVertexArray(or.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Destroy releases all resources.
func (or *OverlayRenderer) Destroy() {
	if or.tex != nil {
		or.tex.Destroy()
		or.tex = nil
	}
	if or.vao != 0 {
		gl.DeleteVertexArrays(1, &or.vao)
	}
	if or.vbo != 0 {
		gl.DeleteBuffers(1, &or.vbo)
	}
	if or.program != 0 {
		gl.DeleteProgram(or.program)
		or.program = 0
	}
}
