package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/taharazashaikh97/roads/internal/engine/scene/shaders"
	"github.com/taharazashaikh97/roads/internal/engine/shader"
	"github.com/taharazashaikh97/roads/pkg/math"
)

// litProgram is the shaded, fogged program shared by terrain and models.
type litProgram struct {
	id uint32

	// Uniform locations
	locModel      int32
	locViewProj   int32
	locLightDir   int32
	locLightColor int32
	locAmbient    int32
	locFogColor   int32
	locFogDensity int32
	locCameraPos  int32
}

func newLitProgram() (*litProgram, error) {
	id, err := shader.CompileProgram(shaders.LitVertexShader, shaders.LitFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("lit shader: %w", err)
	}
	return &litProgram{
		id:            id,
		locModel:      shader.GetUniform(id, "uModel"),
		locViewProj:   shader.GetUniform(id, "uViewProj"),
		locLightDir:   shader.GetUniform(id, "uLightDir"),
		locLightColor: shader.GetUniform(id, "uLightColor"),
		locAmbient:    shader.GetUniform(id, "uAmbient"),
		locFogColor:   shader.GetUniform(id, "uFogColor"),
		locFogDensity: shader.GetUniform(id, "uFogDensity"),
		locCameraPos:  shader.GetUniform(id, "uCameraPos"),
	}, nil
}

// begin binds the program and sets the per-frame uniforms.
func (p *litProgram) begin(s *Scene, v View) {
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.locViewProj, 1, false, &v.ViewProj[0])
	l := s.params.Light
	gl.Uniform3f(p.locLightDir, l.Direction[0], l.Direction[1], l.Direction[2])
	gl.Uniform3f(p.locLightColor, l.Color[0], l.Color[1], l.Color[2])
	gl.Uniform3f(p.locAmbient, l.Ambient[0], l.Ambient[1], l.Ambient[2])
	sky := s.params.Sky
	gl.Uniform3f(p.locFogColor, sky[0], sky[1], sky[2])
	gl.Uniform1f(p.locFogDensity, s.params.FogDensity)
	gl.Uniform3f(p.locCameraPos, v.CameraPos[0], v.CameraPos[1], v.CameraPos[2])
}

func (p *litProgram) setModel(m math.Mat4) {
	gl.UniformMatrix4fv(p.locModel, 1, false, &m[0])
}

func (p *litProgram) destroy() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
