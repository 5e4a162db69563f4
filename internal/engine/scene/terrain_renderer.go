package scene

import (
	"github.com/taharazashaikh97/roads/internal/engine/terrain"
	"github.com/taharazashaikh97/roads/pkg/math"
)

// terrainSlot is the GPU side of one ring slot.
type terrainSlot struct {
	mesh   gpuMesh
	index  int     // tile index currently shown
	offset float32 // z translation
	bounds terrain.Bounds
}

// TerrainRenderer draws one mesh per ring slot, each with its own model
// matrix.
type TerrainRenderer struct {
	slots []terrainSlot
}

// NewTerrainRenderer creates a renderer with count empty slots.
func NewTerrainRenderer(count int) *TerrainRenderer {
	return &TerrainRenderer{slots: make([]terrainSlot, count)}
}

// SetTile replaces the mesh of slot with one baked for index.
func (tr *TerrainRenderer) SetTile(slot, index int, offset float32, mesh *terrain.Mesh) {
	s := &tr.slots[slot]
	s.mesh.destroy()
	s.mesh = uploadLit(mesh.Vertices, mesh.Indices)
	s.index = index
	s.offset = offset
	s.bounds = mesh.Bounds
}

// MoveTile translates slot to show index without rebuilding its mesh.
func (tr *TerrainRenderer) MoveTile(slot, index int, offset float32) {
	tr.slots[slot].index = index
	tr.slots[slot].offset = offset
}

// Render draws every slot.
func (tr *TerrainRenderer) Render(p *litProgram) {
	for i := range tr.slots {
		s := &tr.slots[i]
		p.setModel(math.Translate(0, 0, s.offset))
		s.mesh.draw()
	}
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	for i := range tr.slots {
		tr.slots[i].mesh.destroy()
	}
}
