package scene

import (
	"fmt"

	"github.com/taharazashaikh97/roads/internal/engine/model"
	"github.com/taharazashaikh97/roads/internal/engine/terrain"
	"github.com/taharazashaikh97/roads/pkg/math"
)

// ModelRenderer draws the vehicle and the roadside trees.
type ModelRenderer struct {
	vehicle    gpuMesh
	hasVehicle bool

	tree    gpuMesh
	trees   [][]math.Mat4 // tile-local instance matrices per slot
	offsets []float32
}

// NewModelRenderer uploads the shared tree mesh and prepares count slots.
func NewModelRenderer(count int) (*ModelRenderer, error) {
	treeMesh, err := model.BuildMesh(model.Tree())
	if err != nil {
		return nil, fmt.Errorf("building tree mesh: %w", err)
	}
	return &ModelRenderer{
		tree:    uploadLit(treeMesh.Vertices, treeMesh.Indices),
		trees:   make([][]math.Mat4, count),
		offsets: make([]float32, count),
	}, nil
}

// SetVehicle uploads the vehicle mesh. Later calls replace it.
func (mr *ModelRenderer) SetVehicle(mesh *model.Mesh) {
	mr.vehicle.destroy()
	mr.vehicle = uploadLit(mesh.Vertices, mesh.Indices)
	mr.hasVehicle = true
}

// HasVehicle reports whether a vehicle mesh is loaded.
func (mr *ModelRenderer) HasVehicle() bool {
	return mr.hasVehicle
}

// SetTrees replaces the trees shown in slot.
func (mr *ModelRenderer) SetTrees(slot int, offset float32, trees []terrain.Tree) {
	mats := mr.trees[slot][:0]
	for _, t := range trees {
		pos := math.V3(t.Position[0], t.Position[1], t.Position[2])
		s := float32(t.Scale)
		mats = append(mats, math.Euler(pos, float32(t.Yaw), 0, 0).Mul(math.Scale(s, s, s)))
	}
	mr.trees[slot] = mats
	mr.offsets[slot] = offset
}

// MoveTrees translates the trees of slot.
func (mr *ModelRenderer) MoveTrees(slot int, offset float32) {
	mr.offsets[slot] = offset
}

// Render draws the trees and, when present, the vehicle at vehicleModel.
func (mr *ModelRenderer) Render(p *litProgram, vehicleModel math.Mat4) {
	for slot, mats := range mr.trees {
		tile := math.Translate(0, 0, mr.offsets[slot])
		for _, m := range mats {
			p.setModel(tile.Mul(m))
			mr.tree.draw()
		}
	}

	if mr.hasVehicle {
		p.setModel(vehicleModel)
		mr.vehicle.draw()
	}
}

// Destroy releases all resources.
func (mr *ModelRenderer) Destroy() {
	mr.vehicle.destroy()
	mr.tree.destroy()
	mr.hasVehicle = false
}
