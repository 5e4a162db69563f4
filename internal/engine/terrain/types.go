// Package terrain generates the rolling hill heightfield, carves a winding
// road into it and bakes it into tiles that are recycled along the travel
// axis.
//
// Progress along the road is s = -z. Tile index i covers s in
// [i*Size, (i+1)*Size); its mesh is baked in tile-local coordinates and
// placed with Offset.
package terrain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHills = errors.New("invalid hill parameters")
	ErrInvalidRoad  = errors.New("invalid road parameters")
	ErrInvalidTile  = errors.New("invalid tile parameters")
	ErrInvalidDecor = errors.New("invalid decoration parameters")
)

// Class is the surface class used for vertex colouring.
type Class uint8

const (
	ClassGrass Class = iota
	ClassEdge
	ClassRoad
)

func (c Class) String() string {
	switch c {
	case ClassRoad:
		return "road"
	case ClassEdge:
		return "edge"
	default:
		return "grass"
	}
}

// ClassColor returns the RGBA vertex colour for a surface class.
func ClassColor(c Class) [4]float32 {
	switch c {
	case ClassRoad:
		return [4]float32{0.2, 0.2, 0.2, 1} // 0x333333
	case ClassEdge:
		return [4]float32{0.76, 0.70, 0.50, 1}
	default:
		return [4]float32{0.24, 0.6, 0.267, 1} // 0x3d9944
	}
}

// HeightSample is the heightfield evaluated at one ground point.
type HeightSample struct {
	Elevation float64
	Class     Class
}

// Vertex represents a terrain mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh holds the complete tile mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// TileParams sizes a baked tile.
type TileParams struct {
	Size     float64 // length along the travel axis
	Width    float64 // extent across x, centred on x=0
	Segments int     // grid cells per side
}

// Validate reports whether the tile can be baked.
func (p TileParams) Validate() error {
	switch {
	case p.Size <= 0:
		return fmt.Errorf("%w: size %v must be positive", ErrInvalidTile, p.Size)
	case p.Width <= 0:
		return fmt.Errorf("%w: width %v must be positive", ErrInvalidTile, p.Width)
	case p.Segments < 1:
		return fmt.Errorf("%w: segments %d must be at least 1", ErrInvalidTile, p.Segments)
	}
	return nil
}
