// Package model describes vehicles and props as coloured primitives and
// tessellates them into meshes.
package model

// Vertex represents a model mesh vertex with position, normal and colour.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Color    [4]float32
}

// Mesh holds the complete model mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Shape names a primitive.
type Shape string

const (
	ShapeBox      Shape = "box"
	ShapeCylinder Shape = "cylinder"
	ShapeCone     Shape = "cone"
)

// Part is one primitive of a model. Boxes are centred on Offset; cylinders
// are centred on Offset along their axis; cones stand on Offset with the
// apex up.
type Part struct {
	Name     string     `yaml:"name"`
	Shape    Shape      `yaml:"shape"`
	Size     [3]float64 `yaml:"size"`     // box extents
	Radius   float64    `yaml:"radius"`   // cylinder, cone
	Height   float64    `yaml:"height"`   // cylinder, cone
	Segments int        `yaml:"segments"` // cylinder, cone
	Offset   [3]float64 `yaml:"offset"`
	Rotation [3]float64 `yaml:"rotation"` // yaw, pitch, roll in degrees
	Color    string     `yaml:"color"`    // #rrggbb
}

// Description is a model built from primitives. Its forward axis is -z.
type Description struct {
	Name   string  `yaml:"name"`
	Scale  float64 `yaml:"scale"`
	Center bool    `yaml:"center"` // recentre on X/Z after building
	Parts  []Part  `yaml:"parts"`
}

// DefaultSegments is used for round parts that do not set Segments.
const DefaultSegments = 16
