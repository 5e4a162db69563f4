package model

import (
	gomath "math"

	"github.com/taharazashaikh97/roads/pkg/math"
)

// builder accumulates primitives in model space.
type builder struct {
	vertices []Vertex
	indices  []uint32
	xform    math.Mat4 // position transform
	rot      math.Mat4 // normal transform
	color    [4]float32
}

func (b *builder) vertex(p, n [3]float64) uint32 {
	idx := uint32(len(b.vertices))
	pos := [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
	nrm := [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
	b.vertices = append(b.vertices, Vertex{
		Position: b.xform.TransformPoint(pos),
		Normal:   Normalize(b.rot.TransformDirection(nrm)),
		Color:    b.color,
	})
	return idx
}

func (b *builder) tri(i0, i1, i2 uint32) {
	b.indices = append(b.indices, i0, i1, i2)
}

// BuildMesh tessellates every part of d into a single coloured mesh.
func BuildMesh(d *Description) (*Mesh, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s := float32(d.Scale)
	scale := math.Scale(s, s, s)
	b := &builder{}

	for _, p := range d.Parts {
		color, err := ParseColor(p.Color)
		if err != nil {
			return nil, err
		}
		offset := math.V3(p.Offset[0], p.Offset[1], p.Offset[2])
		local := math.Euler(offset, radians(p.Rotation[0]), radians(p.Rotation[1]), radians(p.Rotation[2]))

		b.xform = scale.Mul(local)
		b.rot = math.Euler(math.Vec3{}, radians(p.Rotation[0]), radians(p.Rotation[1]), radians(p.Rotation[2]))
		b.color = color

		switch p.Shape {
		case ShapeBox:
			b.box(p.Size[0]/2, p.Size[1]/2, p.Size[2]/2)
		case ShapeCylinder:
			b.cylinder(p.Radius, p.Height, p.Segments)
		case ShapeCone:
			b.cone(p.Radius, p.Height, p.Segments)
		}
	}

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}
	for _, v := range b.vertices {
		updateBounds(&bounds, v.Position)
	}

	mesh := &Mesh{
		Vertices: b.vertices,
		Indices:  b.indices,
		Bounds:   bounds,
	}
	if d.Center {
		CenterMeshXZ(mesh.Vertices, &mesh.Bounds)
	}
	return mesh, nil
}

// box emits six flat-shaded faces. For each face u x v = n so the corner
// order below is counter-clockwise seen from outside.
func (b *builder) box(hx, hy, hz float64) {
	h := [3]float64{hx, hy, hz}
	x := [3]float64{1, 0, 0}
	y := [3]float64{0, 1, 0}
	z := [3]float64{0, 0, 1}
	neg := func(v [3]float64) [3]float64 { return [3]float64{-v[0], -v[1], -v[2]} }

	faces := [6][3][3]float64{
		{x, y, z},
		{neg(x), z, y},
		{y, z, x},
		{neg(y), x, z},
		{z, x, y},
		{neg(z), y, x},
	}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		corner := func(su, sv float64) [3]float64 {
			var p [3]float64
			for i := range p {
				p[i] = (n[i] + su*u[i] + sv*v[i]) * h[i]
			}
			return p
		}
		i0 := b.vertex(corner(-1, -1), n)
		i1 := b.vertex(corner(1, -1), n)
		i2 := b.vertex(corner(1, 1), n)
		i3 := b.vertex(corner(-1, 1), n)
		b.tri(i0, i1, i2)
		b.tri(i0, i2, i3)
	}
}

// cylinder emits a capped cylinder along y centred on the origin.
func (b *builder) cylinder(r, height float64, segs int) {
	top, bot := height/2, -height/2
	ring := func(i int) (c, s float64) {
		a := 2 * gomath.Pi * float64(i) / float64(segs)
		return gomath.Cos(a), gomath.Sin(a)
	}

	for i := 0; i < segs; i++ {
		c0, s0 := ring(i)
		c1, s1 := ring(i + 1)
		b0 := b.vertex([3]float64{r * c0, bot, r * s0}, [3]float64{c0, 0, s0})
		b1 := b.vertex([3]float64{r * c1, bot, r * s1}, [3]float64{c1, 0, s1})
		t0 := b.vertex([3]float64{r * c0, top, r * s0}, [3]float64{c0, 0, s0})
		t1 := b.vertex([3]float64{r * c1, top, r * s1}, [3]float64{c1, 0, s1})
		b.tri(b0, t1, b1)
		b.tri(b0, t0, t1)
	}

	b.cap(r, top, segs, 1)
	b.cap(r, bot, segs, -1)
}

// cone emits a cone standing on the origin with its apex at height.
func (b *builder) cone(r, height float64, segs int) {
	slant := gomath.Hypot(r, height)
	for i := 0; i < segs; i++ {
		a0 := 2 * gomath.Pi * float64(i) / float64(segs)
		a1 := 2 * gomath.Pi * float64(i+1) / float64(segs)
		am := (a0 + a1) / 2
		side := func(a float64) [3]float64 {
			return [3]float64{height * gomath.Cos(a) / slant, r / slant, height * gomath.Sin(a) / slant}
		}
		b0 := b.vertex([3]float64{r * gomath.Cos(a0), 0, r * gomath.Sin(a0)}, side(a0))
		apex := b.vertex([3]float64{0, height, 0}, side(am))
		b1 := b.vertex([3]float64{r * gomath.Cos(a1), 0, r * gomath.Sin(a1)}, side(a1))
		b.tri(b0, apex, b1)
	}
	b.cap(r, 0, segs, -1)
}

// cap emits a disc at height y facing +y (dir 1) or -y (dir -1).
func (b *builder) cap(r, y float64, segs int, dir float64) {
	n := [3]float64{0, dir, 0}
	centre := b.vertex([3]float64{0, y, 0}, n)
	first := uint32(len(b.vertices))
	for i := 0; i <= segs; i++ {
		a := 2 * gomath.Pi * float64(i) / float64(segs)
		b.vertex([3]float64{r * gomath.Cos(a), y, r * gomath.Sin(a)}, n)
	}
	for i := uint32(0); i < uint32(segs); i++ {
		if dir > 0 {
			b.tri(centre, first+i+1, first+i)
		} else {
			b.tri(centre, first+i, first+i+1)
		}
	}
}

// CenterMeshXZ centers the mesh horizontally (X/Z) but preserves Y offset.
// Returns the centering offset applied.
func CenterMeshXZ(vertices []Vertex, bounds *Bounds) (centerX, centerZ float32) {
	centerX = (bounds.Min[0] + bounds.Max[0]) / 2
	centerZ = (bounds.Min[2] + bounds.Max[2]) / 2

	for i := range vertices {
		vertices[i].Position[0] -= centerX
		vertices[i].Position[2] -= centerZ
	}

	// Update bounds after centering
	bounds.Min[0] -= centerX
	bounds.Max[0] -= centerX
	bounds.Min[2] -= centerZ
	bounds.Max[2] -= centerZ

	return centerX, centerZ
}

func updateBounds(b *Bounds, p [3]float32) {
	for i := range p {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
