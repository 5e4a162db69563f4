package terrain

// Offset returns the z translation that places a tile baked for index in
// the world.
func Offset(index int, size float64) float64 {
	return -float64(index) * size
}

// BuildTile bakes the tile at index into a grid mesh of (Segments+1)^2
// vertices. Positions are tile-local: x spans [-Width/2, Width/2] and z
// runs from 0 to -Size. Heights, normals and colours are sampled at world
// coordinates so neighbouring tiles meet without seams.
func BuildTile(f *Heightfield, index int, p TileParams) (*Mesh, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	n := p.Segments
	row := n + 1
	vertices := make([]Vertex, 0, row*row)
	indices := make([]uint32, 0, n*n*6)

	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	cell := p.Size / float64(n)
	if w := p.Width / float64(n); w < cell {
		cell = w
	}
	step := cell / 2

	base := float64(index) * p.Size
	for r := 0; r <= n; r++ {
		along := p.Size * float64(r) / float64(n)
		worldZ := -(base + along)
		for c := 0; c <= n; c++ {
			x := -p.Width/2 + p.Width*float64(c)/float64(n)
			s := f.Sample(x, worldZ)
			nrm := f.Normal(x, worldZ, step)

			pos := [3]float32{float32(x), float32(s.Elevation), float32(-along)}
			updateBounds(&bounds, pos)
			vertices = append(vertices, Vertex{
				Position: pos,
				Normal:   [3]float32{float32(nrm[0]), float32(nrm[1]), float32(nrm[2])},
				Color:    ClassColor(s.Class),
			})
		}
	}

	// Counter-clockwise seen from above; -z is "up" in the grid.
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			i0 := uint32(r*row + c)
			i1 := i0 + 1
			i2 := i0 + uint32(row)
			i3 := i2 + 1
			indices = append(indices,
				i0, i1, i3,
				i0, i3, i2,
			)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Bounds:   bounds,
	}, nil
}

func updateBounds(b *Bounds, p [3]float32) {
	if p[0] < b.Min[0] {
		b.Min[0] = p[0]
	}
	if p[1] < b.Min[1] {
		b.Min[1] = p[1]
	}
	if p[2] < b.Min[2] {
		b.Min[2] = p[2]
	}
	if p[0] > b.Max[0] {
		b.Max[0] = p[0]
	}
	if p[1] > b.Max[1] {
		b.Max[1] = p[1]
	}
	if p[2] > b.Max[2] {
		b.Max[2] = p[2]
	}
}
