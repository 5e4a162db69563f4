package terrain

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// DecorParams controls tree scattering.
type DecorParams struct {
	TreesPerTile int
	Clearance    float64 // extra gap kept beyond the road shoulder
	Seed         int64
}

// Validate reports whether the decoration parameters are usable.
func (p DecorParams) Validate() error {
	if p.TreesPerTile < 0 {
		return fmt.Errorf("%w: trees per tile %d must not be negative", ErrInvalidDecor, p.TreesPerTile)
	}
	if p.Clearance < 0 {
		return fmt.Errorf("%w: clearance %v must not be negative", ErrInvalidDecor, p.Clearance)
	}
	return nil
}

// Tree is a decoration placed in tile-local coordinates.
type Tree struct {
	Position [3]float64
	Scale    float64
	Yaw      float64
}

// ScatterTrees places up to TreesPerTile trees on the tile at index. The
// result depends only on the seed, the index and the heightfield, so a
// re-baked tile gets the same trees back. Points within
// Width+EdgeBand+Clearance of the road centreline are rejected.
func ScatterTrees(f *Heightfield, index int, tile TileParams, p DecorParams) ([]Tree, error) {
	if err := tile.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(uint64(p.Seed), uint64(int64(index))))
	road := f.Road()
	keepOut := road.Width + road.EdgeBand + p.Clearance
	base := float64(index) * tile.Size

	trees := make([]Tree, 0, p.TreesPerTile)
	for attempt := 0; attempt < p.TreesPerTile*8 && len(trees) < p.TreesPerTile; attempt++ {
		x := (rng.Float64() - 0.5) * tile.Width
		along := rng.Float64() * tile.Size
		scale := 0.8 + rng.Float64()*0.6
		yaw := rng.Float64() * 2 * math.Pi

		worldZ := -(base + along)
		if f.RoadDistance(x, worldZ) < keepOut {
			continue
		}
		trees = append(trees, Tree{
			Position: [3]float64{x, f.Height(x, worldZ), -along},
			Scale:    scale,
			Yaw:      yaw,
		})
	}
	return trees, nil
}
