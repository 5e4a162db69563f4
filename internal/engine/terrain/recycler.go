package terrain

import (
	"fmt"
	"math"
	"slices"
)

// Recycle records a slot whose tile moved from one index to another.
type Recycle struct {
	Slot int
	From int
	To   int
}

// Ring is a fixed pool of tile slots covering a contiguous window of
// Len()*Size() along the travel axis. Slots keep their buffers; only the
// tile index they represent changes.
type Ring struct {
	size  float64
	index []int // tile index per slot
}

// NewRing creates a ring of count tiles of the given size. The window
// starts with trailing tiles behind progress 0.
func NewRing(count int, size float64, trailing int) (*Ring, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: ring needs at least one tile, got %d", ErrInvalidTile, count)
	}
	if size <= 0 || math.IsInf(size, 0) || math.IsNaN(size) {
		return nil, fmt.Errorf("%w: tile size %v must be positive", ErrInvalidTile, size)
	}
	if trailing < 0 || trailing >= count {
		return nil, fmt.Errorf("%w: trailing %d must be in [0, %d)", ErrInvalidTile, trailing, count)
	}

	r := &Ring{size: size, index: make([]int, count)}
	for slot := range r.index {
		r.index[slot] = slot - trailing
	}
	return r, nil
}

// Len returns the number of slots.
func (r *Ring) Len() int {
	return len(r.index)
}

// Size returns the tile length.
func (r *Ring) Size() float64 {
	return r.size
}

// Index returns the tile index held by slot.
func (r *Ring) Index(slot int) int {
	return r.index[slot]
}

// Indices returns a copy of the tile index per slot.
func (r *Ring) Indices() []int {
	return slices.Clone(r.index)
}

// Offset returns the z translation of the tile in slot.
func (r *Ring) Offset(slot int) float64 {
	return Offset(r.index[slot], r.size)
}

// Window returns the progress range [start, end) covered by the ring.
func (r *Ring) Window() (start, end float64) {
	lo := slices.Min(r.index)
	return float64(lo) * r.size, float64(lo+len(r.index)) * r.size
}

// maxTileIndex bounds the tile index a reference may map to. Beyond it
// float64 progress can no longer address single tiles.
const maxTileIndex = 1 << 52

// Update moves tiles that fell more than one tile length behind progress
// ref to the front of the window, and tiles ahead of the window to the
// back when ref moves behind the rearmost tile. It returns the moves in
// the order they happened. A jump of many ring lengths is collapsed into
// one event per slot spanning whole ring lengths, so a single call never
// reports more than a few events per slot.
func (r *Ring) Update(ref float64) []Recycle {
	if math.IsNaN(ref) || math.IsInf(ref, 0) || math.Abs(ref/r.size) > maxTileIndex {
		return nil
	}
	n := len(r.index)
	lo := r.index[r.rearmost()]

	var events []Recycle
	if ahead := int(math.Ceil(ref/r.size)) - 1 - lo; ahead >= 2*n {
		events = r.shift((ahead/n - 1) * n)
	} else if behind := lo - int(math.Floor(ref/r.size)); behind >= 2*n {
		events = r.shift(-(behind/n - 1) * n)
	}

	for {
		slot := r.rearmost()
		from := r.index[slot]
		if ref-float64(from)*r.size <= r.size {
			break
		}
		r.index[slot] = from + n
		events = append(events, Recycle{Slot: slot, From: from, To: from + n})
	}

	for {
		rear := r.index[r.rearmost()]
		if ref >= float64(rear)*r.size {
			break
		}
		slot := r.frontmost()
		from := r.index[slot]
		r.index[slot] = rear - 1
		events = append(events, Recycle{Slot: slot, From: from, To: rear - 1})
	}

	return events
}

// shift moves every slot by delta tiles, a multiple of Len().
func (r *Ring) shift(delta int) []Recycle {
	events := make([]Recycle, 0, len(r.index))
	for slot, from := range r.index {
		r.index[slot] = from + delta
		events = append(events, Recycle{Slot: slot, From: from, To: from + delta})
	}
	return events
}

// Moves returns how many single-tile recycles events stand for.
func (r *Ring) Moves(events []Recycle) int {
	n := len(r.index)
	total := 0
	for _, e := range events {
		d := e.To - e.From
		if d < 0 {
			d = -d
		}
		total += d / n
	}
	return total
}

// Contiguous reports whether the slots hold consecutive distinct indices,
// i.e. the window has no gaps or overlaps.
func (r *Ring) Contiguous() bool {
	sorted := slices.Clone(r.index)
	slices.Sort(sorted)
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

func (r *Ring) rearmost() int {
	best := 0
	for slot, idx := range r.index {
		if idx < r.index[best] {
			best = slot
		}
	}
	return best
}

func (r *Ring) frontmost() int {
	best := 0
	for slot, idx := range r.index {
		if idx > r.index[best] {
			best = slot
		}
	}
	return best
}
