package terrain

import (
	"fmt"
	"math"
)

// Hill is one sinusoidal elevation term.
type Hill struct {
	Amplitude float64
	Frequency float64
}

// HillParams lists up to three elevation terms, large rolling hills first.
// Term 0 varies along x, term 1 along z and term 2 along the diagonal:
//
//	y = A0*sin(x*f0) + A1*cos(z*f1) + A2*sin((x+z)*f2)
//
// An empty list gives flat ground.
type HillParams []Hill

// Validate checks that frequencies strictly increase while amplitudes
// strictly decrease.
func (h HillParams) Validate() error {
	if len(h) > 3 {
		return fmt.Errorf("%w: %d terms, at most 3 supported", ErrInvalidHills, len(h))
	}
	for i, t := range h {
		if t.Amplitude <= 0 || t.Frequency <= 0 {
			return fmt.Errorf("%w: term %d needs positive amplitude and frequency", ErrInvalidHills, i)
		}
		if i == 0 {
			continue
		}
		prev := h[i-1]
		if t.Frequency <= prev.Frequency {
			return fmt.Errorf("%w: term %d frequency %v not above %v", ErrInvalidHills, i, t.Frequency, prev.Frequency)
		}
		if t.Amplitude >= prev.Amplitude {
			return fmt.Errorf("%w: term %d amplitude %v not below %v", ErrInvalidHills, i, t.Amplitude, prev.Amplitude)
		}
	}
	return nil
}

// RoadParams shapes the road carved into the hills.
type RoadParams struct {
	Width          float64 // half-width of the flattened channel
	EdgeBand       float64 // shoulder beyond Width
	CurveAmplitude float64 // bound on |RoadCurve(z)|
	CurveFrequency float64
	Flatten        bool
}

// Validate reports whether the road parameters are usable.
func (r RoadParams) Validate() error {
	switch {
	case r.Width <= 0:
		return fmt.Errorf("%w: width %v must be positive", ErrInvalidRoad, r.Width)
	case r.EdgeBand < 0:
		return fmt.Errorf("%w: edge band %v must not be negative", ErrInvalidRoad, r.EdgeBand)
	case r.CurveAmplitude < 0:
		return fmt.Errorf("%w: curve amplitude %v must not be negative", ErrInvalidRoad, r.CurveAmplitude)
	case r.CurveFrequency < 0:
		return fmt.Errorf("%w: curve frequency %v must not be negative", ErrInvalidRoad, r.CurveFrequency)
	}
	return nil
}

// Heightfield maps ground coordinates to elevation and surface class.
// It holds no mutable state; every method is a pure function of its
// arguments and is safe for concurrent use.
type Heightfield struct {
	hills HillParams
	road  RoadParams
}

// NewHeightfield validates the parameters and returns a heightfield.
func NewHeightfield(hills HillParams, road RoadParams) (*Heightfield, error) {
	if err := hills.Validate(); err != nil {
		return nil, err
	}
	if err := road.Validate(); err != nil {
		return nil, err
	}
	return &Heightfield{
		hills: append(HillParams(nil), hills...),
		road:  road,
	}, nil
}

// Road returns the road parameters.
func (f *Heightfield) Road() RoadParams {
	return f.road
}

// Base returns the hill elevation before road carving.
func (f *Heightfield) Base(x, z float64) float64 {
	var y float64
	for i, t := range f.hills {
		switch i {
		case 0:
			y += t.Amplitude * math.Sin(x*t.Frequency)
		case 1:
			y += t.Amplitude * math.Cos(z*t.Frequency)
		case 2:
			y += t.Amplitude * math.Sin((x+z)*t.Frequency)
		}
	}
	return y
}

// RoadCurve returns the lateral offset of the road centreline at z.
// Weights sum to one so |RoadCurve(z)| <= CurveAmplitude.
func (f *Heightfield) RoadCurve(z float64) float64 {
	a, k := f.road.CurveAmplitude, f.road.CurveFrequency
	return a * (0.7*math.Sin(z*k) + 0.3*math.Sin(z*k*2.7+1.3))
}

// RoadDistance returns |x - RoadCurve(z)|.
func (f *Heightfield) RoadDistance(x, z float64) float64 {
	return math.Abs(x - f.RoadCurve(z))
}

func (f *Heightfield) classify(dist float64) Class {
	switch {
	case dist < f.road.Width:
		return ClassRoad
	case dist < f.road.Width+f.road.EdgeBand:
		return ClassEdge
	default:
		return ClassGrass
	}
}

// Classify returns the surface class at (x, z). It does not depend on
// whether flattening is enabled.
func (f *Heightfield) Classify(x, z float64) Class {
	return f.classify(f.RoadDistance(x, z))
}

// Height returns the carved elevation at (x, z).
//
// Inside the road the elevation is scaled by (dist/Width)^2, which leaves
// a slope discontinuity at the road edge.
func (f *Heightfield) Height(x, z float64) float64 {
	return f.Sample(x, z).Elevation
}

// Sample returns elevation and class at (x, z).
func (f *Heightfield) Sample(x, z float64) HeightSample {
	dist := f.RoadDistance(x, z)
	y := f.Base(x, z)
	if f.road.Flatten && dist < f.road.Width {
		t := dist / f.road.Width
		y *= t * t
	}
	return HeightSample{Elevation: y, Class: f.classify(dist)}
}

// Normal returns the surface normal at (x, z) from central differences
// with step h.
func (f *Heightfield) Normal(x, z, h float64) [3]float64 {
	dx := (f.Height(x+h, z) - f.Height(x-h, z)) / (2 * h)
	dz := (f.Height(x, z+h) - f.Height(x, z-h)) / (2 * h)
	n := [3]float64{-dx, 1, -dz}
	l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	return [3]float64{n[0] / l, n[1] / l, n[2] / l}
}
