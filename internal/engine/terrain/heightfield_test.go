package terrain

import (
	"errors"
	"math"
	"testing"
)

func defaultHills() HillParams {
	return HillParams{
		{Amplitude: 10, Frequency: 0.012},
		{Amplitude: 4, Frequency: 0.035},
		{Amplitude: 1.2, Frequency: 0.11},
	}
}

func defaultRoad() RoadParams {
	return RoadParams{
		Width:          6,
		EdgeBand:       1.5,
		CurveAmplitude: 30,
		CurveFrequency: 0.005,
		Flatten:        true,
	}
}

func newTestField(t *testing.T) *Heightfield {
	t.Helper()
	f, err := NewHeightfield(defaultHills(), defaultRoad())
	if err != nil {
		t.Fatalf("NewHeightfield: %v", err)
	}
	return f
}

func TestHeightIsDeterministic(t *testing.T) {
	a := newTestField(t)
	b := newTestField(t)

	for x := -200.0; x <= 200; x += 13.7 {
		for z := -3000.0; z <= 500; z += 41.3 {
			first := a.Height(x, z)
			if again := a.Height(x, z); again != first {
				t.Fatalf("Height(%v, %v) changed between calls: %v != %v", x, z, first, again)
			}
			if other := b.Height(x, z); other != first {
				t.Fatalf("Height(%v, %v) differs between fields: %v != %v", x, z, first, other)
			}
		}
	}
}

func TestRoadCurveBounded(t *testing.T) {
	f := newTestField(t)
	amp := f.Road().CurveAmplitude

	for z := -100000.0; z <= 100000; z += 7.3 {
		if c := f.RoadCurve(z); math.Abs(c) > amp {
			t.Fatalf("|RoadCurve(%v)| = %v exceeds amplitude %v", z, math.Abs(c), amp)
		}
	}
}

func TestFlatteningNeverIncreasesMagnitude(t *testing.T) {
	f := newTestField(t)
	width := f.Road().Width

	checked := 0
	for z := -2000.0; z <= 0; z += 3.1 {
		centre := f.RoadCurve(z)
		for dx := -width; dx <= width; dx += 0.37 {
			x := centre + dx
			if f.RoadDistance(x, z) >= width {
				continue
			}
			flat := math.Abs(f.Height(x, z))
			base := math.Abs(f.Base(x, z))
			if flat > base {
				t.Fatalf("flattened |%v| > base |%v| at (%v, %v)", flat, base, x, z)
			}
			checked++
		}
	}
	if checked == 0 {
		t.Fatal("no points inside the road were checked")
	}
}

func TestRoadCentreIsFlat(t *testing.T) {
	f := newTestField(t)
	for z := -1000.0; z <= 0; z += 50 {
		if y := f.Height(f.RoadCurve(z), z); math.Abs(y) > 1e-9 {
			t.Errorf("centreline height at z=%v = %v, want 0", z, y)
		}
	}
}

func TestClassify(t *testing.T) {
	f := newTestField(t)
	z := -321.0
	c := f.RoadCurve(z)

	tests := []struct {
		name string
		x    float64
		want Class
	}{
		{"centre", c, ClassRoad},
		{"inside road", c + 5.9, ClassRoad},
		{"just past road", c - 6.2, ClassEdge},
		{"shoulder", c + 7, ClassEdge},
		{"past shoulder", c + 7.8, ClassGrass},
		{"far field", c - 100, ClassGrass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Classify(tt.x, z); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
			if got := f.Sample(tt.x, z).Class; got != tt.want {
				t.Errorf("Sample.Class = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClassificationIndependentOfFlatten(t *testing.T) {
	road := defaultRoad()
	road.Flatten = false
	raw, err := NewHeightfield(defaultHills(), road)
	if err != nil {
		t.Fatalf("NewHeightfield: %v", err)
	}
	carved := newTestField(t)

	for x := -40.0; x <= 40; x += 0.9 {
		z := -77.0
		if raw.Classify(x, z) != carved.Classify(x, z) {
			t.Fatalf("class at x=%v differs with flattening off", x)
		}
		if raw.Height(x, z) != raw.Base(x, z) {
			t.Fatalf("unflattened height differs from base at x=%v", x)
		}
	}
}

func TestFlatWorld(t *testing.T) {
	f, err := NewHeightfield(nil, defaultRoad())
	if err != nil {
		t.Fatalf("NewHeightfield: %v", err)
	}
	if y := f.Height(123, -456); y != 0 {
		t.Errorf("flat world height = %v, want 0", y)
	}
	n := f.Normal(10, -10, 0.5)
	if n != [3]float64{0, 1, 0} {
		t.Errorf("flat world normal = %v, want up", n)
	}
}

func TestHillParamsValidate(t *testing.T) {
	tests := []struct {
		name  string
		hills HillParams
		ok    bool
	}{
		{"defaults", defaultHills(), true},
		{"empty", nil, true},
		{"single", HillParams{{Amplitude: 3, Frequency: 0.1}}, true},
		{"frequency not increasing", HillParams{{10, 0.05}, {4, 0.05}}, false},
		{"amplitude not decreasing", HillParams{{4, 0.01}, {10, 0.05}}, false},
		{"zero amplitude", HillParams{{0, 0.01}}, false},
		{"too many terms", HillParams{{8, 0.01}, {4, 0.02}, {2, 0.03}, {1, 0.04}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hills.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidHills) {
				t.Errorf("expected ErrInvalidHills, got %v", err)
			}
		})
	}
}

func TestNewHeightfieldRejectsBadRoad(t *testing.T) {
	road := defaultRoad()
	road.Width = 0
	if _, err := NewHeightfield(defaultHills(), road); !errors.Is(err, ErrInvalidRoad) {
		t.Errorf("expected ErrInvalidRoad, got %v", err)
	}
}
