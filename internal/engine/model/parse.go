package model

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidModel is wrapped by every description validation failure.
var ErrInvalidModel = errors.New("invalid model")

// Parse decodes and validates a YAML model description. Unknown fields are
// rejected so typos surface at load time.
func Parse(data []byte) (*Description, error) {
	var d Description
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks every part and fills in defaults.
func (d *Description) Validate() error {
	if d.Scale == 0 {
		d.Scale = 1
	}
	if d.Scale < 0 {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidModel, d.Scale)
	}
	if len(d.Parts) == 0 {
		return fmt.Errorf("%w: %q has no parts", ErrInvalidModel, d.Name)
	}
	for i := range d.Parts {
		if err := d.Parts[i].validate(); err != nil {
			return fmt.Errorf("%w: part %d (%s): %w", ErrInvalidModel, i, d.Parts[i].Name, err)
		}
	}
	return nil
}

func (p *Part) validate() error {
	switch p.Shape {
	case ShapeBox:
		if p.Size[0] <= 0 || p.Size[1] <= 0 || p.Size[2] <= 0 {
			return fmt.Errorf("box size %v must be positive", p.Size)
		}
	case ShapeCylinder, ShapeCone:
		if p.Radius <= 0 || p.Height <= 0 {
			return fmt.Errorf("%s radius %v and height %v must be positive", p.Shape, p.Radius, p.Height)
		}
		if p.Segments == 0 {
			p.Segments = DefaultSegments
		}
		if p.Segments < 3 {
			return fmt.Errorf("%s needs at least 3 segments, got %d", p.Shape, p.Segments)
		}
	default:
		return fmt.Errorf("unknown shape %q", p.Shape)
	}
	if _, err := ParseColor(p.Color); err != nil {
		return err
	}
	return nil
}

// ParseColor converts "#rrggbb" to opaque RGBA in [0,1].
func ParseColor(s string) ([4]float32, error) {
	if len(s) != 7 || s[0] != '#' {
		return [4]float32{}, fmt.Errorf("colour %q is not #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return [4]float32{}, fmt.Errorf("colour %q is not #rrggbb", s)
	}
	return [4]float32{
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
		1,
	}, nil
}

// Tree returns the description of the roadside tree: a box trunk under a
// cone crown.
func Tree() *Description {
	return &Description{
		Name:  "tree",
		Scale: 1,
		Parts: []Part{
			{Name: "trunk", Shape: ShapeBox, Size: [3]float64{0.5, 2, 0.5}, Offset: [3]float64{0, 1, 0}, Color: "#4b3621"},
			{Name: "crown", Shape: ShapeCone, Radius: 2, Height: 4, Segments: 8, Offset: [3]float64{0, 2, 0}, Color: "#005500"},
		},
	}
}
