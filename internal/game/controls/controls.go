// Package controls holds the drive input state read once per frame.
package controls

import (
	"errors"
	"fmt"
	"strings"
)

// Control is one of the drive controls.
type Control uint8

const (
	Forward Control = iota
	Back
	Left
	Right
	numControls
)

func (c Control) String() string {
	switch c {
	case Forward:
		return "forward"
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("control(%d)", uint8(c))
}

// State records which controls are held. The zero value has nothing
// pressed. It is passed by value into the simulation each tick.
type State struct {
	pressed [numControls]bool
}

// Set marks a control as pressed or released. Unknown controls are ignored.
func (s *State) Set(c Control, pressed bool) {
	if c < numControls {
		s.pressed[c] = pressed
	}
}

// Pressed reports whether c is held.
func (s State) Pressed(c Control) bool {
	return c < numControls && s.pressed[c]
}

// Reset releases every control.
func (s *State) Reset() {
	s.pressed = [numControls]bool{}
}

// Throttle returns +1 for forward, -1 for back and 0 for neither.
// Forward wins when both are held.
func (s State) Throttle() float64 {
	switch {
	case s.pressed[Forward]:
		return 1
	case s.pressed[Back]:
		return -1
	}
	return 0
}

// Steer returns left minus right: +1 turns left, -1 turns right.
func (s State) Steer() float64 {
	var v float64
	if s.pressed[Left] {
		v++
	}
	if s.pressed[Right] {
		v--
	}
	return v
}

// ErrConflict is returned when one key is bound to two controls.
var ErrConflict = errors.New("key bound to more than one control")

// Bindings maps lower-case key names to controls.
type Bindings map[string]Control

// NewBindings builds bindings from key name lists per control.
func NewBindings(forward, back, left, right []string) (Bindings, error) {
	b := make(Bindings)
	groups := []struct {
		c    Control
		keys []string
	}{
		{Forward, forward},
		{Back, back},
		{Left, left},
		{Right, right},
	}
	for _, g := range groups {
		for _, k := range g.keys {
			name := strings.ToLower(strings.TrimSpace(k))
			if name == "" {
				continue
			}
			if prev, ok := b[name]; ok && prev != g.c {
				return nil, fmt.Errorf("%w: %q is %s and %s", ErrConflict, name, prev, g.c)
			}
			b[name] = g.c
		}
	}
	return b, nil
}

// Lookup returns the control bound to a key name.
func (b Bindings) Lookup(name string) (Control, bool) {
	c, ok := b[strings.ToLower(name)]
	return c, ok
}

// Apply sets the control bound to name, if any, and reports whether the
// key was bound.
func (b Bindings) Apply(s *State, name string, pressed bool) bool {
	c, ok := b.Lookup(name)
	if ok {
		s.Set(c, pressed)
	}
	return ok
}
