package controls

import (
	"errors"
	"testing"
)

func TestThrottle(t *testing.T) {
	tests := []struct {
		name    string
		forward bool
		back    bool
		want    float64
	}{
		{"idle", false, false, 0},
		{"forward", true, false, 1},
		{"back", false, true, -1},
		{"both", true, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			s.Set(Forward, tt.forward)
			s.Set(Back, tt.back)
			if got := s.Throttle(); got != tt.want {
				t.Errorf("Throttle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSteer(t *testing.T) {
	tests := []struct {
		name  string
		left  bool
		right bool
		want  float64
	}{
		{"none", false, false, 0},
		{"left", true, false, 1},
		{"right", false, true, -1},
		{"both cancel", true, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s State
			s.Set(Left, tt.left)
			s.Set(Right, tt.right)
			if got := s.Steer(); got != tt.want {
				t.Errorf("Steer() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStateIsValue(t *testing.T) {
	var s State
	s.Set(Forward, true)
	snapshot := s
	s.Set(Forward, false)

	if !snapshot.Pressed(Forward) {
		t.Error("snapshot changed after original was modified")
	}
	if s.Pressed(Forward) {
		t.Error("expected forward released")
	}
}

func TestSetIgnoresUnknown(t *testing.T) {
	var s State
	s.Set(Control(42), true)
	if s != (State{}) {
		t.Error("unknown control changed state")
	}
	if s.Pressed(Control(42)) {
		t.Error("unknown control reported pressed")
	}
}

func TestReset(t *testing.T) {
	var s State
	s.Set(Left, true)
	s.Set(Back, true)
	s.Reset()
	if s.Throttle() != 0 || s.Steer() != 0 {
		t.Error("expected all controls released after Reset")
	}
}

func TestBindings(t *testing.T) {
	b, err := NewBindings([]string{"Up", "w"}, []string{"down", "s"}, []string{"left", "a"}, []string{"right", "d"})
	if err != nil {
		t.Fatalf("NewBindings: %v", err)
	}

	tests := []struct {
		key  string
		want Control
		ok   bool
	}{
		{"up", Forward, true},
		{"W", Forward, true},
		{"s", Back, true},
		{"a", Left, true},
		{"Right", Right, true},
		{"space", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := b.Lookup(tt.key)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Lookup(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}

	var s State
	if !b.Apply(&s, "w", true) {
		t.Fatal("expected w to be bound")
	}
	if s.Throttle() != 1 {
		t.Error("expected forward after applying w")
	}
	if b.Apply(&s, "q", true) {
		t.Error("expected q to be unbound")
	}
}

func TestBindingsConflict(t *testing.T) {
	_, err := NewBindings([]string{"w"}, []string{"W"}, nil, nil)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}
