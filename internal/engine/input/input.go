// Package input pumps SDL2 events and tracks the drive controls.
package input

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/taharazashaikh97/roads/internal/game/controls"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventScreenshot
	EventZoom
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    string // lower-case SDL key name
	Width  int
	Height int
	Wheel  float64
}

// Input polls SDL and keeps the held drive controls.
type Input struct {
	bindings controls.Bindings
	state    controls.State
	events   []Event
}

// New creates an input handler that maps keys through bindings.
func New(bindings controls.Bindings) *Input {
	return &Input{
		bindings: bindings,
		events:   make([]Event, 0, 16),
	}
}

// KeyName returns the lower-case name used in control bindings.
func KeyName(sc sdl.Scancode) string {
	return strings.ToLower(sdl.GetScancodeName(sc))
}

// Update polls SDL events, updates the held controls and converts the
// rest to game events. Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_RESIZED, sdl.WINDOWEVENT_SIZE_CHANGED:
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			case sdl.WINDOWEVENT_FOCUS_LOST:
				// Key-up events are not delivered while unfocused.
				i.state.Reset()
			}

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}
			name := KeyName(e.Keysym.Scancode)
			pressed := e.Type == sdl.KEYDOWN
			if i.bindings.Apply(&i.state, name, pressed) {
				continue
			}
			if !pressed {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: name})
				continue
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				i.events = append(i.events, Event{Type: EventQuit})
				quit = true
			case sdl.SCANCODE_F12:
				i.events = append(i.events, Event{Type: EventScreenshot})
			default:
				i.events = append(i.events, Event{Type: EventKeyDown, Key: name})
			}

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, Event{
				Type:  EventZoom,
				Wheel: float64(e.Y),
			})
		}
	}

	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// State returns the held controls after the last Update.
func (i *Input) State() controls.State {
	return i.state
}
