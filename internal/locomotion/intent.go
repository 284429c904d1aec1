// Package locomotion implements the first-person walk: damped velocity,
// collision probing with wall sliding, bounds clamping and a fixed eye height.
package locomotion

import (
	"math"

	"github.com/philipparndt/gowalk/pkg/geometry"
)

// Direction is one of the four movement keys
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// MoveIntent holds the currently pressed movement directions
type MoveIntent struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

// Set updates one direction flag
func (m *MoveIntent) Set(dir Direction, pressed bool) {
	switch dir {
	case Forward:
		m.Forward = pressed
	case Backward:
		m.Backward = pressed
	case Left:
		m.Left = pressed
	case Right:
		m.Right = pressed
	}
}

// Any reports whether at least one direction is pressed
func (m MoveIntent) Any() bool {
	return m.Forward || m.Backward || m.Left || m.Right
}

// Vector returns the camera-local horizontal intent: forward is -Z, right is
// +X. Diagonals are normalized so they are not faster than straight moves.
func (m MoveIntent) Vector() geometry.Vector3 {
	var v geometry.Vector3
	if m.Forward {
		v.Z -= 1
	}
	if m.Backward {
		v.Z += 1
	}
	if m.Left {
		v.X -= 1
	}
	if m.Right {
		v.X += 1
	}
	if v.Length() > 1 {
		v = v.Normalize()
	}
	return v
}

// Velocity is the horizontal walking velocity, persisted across ticks
type Velocity struct {
	X float64
	Z float64
}

// Magnitude returns the horizontal speed
func (v Velocity) Magnitude() float64 {
	return math.Hypot(v.X, v.Z)
}
