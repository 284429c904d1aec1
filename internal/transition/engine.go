// Package transition animates the orbit camera between named viewpoints.
package transition

import (
	"github.com/philipparndt/gowalk/pkg/geometry"
)

// DefaultDuration is the length of a room-to-room flight in seconds
const DefaultDuration = 1.5

// Frame is an orbit camera placement: where it sits and what it looks at
type Frame struct {
	Position geometry.Vector3
	Target   geometry.Vector3
}

// Lerp interpolates both points of the frame
func (f Frame) Lerp(to Frame, t float64) Frame {
	return Frame{
		Position: f.Position.Lerp(to.Position, t),
		Target:   f.Target.Lerp(to.Target, t),
	}
}

// Engine interpolates from a captured start frame to a target frame.
// It is Idle until AnimateTo is called and returns to Idle after the final
// frame, which is always exactly the target.
type Engine struct {
	duration float64
	start    Frame
	target   Frame
	elapsed  float64
	active   bool
}

// New creates an idle engine. A non-positive duration uses DefaultDuration.
func New(duration float64) *Engine {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Engine{duration: duration}
}

// Duration returns the flight time in seconds
func (e *Engine) Duration() float64 { return e.duration }

// AnimateTo starts a flight from current to target. Calling it mid-flight
// restarts from current, which the caller passes as the live camera frame.
func (e *Engine) AnimateTo(current, target Frame) {
	e.start = current
	e.target = target
	e.elapsed = 0
	e.active = true
}

// Advance moves the flight forward by dt seconds. The returned bool reports
// whether a frame was produced; it is false when the engine is idle.
func (e *Engine) Advance(dt float64) (Frame, bool) {
	if !e.active {
		return Frame{}, false
	}

	e.elapsed += dt
	progress := e.elapsed / e.duration
	if progress >= 1 {
		e.active = false
		e.elapsed = 0
		return e.target, true
	}

	return e.start.Lerp(e.target, EaseOutCubic(progress)), true
}

// Active reports whether a flight is in progress
func (e *Engine) Active() bool { return e.active }

// Progress returns the linear progress of the current flight in [0, 1)
func (e *Engine) Progress() float64 {
	if !e.active {
		return 0
	}
	return e.elapsed / e.duration
}

// Target returns the destination of the current or last flight
func (e *Engine) Target() Frame { return e.target }

// Cancel stops the flight where it is
func (e *Engine) Cancel() {
	e.active = false
	e.elapsed = 0
}
