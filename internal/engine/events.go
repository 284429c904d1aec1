package engine

import (
	"github.com/philipparndt/gowalk/internal/transition"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/philipparndt/gowalk/pkg/scene"
)

// event is a queued input, applied at the start of the next tick
type event interface {
	apply(e *Engine)
}

type keyEvent struct {
	key  Key
	down bool
}

func (ev keyEvent) apply(e *Engine) {
	dir, ok := ev.key.direction()
	if !ok {
		e.logger.Debug().Int("key", int(ev.key)).Msg("Ignoring unknown movement key")
		return
	}
	e.walker.Press(dir, ev.down)
}

type lockEvent struct {
	locked bool
}

func (ev lockEvent) apply(e *Engine) {
	if !ev.locked {
		e.walker.Unlock()
		return
	}
	if e.mode != ModeFirstPerson {
		e.logger.Debug().Msg("Ignoring pointer lock outside first-person mode")
		return
	}
	e.walker.Lock()
}

type lookEvent struct {
	dx, dy float64
}

func (ev lookEvent) apply(e *Engine) {
	e.walker.Look(ev.dx, ev.dy)
}

type pickEvent struct {
	point geometry.Vector3
}

func (ev pickEvent) apply(e *Engine) {
	e.showcase.stop()
	e.addPick(ev.point)
}

type pickRayEvent struct {
	ray geometry.Ray
}

func (ev pickRayEvent) apply(e *Engine) {
	e.showcase.stop()
	if e.picker == nil {
		e.logger.Debug().Msg("Pick ignored, scene not scanned yet")
		return
	}
	point, ok := e.picker.Pick(ev.ray)
	if !ok {
		return
	}
	e.addPick(point)
}

type roomEvent struct {
	key string
}

func (ev roomEvent) apply(e *Engine) {
	e.showcase.stop()
	vp := e.viewpoints.Lookup(ev.key)
	if vp.Key != ev.key {
		e.logger.Warn().Str("room", ev.key).Msg("Unknown room, using overview")
	}
	e.activeRoom = vp.Key

	if e.mode != ModeOrbit {
		e.logger.Debug().Str("room", vp.Key).Msg("Room selected outside orbit mode")
		return
	}
	e.flight.AnimateTo(transition.Frame{Position: e.pose.Position, Target: e.focus}, vp.Frame)
	e.metrics.TransitionStarted(vp.Key)
	e.logger.Info().Str("room", vp.Key).Str("name", vp.Name).Msg("Flying to room")
}

type orbitEvent struct {
	dAzimuth, dPolar, zoom float64
}

func (ev orbitEvent) apply(e *Engine) {
	e.showcase.stop()
	if e.mode != ModeOrbit || e.flight.Active() {
		return
	}
	e.setOrbitPose(orbitAround(e.pose.Position, e.focus, ev.dAzimuth, ev.dPolar, ev.zoom), e.focus)
}

type modeEvent struct {
	mode Mode
}

func (ev modeEvent) apply(e *Engine) {
	e.switchMode(ev.mode)
}

type undoEvent struct{}

func (undoEvent) apply(e *Engine) {
	e.measure.Undo()
}

type clearEvent struct{}

func (clearEvent) apply(e *Engine) {
	e.measure.Clear()
}

type sceneEvent struct {
	source scene.Source
}

func (ev sceneEvent) apply(e *Engine) {
	e.replaceScene(ev.source)
}
