// Package engine coordinates the navigation components behind a single
// tick. Input from any goroutine is queued and applied at the start of the
// next tick, so the camera pose is only ever written inside Tick.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/internal/camera"
	"github.com/philipparndt/gowalk/internal/collision"
	"github.com/philipparndt/gowalk/internal/config"
	"github.com/philipparndt/gowalk/internal/locomotion"
	"github.com/philipparndt/gowalk/internal/measurement"
	"github.com/philipparndt/gowalk/internal/minimap"
	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/philipparndt/gowalk/internal/transition"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/rs/zerolog"
)

// Mode selects which controller drives the camera
type Mode int

const (
	ModeOrbit Mode = iota
	ModeFirstPerson
)

func (m Mode) String() string {
	if m == ModeFirstPerson {
		return "first-person"
	}
	return "orbit"
}

// ParseMode accepts "orbit", "walk", "fp" or "first-person"
func ParseMode(s string) (Mode, error) {
	switch s {
	case "orbit":
		return ModeOrbit, nil
	case "walk", "fp", "first-person", "firstperson":
		return ModeFirstPerson, nil
	}
	return ModeOrbit, fmt.Errorf("unknown mode %q", s)
}

// prespawnPosition holds the first-person camera until bounds are known
var prespawnPosition = geometry.NewVector3(0, 1.6, 8)

// Options configure a new Engine. Zero values select defaults.
type Options struct {
	Config     config.Config
	Source     scene.Source
	Viewpoints *transition.Table
	FloorPlan  *minimap.FloorPlan
	Logger     zerolog.Logger
	Metrics    *telemetry.Instruments
	Mode       Mode
	AutoRotate bool
}

// Engine is the navigation engine context
type Engine struct {
	mu     sync.Mutex
	closed bool
	inbox  []event

	cfg     config.Config
	logger  zerolog.Logger
	metrics *telemetry.Instruments

	source  scene.Source
	scanner *bounds.Scanner
	volume  *bounds.Volume
	picker  *collision.MeshProbe

	mode       Mode
	pose       camera.Pose
	focus      geometry.Vector3
	activeRoom string

	walker     *locomotion.Controller
	flight     *transition.Engine
	viewpoints *transition.Table
	measure    *measurement.Engine
	plan       *minimap.FloorPlan
	mapSize    float64
	showcase   showcase

	ticks uint64
	last  Snapshot
}

// New creates an engine and schedules the first bounds scan
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.Default()
	}
	viewpoints := opts.Viewpoints
	if viewpoints == nil {
		viewpoints = transition.DefaultTable()
	}
	plan := opts.FloorPlan
	if plan == nil {
		plan = minimap.DefaultFloorPlan()
	}
	mapSize := cfg.Minimap.Size
	if mapSize <= 0 {
		mapSize = minimap.DefaultSize
	}

	e := &Engine{
		cfg:        cfg,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		walker:     locomotion.New(locomotion.SettingsFromConfig(cfg.Locomotion), collision.Open, opts.Logger),
		flight:     transition.New(cfg.Transition.Duration),
		viewpoints: viewpoints,
		measure:    measurement.NewEngine(opts.Logger, opts.Metrics),
		plan:       plan,
		mapSize:    mapSize,
		activeRoom: transition.DefaultKey,
	}

	overview := viewpoints.Lookup(transition.DefaultKey)
	e.setOrbitPose(overview.Frame.Position, overview.Frame.Target)

	e.replaceScene(opts.Source)
	e.switchMode(opts.Mode)
	if opts.AutoRotate && e.mode == ModeOrbit {
		e.showcase.active = true
	}

	e.last = e.snapshot()
	return e
}

func (e *Engine) schedule() bounds.Schedule {
	return bounds.Schedule{
		InitialDelay: e.cfg.Bounds.InitialDelay,
		RetryDelay:   e.cfg.Bounds.RetryDelay,
		MaxAttempts:  e.cfg.Bounds.MaxAttempts,
	}
}

func (e *Engine) scanState() bounds.ScanState {
	if e.scanner == nil {
		return bounds.ScanPending
	}
	return e.scanner.State()
}

// replaceScene drops the current bounds and probe and starts a new scan
func (e *Engine) replaceScene(source scene.Source) {
	if e.scanner != nil {
		e.scanner.Cancel()
	}
	e.source = source
	e.volume = nil
	e.picker = nil
	e.walker.SetProbe(collision.Open)
	e.scanner = nil
	if source != nil {
		e.scanner = bounds.NewScanner(source, e.schedule(), e.logger, e.metrics)
	}
}

// advanceScan runs the bounds scanner until it completes
func (e *Engine) advanceScan(dt float64) {
	if e.volume != nil || e.scanner == nil {
		return
	}
	if e.scanner.Advance(time.Duration(dt*float64(time.Second))) != bounds.ScanComplete {
		return
	}

	volume, _ := e.scanner.Volume()
	e.volume = &volume
	e.picker = collision.NewMeshProbe(e.source.Root(), e.logger, e.metrics)
	e.walker.SetProbe(e.picker)

	if e.mode == ModeFirstPerson {
		e.pose = camera.Pose{Position: bounds.SpawnPose(volume, e.cfg.Locomotion.EyeHeight)}
		e.logger.Info().
			Float64("x", e.pose.Position.X).
			Float64("y", e.pose.Position.Y).
			Float64("z", e.pose.Position.Z).
			Msg("Spawned inside scene")
	}
}

func (e *Engine) setOrbitPose(position, focus geometry.Vector3) {
	e.pose = camera.Facing(position, focus)
	e.focus = focus
}

func (e *Engine) switchMode(mode Mode) {
	if mode == e.mode && e.ticks > 0 {
		return
	}
	e.mode = mode
	switch mode {
	case ModeFirstPerson:
		e.flight.Cancel()
		e.showcase.stop()
		e.walker.Reset()
		if e.volume != nil {
			e.pose = camera.Pose{Position: bounds.SpawnPose(*e.volume, e.cfg.Locomotion.EyeHeight)}
		} else {
			e.pose = camera.Pose{Position: prespawnPosition}
		}
	default:
		e.walker.Unlock()
		e.walker.Reset()
		vp := e.viewpoints.Lookup(e.activeRoom)
		e.setOrbitPose(vp.Frame.Position, vp.Frame.Target)
	}
	e.logger.Debug().Str("mode", mode.String()).Msg("View mode changed")
}

func (e *Engine) addPick(point geometry.Vector3) {
	if m, done := e.measure.AddPoint(point); done {
		e.logger.Info().
			Str("distance", measurement.Format(m, measurement.Meters)).
			Msg("Measurement added")
	}
}

// enqueue records an input event. Events after Close are dropped.
func (e *Engine) enqueue(ev event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.inbox = append(e.inbox, ev)
}

// KeyDown presses a movement key
func (e *Engine) KeyDown(k Key) { e.enqueue(keyEvent{key: k, down: true}) }

// KeyUp releases a movement key
func (e *Engine) KeyUp(k Key) { e.enqueue(keyEvent{key: k, down: false}) }

// PointerLock reports pointer capture acquired (true) or released (false)
func (e *Engine) PointerLock(locked bool) { e.enqueue(lockEvent{locked: locked}) }

// Look reports pointer movement in pixels while captured
func (e *Engine) Look(dx, dy float64) { e.enqueue(lookEvent{dx: dx, dy: dy}) }

// Pick adds a measurement point that the host already resolved
func (e *Engine) Pick(point geometry.Vector3) { e.enqueue(pickEvent{point: point}) }

// PickRay casts ray into the scene and adds the hit as a measurement point
func (e *Engine) PickRay(ray geometry.Ray) { e.enqueue(pickRayEvent{ray: ray}) }

// SelectRoom flies the orbit camera to a named viewpoint
func (e *Engine) SelectRoom(key string) { e.enqueue(roomEvent{key: key}) }

// Orbit rotates and zooms the orbit camera around its focus. zoom is a
// radius factor; 1 keeps the distance.
func (e *Engine) Orbit(dAzimuth, dPolar, zoom float64) {
	e.enqueue(orbitEvent{dAzimuth: dAzimuth, dPolar: dPolar, zoom: zoom})
}

// SetMode switches between orbit and first-person
func (e *Engine) SetMode(m Mode) { e.enqueue(modeEvent{mode: m}) }

// Undo removes the last measurement and any pending pick
func (e *Engine) Undo() { e.enqueue(undoEvent{}) }

// ClearMeasurements removes all measurements
func (e *Engine) ClearMeasurements() { e.enqueue(clearEvent{}) }

// ReplaceScene swaps the scene, e.g. after the model file changed on disk,
// and rescans its bounds
func (e *Engine) ReplaceScene(source scene.Source) { e.enqueue(sceneEvent{source: source}) }

// Viewpoints returns the room table
func (e *Engine) Viewpoints() *transition.Table { return e.viewpoints }

// FloorPlan returns the mini-map room layout. The plan is never modified.
func (e *Engine) FloorPlan() *minimap.FloorPlan { return e.plan }

// Tick applies queued input and advances the simulation by dt seconds.
// It never panics; a failing tick returns the previous snapshot.
func (e *Engine) Tick(dt float64) (snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return e.last
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Uint64("tick", e.ticks).Msg("Tick failed")
			snap = e.last
		}
	}()

	if dt < 0 {
		dt = 0
	}
	e.ticks++
	e.metrics.Tick(e.mode.String())

	inbox := e.inbox
	e.inbox = nil
	for _, ev := range inbox {
		ev.apply(e)
	}

	e.advanceScan(dt)

	switch e.mode {
	case ModeFirstPerson:
		if pose, moved := e.walker.Step(e.pose, e.volume, dt); moved {
			e.pose = pose
		}
	default:
		if frame, ok := e.flight.Advance(dt); ok {
			e.setOrbitPose(frame.Position, frame.Target)
		} else if pose, ok := e.showcase.advance(e.pose, dt); ok {
			e.pose = pose
			e.focus = geometry.Vector3{}
		}
	}

	e.last = e.snapshot()
	return e.last
}

// Snapshot returns the state published by the last tick
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Close cancels the bounds scan and drops queued and future input. It is
// safe to call more than once.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.inbox = nil
	if e.scanner != nil {
		e.scanner.Cancel()
	}
	e.walker.Unlock()
	e.last.Locked = false
	e.last.Scan = e.scanState()
	e.logger.Debug().Uint64("ticks", e.ticks).Msg("Engine closed")
}

// Closed reports whether Close has been called
func (e *Engine) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}
