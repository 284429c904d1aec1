// Package measurement records point-to-point distances picked in the scene.
package measurement

import (
	"time"

	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/rs/zerolog"
)

// FeetPerMeter converts scene units (meters) to feet
const FeetPerMeter = 3.28084

// Measurement is a completed two-point distance
type Measurement struct {
	ID       int64 // creation time in milliseconds, strictly increasing
	Start    geometry.Vector3
	End      geometry.Vector3
	Midpoint geometry.Vector3
	Meters   float64
	Feet     float64
}

// Engine accumulates measurements. The first pick of a pair is held as
// pending until the second arrives.
type Engine struct {
	logger       zerolog.Logger
	metrics      *telemetry.Instruments
	now          func() time.Time
	pending      *geometry.Vector3
	measurements []Measurement
	lastID       int64
}

// NewEngine creates an empty engine
func NewEngine(logger zerolog.Logger, metrics *telemetry.Instruments) *Engine {
	return &Engine{
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// AddPoint records a pick. It returns the completed measurement and true
// when the point closes a pair.
func (e *Engine) AddPoint(p geometry.Vector3) (Measurement, bool) {
	if e.pending == nil {
		e.pending = &p
		return Measurement{}, false
	}

	start := *e.pending
	e.pending = nil

	meters := start.Distance(p)
	m := Measurement{
		ID:       e.nextID(),
		Start:    start,
		End:      p,
		Midpoint: start.Midpoint(p),
		Meters:   meters,
		Feet:     meters * FeetPerMeter,
	}
	e.measurements = append(e.measurements, m)
	e.metrics.MeasurementCompleted()

	e.logger.Debug().
		Int64("id", m.ID).
		Float64("meters", m.Meters).
		Msg("Measurement completed")
	return m, true
}

func (e *Engine) nextID() int64 {
	id := e.now().UnixMilli()
	if id <= e.lastID {
		id = e.lastID + 1
	}
	e.lastID = id
	return id
}

// Undo removes the most recent measurement and any pending pick. It
// reports whether anything was removed.
func (e *Engine) Undo() bool {
	removed := e.pending != nil
	e.pending = nil
	if n := len(e.measurements); n > 0 {
		e.measurements = e.measurements[:n-1]
		removed = true
	}
	return removed
}

// Clear removes all measurements and the pending pick
func (e *Engine) Clear() {
	e.measurements = nil
	e.pending = nil
}

// Measurements returns a copy of the completed measurements in order
func (e *Engine) Measurements() []Measurement {
	out := make([]Measurement, len(e.measurements))
	copy(out, e.measurements)
	return out
}

// Len returns the number of completed measurements
func (e *Engine) Len() int { return len(e.measurements) }

// Pending returns the first point of an unfinished pair
func (e *Engine) Pending() (geometry.Vector3, bool) {
	if e.pending == nil {
		return geometry.Vector3{}, false
	}
	return *e.pending, true
}

// PendingCount is 1 while a pair is half picked, otherwise 0
func (e *Engine) PendingCount() int {
	if e.pending != nil {
		return 1
	}
	return 0
}

// Total returns the summed length of all measurements in meters
func (e *Engine) Total() float64 {
	total := 0.0
	for _, m := range e.measurements {
		total += m.Meters
	}
	return total
}
