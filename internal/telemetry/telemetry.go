// Package telemetry exposes the OpenTelemetry instruments recorded by the
// navigation engine. Without an SDK meter provider they are no-ops.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/philipparndt/gowalk/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Instruments groups the engine counters
type Instruments struct {
	ticks        metric.Int64Counter
	probes       metric.Int64Counter
	blocked      metric.Int64Counter
	transitions  metric.Int64Counter
	measurements metric.Int64Counter
	scans        metric.Int64Counter
}

// New creates the instruments from the global meter provider. Instruments
// that fail to register are left nil and silently skipped.
func New() *Instruments {
	m := meter()
	i := &Instruments{}
	i.ticks, _ = m.Int64Counter("gowalk.engine.ticks",
		metric.WithDescription("Simulation ticks processed"))
	i.probes, _ = m.Int64Counter("gowalk.collision.probes",
		metric.WithDescription("Collision ray probes cast"))
	i.blocked, _ = m.Int64Counter("gowalk.collision.blocked",
		metric.WithDescription("Collision probes that hit geometry"))
	i.transitions, _ = m.Int64Counter("gowalk.transition.started",
		metric.WithDescription("Camera transitions started"))
	i.measurements, _ = m.Int64Counter("gowalk.measurement.completed",
		metric.WithDescription("Measurements completed"))
	i.scans, _ = m.Int64Counter("gowalk.bounds.attempts",
		metric.WithDescription("Scene bounds scan attempts"))
	return i
}

// Nop returns instruments that record nothing
func Nop() *Instruments {
	return nil
}

func add(c metric.Int64Counter, opts ...metric.AddOption) {
	if c == nil {
		return
	}
	c.Add(context.Background(), 1, opts...)
}

// Tick records one simulation tick in the given view mode
func (i *Instruments) Tick(mode string) {
	if i == nil {
		return
	}
	add(i.ticks, metric.WithAttributes(attribute.String("mode", mode)))
}

// Probe records one collision probe and whether it was blocked
func (i *Instruments) Probe(blocked bool) {
	if i == nil {
		return
	}
	add(i.probes)
	if blocked {
		add(i.blocked)
	}
}

// TransitionStarted records a new camera transition
func (i *Instruments) TransitionStarted(room string) {
	if i == nil {
		return
	}
	add(i.transitions, metric.WithAttributes(attribute.String("room", room)))
}

// MeasurementCompleted records a completed measurement
func (i *Instruments) MeasurementCompleted() {
	if i == nil {
		return
	}
	add(i.measurements)
}

// ScanAttempt records a bounds scan attempt and its outcome
func (i *Instruments) ScanAttempt(outcome string) {
	if i == nil {
		return
	}
	add(i.scans, metric.WithAttributes(attribute.String("outcome", outcome)))
}
