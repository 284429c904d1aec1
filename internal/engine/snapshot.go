package engine

import (
	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/internal/camera"
	"github.com/philipparndt/gowalk/internal/measurement"
	"github.com/philipparndt/gowalk/internal/minimap"
	"github.com/philipparndt/gowalk/pkg/geometry"
)

// Snapshot is the UI-facing state after a tick. It shares nothing with the
// engine and may be read from any goroutine.
type Snapshot struct {
	Mode          Mode
	Pose          camera.Pose
	Focus         geometry.Vector3
	Locked        bool
	Transitioning bool
	AutoRotating  bool

	Scan        bounds.ScanState
	BoundsKnown bool
	Bounds      bounds.Volume

	Map     minimap.Coordinate
	MapSize float64
	Room    string // floor plan room under the camera, empty outside all rooms

	Measurements []measurement.Measurement
	PendingCount int
	Pending      geometry.Vector3 // valid while PendingCount is 1

	ActiveRoom string // last selected viewpoint key
	Tick       uint64
}

func (e *Engine) snapshot() Snapshot {
	volume := minimap.FallbackVolume
	if e.volume != nil {
		volume = *e.volume
	}
	coord := minimap.Project(e.pose.Position, e.pose.Yaw, volume, e.mapSize)
	room, _ := e.plan.RoomAt(coord, e.mapSize)

	focus := e.focus
	if e.mode == ModeFirstPerson {
		focus = e.pose.LookAt()
	}

	pending, _ := e.measure.Pending()

	return Snapshot{
		Mode:          e.mode,
		Pose:          e.pose,
		Focus:         focus,
		Locked:        e.walker.Locked(),
		Transitioning: e.flight.Active(),
		AutoRotating:  e.showcase.active,
		Scan:          e.scanState(),
		BoundsKnown:   e.volume != nil,
		Bounds:        volume,
		Map:           coord,
		MapSize:       e.mapSize,
		Room:          room,
		Measurements:  e.measure.Measurements(),
		PendingCount:  e.measure.PendingCount(),
		Pending:       pending,
		ActiveRoom:    e.activeRoom,
		Tick:          e.ticks,
	}
}
