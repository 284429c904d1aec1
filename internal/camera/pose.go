// Package camera holds the live camera pose shared by the walking and orbit
// controllers. Exactly one controller writes it per tick.
package camera

import (
	"math"

	"github.com/philipparndt/gowalk/pkg/geometry"
)

// Pose is the camera position and orientation. Yaw rotates around +Y, with
// zero looking down -Z. Pitch tilts the view and never affects movement.
type Pose struct {
	Position geometry.Vector3
	Yaw      float64
	Pitch    float64
}

// Forward returns the unit view direction including pitch
func (p Pose) Forward() geometry.Vector3 {
	cosPitch := math.Cos(p.Pitch)
	return geometry.Vector3{
		X: -math.Sin(p.Yaw) * cosPitch,
		Y: math.Sin(p.Pitch),
		Z: -math.Cos(p.Yaw) * cosPitch,
	}
}

// LookAt returns a point one unit in front of the camera
func (p Pose) LookAt() geometry.Vector3 {
	return p.Position.Add(p.Forward())
}

// Facing builds a pose at position looking towards target
func Facing(position, target geometry.Vector3) Pose {
	dir := target.Sub(position)
	horizontal := math.Hypot(dir.X, dir.Z)
	pose := Pose{Position: position}
	if horizontal > 0 {
		pose.Yaw = math.Atan2(-dir.X, -dir.Z)
	}
	if horizontal > 0 || dir.Y != 0 {
		pose.Pitch = math.Atan2(dir.Y, horizontal)
	}
	return pose
}
