package engine

import (
	"math"

	"github.com/philipparndt/gowalk/internal/camera"
	"github.com/philipparndt/gowalk/pkg/geometry"
)

const (
	showcaseRadius   = 18.0
	showcaseStep     = 0.002 // radians per showcaseInterval
	showcaseInterval = 0.016 // seconds
	showcaseTimeout  = 5.0   // seconds
)

// showcase circles the orbit camera around the origin until the user
// interacts or the timeout passes
type showcase struct {
	active  bool
	angle   float64
	elapsed float64
}

func (s *showcase) stop() {
	s.active = false
}

// advance returns the next pose and whether the showcase is still running
func (s *showcase) advance(pose camera.Pose, dt float64) (camera.Pose, bool) {
	if !s.active {
		return pose, false
	}
	s.elapsed += dt
	if s.elapsed >= showcaseTimeout {
		s.active = false
		return pose, false
	}

	s.angle += showcaseStep * dt / showcaseInterval
	position := geometry.Vector3{
		X: showcaseRadius * math.Sin(s.angle),
		Y: pose.Position.Y,
		Z: showcaseRadius * math.Cos(s.angle),
	}
	return camera.Facing(position, geometry.Vector3{}), true
}
