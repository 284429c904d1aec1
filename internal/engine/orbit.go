package engine

import (
	"math"

	"github.com/philipparndt/gowalk/pkg/geometry"
)

// Orbit limits for manual camera control
const (
	MinOrbitDistance = 5.0
	MaxOrbitDistance = 30.0
	MaxOrbitPolar    = math.Pi / 2
	minOrbitPolar    = 1e-3
)

// orbitAround rotates position around focus on a sphere. Azimuth turns
// around +Y, polar is measured from straight up and zoom scales the radius.
func orbitAround(position, focus geometry.Vector3, dAzimuth, dPolar, zoom float64) geometry.Vector3 {
	offset := position.Sub(focus)
	radius := offset.Length()

	polar := math.Pi / 4
	azimuth := 0.0
	if radius > 0 {
		polar = math.Acos(math.Max(-1, math.Min(1, offset.Y/radius)))
		azimuth = math.Atan2(offset.X, offset.Z)
	}

	if zoom <= 0 {
		zoom = 1
	}
	radius = math.Max(MinOrbitDistance, math.Min(MaxOrbitDistance, radius*zoom))
	polar = math.Max(minOrbitPolar, math.Min(MaxOrbitPolar, polar+dPolar))
	azimuth += dAzimuth

	sinPolar := math.Sin(polar)
	return focus.Add(geometry.Vector3{
		X: radius * sinPolar * math.Sin(azimuth),
		Y: radius * math.Cos(polar),
		Z: radius * sinPolar * math.Cos(azimuth),
	})
}
