// Package minimap projects the camera onto the top-down floor plan.
package minimap

import (
	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/pkg/geometry"
)

// DefaultSize is the width and height of the map in pixels
const DefaultSize = 180.0

// FallbackVolume stands in for the scene bounds until they are detected
var FallbackVolume = bounds.NewVolume(geometry.NewVector3(-12, 0, -12), geometry.NewVector3(12, 0, 12))

// Coordinate is a point on the map. X grows with world X, Y with world Z.
// Yaw is the camera heading, passed through unchanged for the arrow.
type Coordinate struct {
	X   float64
	Y   float64
	Yaw float64
}

// Project maps a world position into map space. Positions outside the
// volume land outside [0, mapSize]; no clamping is applied. An axis with
// zero extent projects to the middle of the map.
func Project(position geometry.Vector3, yaw float64, volume bounds.Volume, mapSize float64) Coordinate {
	return Coordinate{
		X:   projectAxis(position.X, volume.Min.X, volume.Max.X, mapSize),
		Y:   projectAxis(position.Z, volume.Min.Z, volume.Max.Z, mapSize),
		Yaw: yaw,
	}
}

func projectAxis(value, min, max, mapSize float64) float64 {
	span := max - min
	if span == 0 {
		return mapSize / 2
	}
	return (value - min) / span * mapSize
}
