// Package bounds discovers the axis-aligned extent of the loaded scene and
// derives where a first-person visitor should start.
package bounds

import (
	"errors"

	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/rs/zerolog"
)

// SpawnDepthFraction places the spawn point this far inward from the far Z edge
const SpawnDepthFraction = 0.3

// ErrNotReady is returned while the scene has no mesh geometry yet
var ErrNotReady = errors.New("scene has no mesh geometry yet")

// Volume is the immutable bounding volume of the scene
type Volume struct {
	Min    geometry.Vector3
	Max    geometry.Vector3
	Size   geometry.Vector3
	Center geometry.Vector3
}

// NewVolume derives size and center from min and max
func NewVolume(min, max geometry.Vector3) Volume {
	return Volume{
		Min:    min,
		Max:    max,
		Size:   max.Sub(min),
		Center: min.Midpoint(max),
	}
}

// Degenerate reports whether either horizontal axis has zero extent
func (v Volume) Degenerate() bool {
	return v.Size.X <= 0 || v.Size.Z <= 0
}

// FloorY is the lowest point of the scene
func (v Volume) FloorY() float64 {
	return v.Min.Y
}

// Compute unions the world bounds of every mesh below root
func Compute(root scene.Node, logger zerolog.Logger) (Volume, error) {
	meshes := scene.Meshes(root)
	if len(meshes) == 0 {
		return Volume{}, ErrNotReady
	}

	bbox := geometry.NewBoundingBox()
	for _, mi := range meshes {
		bbox.Union(mi.WorldBounds())
	}
	if bbox.IsEmpty() {
		return Volume{}, ErrNotReady
	}

	volume := NewVolume(bbox.Min, bbox.Max)
	if volume.Degenerate() {
		logger.Warn().
			Float64("sizeX", volume.Size.X).
			Float64("sizeZ", volume.Size.Z).
			Msg("Scene bounds are degenerate, map and clamping fall back to the center")
	}

	logger.Info().
		Int("meshCount", len(meshes)).
		Str("min", formatVector(volume.Min)).
		Str("max", formatVector(volume.Max)).
		Str("size", formatVector(volume.Size)).
		Float64("floorY", volume.FloorY()).
		Msg("Scene bounds detected")

	return volume, nil
}

// SpawnPose returns the first-person start position: horizontally centered,
// at eye height above the floor, 30% inward from the far Z edge.
func SpawnPose(v Volume, eyeHeight float64) geometry.Vector3 {
	return geometry.Vector3{
		X: v.Center.X,
		Y: v.Min.Y + eyeHeight,
		Z: v.Max.Z - v.Size.Z*SpawnDepthFraction,
	}
}
