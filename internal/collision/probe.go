// Package collision answers ray queries against the static scene: whether a
// wall blocks movement, and where a pointer ray lands.
package collision

import (
	"math"

	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/rs/zerolog"
)

// Probe reports whether geometry blocks travel from origin along dir
// within maxDistance. Implementations must be side-effect free.
type Probe interface {
	Blocked(origin, dir geometry.Vector3, maxDistance float64) bool
}

// ProbeFunc adapts a function to Probe
type ProbeFunc func(origin, dir geometry.Vector3, maxDistance float64) bool

// Blocked calls f
func (f ProbeFunc) Blocked(origin, dir geometry.Vector3, maxDistance float64) bool {
	return f(origin, dir, maxDistance)
}

// Open never blocks; used before a scene is available
var Open Probe = ProbeFunc(func(geometry.Vector3, geometry.Vector3, float64) bool { return false })

type meshCache struct {
	name      string
	bounds    geometry.BoundingBox
	triangles []geometry.Triangle
}

// MeshProbe casts rays against the world-space triangles of every mesh in
// a scene. World geometry is resolved once at construction.
type MeshProbe struct {
	meshes    []meshCache
	intersect func(geometry.Triangle, geometry.Ray) (float64, bool)
	logger    zerolog.Logger
	metrics   *telemetry.Instruments
}

// NewMeshProbe resolves the world geometry below root
func NewMeshProbe(root scene.Node, logger zerolog.Logger, metrics *telemetry.Instruments) *MeshProbe {
	instances := scene.Meshes(root)
	p := &MeshProbe{
		meshes:    make([]meshCache, 0, len(instances)),
		intersect: geometry.Triangle.IntersectRay,
		logger:    logger,
		metrics:   metrics,
	}
	for _, mi := range instances {
		triangles := mi.WorldTriangles()
		bbox := geometry.NewBoundingBox()
		for _, tri := range triangles {
			bbox.Union(tri.Bounds())
		}
		p.meshes = append(p.meshes, meshCache{
			name:      mi.Mesh.Name(),
			bounds:    bbox,
			triangles: triangles,
		})
	}
	return p
}

// MeshCount returns the number of meshes the probe casts against
func (p *MeshProbe) MeshCount() int {
	return len(p.meshes)
}

// Blocked reports whether any mesh intersection lies within maxDistance.
// Failures inside the query count as not blocked so a bad facet can never
// trap the visitor.
func (p *MeshProbe) Blocked(origin, dir geometry.Vector3, maxDistance float64) (blocked bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("Collision probe failed, treating as open")
			blocked = false
		}
		p.metrics.Probe(blocked)
	}()

	if dir.IsZero() || maxDistance <= 0 {
		return false
	}
	_, _, hit := p.nearest(geometry.NewRay(origin, dir), maxDistance)
	return hit
}

// Pick returns the closest point where ray meets scene geometry
func (p *MeshProbe) Pick(ray geometry.Ray) (point geometry.Vector3, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("Pick failed")
			point, ok = geometry.Vector3{}, false
		}
	}()

	if ray.Direction.IsZero() {
		return geometry.Vector3{}, false
	}
	dist, _, hit := p.nearest(ray, math.Inf(1))
	if !hit {
		return geometry.Vector3{}, false
	}
	return ray.At(dist), true
}

func (p *MeshProbe) nearest(ray geometry.Ray, maxDistance float64) (float64, string, bool) {
	best := maxDistance
	name := ""
	hit := false
	for _, mesh := range p.meshes {
		if !mesh.bounds.IntersectRay(ray, best) {
			continue
		}
		for _, tri := range mesh.triangles {
			if dist, ok := p.intersect(tri, ray); ok && dist <= best {
				best = dist
				name = mesh.name
				hit = true
			}
		}
	}
	return best, name, hit
}
