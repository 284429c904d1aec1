package scene

import (
	"github.com/philipparndt/gowalk/pkg/geometry"
)

// Transform is a uniform scale followed by a translation
type Transform struct {
	Translation geometry.Vector3
	Scale       float64
}

// Identity returns the transform that leaves points unchanged
func Identity() Transform {
	return Transform{Scale: 1}
}

// NewTransform creates a transform; a zero scale is treated as 1
func NewTransform(translation geometry.Vector3, scale float64) Transform {
	if scale == 0 {
		scale = 1
	}
	return Transform{Translation: translation, Scale: scale}
}

func (t Transform) scale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Apply maps a local point into the parent space
func (t Transform) Apply(p geometry.Vector3) geometry.Vector3 {
	return p.Mul(t.scale()).Add(t.Translation)
}

// Then composes t with its parent: the result applies t first, then parent
func (t Transform) Then(parent Transform) Transform {
	return Transform{
		Translation: parent.Apply(t.Translation),
		Scale:       t.scale() * parent.scale(),
	}
}

// ApplyTriangle maps all three vertices; normals are direction-only and
// unaffected by a positive uniform scale.
func (t Transform) ApplyTriangle(tri geometry.Triangle) geometry.Triangle {
	return geometry.NewTriangle(tri.Normal, t.Apply(tri.V1), t.Apply(tri.V2), t.Apply(tri.V3))
}
