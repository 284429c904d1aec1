package scene

import (
	"github.com/philipparndt/gowalk/pkg/geometry"
)

// MeshInstance is a mesh node together with its resolved world transform
type MeshInstance struct {
	Mesh  *MeshNode
	World Transform
}

// WorldTriangles returns the mesh triangles in world space
func (mi MeshInstance) WorldTriangles() []geometry.Triangle {
	local := mi.Mesh.Triangles()
	out := make([]geometry.Triangle, len(local))
	for i, tri := range local {
		out[i] = mi.World.ApplyTriangle(tri)
	}
	return out
}

// WorldBounds returns the world-space bounding box of the mesh
func (mi MeshInstance) WorldBounds() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, tri := range mi.Mesh.Triangles() {
		bbox.Union(mi.World.ApplyTriangle(tri).Bounds())
	}
	return bbox
}

// Meshes walks the graph depth-first and returns every mesh node with at
// least one triangle. A nil root yields nothing.
func Meshes(root Node) []MeshInstance {
	var out []MeshInstance
	walk(root, Identity(), &out)
	return out
}

func walk(node Node, parent Transform, out *[]MeshInstance) {
	if node == nil {
		return
	}
	world := node.Local().Then(parent)

	switch n := node.(type) {
	case *MeshNode:
		if len(n.Triangles()) > 0 {
			*out = append(*out, MeshInstance{Mesh: n, World: world})
		}
	case *GroupNode, *MarkerNode:
		// no geometry of their own
	}

	for _, child := range node.Children() {
		walk(child, world, out)
	}
}

// WorldTriangles flattens every mesh below root into world-space triangles
func WorldTriangles(root Node) []geometry.Triangle {
	var out []geometry.Triangle
	for _, mi := range Meshes(root) {
		out = append(out, mi.WorldTriangles()...)
	}
	return out
}

// Stats summarizes the geometry below a root node
type Stats struct {
	MeshCount     int
	TriangleCount int
	SurfaceArea   float64
}

// Summarize counts meshes, triangles and world-space surface area
func Summarize(root Node) Stats {
	var stats Stats
	for _, mi := range Meshes(root) {
		stats.MeshCount++
		for _, tri := range mi.WorldTriangles() {
			stats.TriangleCount++
			stats.SurfaceArea += tri.Area()
		}
	}
	return stats
}
