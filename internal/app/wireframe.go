package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gowalk/pkg/geometry"
)

type edgeKey [2]geometry.Vector3

func newEdgeKey(a, b geometry.Vector3) edgeKey {
	if b.X < a.X || (b.X == a.X && (b.Y < a.Y || (b.Y == a.Y && b.Z < a.Z))) {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// uniqueEdges returns every triangle edge once, shared edges deduplicated
func uniqueEdges(triangles []geometry.Triangle) [][2]rl.Vector3 {
	seen := make(map[edgeKey]bool, len(triangles)*3/2)
	edges := make([][2]rl.Vector3, 0, len(triangles)*3/2)
	for _, triangle := range triangles {
		vs := [3]geometry.Vector3{triangle.V1, triangle.V2, triangle.V3}
		for i := range vs {
			a, b := vs[i], vs[(i+1)%3]
			key := newEdgeKey(a, b)
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, [2]rl.Vector3{toRL(a), toRL(b)})
		}
	}
	return edges
}

// drawWireframe outlines the model edges
func (app *App) drawWireframe() {
	wireframeColor := rl.NewColor(100, 100, 100, 200)
	for _, edge := range app.Model.edges {
		rl.DrawLine3D(edge[0], edge[1], wireframeColor)
	}
}
