// Package scene holds the read-only scene graph the navigation engine walks
// and ray casts against.
package scene

import (
	"github.com/philipparndt/gowalk/pkg/geometry"
)

// Node is an element of the scene graph. The set of implementations is
// closed: *MeshNode, *GroupNode and *MarkerNode.
type Node interface {
	Name() string
	Local() Transform
	Children() []Node
	sealed()
}

// MeshNode carries renderable triangle geometry in local space
type MeshNode struct {
	name      string
	transform Transform
	triangles []geometry.Triangle
	children  []Node
}

// NewMeshNode creates a mesh node. The triangle slice is not copied and must
// not be modified afterwards.
func NewMeshNode(name string, transform Transform, triangles []geometry.Triangle, children ...Node) *MeshNode {
	return &MeshNode{name: name, transform: transform, triangles: triangles, children: children}
}

func (m *MeshNode) Name() string { return m.name }
func (m *MeshNode) Local() Transform { return m.transform }
func (m *MeshNode) Children() []Node { return m.children }
func (m *MeshNode) sealed() {}

// Triangles returns the local-space triangles
func (m *MeshNode) Triangles() []geometry.Triangle { return m.triangles }

// GroupNode only positions its children
type GroupNode struct {
	name      string
	transform Transform
	children  []Node
}

// NewGroupNode creates a group node
func NewGroupNode(name string, transform Transform, children ...Node) *GroupNode {
	return &GroupNode{name: name, transform: transform, children: children}
}

func (g *GroupNode) Name() string { return g.name }
func (g *GroupNode) Local() Transform { return g.transform }
func (g *GroupNode) Children() []Node { return g.children }
func (g *GroupNode) sealed() {}

// Add appends children to the group
func (g *GroupNode) Add(children ...Node) {
	g.children = append(g.children, children...)
}

// MarkerNode is anything without geometry: lights, cameras, empties.
// It is skipped by bounds and collision queries.
type MarkerNode struct {
	name      string
	transform Transform
	children  []Node
}

// NewMarkerNode creates a marker node
func NewMarkerNode(name string, transform Transform, children ...Node) *MarkerNode {
	return &MarkerNode{name: name, transform: transform, children: children}
}

func (m *MarkerNode) Name() string { return m.name }
func (m *MarkerNode) Local() Transform { return m.transform }
func (m *MarkerNode) Children() []Node { return m.children }
func (m *MarkerNode) sealed() {}
