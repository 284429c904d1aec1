package scene

import "sync/atomic"

// Source supplies the current scene root. Root may return nil, or a graph
// without meshes, while the asset is still streaming in.
type Source interface {
	Root() Node
}

// Static is a Source over an already loaded graph
type Static struct {
	root Node
}

// NewStatic wraps a loaded root node
func NewStatic(root Node) *Static {
	return &Static{root: root}
}

// Root returns the wrapped node
func (s *Static) Root() Node { return s.root }

// Deferred is a Source whose root is published later, typically by a
// background loader goroutine. It is safe for concurrent use.
type Deferred struct {
	root atomic.Value // holds rootBox
}

type rootBox struct{ node Node }

// NewDeferred returns an empty source
func NewDeferred() *Deferred {
	return &Deferred{}
}

// Publish makes root visible to readers
func (d *Deferred) Publish(root Node) {
	d.root.Store(rootBox{node: root})
}

// Root returns the published root, or nil before Publish
func (d *Deferred) Root() Node {
	box, ok := d.root.Load().(rootBox)
	if !ok {
		return nil
	}
	return box.node
}
