package viewer

import (
	"math"

	"github.com/philipparndt/gowalk/pkg/geometry"
)

// NearPlane is the closest camera-space depth that is drawn
const NearPlane = 0.05

// Camera is a perspective pinhole camera
type Camera struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // Vertical field of view in radians
}

// NewCamera creates a Y-up camera looking from position at target
func NewCamera(position, target geometry.Vector3, fov float64) Camera {
	return Camera{
		Position: position,
		Target:   target,
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      fov,
	}
}

type viewFrame struct {
	origin, forward, right, up geometry.Vector3
}

// apply converts a world point to camera space: x right, y up, z depth
func (f viewFrame) apply(point geometry.Vector3) geometry.Vector3 {
	relative := point.Sub(f.origin)
	return geometry.NewVector3(relative.Dot(f.right), relative.Dot(f.up), relative.Dot(f.forward))
}

// frame returns the camera basis. A camera looking straight up or down
// falls back to -Z as its up vector.
func (c Camera) frame() viewFrame {
	forward := c.Target.Sub(c.Position).Normalize()
	right := forward.Cross(c.Up).Normalize()
	if right.IsZero() {
		right = forward.Cross(geometry.NewVector3(0, 0, -1)).Normalize()
	}
	up := right.Cross(forward).Normalize()
	return viewFrame{origin: c.Position, forward: forward, right: right, up: up}
}

// ToView converts a world point to camera space: x right, y up, z depth
func (c Camera) ToView(point geometry.Vector3) geometry.Vector3 {
	return c.frame().apply(point)
}

// ViewToScreen projects a camera-space point with positive depth
func (c Camera) ViewToScreen(v geometry.Vector3, width, height float64) (float64, float64) {
	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)
	screenX := (v.X/(v.Z*fovScale*aspect))*(width/2) + (width / 2)
	screenY := (-v.Y/(v.Z*fovScale))*(height/2) + (height / 2)
	return screenX, screenY
}

// Project projects a world point to screen coordinates and returns its
// depth. Points behind the near plane report ok=false.
func (c Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64, ok bool) {
	v := c.ToView(point)
	if v.Z < NearPlane {
		return 0, 0, v.Z, false
	}
	x, y = c.ViewToScreen(v, width, height)
	return x, y, v.Z, true
}

// Unproject converts screen coordinates into a world ray from the camera
func (c Camera) Unproject(screenX, screenY, width, height float64) geometry.Ray {
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	f := c.frame()
	rayDir := f.forward.Add(f.right.Mul(ndcX * fovScale * aspect)).Add(f.up.Mul(ndcY * fovScale))
	return geometry.NewRay(c.Position, rayDir.Normalize())
}
