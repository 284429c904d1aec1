// Package viewer draws a scene into a fyne widget with a software rasterizer.
package viewer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gowalk/pkg/geometry"
)

// Segment is a labelled line drawn over the scene
type Segment struct {
	Start geometry.Vector3
	End   geometry.Vector3
	Label string
}

var (
	backgroundColor = color.RGBA{15, 18, 25, 255}
	segmentColor    = color.RGBA{255, 200, 60, 255}
	markerColor     = color.RGBA{0, 220, 90, 255}
)

// SceneView is a widget showing triangles from a camera, with measurement
// overlays. Input is reported through the On* callbacks.
type SceneView struct {
	widget.BaseWidget

	mu        sync.Mutex
	triangles []geometry.Triangle
	camera    Camera
	segments  []Segment
	markers   []geometry.Vector3

	dragStart  *fyne.Position
	isDragging bool
	lastMouse  *fyne.Position

	// OnTap receives the world ray under a tap
	OnTap func(ray geometry.Ray)
	// OnDrag receives pointer deltas while dragging
	OnDrag func(dx, dy float64)
	// OnScroll receives wheel steps, positive away from the user
	OnScroll func(dy float64)
	// OnMouseMove receives pointer deltas while hovering
	OnMouseMove func(dx, dy float64)
	// OnKey receives key presses and releases while focused
	OnKey func(name fyne.KeyName, down bool)
}

var (
	_ fyne.Tappable     = (*SceneView)(nil)
	_ fyne.Draggable    = (*SceneView)(nil)
	_ fyne.Scrollable   = (*SceneView)(nil)
	_ fyne.Focusable    = (*SceneView)(nil)
	_ desktop.Keyable   = (*SceneView)(nil)
	_ desktop.Hoverable = (*SceneView)(nil)
)

// NewSceneView creates an empty view looking down -Z
func NewSceneView() *SceneView {
	v := &SceneView{
		camera: NewCamera(geometry.NewVector3(0, 1.6, 8), geometry.NewVector3(0, 1.6, 0), math.Pi/4),
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetTriangles replaces the drawn geometry
func (v *SceneView) SetTriangles(triangles []geometry.Triangle) {
	v.mu.Lock()
	v.triangles = triangles
	v.mu.Unlock()
	v.Refresh()
}

// SetCamera moves the view camera
func (v *SceneView) SetCamera(cam Camera) {
	v.mu.Lock()
	v.camera = cam
	v.mu.Unlock()
	v.Refresh()
}

// Camera returns the current view camera
func (v *SceneView) Camera() Camera {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.camera
}

// SetOverlay replaces the measurement lines and loose point markers
func (v *SceneView) SetOverlay(segments []Segment, markers []geometry.Vector3) {
	v.mu.Lock()
	v.segments = segments
	v.markers = markers
	v.mu.Unlock()
	v.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	r := &sceneWidgetRenderer{view: v}
	r.raster = canvas.NewRaster(r.draw)
	r.objects = []fyne.CanvasObject{r.raster}
	return r
}

// Tapped focuses the view and reports the ray under the pointer
func (v *SceneView) Tapped(event *fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(v); c != nil {
		c.Focus(v)
	}
	if v.isDragging || v.OnTap == nil {
		return
	}
	size := v.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	ray := v.Camera().Unproject(float64(event.Position.X), float64(event.Position.Y), float64(size.Width), float64(size.Height))
	v.OnTap(ray)
}

// Dragged handles mouse drag events
func (v *SceneView) Dragged(event *fyne.DragEvent) {
	if v.dragStart != nil && v.OnDrag != nil {
		v.OnDrag(float64(event.Dragged.DX), float64(event.Dragged.DY))
	}
	pos := event.Position
	v.dragStart = &pos
	v.isDragging = true
}

// DragEnd handles the end of a drag event
func (v *SceneView) DragEnd() {
	v.dragStart = nil
	v.isDragging = false
}

// Scrolled handles scroll events for zooming
func (v *SceneView) Scrolled(event *fyne.ScrollEvent) {
	if v.OnScroll != nil {
		v.OnScroll(float64(event.Scrolled.DY))
	}
}

func (v *SceneView) MouseIn(event *desktop.MouseEvent) {
	pos := event.Position
	v.lastMouse = &pos
}

func (v *SceneView) MouseMoved(event *desktop.MouseEvent) {
	pos := event.Position
	if v.lastMouse != nil && v.OnMouseMove != nil {
		v.OnMouseMove(float64(pos.X-v.lastMouse.X), float64(pos.Y-v.lastMouse.Y))
	}
	v.lastMouse = &pos
}

func (v *SceneView) MouseOut() {
	v.lastMouse = nil
}

func (v *SceneView) FocusGained() {}

func (v *SceneView) FocusLost() {
	// Held keys never see their release once focus is gone
	if v.OnKey != nil {
		for _, name := range []fyne.KeyName{fyne.KeyW, fyne.KeyA, fyne.KeyS, fyne.KeyD, fyne.KeyUp, fyne.KeyDown, fyne.KeyLeft, fyne.KeyRight} {
			v.OnKey(name, false)
		}
	}
}

func (v *SceneView) TypedRune(rune) {}

func (v *SceneView) TypedKey(*fyne.KeyEvent) {}

func (v *SceneView) KeyDown(event *fyne.KeyEvent) {
	if v.OnKey != nil {
		v.OnKey(event.Name, true)
	}
}

func (v *SceneView) KeyUp(event *fyne.KeyEvent) {
	if v.OnKey != nil {
		v.OnKey(event.Name, false)
	}
}

// sceneWidgetRenderer implements fyne.WidgetRenderer
type sceneWidgetRenderer struct {
	view    *SceneView
	raster  *canvas.Raster
	overlay []fyne.CanvasObject
	objects []fyne.CanvasObject
}

// draw rasterizes the scene at the requested pixel size
func (r *sceneWidgetRenderer) draw(w, h int) image.Image {
	r.view.mu.Lock()
	triangles, cam := r.view.triangles, r.view.camera
	r.view.mu.Unlock()
	return Rasterize(triangles, cam, w, h, backgroundColor)
}

func (r *sceneWidgetRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.raster.Move(fyne.NewPos(0, 0))
	r.layoutOverlay(size)
}

func (r *sceneWidgetRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

// layoutOverlay rebuilds the measurement lines in widget coordinates
func (r *sceneWidgetRenderer) layoutOverlay(size fyne.Size) {
	r.view.mu.Lock()
	cam, segments, markers := r.view.camera, r.view.segments, r.view.markers
	r.view.mu.Unlock()

	w, h := float64(size.Width), float64(size.Height)
	r.overlay = r.overlay[:0]
	if w <= 0 || h <= 0 {
		return
	}

	for _, seg := range segments {
		x1, y1, _, ok1 := cam.Project(seg.Start, w, h)
		x2, y2, _, ok2 := cam.Project(seg.End, w, h)
		if !ok1 || !ok2 {
			continue
		}
		line := canvas.NewLine(segmentColor)
		line.StrokeWidth = 2
		line.Position1 = fyne.NewPos(float32(x1), float32(y1))
		line.Position2 = fyne.NewPos(float32(x2), float32(y2))
		r.overlay = append(r.overlay, line)

		if seg.Label != "" {
			label := canvas.NewText(seg.Label, segmentColor)
			label.TextSize = 13
			label.TextStyle = fyne.TextStyle{Bold: true}
			ls := label.MinSize()
			label.Resize(ls)
			label.Move(fyne.NewPos(float32((x1+x2)/2)-ls.Width/2, float32((y1+y2)/2)-ls.Height))
			r.overlay = append(r.overlay, label)
		}
	}

	for _, p := range markers {
		x, y, _, ok := cam.Project(p, w, h)
		if !ok {
			continue
		}
		marker := canvas.NewCircle(markerColor)
		marker.StrokeColor = color.White
		marker.StrokeWidth = 2
		const d = 10
		marker.Resize(fyne.NewSize(d, d))
		marker.Move(fyne.NewPos(float32(x)-d/2, float32(y)-d/2))
		r.overlay = append(r.overlay, marker)
	}
}

func (r *sceneWidgetRenderer) Refresh() {
	r.layoutOverlay(r.view.Size())
	r.objects = append(r.objects[:0], r.raster)
	r.objects = append(r.objects, r.overlay...)
	canvas.Refresh(r.raster)
	canvas.Refresh(r.view)
}

func (r *sceneWidgetRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *sceneWidgetRenderer) Destroy() {}
