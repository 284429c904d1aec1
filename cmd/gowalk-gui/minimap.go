package main

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/internal/minimap"
)

const arrowLength = 12

var (
	roomFill      = color.NRGBA{R: 78, G: 110, B: 150, A: 120}
	roomActive    = color.NRGBA{R: 78, G: 110, B: 150, A: 230}
	roomStroke    = color.NRGBA{R: 220, G: 220, B: 220, A: 160}
	positionColor = color.NRGBA{R: 230, G: 40, B: 40, A: 255}
)

// floorPlanView draws the mini-map with absolute positioning
type floorPlanView struct {
	plan    *minimap.FloorPlan
	rooms   []*canvas.Rectangle
	labels  []string
	dot     *canvas.Circle
	heading *canvas.Line
	root    *fyne.Container
}

func newFloorPlanView(plan *minimap.FloorPlan) *floorPlanView {
	size := float32(plan.Size)
	v := &floorPlanView{plan: plan}

	background := canvas.NewRectangle(color.NRGBA{A: 170})
	background.SetMinSize(fyne.NewSize(size, size))
	background.Resize(fyne.NewSize(size, size))

	objects := []fyne.CanvasObject{background}
	for _, room := range plan.Rooms() {
		r := room.Bounds
		rect := canvas.NewRectangle(roomFill)
		rect.StrokeColor = roomStroke
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(float32(r.W), float32(r.H)))
		rect.Move(fyne.NewPos(float32(r.X), float32(r.Y)))
		v.rooms = append(v.rooms, rect)
		v.labels = append(v.labels, room.Label)

		label := canvas.NewText(room.Label, color.White)
		label.TextSize = 9
		ls := label.MinSize()
		ax, ay := room.LabelAnchor()
		label.Resize(ls)
		label.Move(fyne.NewPos(float32(ax)-ls.Width/2, float32(ay)-ls.Height/2))
		objects = append(objects, rect, label)
	}

	v.heading = canvas.NewLine(positionColor)
	v.heading.StrokeWidth = 2
	v.dot = canvas.NewCircle(positionColor)
	v.dot.Resize(fyne.NewSize(8, 8))
	objects = append(objects, v.heading, v.dot)

	v.root = container.NewStack(background, container.NewWithoutLayout(objects[1:]...))
	return v
}

func (v *floorPlanView) object() fyne.CanvasObject {
	return v.root
}

// update moves the position marker. Map coordinates are rescaled when the
// engine map size differs from the plan size.
func (v *floorPlanView) update(snap engine.Snapshot) {
	scale := float32(1)
	if snap.MapSize > 0 {
		scale = float32(v.plan.Size / snap.MapSize)
	}
	x := float32(snap.Map.X) * scale
	y := float32(snap.Map.Y) * scale

	v.dot.Move(fyne.NewPos(x-4, y-4))
	sin, cos := math.Sincos(snap.Map.Yaw)
	v.heading.Position1 = fyne.NewPos(x, y)
	v.heading.Position2 = fyne.NewPos(x-float32(arrowLength*sin), y-float32(arrowLength*cos))

	for i, rect := range v.rooms {
		want := color.Color(roomFill)
		if v.labels[i] == snap.Room {
			want = roomActive
		}
		if rect.FillColor != want {
			rect.FillColor = want
			rect.Refresh()
		}
	}
	v.dot.Refresh()
	v.heading.Refresh()
}
