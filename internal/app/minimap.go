package app

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gowalk/internal/minimap"
)

const (
	minimapMargin   = 16
	minimapArrowLen = 12
)

var roomColors = []rl.Color{
	rl.NewColor(78, 110, 150, 140),
	rl.NewColor(92, 130, 96, 140),
	rl.NewColor(150, 118, 78, 140),
	rl.NewColor(120, 92, 140, 140),
	rl.NewColor(70, 130, 130, 140),
	rl.NewColor(140, 84, 84, 140),
	rl.NewColor(110, 110, 110, 140),
	rl.NewColor(110, 110, 110, 140),
}

// drawMinimap draws the floor plan in the bottom-left corner with the
// camera position and heading
func (app *App) drawMinimap() {
	snap := app.snap
	size := float32(snap.MapSize)
	if size <= 0 {
		size = minimap.DefaultSize
	}
	originX := float32(minimapMargin)
	originY := float32(rl.GetScreenHeight()) - size - minimapMargin

	rl.DrawRectangle(int32(originX), int32(originY), int32(size), int32(size), rl.NewColor(0, 0, 0, 170))
	rl.DrawRectangleLines(int32(originX), int32(originY), int32(size), int32(size), rl.Gray)

	plan := app.engine.FloorPlan()
	scale := size / float32(plan.Size)
	for i, room := range plan.Rooms() {
		r := room.Bounds
		rect := rl.Rectangle{
			X:      originX + float32(r.X)*scale,
			Y:      originY + float32(r.Y)*scale,
			Width:  float32(r.W) * scale,
			Height: float32(r.H) * scale,
		}
		color := roomColors[i%len(roomColors)]
		if room.Label == snap.Room {
			color.A = 230
		}
		rl.DrawRectangleRec(rect, color)
		rl.DrawRectangleLinesEx(rect, 1, rl.NewColor(220, 220, 220, 160))

		ax, ay := room.LabelAnchor()
		const fontSize = 10
		width := float32(rl.MeasureText(room.Label, fontSize))
		rl.DrawText(room.Label,
			int32(originX+float32(ax)*scale-width/2),
			int32(originY+float32(ay)*scale-fontSize/2),
			fontSize, rl.White)
	}

	// Heading arrow: yaw 0 faces up the map, positive yaw turns left
	pos := rl.Vector2{X: originX + float32(snap.Map.X), Y: originY + float32(snap.Map.Y)}
	sin, cos := math32.Sincos(float32(snap.Map.Yaw))
	tip := rl.Vector2{X: pos.X - minimapArrowLen*sin, Y: pos.Y - minimapArrowLen*cos}
	rl.DrawLineEx(pos, tip, 2, rl.Red)
	rl.DrawCircleV(pos, 4, rl.Red)
}
