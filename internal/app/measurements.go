package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gowalk/internal/measurement"
)

const (
	labelFontSize = 16
	labelPadding  = 5
)

var (
	measureColor = rl.NewColor(255, 200, 60, 255)
	hoverColor   = rl.NewColor(255, 235, 140, 255)
)

// MeasurementLabel is a distance label drawn in screen space
type MeasurementLabel struct {
	Text       string
	ScreenPos  rl.Vector2
	BaseColor  rl.Color
	HoverColor rl.Color
	IsHovered  bool
}

// Draw renders the label centered on ScreenPos and returns its bounding rectangle
func (l *MeasurementLabel) Draw(font rl.Font, fontSize float32, padding float32) rl.Rectangle {
	color := l.BaseColor
	borderWidth := float32(2)
	if l.IsHovered {
		color = l.HoverColor
		borderWidth = 2.5
	}

	textSize := rl.MeasureTextEx(font, l.Text, fontSize, 1)
	rect := rl.Rectangle{
		X:      l.ScreenPos.X - textSize.X/2 - padding,
		Y:      l.ScreenPos.Y - padding,
		Width:  textSize.X + 2*padding,
		Height: textSize.Y + 2*padding,
	}

	rl.DrawRectangleRec(rect, rl.NewColor(20, 20, 20, 220))
	rl.DrawRectangleLinesEx(rect, borderWidth, color)
	rl.DrawTextEx(font, l.Text, rl.Vector2{X: l.ScreenPos.X - textSize.X/2, Y: l.ScreenPos.Y}, fontSize, 1, color)
	return rect
}

// visible reports whether a world point lies in front of the camera
func (app *App) visible(p rl.Vector3) bool {
	forward := rl.Vector3Subtract(app.camera.Target, app.camera.Position)
	return rl.Vector3DotProduct(forward, rl.Vector3Subtract(p, app.camera.Position)) > 0
}

// drawMeasurements draws completed measurements and the pending point in
// screen space
func (app *App) drawMeasurements() {
	mouse := rl.GetMousePosition()

	for _, m := range app.snap.Measurements {
		start, end := toRL(m.Start), toRL(m.End)
		if !app.visible(start) || !app.visible(end) {
			continue
		}
		s := rl.GetWorldToScreen(start, app.camera)
		e := rl.GetWorldToScreen(end, app.camera)
		rl.DrawLineEx(s, e, 2, measureColor)
		rl.DrawCircleV(s, 4, measureColor)
		rl.DrawCircleV(e, 4, measureColor)

		label := MeasurementLabel{
			Text:       measurement.Format(m, app.View.unit),
			ScreenPos:  rl.GetWorldToScreen(toRL(m.Midpoint), app.camera),
			BaseColor:  measureColor,
			HoverColor: hoverColor,
		}
		textSize := rl.MeasureTextEx(app.UI.font, label.Text, labelFontSize, 1)
		hit := rl.Rectangle{
			X:      label.ScreenPos.X - textSize.X/2 - labelPadding,
			Y:      label.ScreenPos.Y - labelPadding,
			Width:  textSize.X + 2*labelPadding,
			Height: textSize.Y + 2*labelPadding,
		}
		label.IsHovered = rl.CheckCollisionPointRec(mouse, hit)
		label.Draw(app.UI.font, labelFontSize, labelPadding)
	}

	if app.snap.PendingCount == 1 {
		p := toRL(app.snap.Pending)
		if app.visible(p) {
			rl.DrawCircleV(rl.GetWorldToScreen(p, app.camera), 5, rl.Green)
		}
	}
}
