package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/internal/measurement"
	"github.com/philipparndt/gowalk/version"
)

const statusTimeout = 3 * time.Second

var helpLines = []string{
	"Tab      switch orbit / walk",
	"1-9      fly to room",
	"W A S D  walk",
	"Click    measure / capture pointer",
	"Esc      release pointer",
	"U / C    undo / clear measurements",
	"F        toggle m / ft",
	"G  M  P  wireframe, map, screenshot",
	"H        hide help",
}

func (app *App) text(s string, x, y, size float32, color rl.Color) {
	rl.DrawTextEx(app.UI.font, s, rl.Vector2{X: x, Y: y}, size, 1, color)
}

// drawUI draws the heads-up display
func (app *App) drawUI() {
	snap := app.snap
	y := float32(10)
	lineHeight := float32(20)
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// === VIEW ===
	app.text(fmt.Sprintf("GoWalk %s", version.GetFullVersion()), 10, y, 18, rl.Yellow)
	y += lineHeight
	mode := "Orbit"
	if snap.Mode == engine.ModeFirstPerson {
		mode = "Walk"
	}
	if snap.AutoRotating {
		mode += " (showcase)"
	}
	if snap.Transitioning {
		mode += " (flying)"
	}
	app.text("  Mode: "+mode, 10, y, 14, rl.White)
	y += lineHeight
	app.text("  Room: "+app.engine.Viewpoints().Lookup(snap.ActiveRoom).Name, 10, y, 14, rl.White)
	y += lineHeight
	if snap.Room != "" {
		app.text("  Map area: "+snap.Room, 10, y, 14, rl.White)
		y += lineHeight
	}
	p := snap.Pose.Position
	app.text(fmt.Sprintf("  Position: (%.2f, %.2f, %.2f)", p.X, p.Y, p.Z), 10, y, 14, rl.LightGray)
	y += lineHeight
	app.text(fmt.Sprintf("  Triangles: %d", app.Model.triangles), 10, y, 14, rl.LightGray)
	y += lineHeight

	switch snap.Scan {
	case bounds.ScanPending:
		app.text("  Bounds: scanning...", 10, y, 14, rl.Orange)
	case bounds.ScanFailed:
		app.text("  Bounds: unavailable", 10, y, 14, rl.Red)
	default:
		size := snap.Bounds.Size
		app.text(fmt.Sprintf("  Bounds: %.1f x %.1f x %.1f", size.X, size.Y, size.Z), 10, y, 14, rl.LightGray)
	}
	y += lineHeight * 2

	// === MEASURE ===
	if len(snap.Measurements) > 0 || snap.PendingCount > 0 {
		app.text("Measure:", 10, y, 16, rl.Yellow)
		y += lineHeight
		for i, m := range snap.Measurements {
			app.text(fmt.Sprintf("  #%d  %s", i+1, measurement.Format(m, app.View.unit)), 10, y, 14, measureColor)
			y += lineHeight
		}
		if snap.PendingCount == 1 {
			q := snap.Pending
			app.text(fmt.Sprintf("  Start: (%.2f, %.2f, %.2f)", q.X, q.Y, q.Z), 10, y, 14, rl.Green)
			y += lineHeight
		}
		if len(snap.Measurements) > 1 {
			total := 0.0
			for _, m := range snap.Measurements {
				total += m.Value(app.View.unit)
			}
			app.text("  Total: "+measurement.FormatDistance(total, app.View.unit), 10, y, 14, rl.White)
		}
	}

	// Crosshair while walking
	if snap.Mode == engine.ModeFirstPerson && snap.Locked {
		cx, cy := int32(screenWidth/2), int32(screenHeight/2)
		rl.DrawLine(cx-8, cy, cx+8, cy, rl.White)
		rl.DrawLine(cx, cy-8, cx, cy+8, rl.White)
	}

	// Pointer prompt while walk mode is not captured
	if snap.Mode == engine.ModeFirstPerson && !snap.Locked {
		msg := "Click to walk"
		size := rl.MeasureTextEx(app.UI.font, msg, 28, 1)
		app.text(msg, (screenWidth-size.X)/2, (screenHeight-size.Y)/2, 28, rl.White)
	}

	// Loading indicator
	if app.FileWatch.isLoading {
		elapsed := time.Since(app.FileWatch.loadingStartTime).Seconds()
		spinner := []string{"|", "/", "-", "\\"}
		loadingText := fmt.Sprintf("%s Loading... (%.1fs)", spinner[int(elapsed*10)%len(spinner)], elapsed)

		boxWidth := float32(250)
		boxHeight := float32(40)
		boxX := screenWidth - boxWidth - 20
		boxY := float32(20)
		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
		textSize := rl.MeasureTextEx(app.UI.font, loadingText, 18, 1)
		app.text(loadingText, boxX+(boxWidth-textSize.X)/2, boxY+(boxHeight-textSize.Y)/2, 18, rl.Yellow)
	} else if app.UI.status != "" && time.Since(app.UI.statusTime) < statusTimeout {
		textSize := rl.MeasureTextEx(app.UI.font, app.UI.status, 16, 1)
		app.text(app.UI.status, screenWidth-textSize.X-20, 20, 16, rl.LightGray)
	}

	// Help (bottom-right corner)
	if app.View.showHelp {
		hy := screenHeight - float32(len(helpLines))*18 - 16
		for _, line := range helpLines {
			app.text(line, screenWidth-300, hy, 14, rl.Gray)
			hy += 18
		}
	}
}
