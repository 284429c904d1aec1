package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/pkg/geometry"
)

const (
	orbitDragSpeed = 0.005
	zoomStep       = 0.1
	clickSlop      = 3.0
)

// movementKeys maps raylib keys onto engine movement keys
var movementKeys = []struct {
	raylib int32
	key    engine.Key
}{
	{rl.KeyW, engine.KeyForward},
	{rl.KeyUp, engine.KeyForward},
	{rl.KeyS, engine.KeyBackward},
	{rl.KeyDown, engine.KeyBackward},
	{rl.KeyA, engine.KeyLeft},
	{rl.KeyLeft, engine.KeyLeft},
	{rl.KeyD, engine.KeyRight},
	{rl.KeyRight, engine.KeyRight},
}

var roomKeys = []int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
	rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

// handleInput forwards this frame's input to the engine. Events are
// applied at the start of the next tick.
func (app *App) handleInput() {
	eng := app.engine
	snap := app.snap

	for _, mk := range movementKeys {
		if rl.IsKeyPressed(mk.raylib) {
			eng.KeyDown(mk.key)
		}
		if rl.IsKeyReleased(mk.raylib) {
			eng.KeyUp(mk.key)
		}
	}

	if rl.IsKeyPressed(rl.KeyEscape) && snap.Locked {
		eng.PointerLock(false)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		if snap.Mode == engine.ModeOrbit {
			eng.SetMode(engine.ModeFirstPerson)
		} else {
			eng.SetMode(engine.ModeOrbit)
		}
	}

	viewpoints := eng.Viewpoints().All()
	for i, key := range roomKeys {
		if i < len(viewpoints) && rl.IsKeyPressed(key) {
			eng.SelectRoom(viewpoints[i].Key)
		}
	}

	if rl.IsKeyPressed(rl.KeyU) {
		eng.Undo()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		eng.ClearMeasurements()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		app.View.unit = app.View.unit.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyG) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyM) {
		app.View.showMinimap = !app.View.showMinimap
	}
	if rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
	if rl.IsKeyPressed(rl.KeyP) {
		name := fmt.Sprintf("gowalk-%d.png", snap.Tick)
		rl.TakeScreenshot(name)
		app.setStatus("Saved " + name)
	}

	if snap.Mode == engine.ModeFirstPerson {
		app.handleFirstPersonMouse(snap)
	} else {
		app.handleOrbitMouse()
	}
}

func (app *App) handleFirstPersonMouse(snap engine.Snapshot) {
	if !snap.Locked {
		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			app.engine.PointerLock(true)
		}
		return
	}

	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		app.engine.Look(float64(delta.X), float64(delta.Y))
	}

	// Measure at the crosshair while walking
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		center := rl.Vector2{X: float32(rl.GetScreenWidth()) / 2, Y: float32(rl.GetScreenHeight()) / 2}
		app.engine.PickRay(app.screenRay(center))
	}
}

func (app *App) handleOrbitMouse() {
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = rl.GetMousePosition()
		app.Interaction.mouseMoved = false
		app.Interaction.dragging = true
	}

	if app.Interaction.dragging && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		if !app.Interaction.mouseMoved {
			dx := float64(pos.X - app.Interaction.mouseDownPos.X)
			dy := float64(pos.Y - app.Interaction.mouseDownPos.Y)
			if math.Hypot(dx, dy) > clickSlop {
				app.Interaction.mouseMoved = true
			}
		}
		if app.Interaction.mouseMoved {
			delta := rl.GetMouseDelta()
			if delta.X != 0 || delta.Y != 0 {
				app.engine.Orbit(-float64(delta.X)*orbitDragSpeed, -float64(delta.Y)*orbitDragSpeed, 1)
			}
		}
	}

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && app.Interaction.dragging {
		app.Interaction.dragging = false
		if !app.Interaction.mouseMoved {
			app.engine.PickRay(app.screenRay(rl.GetMousePosition()))
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.engine.Orbit(0, 0, 1-float64(wheel)*zoomStep)
	}
}

// screenRay converts a screen position into a world ray
func (app *App) screenRay(pos rl.Vector2) geometry.Ray {
	ray := rl.GetMouseRay(pos, app.camera)
	return geometry.NewRay(fromRL(ray.Position), fromRL(ray.Direction))
}

// syncCursor hides the cursor exactly while the engine holds the pointer lock
func (app *App) syncCursor() {
	if app.snap.Locked && !rl.IsCursorHidden() {
		rl.DisableCursor()
	} else if !app.snap.Locked && rl.IsCursorHidden() {
		rl.EnableCursor()
	}
}
