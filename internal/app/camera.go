package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gowalk/internal/engine"
)

const (
	orbitFovy       = 50.0
	firstPersonFovy = 75.0
)

// updateCamera copies the engine pose into the raylib camera
func (app *App) updateCamera(snap engine.Snapshot) {
	app.camera.Position = toRL(snap.Pose.Position)
	app.camera.Target = toRL(snap.Focus)
	app.camera.Up = rl.Vector3{X: 0, Y: 1, Z: 0}
	app.camera.Projection = rl.CameraPerspective
	if snap.Mode == engine.ModeFirstPerson {
		app.camera.Fovy = firstPersonFovy
	} else {
		app.camera.Fovy = orbitFovy
	}
}
