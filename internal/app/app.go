// Package app is the interactive raylib host for the navigation engine.
package app

import (
	"context"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gowalk/internal/assets"
	"github.com/philipparndt/gowalk/internal/config"
	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/internal/logging"
	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/philipparndt/gowalk/internal/transition"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/rs/zerolog"
)

// Options configure the interactive viewer
type Options struct {
	File       string
	Config     config.Config
	Asset      assets.Options
	Mode       engine.Mode
	AutoRotate bool
	Viewpoints *transition.Table
	Logger     zerolog.Logger
	Metrics    *telemetry.Instruments
}

type App struct {
	opts   Options
	logger zerolog.Logger
	engine *engine.Engine
	camera rl.Camera3D
	snap   engine.Snapshot

	Model       ModelData
	View        ViewSettings
	Interaction InteractionState
	FileWatch   FileWatchState
	UI          UIState
}

// Run opens the window and blocks until it is closed or ctx is done
func Run(ctx context.Context, opts Options) error {
	if opts.File == "" {
		return fmt.Errorf("no model file given")
	}
	logger := logging.Component(opts.Logger, "app")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	source, initial, loadErrs := assets.Stream(ctx, opts.File, opts.Asset, opts.Logger)

	eng := engine.New(engine.Options{
		Config:     opts.Config,
		Source:     source,
		Viewpoints: opts.Viewpoints,
		Logger:     opts.Logger,
		Metrics:    opts.Metrics,
		Mode:       opts.Mode,
		AutoRotate: opts.AutoRotate,
	})
	defer eng.Close()

	window := opts.Config.Window
	if window.Width <= 0 || window.Height <= 0 {
		window = config.Default().Window
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(window.Width), int32(window.Height), "GoWalk")
	rl.SetTargetFPS(int32(window.FPS))
	// Escape releases the pointer instead of closing the window
	rl.SetExitKey(rl.KeyNull)

	app := &App{
		opts:   opts,
		logger: logger,
		engine: eng,
		View: ViewSettings{
			showMinimap: true,
			showHelp:    true,
		},
		FileWatch: FileWatchState{
			isLoading:        true,
			loadingStartTime: time.Now(),
			loaded:           make(chan *assets.Asset, 1),
			initial:          initial,
		},
		UI: UIState{font: rl.GetFontDefault()},
	}
	app.Model.material = rl.LoadMaterialDefault()
	app.snap = eng.Snapshot()
	app.updateCamera(app.snap)

	defer app.stopWatching()

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			break
		}

		select {
		case err, ok := <-loadErrs:
			if ok && err != nil {
				app.FileWatch.isLoading = false
				app.setStatus(fmt.Sprintf("Load failed: %v", err))
			}
			if !ok {
				loadErrs = nil
			}
		default:
		}

		// Check if model needs reloading (file changed)
		if app.FileWatch.needsReload.Load() && !app.FileWatch.isLoading {
			app.FileWatch.needsReload.Store(false)
			app.reloadModel(ctx)
		}

		// Apply loaded model if ready (must be on main thread)
		app.applyLoadedModel(ctx)

		app.handleInput()
		app.snap = eng.Tick(float64(rl.GetFrameTime()))
		app.syncCursor()
		app.updateCamera(app.snap)

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.camera)
		if app.Model.hasMesh {
			rl.DrawMesh(app.Model.mesh, app.Model.material, rl.MatrixIdentity())
		}
		if app.View.showWireframe {
			app.drawWireframe()
		}
		rl.DrawGrid(40, 1.0)
		rl.EndMode3D()

		app.drawMeasurements()
		if app.View.showMinimap {
			app.drawMinimap()
		}
		app.drawUI()

		rl.EndDrawing()
	}

	if app.Model.hasMesh {
		rl.UnloadMesh(&app.Model.mesh)
	}
	rl.CloseWindow()
	return nil
}

// uploadScene replaces the GPU mesh with the triangles of root
func (app *App) uploadScene(root scene.Node) {
	triangles := scene.WorldTriangles(root)
	if app.Model.hasMesh {
		oldMesh := app.Model.mesh
		defer rl.UnloadMesh(&oldMesh)
	}
	app.Model.hasMesh = false
	app.Model.triangles = len(triangles)
	app.Model.edges = uniqueEdges(triangles)
	if len(triangles) == 0 {
		return
	}
	app.Model.mesh = trianglesToRaylibMesh(triangles)
	app.Model.hasMesh = true
}

func (app *App) setStatus(msg string) {
	app.UI.status = msg
	app.UI.statusTime = time.Now()
}
