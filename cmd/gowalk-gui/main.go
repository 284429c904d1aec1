package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/gowalk/internal/assets"
	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/internal/config"
	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/internal/logging"
	"github.com/philipparndt/gowalk/internal/measurement"
	"github.com/philipparndt/gowalk/internal/telemetry"
	"github.com/philipparndt/gowalk/internal/transition"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/philipparndt/gowalk/pkg/viewer"
	"github.com/rs/zerolog"
)

const (
	tickRate        = 60
	orbitFOV        = 50 * math.Pi / 180
	firstPersonFOV  = 75 * math.Pi / 180
	orbitDragSpeed  = 0.005
	scrollZoomSpeed = 0.01
)

type App struct {
	window fyne.Window
	cfg    config.Config
	logger zerolog.Logger
	table  *transition.Table

	engine *engine.Engine
	cancel context.CancelFunc
	view   *viewer.SceneView
	plan   *floorPlanView
	unit   measurement.Unit

	// syncing suppresses widget callbacks while state is pushed into them
	syncing bool

	info *TourInfo
}

type TourInfo struct {
	modeLabel     *widget.Label
	roomLabel     *widget.Label
	areaLabel     *widget.Label
	positionLabel *widget.Label
	boundsLabel   *widget.Label
	measureLabel  *widget.Label
	walkCheck     *widget.Check
	lookCheck     *widget.Check
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	a := app.New()
	w := a.NewWindow("GoWalk - Apartment Tour")

	appInstance := &App{
		window: w,
		cfg:    cfg,
		logger: logger,
		table:  transition.DefaultTable(),
	}
	if cfg.Viewpoints.File != "" {
		if err := appInstance.table.LoadFile(cfg.Viewpoints.File); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading viewpoints: %v\n", err)
			os.Exit(1)
		}
	}

	w.SetOnClosed(appInstance.shutdown)

	// Check if file was provided as argument
	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1280, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to GoWalk")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open an apartment model (.stl or .scad) to start the tour")

	openButton := widget.NewButton("Open Model", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

// shutdown stops the tick loop and releases the engine
func (a *App) shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.engine != nil {
		a.engine.Close()
	}
}

// loadFile starts streaming a model and switches to the tour screen. The
// engine starts right away and picks the scene up once it is parsed.
func (a *App) loadFile(filename string) {
	a.shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	source, initial, errs := assets.Stream(ctx, filename, assets.Options{}, a.logger)
	a.engine = engine.New(engine.Options{
		Config:     a.cfg,
		Source:     source,
		Viewpoints: a.table,
		Logger:     a.logger,
		Metrics:    telemetry.New(),
		AutoRotate: true,
	})

	if a.cfg.Viewpoints.File != "" {
		if _, err := a.table.Watch(ctx, a.cfg.Viewpoints.File, a.logger); err != nil {
			a.logger.Warn().Err(err).Msg("Viewpoint reload will not be available")
		}
	}

	a.setupMainUI()
	go a.run(ctx, a.engine, initial, errs)
}

// run ticks the engine at a fixed rate and pushes each snapshot to the UI
func (a *App) run(ctx context.Context, eng *engine.Engine, initial <-chan *assets.Asset, errs <-chan error) {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case asset, ok := <-initial:
			initial = nil
			if ok {
				triangles := scene.WorldTriangles(asset.Root)
				fyne.Do(func() { a.view.SetTriangles(triangles) })
			}
		case err, ok := <-errs:
			errs = nil
			if ok && err != nil {
				fyne.Do(func() {
					dialog.ShowError(fmt.Errorf("failed to load model: %w", err), a.window)
				})
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			snap := eng.Tick(dt)
			fyne.Do(func() { a.render(snap) })
		}
	}
}

func (a *App) setupMainUI() {
	eng := a.engine

	a.info = &TourInfo{
		modeLabel:     widget.NewLabel("Mode: -"),
		roomLabel:     widget.NewLabel("Room: -"),
		areaLabel:     widget.NewLabel("Area: -"),
		positionLabel: widget.NewLabel("Position: -"),
		boundsLabel:   widget.NewLabel("Bounds: scanning..."),
		measureLabel:  widget.NewLabel("No measurements"),
	}
	a.info.roomLabel.TextStyle = fyne.TextStyle{Bold: true}

	a.view = viewer.NewSceneView()
	a.view.OnTap = eng.PickRay
	a.view.OnDrag = func(dx, dy float64) {
		eng.Orbit(-dx*orbitDragSpeed, -dy*orbitDragSpeed, 1)
	}
	a.view.OnScroll = func(dy float64) {
		eng.Orbit(0, 0, math.Max(0.5, math.Min(1.5, 1-dy*scrollZoomSpeed)))
	}
	a.view.OnMouseMove = eng.Look
	a.view.OnKey = a.handleKey

	a.info.walkCheck = widget.NewCheck("Walk mode", func(checked bool) {
		if a.syncing {
			return
		}
		if checked {
			eng.SetMode(engine.ModeFirstPerson)
		} else {
			eng.SetMode(engine.ModeOrbit)
		}
	})
	a.info.lookCheck = widget.NewCheck("Mouse look (Esc releases)", func(checked bool) {
		if a.syncing {
			return
		}
		eng.PointerLock(checked)
	})
	a.info.lookCheck.Disable()

	rooms := container.NewVBox()
	for _, vp := range a.table.All() {
		key := vp.Key
		rooms.Add(widget.NewButton(vp.Name, func() { eng.SelectRoom(key) }))
	}

	unitRadio := widget.NewRadioGroup([]string{measurement.Meters.String(), measurement.Feet.String()}, func(selected string) {
		if unit, err := measurement.ParseUnit(selected); err == nil {
			a.unit = unit
		}
	})
	unitRadio.Horizontal = true
	unitRadio.SetSelected(measurement.Meters.String())

	undoButton := widget.NewButton("Undo", eng.Undo)
	clearButton := widget.NewButton("Clear", eng.ClearMeasurements)
	openButton := widget.NewButton("Open Model", a.showFileDialog)

	a.plan = newFloorPlanView(eng.FloorPlan())

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Pick a room to fly there\n" +
			"• Drag to orbit, scroll to zoom\n" +
			"• Walk mode: click the view, then W A S D\n" +
			"• Click two points to measure",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Rooms:"),
		widget.NewSeparator(),
		rooms,
		widget.NewSeparator(),
		a.info.walkCheck,
		a.info.lookCheck,
		widget.NewSeparator(),
		a.info.modeLabel,
		a.info.roomLabel,
		a.info.areaLabel,
		a.info.positionLabel,
		a.info.boundsLabel,
		widget.NewSeparator(),
		container.NewCenter(a.plan.object()),
		widget.NewSeparator(),
		widget.NewLabel("Measurements:"),
		unitRadio,
		a.info.measureLabel,
		container.NewGridWithColumns(2, undoButton, clearButton),
		widget.NewSeparator(),
		instructions,
		openButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.view,     // center
	)

	a.window.SetContent(content)
}

// handleKey forwards movement keys and Escape from the focused view
func (a *App) handleKey(name fyne.KeyName, down bool) {
	if name == fyne.KeyEscape {
		if down {
			a.engine.PointerLock(false)
		}
		return
	}
	if key, ok := engine.ParseKey(string(name)); ok {
		if down {
			a.engine.KeyDown(key)
		} else {
			a.engine.KeyUp(key)
		}
	}
}

// render pushes a snapshot into the widgets. Runs on the fyne main goroutine.
func (a *App) render(snap engine.Snapshot) {
	fov := orbitFOV
	if snap.Mode == engine.ModeFirstPerson {
		fov = firstPersonFOV
	}
	a.view.SetCamera(viewer.NewCamera(snap.Pose.Position, snap.Focus, fov))

	segments := make([]viewer.Segment, len(snap.Measurements))
	for i, m := range snap.Measurements {
		segments[i] = viewer.Segment{Start: m.Start, End: m.End, Label: measurement.Format(m, a.unit)}
	}
	var markers []geometry.Vector3
	if snap.PendingCount == 1 {
		markers = append(markers, snap.Pending)
	}
	a.view.SetOverlay(segments, markers)

	a.syncing = true
	a.info.walkCheck.SetChecked(snap.Mode == engine.ModeFirstPerson)
	a.info.lookCheck.SetChecked(snap.Locked)
	if snap.Mode == engine.ModeFirstPerson {
		a.info.lookCheck.Enable()
	} else {
		a.info.lookCheck.Disable()
	}
	a.syncing = false

	mode := "Orbit"
	switch {
	case snap.Mode == engine.ModeFirstPerson:
		mode = "Walk"
	case snap.Transitioning:
		mode = "Orbit (flying)"
	case snap.AutoRotating:
		mode = "Orbit (showcase)"
	}
	a.info.modeLabel.SetText("Mode: " + mode)
	a.info.roomLabel.SetText("Room: " + a.table.Lookup(snap.ActiveRoom).Name)
	area := snap.Room
	if area == "" {
		area = "-"
	}
	a.info.areaLabel.SetText("Area: " + area)
	p := snap.Pose.Position
	a.info.positionLabel.SetText(fmt.Sprintf("Position: (%.2f, %.2f, %.2f)", p.X, p.Y, p.Z))

	switch snap.Scan {
	case bounds.ScanPending:
		a.info.boundsLabel.SetText("Bounds: scanning...")
	case bounds.ScanFailed:
		a.info.boundsLabel.SetText("Bounds: unavailable")
	default:
		s := snap.Bounds.Size
		a.info.boundsLabel.SetText(fmt.Sprintf("Bounds: %.1f x %.1f x %.1f m", s.X, s.Y, s.Z))
	}

	a.info.measureLabel.SetText(measurementText(snap, a.unit))
	a.plan.update(snap)
}

// measurementText lists the measurements for the side panel
func measurementText(snap engine.Snapshot, unit measurement.Unit) string {
	if len(snap.Measurements) == 0 && snap.PendingCount == 0 {
		return "No measurements"
	}
	var b strings.Builder
	total := 0.0
	for i, m := range snap.Measurements {
		fmt.Fprintf(&b, "#%d  %s\n", i+1, measurement.Format(m, unit))
		total += m.Value(unit)
	}
	if snap.PendingCount == 1 {
		b.WriteString("Pick the end point...\n")
	}
	if len(snap.Measurements) > 1 {
		fmt.Fprintf(&b, "Total: %s\n", measurement.FormatDistance(total, unit))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
