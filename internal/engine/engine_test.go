package engine

import (
	"math"
	"sync"
	"testing"

	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/internal/config"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(a, b, c, d geometry.Vector3) []geometry.Triangle {
	return []geometry.Triangle{
		geometry.NewTriangle(geometry.Vector3{}, a, b, c),
		geometry.NewTriangle(geometry.Vector3{}, a, c, d),
	}
}

// boxRoom is a floor with four walls spanning [-half, half] on X and Z
func boxRoom(half, height float64) scene.Node {
	v := geometry.NewVector3
	var tris []geometry.Triangle
	tris = append(tris, quad(v(-half, 0, -half), v(half, 0, -half), v(half, 0, half), v(-half, 0, half))...)
	tris = append(tris, quad(v(-half, 0, -half), v(half, 0, -half), v(half, height, -half), v(-half, height, -half))...)
	tris = append(tris, quad(v(-half, 0, half), v(half, 0, half), v(half, height, half), v(-half, height, half))...)
	tris = append(tris, quad(v(-half, 0, -half), v(-half, 0, half), v(-half, height, half), v(-half, height, -half))...)
	tris = append(tris, quad(v(half, 0, -half), v(half, 0, half), v(half, height, half), v(half, height, -half))...)
	return scene.NewGroupNode("apartment", scene.Identity(),
		scene.NewMeshNode("shell", scene.Identity(), tris))
}

func newEngine(t *testing.T, mode Mode, source scene.Source) *Engine {
	t.Helper()
	e := New(Options{
		Config: config.Default(),
		Source: source,
		Logger: zerolog.Nop(),
		Mode:   mode,
	})
	t.Cleanup(e.Close)
	return e
}

// scanned returns an engine whose bounds scan has completed
func scanned(t *testing.T, mode Mode) *Engine {
	t.Helper()
	e := newEngine(t, mode, scene.NewStatic(boxRoom(10, 3)))
	snap := e.Tick(1.0)
	require.True(t, snap.BoundsKnown)
	return e
}

func TestStartsAtOverview(t *testing.T) {
	e := newEngine(t, ModeOrbit, nil)
	snap := e.Snapshot()

	assert.Equal(t, ModeOrbit, snap.Mode)
	assert.Equal(t, geometry.NewVector3(18, 12, 18), snap.Pose.Position)
	assert.Equal(t, geometry.Vector3{}, snap.Focus)
	assert.Equal(t, "default", snap.ActiveRoom)
	assert.False(t, snap.BoundsKnown)
	assert.Equal(t, bounds.ScanPending, snap.Scan)
}

func TestBoundsScanWaitsForInitialDelay(t *testing.T) {
	e := newEngine(t, ModeOrbit, scene.NewStatic(boxRoom(10, 3)))

	snap := e.Tick(0.5)
	assert.False(t, snap.BoundsKnown)

	snap = e.Tick(0.5)
	require.True(t, snap.BoundsKnown)
	assert.Equal(t, bounds.ScanComplete, snap.Scan)
	assert.Equal(t, geometry.NewVector3(-10, 0, -10), snap.Bounds.Min)
	assert.Equal(t, geometry.NewVector3(10, 3, 10), snap.Bounds.Max)
}

func TestStreamingSceneIsRetried(t *testing.T) {
	source := scene.NewDeferred()
	e := newEngine(t, ModeOrbit, source)

	assert.False(t, e.Tick(1.0).BoundsKnown)
	assert.False(t, e.Tick(0.5).BoundsKnown)

	source.Publish(boxRoom(10, 3))
	assert.False(t, e.Tick(0.25).BoundsKnown, "retry waits for the fixed delay")
	assert.True(t, e.Tick(0.25).BoundsKnown)
}

func TestFirstPersonSpawnsInsideScene(t *testing.T) {
	e := newEngine(t, ModeFirstPerson, scene.NewStatic(boxRoom(10, 3)))
	assert.Equal(t, geometry.NewVector3(0, 1.6, 8), e.Snapshot().Pose.Position)

	snap := e.Tick(1.0)
	assert.InDelta(t, 0, snap.Pose.Position.X, 1e-12)
	assert.InDelta(t, 1.7, snap.Pose.Position.Y, 1e-12)
	assert.InDelta(t, 4, snap.Pose.Position.Z, 1e-12)
}

func TestWalkingNeedsPointerLock(t *testing.T) {
	e := scanned(t, ModeFirstPerson)
	start := e.Snapshot().Pose.Position

	e.KeyDown(KeyForward)
	snap := e.Tick(0.016)
	assert.False(t, snap.Locked)
	assert.Equal(t, start, snap.Pose.Position)

	e.PointerLock(true)
	snap = e.Tick(0.016)
	assert.True(t, snap.Locked)
	assert.InDelta(t, start.Z-0.024, snap.Pose.Position.Z, 1e-12)
	assert.InDelta(t, 1.7, snap.Pose.Position.Y, 1e-12)
}

func TestReleaseIsCheckedBeforeMovement(t *testing.T) {
	e := scanned(t, ModeFirstPerson)
	e.PointerLock(true)
	e.KeyDown(KeyForward)
	e.Tick(0.016)
	moved := e.Snapshot().Pose.Position

	e.PointerLock(false)
	snap := e.Tick(0.016)
	assert.False(t, snap.Locked)
	assert.Equal(t, moved, snap.Pose.Position)
}

func TestUnknownKeyDoesNotMove(t *testing.T) {
	e := scanned(t, ModeFirstPerson)
	e.PointerLock(true)
	start := e.Tick(0.016).Pose.Position

	e.KeyDown(Key(42))
	snap := e.Tick(0.016)
	assert.Equal(t, start, snap.Pose.Position)
	assert.Equal(t, "unknown", Key(42).String())
	assert.Equal(t, "backward", KeyBackward.String())
}

func TestPointerLockIgnoredInOrbit(t *testing.T) {
	e := scanned(t, ModeOrbit)
	e.PointerLock(true)
	assert.False(t, e.Tick(0.016).Locked)
}

func TestWallStopsWalker(t *testing.T) {
	e := scanned(t, ModeFirstPerson)
	e.PointerLock(true)
	e.KeyDown(KeyForward)

	var snap Snapshot
	for i := 0; i < 2000; i++ {
		snap = e.Tick(0.016)
	}
	assert.Greater(t, snap.Pose.Position.Z, -10+0.5-1e-9)
	assert.InDelta(t, 1.7, snap.Pose.Position.Y, 1e-12)
}

func TestRoomTransitionLandsOnViewpoint(t *testing.T) {
	e := scanned(t, ModeOrbit)
	e.SelectRoom("kitchen")

	snap := e.Tick(0.016)
	require.True(t, snap.Transitioning)
	assert.Equal(t, "kitchen", snap.ActiveRoom)

	for i := 0; i < 200 && snap.Transitioning; i++ {
		snap = e.Tick(0.016)
	}
	assert.False(t, snap.Transitioning)
	assert.Equal(t, geometry.NewVector3(6, 5, -9), snap.Pose.Position)
	assert.Equal(t, geometry.NewVector3(3, 1.5, -3), snap.Focus)
}

func TestUnknownRoomFallsBackToOverview(t *testing.T) {
	e := scanned(t, ModeOrbit)
	e.SelectRoom("kitchen")
	for i := 0; i < 200; i++ {
		e.Tick(0.016)
	}

	e.SelectRoom("attic")
	snap := e.Tick(2)
	assert.Equal(t, "default", snap.ActiveRoom)
	assert.Equal(t, geometry.NewVector3(18, 12, 18), snap.Pose.Position)
}

func TestRoomSelectionIgnoredWhileWalking(t *testing.T) {
	e := scanned(t, ModeFirstPerson)
	before := e.Snapshot().Pose

	e.SelectRoom("bedroom")
	snap := e.Tick(0.016)
	assert.False(t, snap.Transitioning)
	assert.Equal(t, before, snap.Pose)
}

func TestEnteringFirstPersonCancelsTransition(t *testing.T) {
	e := scanned(t, ModeOrbit)
	e.SelectRoom("balcony")
	require.True(t, e.Tick(0.016).Transitioning)

	e.SetMode(ModeFirstPerson)
	snap := e.Tick(0.016)
	assert.Equal(t, ModeFirstPerson, snap.Mode)
	assert.False(t, snap.Transitioning)
	assert.InDelta(t, 4, snap.Pose.Position.Z, 1e-12)
}

func TestLeavingFirstPersonReleasesLock(t *testing.T) {
	e := scanned(t, ModeFirstPerson)
	e.PointerLock(true)
	require.True(t, e.Tick(0.016).Locked)

	e.SetMode(ModeOrbit)
	snap := e.Tick(0.016)
	assert.Equal(t, ModeOrbit, snap.Mode)
	assert.False(t, snap.Locked)
	assert.Equal(t, geometry.NewVector3(18, 12, 18), snap.Pose.Position)
}

func TestShowcaseCirclesUntilInteraction(t *testing.T) {
	e := New(Options{Config: config.Default(), Logger: zerolog.Nop(), AutoRotate: true})
	defer e.Close()

	snap := e.Tick(0.016)
	require.True(t, snap.AutoRotating)
	horizontal := math.Hypot(snap.Pose.Position.X, snap.Pose.Position.Z)
	assert.InDelta(t, 18, horizontal, 1e-9)
	assert.InDelta(t, 12, snap.Pose.Position.Y, 1e-12)

	e.Orbit(0.1, 0, 1)
	assert.False(t, e.Tick(0.016).AutoRotating)
}

func TestShowcaseTimesOut(t *testing.T) {
	e := New(Options{Config: config.Default(), Logger: zerolog.Nop(), AutoRotate: true})
	defer e.Close()

	var snap Snapshot
	for i := 0; i < 60; i++ {
		snap = e.Tick(0.1)
	}
	assert.False(t, snap.AutoRotating)
}

func TestOrbitLimits(t *testing.T) {
	e := scanned(t, ModeOrbit)

	e.Orbit(0, 0, 100)
	snap := e.Tick(0.016)
	assert.InDelta(t, MaxOrbitDistance, snap.Pose.Position.Distance(snap.Focus), 1e-9)

	e.Orbit(0, 0, 0.001)
	snap = e.Tick(0.016)
	assert.InDelta(t, MinOrbitDistance, snap.Pose.Position.Distance(snap.Focus), 1e-9)

	e.Orbit(0, 10, 1)
	snap = e.Tick(0.016)
	assert.InDelta(t, snap.Focus.Y, snap.Pose.Position.Y, 1e-9, "camera never dips below the focus")
}

func TestOrbitIgnoredDuringTransition(t *testing.T) {
	e := scanned(t, ModeOrbit)
	e.SelectRoom("livingRoom")
	e.Tick(0.016)

	e.Orbit(0, 0, 100)
	for i := 0; i < 200; i++ {
		e.Tick(0.016)
	}
	assert.Equal(t, geometry.NewVector3(6, 5, 9), e.Snapshot().Pose.Position)
}

func TestMeasurementsFromPicks(t *testing.T) {
	e := scanned(t, ModeOrbit)

	e.Pick(geometry.NewVector3(0, 0, 0))
	snap := e.Tick(0.016)
	assert.Equal(t, 1, snap.PendingCount)
	assert.Equal(t, geometry.Vector3{}, snap.Pending)

	e.Pick(geometry.NewVector3(3, 0, 4))
	snap = e.Tick(0.016)
	require.Len(t, snap.Measurements, 1)
	assert.InDelta(t, 5, snap.Measurements[0].Meters, 1e-12)
	assert.Equal(t, 0, snap.PendingCount)

	e.Pick(geometry.NewVector3(1, 1, 1))
	e.Undo()
	snap = e.Tick(0.016)
	assert.Empty(t, snap.Measurements)
	assert.Equal(t, 0, snap.PendingCount)

	e.Pick(geometry.NewVector3(0, 0, 0))
	e.Pick(geometry.NewVector3(0, 2, 0))
	e.Pick(geometry.NewVector3(5, 5, 5))
	e.ClearMeasurements()
	snap = e.Tick(0.016)
	assert.Empty(t, snap.Measurements)
	assert.Equal(t, 0, snap.PendingCount)
}

func TestPickRayHitsScene(t *testing.T) {
	e := newEngine(t, ModeOrbit, scene.NewStatic(boxRoom(10, 3)))
	ray := geometry.NewRay(geometry.NewVector3(0, 1, 0), geometry.NewVector3(0, 0, -1))

	e.PickRay(ray)
	assert.Equal(t, 0, e.Tick(0.016).PendingCount, "no picks before the scan")

	e.Tick(1.0)
	e.PickRay(ray)
	snap := e.Tick(0.016)
	require.Equal(t, 1, snap.PendingCount)
	assert.True(t, snap.Pending.ApproxEqual(geometry.NewVector3(0, 1, -10), 1e-9))
}

func TestMapCoordinateFollowsWalker(t *testing.T) {
	e := scanned(t, ModeFirstPerson)
	snap := e.Snapshot()

	assert.InDelta(t, 90, snap.Map.X, 1e-9)
	assert.InDelta(t, 126, snap.Map.Y, 1e-9)
	assert.Equal(t, "Dining", snap.Room)
	assert.Equal(t, 180.0, snap.MapSize)
}

func TestMapUsesFallbackBeforeScan(t *testing.T) {
	e := newEngine(t, ModeFirstPerson, nil)
	snap := e.Tick(0.016)

	assert.False(t, snap.BoundsKnown)
	assert.InDelta(t, 90, snap.Map.X, 1e-9)
	assert.InDelta(t, 150, snap.Map.Y, 1e-9)
}

func TestReplaceSceneRescans(t *testing.T) {
	e := scanned(t, ModeOrbit)

	e.ReplaceScene(scene.NewStatic(boxRoom(20, 3)))
	assert.False(t, e.Tick(0.016).BoundsKnown)

	snap := e.Tick(1.0)
	require.True(t, snap.BoundsKnown)
	assert.Equal(t, -20.0, snap.Bounds.Min.X)
}

type panicEvent struct{}

func (panicEvent) apply(*Engine) { panic("boom") }

func TestTickRecoversFromPanic(t *testing.T) {
	e := scanned(t, ModeOrbit)
	before := e.Snapshot()

	e.enqueue(panicEvent{})
	var snap Snapshot
	assert.NotPanics(t, func() { snap = e.Tick(0.016) })
	assert.Equal(t, before.Pose, snap.Pose)

	assert.NotPanics(t, func() { e.Tick(0.016) })
}

func TestCloseCancelsScanAndDropsInput(t *testing.T) {
	e := newEngine(t, ModeFirstPerson, scene.NewDeferred())
	e.KeyDown(KeyForward)

	e.Close()
	e.Close()
	assert.True(t, e.Closed())
	assert.Equal(t, bounds.ScanFailed, e.Snapshot().Scan)

	before := e.Snapshot()
	e.Pick(geometry.Vector3{})
	snap := e.Tick(1.0)
	assert.Equal(t, before, snap)
	assert.Equal(t, 0, snap.PendingCount)
}

func TestConcurrentInputIsSerialized(t *testing.T) {
	e := scanned(t, ModeFirstPerson)
	e.PointerLock(true)

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := Key((g + i) % 4)
				e.KeyDown(key)
				e.Look(1, 0)
				e.KeyUp(key)
			}
		}(g)
	}

	for i := 0; i < 200; i++ {
		snap := e.Tick(0.016)
		assert.InDelta(t, 1.7, snap.Pose.Position.Y, 1e-12)
		assert.GreaterOrEqual(t, snap.Pose.Position.X, -9.5)
		assert.LessOrEqual(t, snap.Pose.Position.X, 9.5)
	}
	wg.Wait()
}

func TestParseKeyAndMode(t *testing.T) {
	k, ok := ParseKey("W")
	assert.True(t, ok)
	assert.Equal(t, KeyForward, k)

	k, ok = ParseKey("ArrowLeft")
	assert.True(t, ok)
	assert.Equal(t, KeyLeft, k)

	_, ok = ParseKey("q")
	assert.False(t, ok)

	m, err := ParseMode("walk")
	assert.NoError(t, err)
	assert.Equal(t, ModeFirstPerson, m)
	_, err = ParseMode("fly")
	assert.Error(t, err)
	assert.Equal(t, "orbit", ModeOrbit.String())
}
