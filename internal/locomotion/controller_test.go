package locomotion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/internal/camera"
	"github.com/philipparndt/gowalk/internal/collision"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 0.016

func room() *bounds.Volume {
	v := bounds.NewVolume(geometry.NewVector3(-10, 0, -10), geometry.NewVector3(10, 4, 10))
	return &v
}

func lockedController(probe collision.Probe) *Controller {
	c := New(DefaultSettings(), probe, zerolog.Nop())
	c.Lock()
	return c
}

func TestStepIsNoOpWhileUnlocked(t *testing.T) {
	c := New(DefaultSettings(), nil, zerolog.Nop())
	c.Press(Forward, true)
	pose := camera.Pose{Position: geometry.NewVector3(1, 2, 3)}

	next, moved := c.Step(pose, room(), frame)
	assert.False(t, moved)
	assert.Equal(t, pose, next)
	assert.Equal(t, Velocity{}, c.Velocity())
}

func TestStepIsNoOpWithoutBounds(t *testing.T) {
	c := lockedController(nil)
	c.Press(Forward, true)
	pose := camera.Pose{Position: geometry.NewVector3(1, 2, 3)}

	next, moved := c.Step(pose, nil, frame)
	assert.False(t, moved)
	assert.Equal(t, pose, next)
}

func TestFirstForwardTickFromRest(t *testing.T) {
	c := lockedController(nil)
	c.Press(Forward, true)
	pose := camera.Pose{Position: geometry.NewVector3(0, 1.7, 4)}

	next, moved := c.Step(pose, room(), frame)
	require.True(t, moved)
	assert.InDelta(t, -0.024, c.Velocity().Z, 1e-12)
	assert.InDelta(t, 0, c.Velocity().X, 1e-12)
	assert.InDelta(t, 3.976, next.Position.Z, 1e-12)
	assert.InDelta(t, 0, next.Position.X, 1e-12)
	assert.InDelta(t, 1.7, next.Position.Y, 1e-12)
}

func TestForwardFollowsYaw(t *testing.T) {
	c := lockedController(nil)
	c.Press(Forward, true)
	pose := camera.Pose{Position: geometry.NewVector3(0, 1.7, 0), Yaw: math.Pi / 2}

	next, _ := c.Step(pose, room(), frame)
	assert.InDelta(t, -0.024, c.Velocity().X, 1e-12)
	assert.InDelta(t, 0, c.Velocity().Z, 1e-12)
	assert.InDelta(t, -0.024, next.Position.X, 1e-12)
}

func TestDampingDecaysWithoutReversing(t *testing.T) {
	c := lockedController(nil)
	c.Press(Forward, true)
	pose := camera.Pose{Position: geometry.NewVector3(0, 1.7, 0)}
	for i := 0; i < 10; i++ {
		pose, _ = c.Step(pose, room(), frame)
	}
	c.Press(Forward, false)

	previous := c.Velocity().Magnitude()
	require.Greater(t, previous, 0.0)
	for i := 0; i < 300; i++ {
		pose, _ = c.Step(pose, room(), frame)
		v := c.Velocity()
		assert.LessOrEqual(t, v.Magnitude(), previous)
		assert.LessOrEqual(t, v.Z, 0.0, "damping alone must not reverse direction")
		previous = v.Magnitude()
	}
	assert.Less(t, previous, 1e-9)
}

func TestLongFrameDrainsVelocity(t *testing.T) {
	c := lockedController(nil)
	c.Press(Forward, true)
	pose := camera.Pose{Position: geometry.NewVector3(0, 1.7, 0)}
	pose, _ = c.Step(pose, room(), frame)
	c.Press(Forward, false)

	c.Step(pose, room(), 0.5)
	assert.Equal(t, Velocity{}, c.Velocity())
}

func TestPositionStaysInsideClampRegion(t *testing.T) {
	c := lockedController(nil)
	volume := room()
	rng := rand.New(rand.NewSource(7))
	pose := camera.Pose{Position: bounds.SpawnPose(*volume, 1.7)}

	for i := 0; i < 5000; i++ {
		if i%40 == 0 {
			c.ClearIntent()
			for _, dir := range []Direction{Forward, Backward, Left, Right} {
				c.Press(dir, rng.Intn(2) == 0)
			}
			pose.Yaw = rng.Float64() * 2 * math.Pi
		}
		pose, _ = c.Step(pose, volume, frame)

		assert.GreaterOrEqual(t, pose.Position.X, volume.Min.X+0.5)
		assert.LessOrEqual(t, pose.Position.X, volume.Max.X-0.5)
		assert.GreaterOrEqual(t, pose.Position.Z, volume.Min.Z+0.5)
		assert.LessOrEqual(t, pose.Position.Z, volume.Max.Z-0.5)
		assert.Equal(t, volume.Min.Y+1.7, pose.Position.Y)
	}
}

func TestEyeHeightIsForced(t *testing.T) {
	c := lockedController(nil)
	volume := bounds.NewVolume(geometry.NewVector3(-5, -2, -5), geometry.NewVector3(5, 3, 5))
	pose := camera.Pose{Position: geometry.NewVector3(0, 40, 0)}

	next, _ := c.Step(pose, &volume, frame)
	assert.InDelta(t, -0.3, next.Position.Y, 1e-12)
}

func TestNarrowAxisCollapsesToCenter(t *testing.T) {
	c := lockedController(nil)
	volume := bounds.NewVolume(geometry.NewVector3(0, 0, -10), geometry.NewVector3(0.6, 3, 10))
	pose := camera.Pose{Position: geometry.NewVector3(5, 1.7, 0)}

	next, _ := c.Step(pose, &volume, frame)
	assert.InDelta(t, 0.3, next.Position.X, 1e-12)
}

func TestBlockedEverywhereHoldsPosition(t *testing.T) {
	wall := collision.ProbeFunc(func(geometry.Vector3, geometry.Vector3, float64) bool { return true })
	c := lockedController(wall)
	c.Press(Forward, true)
	pose := camera.Pose{Position: geometry.NewVector3(1, 1.7, 2)}

	for i := 0; i < 20; i++ {
		pose, _ = c.Step(pose, room(), frame)
	}
	assert.Equal(t, geometry.NewVector3(1, 1.7, 2), pose.Position)
}

func TestProbeUsesLookahead(t *testing.T) {
	var distances []float64
	probe := collision.ProbeFunc(func(_ geometry.Vector3, _ geometry.Vector3, maxDistance float64) bool {
		distances = append(distances, maxDistance)
		return false
	})
	c := lockedController(probe)
	c.Press(Forward, true)
	c.Step(camera.Pose{Position: geometry.NewVector3(0, 1.7, 0)}, room(), frame)

	assert.Equal(t, []float64{0.8}, distances)
}

func TestNoProbeWhenStationary(t *testing.T) {
	calls := 0
	probe := collision.ProbeFunc(func(geometry.Vector3, geometry.Vector3, float64) bool {
		calls++
		return false
	})
	c := lockedController(probe)
	c.Step(camera.Pose{Position: geometry.NewVector3(0, 1.7, 0)}, room(), frame)

	assert.Zero(t, calls)
}

// A blocked diagonal keeps only the clear axis component, so sliding along a
// wall is slower than walking straight. This is the expected behavior.
func TestBlockedDiagonalSlidesAlongClearAxisOnly(t *testing.T) {
	wallAhead := collision.ProbeFunc(func(_ geometry.Vector3, dir geometry.Vector3, _ float64) bool {
		return dir.Z < -1e-9
	})
	c := lockedController(wallAhead)
	c.Press(Forward, true)
	c.Press(Right, true)
	pose := camera.Pose{Position: geometry.NewVector3(0, 1.7, 0)}

	next, _ := c.Step(pose, room(), frame)

	component := 1.5 * frame / math.Sqrt2
	assert.InDelta(t, component, next.Position.X, 1e-12)
	assert.Equal(t, 0.0, next.Position.Z)
	assert.Less(t, next.Position.X, 1.5*frame, "slide is not re-blended to full speed")
}

func TestPanickingProbeAllowsMovement(t *testing.T) {
	broken := collision.ProbeFunc(func(geometry.Vector3, geometry.Vector3, float64) bool {
		panic("intersection failed")
	})
	c := lockedController(broken)
	c.Press(Forward, true)

	var next camera.Pose
	assert.NotPanics(t, func() {
		next, _ = c.Step(camera.Pose{Position: geometry.NewVector3(0, 1.7, 0)}, room(), frame)
	})
	assert.InDelta(t, -0.024, next.Position.Z, 1e-12)
}

func TestLookAppliesOnlyWhileLocked(t *testing.T) {
	c := New(DefaultSettings(), nil, zerolog.Nop())
	c.Look(100, 50)
	c.Lock()
	next, _ := c.Step(camera.Pose{}, room(), frame)
	assert.Equal(t, 0.0, next.Yaw)
	assert.Equal(t, 0.0, next.Pitch)

	c.Look(100, 50)
	next, _ = c.Step(next, room(), frame)
	assert.InDelta(t, -0.2, next.Yaw, 1e-12)
	assert.InDelta(t, -0.1, next.Pitch, 1e-12)
}

func TestUnlockDropsPendingLook(t *testing.T) {
	c := lockedController(nil)
	c.Look(100, 0)
	c.Unlock()
	c.Lock()

	next, _ := c.Step(camera.Pose{}, room(), frame)
	assert.Equal(t, 0.0, next.Yaw)
}

func TestPitchIsClamped(t *testing.T) {
	c := lockedController(nil)
	c.Look(0, -100000)
	next, _ := c.Step(camera.Pose{}, room(), frame)
	assert.InDelta(t, math.Pi/2-0.01, next.Pitch, 1e-12)

	c.Look(0, 100000)
	next, _ = c.Step(next, room(), frame)
	assert.InDelta(t, -(math.Pi/2 - 0.01), next.Pitch, 1e-12)
}

func TestPitchDoesNotTiltMovement(t *testing.T) {
	c := lockedController(nil)
	c.Press(Forward, true)
	pose := camera.Pose{Position: geometry.NewVector3(0, 1.7, 0), Pitch: 1.2}

	next, _ := c.Step(pose, room(), frame)
	assert.InDelta(t, -0.024, next.Position.Z, 1e-12)
	assert.InDelta(t, 1.7, next.Position.Y, 1e-12)
}

func TestResetStopsMotion(t *testing.T) {
	c := lockedController(nil)
	c.Press(Left, true)
	c.Step(camera.Pose{}, room(), frame)
	require.NotZero(t, c.Velocity().X)

	c.Reset()
	assert.Equal(t, Velocity{}, c.Velocity())
	assert.False(t, c.Intent().Any())
}
