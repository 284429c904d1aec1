package locomotion

import (
	"math"

	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/internal/camera"
	"github.com/philipparndt/gowalk/internal/collision"
	"github.com/philipparndt/gowalk/internal/config"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/rs/zerolog"
)

// maxPitch keeps the view just short of straight up or down
const maxPitch = math.Pi/2 - 0.01

// Settings are the walking constants
type Settings struct {
	Speed           float64 // acceleration towards intent, units/s
	Damping         float64 // exponential velocity decay rate, 1/s
	Lookahead       float64 // collision probe distance
	Buffer          float64 // inset from the scene bounds
	EyeHeight       float64 // camera height above the floor
	LookSensitivity float64 // radians per pointer pixel
}

// DefaultSettings is a slow walking pace through an apartment
func DefaultSettings() Settings {
	return Settings{
		Speed:           1.5,
		Damping:         8.0,
		Lookahead:       0.8,
		Buffer:          0.5,
		EyeHeight:       1.7,
		LookSensitivity: 0.002,
	}
}

// SettingsFromConfig copies the locomotion section of the config
func SettingsFromConfig(c config.Locomotion) Settings {
	return Settings{
		Speed:           c.Speed,
		Damping:         c.Damping,
		Lookahead:       c.Lookahead,
		Buffer:          c.Buffer,
		EyeHeight:       c.EyeHeight,
		LookSensitivity: c.LookSensitivity,
	}
}

// Controller is the first-person walking state machine. While Unlocked
// (pointer not captured) it ignores all movement.
type Controller struct {
	settings Settings
	probe    collision.Probe
	logger   zerolog.Logger

	locked   bool
	intent   MoveIntent
	velocity Velocity
	lookX    float64
	lookY    float64
}

// New creates an unlocked controller. A nil probe never blocks.
func New(settings Settings, probe collision.Probe, logger zerolog.Logger) *Controller {
	if probe == nil {
		probe = collision.Open
	}
	return &Controller{
		settings: settings,
		probe:    probe,
		logger:   logger,
	}
}

// Settings returns the walking constants
func (c *Controller) Settings() Settings { return c.settings }

// SetProbe replaces the collision probe, e.g. after a scene reload
func (c *Controller) SetProbe(probe collision.Probe) {
	if probe == nil {
		probe = collision.Open
	}
	c.probe = probe
}

// Lock is called when the pointer is captured
func (c *Controller) Lock() {
	c.locked = true
}

// Unlock is called when the pointer is released. Pending look input is dropped.
func (c *Controller) Unlock() {
	c.locked = false
	c.lookX, c.lookY = 0, 0
}

// Locked reports whether movement is active
func (c *Controller) Locked() bool { return c.locked }

// Press records a key-down or key-up for one direction
func (c *Controller) Press(dir Direction, pressed bool) {
	c.intent.Set(dir, pressed)
}

// Intent returns the current movement flags
func (c *Controller) Intent() MoveIntent { return c.intent }

// ClearIntent releases all directions
func (c *Controller) ClearIntent() {
	c.intent = MoveIntent{}
}

// Look accumulates pointer movement in pixels. It is ignored while unlocked.
func (c *Controller) Look(dx, dy float64) {
	if !c.locked {
		return
	}
	c.lookX += dx
	c.lookY += dy
}

// Velocity returns the current horizontal velocity
func (c *Controller) Velocity() Velocity { return c.velocity }

// Reset stops all motion
func (c *Controller) Reset() {
	c.velocity = Velocity{}
	c.intent = MoveIntent{}
	c.lookX, c.lookY = 0, 0
}

// Step advances the walk by dt seconds and returns the new pose. It is a
// no-op, returning pose unchanged and false, while unlocked or before the
// scene bounds are known.
func (c *Controller) Step(pose camera.Pose, volume *bounds.Volume, dt float64) (camera.Pose, bool) {
	if !c.locked || volume == nil {
		return pose, false
	}

	pose = c.applyLook(pose)

	// Intent in world space, yaw only so walking stays horizontal
	intent := c.intent.Vector().RotateY(pose.Yaw)

	// Exponential damping; the factor is floored at zero so a long frame
	// drains velocity instead of reversing it.
	decay := math.Max(0, 1-c.settings.Damping*dt)
	c.velocity.X *= decay
	c.velocity.Z *= decay

	c.velocity.X += intent.X * c.settings.Speed * dt
	c.velocity.Z += intent.Z * c.settings.Speed * dt

	origin := pose.Position
	next := origin
	move := geometry.Vector3{X: c.velocity.X, Z: c.velocity.Z}

	if !move.IsZero() {
		if !c.blocked(origin, move.Normalize()) {
			next.X += c.velocity.X
			next.Z += c.velocity.Z
		} else {
			// Wall sliding: each axis is tested on its own and applied only
			// if clear. The diagonal magnitude is not re-blended.
			if c.velocity.X != 0 && !c.blocked(origin, geometry.Vector3{X: math.Copysign(1, c.velocity.X)}) {
				next.X += c.velocity.X
			}
			if c.velocity.Z != 0 && !c.blocked(origin, geometry.Vector3{Z: math.Copysign(1, c.velocity.Z)}) {
				next.Z += c.velocity.Z
			}
		}
	}

	next.X = clampAxis(next.X, volume.Min.X, volume.Max.X, c.settings.Buffer)
	next.Z = clampAxis(next.Z, volume.Min.Z, volume.Max.Z, c.settings.Buffer)
	next.Y = volume.Min.Y + c.settings.EyeHeight

	pose.Position = next
	return pose, true
}

func (c *Controller) applyLook(pose camera.Pose) camera.Pose {
	if c.lookX == 0 && c.lookY == 0 {
		return pose
	}
	pose.Yaw -= c.lookX * c.settings.LookSensitivity
	pose.Pitch -= c.lookY * c.settings.LookSensitivity
	pose.Pitch = math.Max(-maxPitch, math.Min(maxPitch, pose.Pitch))
	c.lookX, c.lookY = 0, 0
	return pose
}

// blocked queries the probe and treats a failing probe as open
func (c *Controller) blocked(origin, dir geometry.Vector3) (hit bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Msg("Collision probe failed, allowing movement")
			hit = false
		}
	}()
	return c.probe.Blocked(origin, dir, c.settings.Lookahead)
}

// clampAxis keeps value inside [min+buffer, max-buffer]. An axis narrower
// than twice the buffer collapses to its center.
func clampAxis(value, min, max, buffer float64) float64 {
	lo, hi := min+buffer, max-buffer
	if lo > hi {
		return (min + max) / 2
	}
	return math.Max(lo, math.Min(hi, value))
}
