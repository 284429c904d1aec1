package minimap

import (
	"math"
	"testing"

	"github.com/philipparndt/gowalk/internal/bounds"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apartment() bounds.Volume {
	return bounds.NewVolume(geometry.NewVector3(-10, 0, -10), geometry.NewVector3(10, 3, 10))
}

func TestProjectCorners(t *testing.T) {
	v := apartment()

	c := Project(v.Min, 0, v, DefaultSize)
	assert.Equal(t, 0.0, c.X)
	assert.Equal(t, 0.0, c.Y)

	c = Project(v.Max, 0, v, DefaultSize)
	assert.Equal(t, DefaultSize, c.X)
	assert.Equal(t, DefaultSize, c.Y)

	c = Project(v.Center, 0, v, DefaultSize)
	assert.InDelta(t, 90, c.X, 1e-12)
	assert.InDelta(t, 90, c.Y, 1e-12)
}

func TestProjectPassesYawThrough(t *testing.T) {
	c := Project(geometry.Vector3{}, 1.25, apartment(), DefaultSize)
	assert.Equal(t, 1.25, c.Yaw)
}

func TestProjectIgnoresHeight(t *testing.T) {
	v := apartment()
	low := Project(geometry.NewVector3(2, 0, 3), 0, v, DefaultSize)
	high := Project(geometry.NewVector3(2, 50, 3), 0, v, DefaultSize)
	assert.Equal(t, low, high)
}

func TestProjectDoesNotClamp(t *testing.T) {
	c := Project(geometry.NewVector3(20, 0, -20), 0, apartment(), DefaultSize)
	assert.InDelta(t, 270, c.X, 1e-12)
	assert.InDelta(t, -90, c.Y, 1e-12)
}

func TestProjectZeroWidthAxis(t *testing.T) {
	flat := bounds.NewVolume(geometry.NewVector3(4, 0, -10), geometry.NewVector3(4, 3, 10))
	c := Project(geometry.NewVector3(4, 0, 10), 0, flat, DefaultSize)

	assert.Equal(t, 90.0, c.X)
	assert.Equal(t, 180.0, c.Y)
	assert.False(t, math.IsNaN(c.X))
}

func TestProjectIsMonotonic(t *testing.T) {
	v := apartment()
	previous := math.Inf(-1)
	for x := -10.0; x <= 10; x += 0.5 {
		c := Project(geometry.NewVector3(x, 0, 0), 0, v, DefaultSize)
		assert.Greater(t, c.X, previous)
		previous = c.X
	}
}

func TestDefaultFloorPlanRooms(t *testing.T) {
	plan := DefaultFloorPlan()
	rooms := plan.Rooms()
	require.Len(t, rooms, 8)

	tests := []struct {
		x, y float64
		want string
	}{
		{40, 40, "BR1"},
		{95, 50, "Living"},
		{145, 40, "Master"},
		{40, 90, "BR2"},
		{40, 140, "Kitchen"},
		{95, 130, "Dining"},
		{172, 30, "Bal1"},
		{172, 150, "Bal2"},
	}
	for _, tt := range tests {
		got, ok := plan.RoomAt(Coordinate{X: tt.x, Y: tt.y}, DefaultSize)
		assert.True(t, ok, tt.want)
		assert.Equal(t, tt.want, got)
	}
}

func TestRoomAtOutsidePlan(t *testing.T) {
	plan := DefaultFloorPlan()
	_, ok := plan.RoomAt(Coordinate{X: 5, Y: 5}, DefaultSize)
	assert.False(t, ok)

	_, ok = plan.RoomAt(Coordinate{X: 145, Y: 120}, DefaultSize)
	assert.False(t, ok, "gap between master bedroom and second balcony")

	_, ok = plan.RoomAt(Coordinate{X: math.NaN(), Y: 40}, DefaultSize)
	assert.False(t, ok, "non-finite coordinate")

	var none *FloorPlan
	_, ok = none.RoomAt(Coordinate{X: 40, Y: 40}, DefaultSize)
	assert.False(t, ok)
}

func TestRoomAtRescalesMap(t *testing.T) {
	plan := DefaultFloorPlan()
	got, ok := plan.RoomAt(Coordinate{X: 80, Y: 80}, 360)
	require.True(t, ok)
	assert.Equal(t, "BR1", got)
}

func TestRoomGeometry(t *testing.T) {
	living := DefaultFloorPlan().Rooms()[1]
	assert.Equal(t, "Living", living.Label)
	assert.InDelta(t, 60*70, living.Area(), 1e-9)

	x, y := living.LabelAnchor()
	assert.InDelta(t, 95, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
}

func TestNewFloorPlanRejectsBadInput(t *testing.T) {
	_, err := NewFloorPlan(DefaultSize, []string{"a"}, nil)
	assert.Error(t, err)

	_, err = NewFloorPlan(DefaultSize, []string{"a"}, []Rect{{0, 0, 0, 10}})
	assert.ErrorContains(t, err, "empty outline")
}

func TestFloorPlanFromProjection(t *testing.T) {
	v := apartment()
	// World center lands at (90, 90), below the living area
	c := Project(v.Center, 0, v, DefaultSize)
	got, ok := DefaultFloorPlan().RoomAt(c, DefaultSize)
	require.True(t, ok)
	assert.Equal(t, "Dining", got)
}
