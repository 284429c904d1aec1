package measurement

import (
	"testing"
	"time"

	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestTwoPointsMakeAMeasurement(t *testing.T) {
	e := NewEngine(zerolog.Nop(), nil)

	_, done := e.AddPoint(geometry.NewVector3(0, 0, 0))
	assert.False(t, done)
	assert.Equal(t, 1, e.PendingCount())
	pending, ok := e.Pending()
	require.True(t, ok)
	assert.Equal(t, geometry.Vector3{}, pending)

	m, done := e.AddPoint(geometry.NewVector3(3, 0, 4))
	require.True(t, done)
	assert.Equal(t, 0, e.PendingCount())
	assert.InDelta(t, 5.0, m.Meters, 1e-12)
	assert.InDelta(t, 16.4042, m.Feet, 1e-9)
	assert.Equal(t, geometry.NewVector3(1.5, 0, 2), m.Midpoint)
	assert.Len(t, e.Measurements(), 1)
}

func TestSamePointGivesZeroDistance(t *testing.T) {
	e := NewEngine(zerolog.Nop(), nil)
	p := geometry.NewVector3(1, 2, 3)
	e.AddPoint(p)
	m, done := e.AddPoint(p)

	require.True(t, done)
	assert.Equal(t, 0.0, m.Meters)
	assert.Equal(t, 0.0, m.Feet)
}

func TestFeetConversionHolds(t *testing.T) {
	e := NewEngine(zerolog.Nop(), nil)
	points := []geometry.Vector3{
		{X: 0, Y: 0, Z: 0}, {X: 1.2, Y: 3.4, Z: -5},
		{X: -7, Y: 2, Z: 9}, {X: 0.1, Y: 0.1, Z: 0.1},
	}
	for _, p := range points {
		e.AddPoint(p)
	}
	for _, m := range e.Measurements() {
		assert.InDelta(t, m.Meters*FeetPerMeter, m.Feet, 1e-12)
	}
}

func TestIDsAreStrictlyIncreasing(t *testing.T) {
	e := NewEngine(zerolog.Nop(), nil)
	e.now = fixedClock(1_700_000_000_000)

	for i := 0; i < 6; i++ {
		e.AddPoint(geometry.NewVector3(float64(i), 0, 0))
	}
	ms := e.Measurements()
	require.Len(t, ms, 3)
	assert.Equal(t, int64(1_700_000_000_000), ms[0].ID)
	assert.Equal(t, int64(1_700_000_000_001), ms[1].ID)
	assert.Equal(t, int64(1_700_000_000_002), ms[2].ID)
}

func TestUndoRemovesLastAndPending(t *testing.T) {
	e := NewEngine(zerolog.Nop(), nil)
	e.AddPoint(geometry.NewVector3(0, 0, 0))
	e.AddPoint(geometry.NewVector3(1, 0, 0))
	e.AddPoint(geometry.NewVector3(0, 0, 0))
	e.AddPoint(geometry.NewVector3(2, 0, 0))
	e.AddPoint(geometry.NewVector3(9, 9, 9))

	require.Equal(t, 2, e.Len())
	require.Equal(t, 1, e.PendingCount())

	assert.True(t, e.Undo())
	assert.Equal(t, 1, e.Len())
	assert.Equal(t, 0, e.PendingCount())
	assert.InDelta(t, 1.0, e.Measurements()[0].Meters, 1e-12)

	assert.True(t, e.Undo())
	assert.False(t, e.Undo())
}

func TestClear(t *testing.T) {
	e := NewEngine(zerolog.Nop(), nil)
	e.AddPoint(geometry.NewVector3(0, 0, 0))
	e.AddPoint(geometry.NewVector3(1, 0, 0))
	e.AddPoint(geometry.NewVector3(5, 0, 0))

	e.Clear()
	assert.Empty(t, e.Measurements())
	assert.Equal(t, 0, e.PendingCount())
	assert.Equal(t, 0.0, e.Total())
}

func TestMeasurementsReturnsCopy(t *testing.T) {
	e := NewEngine(zerolog.Nop(), nil)
	e.AddPoint(geometry.NewVector3(0, 0, 0))
	e.AddPoint(geometry.NewVector3(1, 0, 0))

	ms := e.Measurements()
	ms[0].Meters = 100
	assert.InDelta(t, 1.0, e.Measurements()[0].Meters, 1e-12)
}

func TestTotal(t *testing.T) {
	e := NewEngine(zerolog.Nop(), nil)
	e.AddPoint(geometry.NewVector3(0, 0, 0))
	e.AddPoint(geometry.NewVector3(2, 0, 0))
	e.AddPoint(geometry.NewVector3(0, 0, 0))
	e.AddPoint(geometry.NewVector3(0, 3, 0))

	assert.InDelta(t, 5.0, e.Total(), 1e-12)
}
