package locomotion

import (
	"math"
	"testing"

	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/stretchr/testify/assert"
)

func TestIntentVectorAxes(t *testing.T) {
	tests := []struct {
		name   string
		intent MoveIntent
		want   geometry.Vector3
	}{
		{"none", MoveIntent{}, geometry.Vector3{}},
		{"forward", MoveIntent{Forward: true}, geometry.NewVector3(0, 0, -1)},
		{"backward", MoveIntent{Backward: true}, geometry.NewVector3(0, 0, 1)},
		{"left", MoveIntent{Left: true}, geometry.NewVector3(-1, 0, 0)},
		{"right", MoveIntent{Right: true}, geometry.NewVector3(1, 0, 0)},
		{"opposed", MoveIntent{Forward: true, Backward: true}, geometry.Vector3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.intent.Vector())
		})
	}
}

func TestDiagonalIntentIsNormalized(t *testing.T) {
	v := MoveIntent{Forward: true, Left: true}.Vector()
	assert.InDelta(t, 1.0, v.Length(), 1e-12)
	assert.InDelta(t, -1/math.Sqrt2, v.X, 1e-12)
	assert.InDelta(t, -1/math.Sqrt2, v.Z, 1e-12)
}

func TestIntentSet(t *testing.T) {
	var m MoveIntent
	m.Set(Right, true)
	m.Set(Backward, true)
	m.Set(Right, false)

	assert.Equal(t, MoveIntent{Backward: true}, m)
	assert.True(t, m.Any())
	assert.Equal(t, "backward", Backward.String())
}
