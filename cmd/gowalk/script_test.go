package main

import (
	"testing"

	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	steps, err := parseScript("W:0.5, wd:1,:1")
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, []engine.Key{engine.KeyForward}, steps[0].keys)
	assert.Equal(t, 0.5, steps[0].seconds)
	assert.Equal(t, []engine.Key{engine.KeyForward, engine.KeyRight}, steps[1].keys)
	assert.Empty(t, steps[2].keys)
	assert.Equal(t, 1.0, steps[2].seconds)
}

func TestParseScriptErrors(t *testing.T) {
	for _, script := range []string{"", "W", "W:x", "Q:1", "W:-1", "W:NaN", "W:Inf", "D:+Inf", ":-inf"} {
		_, err := parseScript(script)
		assert.Error(t, err, script)
	}
}

func TestParsePoints(t *testing.T) {
	points, err := parsePoints("0,0,0; 3, 0, 4;")
	require.NoError(t, err)
	assert.Equal(t, []geometry.Vector3{{}, {X: 3, Z: 4}}, points)

	_, err = parsePoints("1,2")
	assert.Error(t, err)
	_, err = parsePoints("1,2,z")
	assert.Error(t, err)
	_, err = parsePoints("1,NaN,3")
	assert.Error(t, err)
	_, err = parsePoints("Inf,0,0")
	assert.Error(t, err)
}
