package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/philipparndt/gowalk/internal/engine"
	"github.com/philipparndt/gowalk/pkg/geometry"
)

// scriptStep holds a set of movement keys down for a number of seconds
type scriptStep struct {
	keys    []engine.Key
	seconds float64
}

// parseScript reads a walk script such as "W:0.5,WD:1,:1". Each step lists
// the held keys (W, A, S, D, none for idle) and a duration in seconds.
func parseScript(script string) ([]scriptStep, error) {
	var steps []scriptStep
	for _, part := range strings.Split(script, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		keys, duration, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("step %q: expected KEYS:SECONDS", part)
		}
		seconds, err := strconv.ParseFloat(duration, 64)
		if err != nil || seconds < 0 || math.IsInf(seconds, 0) || math.IsNaN(seconds) {
			return nil, fmt.Errorf("step %q: invalid duration %q", part, duration)
		}

		step := scriptStep{seconds: seconds}
		for _, r := range keys {
			key, ok := engine.ParseKey(string(r))
			if !ok {
				return nil, fmt.Errorf("step %q: unknown key %q", part, r)
			}
			step.keys = append(step.keys, key)
		}
		steps = append(steps, step)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("empty walk script")
	}
	return steps, nil
}

// parsePoints reads "x,y,z;x,y,z;..." into points
func parsePoints(s string) ([]geometry.Vector3, error) {
	var points []geometry.Vector3
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("point %q: expected x,y,z", part)
		}
		var xyz [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("point %q: %w", part, err)
			}
			if math.IsInf(v, 0) || math.IsNaN(v) {
				return nil, fmt.Errorf("point %q: coordinate %q is not finite", part, f)
			}
			xyz[i] = v
		}
		points = append(points, geometry.NewVector3(xyz[0], xyz[1], xyz[2]))
	}
	return points, nil
}
