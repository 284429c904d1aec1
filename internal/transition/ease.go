package transition

// EaseOutCubic decelerates towards the end: 1 - (1 - t)^3.
// Input is clamped to [0, 1] and EaseOutCubic(1) is exactly 1.
func EaseOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	inv := 1 - t
	return 1 - inv*inv*inv
}
