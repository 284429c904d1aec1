package measurement

import "fmt"

// Unit selects how distances are displayed
type Unit int

const (
	Meters Unit = iota
	Feet
)

func (u Unit) String() string {
	if u == Feet {
		return "ft"
	}
	return "m"
}

// Toggle switches between meters and feet
func (u Unit) Toggle() Unit {
	if u == Feet {
		return Meters
	}
	return Feet
}

// ParseUnit accepts "m", "meters", "ft" or "feet"
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "m", "meter", "meters":
		return Meters, nil
	case "ft", "foot", "feet":
		return Feet, nil
	}
	return Meters, fmt.Errorf("unknown unit %q", s)
}

// Value returns the distance in the given unit
func (m Measurement) Value(u Unit) float64 {
	if u == Feet {
		return m.Feet
	}
	return m.Meters
}

// Format renders the distance with two decimals, e.g. "3.50 m"
func Format(m Measurement, u Unit) string {
	return FormatDistance(m.Value(u), u)
}

// FormatDistance renders a distance already expressed in u
func FormatDistance(value float64, u Unit) string {
	return fmt.Sprintf("%.2f %s", value, u)
}
