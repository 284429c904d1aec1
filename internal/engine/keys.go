package engine

import (
	"strings"

	"github.com/philipparndt/gowalk/internal/locomotion"
)

// Key is one of the four movement keys, independent of the host toolkit
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	dir, ok := k.direction()
	if !ok {
		return "unknown"
	}
	return dir.String()
}

// direction maps k to its movement intent; ok is false for unknown keys
func (k Key) direction() (dir locomotion.Direction, ok bool) {
	switch k {
	case KeyForward:
		return locomotion.Forward, true
	case KeyBackward:
		return locomotion.Backward, true
	case KeyLeft:
		return locomotion.Left, true
	case KeyRight:
		return locomotion.Right, true
	default:
		return 0, false
	}
}

var keyNames = map[string]Key{
	"w":          KeyForward,
	"up":         KeyForward,
	"arrowup":    KeyForward,
	"s":          KeyBackward,
	"down":       KeyBackward,
	"arrowdown":  KeyBackward,
	"a":          KeyLeft,
	"left":       KeyLeft,
	"arrowleft":  KeyLeft,
	"d":          KeyRight,
	"right":      KeyRight,
	"arrowright": KeyRight,
}

// ParseKey maps WASD and arrow key names (case-insensitive) to a Key
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}
