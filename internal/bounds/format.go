package bounds

import (
	"fmt"

	"github.com/philipparndt/gowalk/pkg/geometry"
)

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
