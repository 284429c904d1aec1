package app

import (
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/gowalk/internal/assets"
	"github.com/philipparndt/gowalk/internal/measurement"
	"github.com/philipparndt/gowalk/pkg/watcher"
)

// ModelData holds the GPU copy of the scene
type ModelData struct {
	asset     *assets.Asset
	mesh      rl.Mesh
	hasMesh   bool
	material  rl.Material
	triangles int
	edges     [][2]rl.Vector3
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showWireframe bool
	showMinimap   bool
	showHelp      bool
	unit          measurement.Unit
}

// InteractionState holds mouse state for orbit drags and clicks
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	dragging     bool
}

// FileWatchState holds file watching and reload state
type FileWatchState struct {
	fileWatcher      *watcher.FileWatcher
	needsReload      atomic.Bool
	isLoading        bool
	loadingStartTime time.Time
	loaded           chan *assets.Asset
	initial          <-chan *assets.Asset
}

// UIState holds overlay resources
type UIState struct {
	font       rl.Font
	status     string
	statusTime time.Time
}
