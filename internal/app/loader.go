package app

import (
	"context"
	"fmt"
	"time"

	"github.com/philipparndt/gowalk/internal/assets"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/philipparndt/gowalk/pkg/watcher"
)

// setupFileWatcher watches every file the asset was built from
func (app *App) setupFileWatcher(ctx context.Context, asset *assets.Asset) error {
	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	callback := func(changedFile string) {
		app.logger.Info().Str("file", changedFile).Msg("Model source changed")
		app.FileWatch.needsReload.Store(true)
	}

	if err := fw.Watch(asset.Sources, callback); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start(ctx)
	app.FileWatch.fileWatcher = fw
	app.logger.Info().Strs("files", asset.Sources).Msg("Watching for changes")
	return nil
}

func (app *App) stopWatching() {
	if app.FileWatch.fileWatcher != nil {
		app.FileWatch.fileWatcher.Close()
	}
}

// reloadModel loads the model again in the background
func (app *App) reloadModel(ctx context.Context) {
	if app.FileWatch.isLoading {
		return
	}

	app.FileWatch.isLoading = true
	app.FileWatch.loadingStartTime = time.Now()
	app.logger.Info().Msg("Reloading model")

	// The mesh upload must happen on the main thread
	go func() {
		asset, err := assets.Load(ctx, app.opts.File, app.opts.Asset, app.opts.Logger)
		if err != nil {
			app.logger.Error().Err(err).Msg("Reload failed")
			app.FileWatch.loaded <- nil
			return
		}
		app.FileWatch.loaded <- asset
	}()
}

// applyLoadedModel hands a finished load to the engine and the GPU.
// Must be called on the main thread.
func (app *App) applyLoadedModel(ctx context.Context) {
	var (
		asset   *assets.Asset
		initial bool
	)
	select {
	case a, ok := <-app.FileWatch.initial:
		if !ok {
			app.FileWatch.initial = nil
			return
		}
		asset, initial = a, true
	case asset = <-app.FileWatch.loaded:
		if asset == nil {
			app.FileWatch.isLoading = false
			app.setStatus("Reload failed, keeping previous model")
			return
		}
	default:
		return
	}

	app.Model.asset = asset
	app.uploadScene(asset.Root)

	if initial {
		// The engine already scans the streamed source
		if err := app.setupFileWatcher(ctx, asset); err != nil {
			app.logger.Warn().Err(err).Msg("Auto-reload will not be available")
		}
	} else {
		app.engine.ReplaceScene(scene.NewStatic(asset.Root))
	}

	elapsed := time.Since(app.FileWatch.loadingStartTime)
	app.logger.Info().
		Int("triangles", app.Model.triangles).
		Dur("elapsed", elapsed).
		Msg("Model ready")
	app.setStatus(fmt.Sprintf("Loaded in %.2fs", elapsed.Seconds()))
	app.FileWatch.isLoading = false
}
