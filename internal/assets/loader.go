// Package assets loads apartment models from disk into a scene graph.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/philipparndt/gowalk/pkg/openscad"
	"github.com/philipparndt/gowalk/pkg/scene"
	"github.com/philipparndt/gowalk/pkg/stl"
	"github.com/rs/zerolog"
)

// Options control how a model file is placed in the scene
type Options struct {
	// ZUp converts Z-up CAD exports to the Y-up scene convention
	ZUp bool
	// Scale is a uniform factor applied to the model; 0 means 1
	Scale float64
}

// Asset is a loaded model file
type Asset struct {
	Path  string
	Model *stl.Model
	Root  scene.Node
	// Sources lists every file the model was built from, for watching
	Sources []string
}

// IsOpenSCAD reports whether path is a parametric model
func IsOpenSCAD(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".scad")
}

// Load reads an STL file, or renders a SCAD file to STL first, and wraps
// the mesh in a scene graph
func Load(ctx context.Context, path string, opts Options, logger zerolog.Logger) (*Asset, error) {
	start := time.Now()
	ext := strings.ToLower(filepath.Ext(path))

	var (
		model   *stl.Model
		sources []string
		err     error
	)
	switch ext {
	case ".scad":
		model, sources, err = loadOpenSCAD(ctx, path, logger)
	case ".stl":
		model, err = stl.Parse(path)
		if err != nil {
			err = fmt.Errorf("failed to parse STL file: %w", err)
		}
		sources = []string{path}
	default:
		err = fmt.Errorf("unsupported file type: %s (expected .stl or .scad)", ext)
	}
	if err != nil {
		return nil, err
	}

	if opts.ZUp {
		for i, tri := range model.Triangles {
			model.Triangles[i] = zUpToYUp(tri)
		}
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	root := scene.NewGroupNode(name, scene.NewTransform(geometry.Vector3{}, opts.Scale),
		scene.NewMeshNode(name+"-mesh", scene.Identity(), model.Triangles))

	logger.Info().
		Str("file", path).
		Int("triangles", model.TriangleCount()).
		Dur("elapsed", time.Since(start)).
		Msg("Model loaded")

	return &Asset{Path: path, Model: model, Root: root, Sources: sources}, nil
}

func loadOpenSCAD(ctx context.Context, path string, logger zerolog.Logger) (*stl.Model, []string, error) {
	renderer := openscad.NewRenderer(filepath.Dir(path), logger)

	sources, err := renderer.ResolveDependencies(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve dependencies: %w", err)
	}

	tmp, err := os.CreateTemp("", "gowalk_*.stl")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := renderer.RenderToSTL(ctx, path, tmp.Name()); err != nil {
		return nil, nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
	}

	model, err := stl.Parse(tmp.Name())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse rendered STL: %w", err)
	}
	return model, sources, nil
}

// zUpToYUp maps (x, y, z) to (x, z, -y)
func zUpToYUp(tri geometry.Triangle) geometry.Triangle {
	swap := func(v geometry.Vector3) geometry.Vector3 {
		return geometry.Vector3{X: v.X, Y: v.Z, Z: -v.Y}
	}
	return geometry.NewTriangle(swap(tri.Normal), swap(tri.V1), swap(tri.V2), swap(tri.V3))
}

// Stream loads path in the background and publishes the root into the
// returned source when done. Until then the source reports no scene, which
// the bounds scanner retries. Load errors are sent on the channel, which is
// closed when loading finishes.
func Stream(ctx context.Context, path string, opts Options, logger zerolog.Logger) (*scene.Deferred, <-chan *Asset, <-chan error) {
	source := scene.NewDeferred()
	done := make(chan *Asset, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(done)
		defer close(errs)

		asset, err := Load(ctx, path, opts, logger)
		if err != nil {
			logger.Error().Err(err).Str("file", path).Msg("Model load failed")
			errs <- err
			return
		}
		source.Publish(asset.Root)
		done <- asset
	}()

	return source, done, errs
}
