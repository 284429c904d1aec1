// Package openscad turns parametric apartment models into STL meshes by
// running the openscad binary, and finds the files a model depends on so
// they can be watched for changes.
package openscad

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrNotInstalled is returned when the openscad binary is not on PATH
var ErrNotInstalled = errors.New("openscad not found in PATH, install it from https://openscad.org/")

// Binary is the executable looked up on PATH
var Binary = "openscad"

// importRegex matches "use <file>" and "include <file>" statements
var importRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer renders .scad models found relative to workDir
type Renderer struct {
	workDir string
	logger  zerolog.Logger
}

func NewRenderer(workDir string, logger zerolog.Logger) *Renderer {
	return &Renderer{workDir: workDir, logger: logger}
}

// RenderToSTL writes the mesh of scadFile to outputFile. The openscad
// process is killed when ctx is cancelled.
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	if _, err := exec.LookPath(Binary); err != nil {
		return ErrNotInstalled
	}
	input := scadFile
	if !filepath.IsAbs(input) {
		input = filepath.Join(r.workDir, input)
	}

	start := time.Now()
	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, Binary, "-o", outputFile, input)
	cmd.Dir = r.workDir
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(output.String()); msg != "" {
			return fmt.Errorf("failed to render %s: %w: %s", scadFile, err, msg)
		}
		return fmt.Errorf("failed to render %s: %w", scadFile, err)
	}

	r.logger.Info().
		Str("file", scadFile).
		Dur("elapsed", time.Since(start)).
		Msg("Rendered OpenSCAD model")
	return nil
}

// ResolveDependencies returns scadFile followed by every file it pulls in
// through use or include, depth first, each listed once.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	root := scadFile
	if !filepath.IsAbs(root) {
		root = filepath.Join(r.workDir, root)
	}

	seen := make(map[string]bool)
	var files []string
	var visit func(path string) error
	visit = func(path string) error {
		if seen[path] {
			return nil
		}
		seen[path] = true
		files = append(files, path)

		refs, err := r.references(path)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			if err := visit(ref); err != nil {
				return err
			}
		}
		return nil
	}

	if err := visit(filepath.Clean(root)); err != nil {
		return nil, err
	}
	return files, nil
}

// references lists the files named by use and include statements in path.
// Commented-out lines are skipped.
func (r *Renderer) references(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	dir := filepath.Dir(path)
	var refs []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := importRegex.FindStringSubmatch(line); m != nil {
			refs = append(refs, r.locate(m[1], dir))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return refs, nil
}

// locate resolves ref against the referencing file's directory, falling
// back to the work directory for library-style paths that do not exist there.
func (r *Renderer) locate(ref, dir string) string {
	local := filepath.Join(dir, ref)
	if strings.HasPrefix(ref, "./") || strings.HasPrefix(ref, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Join(r.workDir, ref)
}
