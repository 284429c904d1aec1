package transition

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/philipparndt/gowalk/pkg/geometry"
	"github.com/philipparndt/gowalk/pkg/watcher"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// DefaultKey is the overview viewpoint used for unknown room keys
const DefaultKey = "default"

// Viewpoint is a named orbit camera placement for one room
type Viewpoint struct {
	Key   string
	Name  string
	Frame Frame
}

var builtin = []Viewpoint{
	{Key: DefaultKey, Name: "Overview", Frame: Frame{
		Position: geometry.NewVector3(18, 12, 18),
		Target:   geometry.NewVector3(0, 0, 0),
	}},
	{Key: "livingRoom", Name: "Living Room", Frame: Frame{
		Position: geometry.NewVector3(6, 5, 9),
		Target:   geometry.NewVector3(3, 1, 3),
	}},
	{Key: "bedroom", Name: "Bedroom", Frame: Frame{
		Position: geometry.NewVector3(-6, 5, 9),
		Target:   geometry.NewVector3(-3, 1.5, 3),
	}},
	{Key: "kitchen", Name: "Kitchen", Frame: Frame{
		Position: geometry.NewVector3(6, 5, -9),
		Target:   geometry.NewVector3(3, 1.5, -3),
	}},
	{Key: "balcony", Name: "Balcony", Frame: Frame{
		Position: geometry.NewVector3(-6, 4, -9),
		Target:   geometry.NewVector3(-3, 1, -3),
	}},
}

// Table maps room keys to viewpoints. It is safe for concurrent use so a
// file watcher can reload it while the engine reads it.
type Table struct {
	mu      sync.RWMutex
	entries map[string]Viewpoint
	order   []string
}

// DefaultTable returns the built-in apartment viewpoints
func DefaultTable() *Table {
	t := &Table{}
	t.reset()
	return t
}

func (t *Table) reset() {
	t.entries = make(map[string]Viewpoint, len(builtin))
	t.order = t.order[:0]
	for _, vp := range builtin {
		t.entries[vp.Key] = vp
		t.order = append(t.order, vp.Key)
	}
}

// Lookup returns the viewpoint for key, falling back to the overview.
// The returned Key is the one actually used.
func (t *Table) Lookup(key string) Viewpoint {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if vp, ok := t.entries[key]; ok {
		return vp
	}
	return t.entries[DefaultKey]
}

// Has reports whether key names a viewpoint
func (t *Table) Has(key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.entries[key]
	return ok
}

// All returns the viewpoints in table order
func (t *Table) All() []Viewpoint {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Viewpoint, 0, len(t.order))
	for _, key := range t.order {
		out = append(out, t.entries[key])
	}
	return out
}

type vector [3]float64

func (v vector) toVector3() geometry.Vector3 {
	return geometry.NewVector3(v[0], v[1], v[2])
}

type viewpointEntry struct {
	Name     string  `yaml:"name"`
	Position *vector `yaml:"position"`
	Target   *vector `yaml:"target"`
}

type viewpointFile struct {
	Viewpoints map[string]viewpointEntry `yaml:"viewpoints"`
}

// Parse decodes a viewpoint document. Entries override built-ins with the
// same key; new keys are appended in sorted order.
func Parse(data []byte) ([]Viewpoint, error) {
	var file viewpointFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse viewpoints: %w", err)
	}

	keys := make([]string, 0, len(file.Viewpoints))
	for key := range file.Viewpoints {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]Viewpoint, 0, len(keys))
	for _, key := range keys {
		entry := file.Viewpoints[key]
		if entry.Position == nil || entry.Target == nil {
			return nil, fmt.Errorf("viewpoint %q needs both position and target", key)
		}
		name := entry.Name
		if name == "" {
			name = key
		}
		out = append(out, Viewpoint{
			Key:  key,
			Name: name,
			Frame: Frame{
				Position: entry.Position.toVector3(),
				Target:   entry.Target.toVector3(),
			},
		})
	}
	return out, nil
}

// Apply resets the table to the built-ins and merges viewpoints on top
func (t *Table) Apply(viewpoints []Viewpoint) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.reset()
	for _, vp := range viewpoints {
		if _, exists := t.entries[vp.Key]; !exists {
			t.order = append(t.order, vp.Key)
		}
		t.entries[vp.Key] = vp
	}
}

// LoadFile reads path and applies it. On error the table is unchanged.
func (t *Table) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read viewpoints %s: %w", path, err)
	}
	viewpoints, err := Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	t.Apply(viewpoints)
	return nil
}

// Watch loads path and reloads it whenever it changes until ctx is done.
// A broken edit keeps the previous table and is logged.
func (t *Table) Watch(ctx context.Context, path string, logger zerolog.Logger) (*watcher.FileWatcher, error) {
	if err := t.LoadFile(path); err != nil {
		return nil, err
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, logger)
	if err != nil {
		return nil, err
	}
	err = fw.Watch([]string{path}, func(changed string) {
		if err := t.LoadFile(changed); err != nil {
			logger.Error().Err(err).Msg("Keeping previous viewpoints")
			return
		}
		logger.Info().Str("file", changed).Int("viewpoints", len(t.All())).Msg("Viewpoints reloaded")
	})
	if err != nil {
		fw.Close()
		return nil, err
	}

	fw.Start(ctx)
	go func() {
		<-ctx.Done()
		fw.Close()
	}()
	return fw, nil
}
