// Package registry provides a global registry for scene factories.
// Built-in scenes register themselves in init() functions and scene files
// found on disk are added at startup, allowing the platform to discover and
// instantiate scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-sandbox/internal/config"
	"github.com/vovakirdan/tui-sandbox/internal/core"
)

// Scene is the interface every runnable sandbox scene implements.
// Scenes contain pure simulation logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Scene interface {
	// ID returns a unique identifier for this scene (e.g., "box").
	// Used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset respawns the body and clears run statistics.
	// The RuntimeConfig provides screen dimensions and the target frame rate.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by dt seconds.
	// Input is abstracted to platform-level actions (Jump, Pause, etc.).
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current simulation state.
	State() core.SimState
}

// Env is what a factory needs to build a scene for one session.
type Env struct {
	Settings *config.Settings
	Logger   *log.Logger
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID     string
	Title  string
	Source string // "builtin" or the file the scene was loaded from
}

// Factory creates a new instance of a scene.
type Factory func(env Env) (Scene, error)

type entry struct {
	info    SceneInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from an init() function.
// Panics if a scene with the same ID is already registered.
func Register(info SceneInfo, f Factory) {
	if err := Add(info, f); err != nil {
		panic(err.Error())
	}
}

// Add is Register for scenes discovered at runtime: a duplicate ID is
// returned as an error instead of a panic.
func Add(info SceneInfo, f Factory) error {
	mu.Lock()
	defer mu.Unlock()

	if info.ID == "" {
		return fmt.Errorf("registry: scene without id")
	}
	if existing, exists := entries[info.ID]; exists {
		return fmt.Errorf("registry: scene %q already registered from %s", info.ID, existing.info.Source)
	}

	entries[info.ID] = entry{info: info, factory: f}
	return nil
}

// Unregister removes a scene. Unknown IDs are ignored.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
// Returns an error if the scene ID is not registered or the factory fails.
func Create(id string, env Env) (Scene, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	s, err := e.factory(env)
	if err != nil {
		return nil, fmt.Errorf("registry: cannot build scene %q: %w", id, err)
	}
	return s, nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
