package sandbox

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-sandbox/internal/registry"
	"github.com/vovakirdan/tui-sandbox/internal/scene"
)

// factory returns a registry.Factory that builds a Sim for def.
func factory(def *scene.Scene) registry.Factory {
	return func(env registry.Env) (registry.Scene, error) {
		sim, err := New(def, env)
		if err != nil {
			return nil, err
		}
		return sim, nil
	}
}

func info(def *scene.Scene) registry.SceneInfo {
	return registry.SceneInfo{ID: def.ID, Title: def.DisplayTitle(), Source: def.Source}
}

// RegisterDir adds every scene file found under dir to the registry.
// Files that fail to parse or whose id is already taken are skipped; the
// returned error lists them. The count is the number of scenes added.
func RegisterDir(dir string) (int, error) {
	scenes, loadErr := scene.NewLoader(dir).LoadAll()

	added := 0
	var errs []error
	if loadErr != nil {
		errs = append(errs, loadErr)
	}
	for _, def := range scenes {
		if err := registry.Add(info(def), factory(def)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", def.Source, err))
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}

// Register the built-in scenes with the registry
func init() {
	scenes, err := scene.Builtins()
	if err != nil {
		panic(fmt.Sprintf("sandbox: built-in scenes: %v", err))
	}
	for _, def := range scenes {
		registry.Register(info(def), factory(def))
	}
}
