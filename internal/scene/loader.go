package scene

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Builtins returns the scenes shipped with the binary, sorted by ID.
func Builtins() ([]*Scene, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("scene: cannot list built-in scenes: %w", err)
	}

	var scenes []*Scene
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("builtin", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("scene: cannot read built-in %s: %w", e.Name(), err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("built-in %s: %w", e.Name(), err)
		}
		s.Source = "builtin"
		scenes = append(scenes, s)
	}

	sortByID(scenes)
	return scenes, nil
}

// Loader handles loading scenes from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scene loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scene files, sorted by ID.
// Files that fail to load are skipped; their errors are joined into the
// returned error alongside the scenes that did load.
func (l *Loader) LoadAll() ([]*Scene, error) {
	var (
		scenes  []*Scene
		skipped []error
	)

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSceneFile(p) {
			return nil
		}

		s, err := l.LoadFile(p)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		scenes = append(scenes, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scene: walking directory %s: %w", l.Root, err)
	}

	sortByID(scenes)
	return scenes, errors.Join(skipped...)
}

// LoadFile loads a single scene file.
func (l *Loader) LoadFile(p string) (*Scene, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("scene: reading file %s: %w", p, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	s.Source = p
	return s, nil
}

// LoadByID loads the scene with the given ID from the directory.
func (l *Loader) LoadByID(id string) (*Scene, error) {
	scenes, _ := l.LoadAll()
	for _, s := range scenes {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("scene: %q not found in %s", id, l.Root)
}

func isSceneFile(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func sortByID(scenes []*Scene) {
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
}
