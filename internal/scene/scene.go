// Package scene defines sandbox scenes: the spawn area of the body and the
// static barriers and labels around it. Scenes are YAML documents; a few are
// built in and more can be loaded from a directory.
package scene

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sandbox/internal/core"
	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// Vec is a point in virtual units. In YAML it is written either as a
// two-element list [x, y] or as a mapping {x: .., y: ..}.
type Vec struct {
	X, Y float64
}

// Point converts to the physics type.
func (v Vec) Point() physics.Point {
	return physics.Point{X: v.X, Y: v.Y}
}

// UnmarshalYAML accepts [x, y] and {x, y}.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xy []float64
		if err := node.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: point needs 2 coordinates, got %d", node.Line, len(xy))
		}
		v.X, v.Y = xy[0], xy[1]
		return nil
	case yaml.MappingNode:
		var m struct {
			X float64 `yaml:"x"`
			Y float64 `yaml:"y"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		v.X, v.Y = m.X, m.Y
		return nil
	default:
		return fmt.Errorf("line %d: point must be [x, y] or {x, y}", node.Line)
	}
}

// MarshalYAML writes the compact [x, y] form.
func (v Vec) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range []float64{v.X, v.Y} {
		var item yaml.Node
		if err := item.Encode(f); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &item)
	}
	return n, nil
}

// Rect is an axis-aligned area given by its low and high corners.
type Rect struct {
	P1 Vec `yaml:"p1"`
	P2 Vec `yaml:"p2"`
}

// Empty reports whether both corners are unset.
func (r Rect) Empty() bool {
	return r.P1 == (Vec{}) && r.P2 == (Vec{})
}

func (r Rect) inverted() bool {
	return r.P1.X > r.P2.X || r.P1.Y > r.P2.Y
}

// Box is a rectangular barrier. Solid boxes stop the body; the others only
// report when the body enters or leaves them.
type Box struct {
	ID    string `yaml:"id"`
	P1    Vec    `yaml:"p1"`
	P2    Vec    `yaml:"p2"`
	Solid bool   `yaml:"solid,omitempty"`
	Color string `yaml:"color,omitempty"`
}

// Line is a segment barrier. It never stops the body.
type Line struct {
	ID    string `yaml:"id"`
	P1    Vec    `yaml:"p1"`
	P2    Vec    `yaml:"p2"`
	Color string `yaml:"color,omitempty"`
}

// Label is static text placed in the world.
type Label struct {
	Text  string `yaml:"text"`
	P1    Vec    `yaml:"p1"`
	P2    Vec    `yaml:"p2"`
	Color string `yaml:"color,omitempty"`
}

// Scene is a complete scene definition.
type Scene struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description,omitempty"`
	Spawn       Rect    `yaml:"spawn,omitempty"`
	BodyColor   string  `yaml:"body_color,omitempty"`
	Boxes       []Box   `yaml:"boxes,omitempty"`
	Lines       []Line  `yaml:"lines,omitempty"`
	Labels      []Label `yaml:"labels,omitempty"`

	// Source is "builtin" or the file the scene was read from.
	Source string `yaml:"-"`
}

// DisplayTitle returns Title, or the ID when no title is set.
func (s *Scene) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.ID
}

// SpawnRect returns where the body starts. Without an explicit spawn the body
// is a 1x1 box centred on the floor of a world worldWidth units wide.
func (s *Scene) SpawnRect(worldWidth float64) Rect {
	if !s.Spawn.Empty() {
		return s.Spawn
	}
	mid := worldWidth / 2
	return Rect{P1: Vec{X: mid - 0.5, Y: 0}, P2: Vec{X: mid + 0.5, Y: 1}}
}

// Validate checks ids, corner order and colors. Corners must be given
// low-left first; the physics core relies on that ordering.
func (s *Scene) Validate() error {
	var errs []error
	if s.ID == "" {
		errs = append(errs, errors.New("missing id"))
	}

	if !s.Spawn.Empty() {
		if s.Spawn.inverted() {
			errs = append(errs, errors.New("spawn: p1 must be below and left of p2"))
		} else if s.Spawn.P1.X == s.Spawn.P2.X || s.Spawn.P1.Y == s.Spawn.P2.Y {
			errs = append(errs, errors.New("spawn: body must have a positive size"))
		}
	}
	if _, err := core.ParseColor(s.BodyColor); err != nil {
		errs = append(errs, fmt.Errorf("body_color: %w", err))
	}

	seen := make(map[string]bool)
	checkID := func(kind string, i int, id string) {
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("%s[%d]: missing id", kind, i))
		case seen[id]:
			errs = append(errs, fmt.Errorf("%s[%d]: duplicate id %q", kind, i, id))
		}
		seen[id] = true
	}

	for i, b := range s.Boxes {
		checkID("boxes", i, b.ID)
		if (Rect{P1: b.P1, P2: b.P2}).inverted() {
			errs = append(errs, fmt.Errorf("boxes[%d] %q: p1 must be below and left of p2", i, b.ID))
		}
		if _, err := core.ParseColor(b.Color); err != nil {
			errs = append(errs, fmt.Errorf("boxes[%d] %q: %w", i, b.ID, err))
		}
	}
	for i, l := range s.Lines {
		checkID("lines", i, l.ID)
		if _, err := core.ParseColor(l.Color); err != nil {
			errs = append(errs, fmt.Errorf("lines[%d] %q: %w", i, l.ID, err))
		}
	}
	for i, l := range s.Labels {
		if l.Text == "" {
			errs = append(errs, fmt.Errorf("labels[%d]: missing text", i))
		}
		if (Rect{P1: l.P1, P2: l.P2}).inverted() {
			errs = append(errs, fmt.Errorf("labels[%d]: p1 must be below and left of p2", i))
		}
		if _, err := core.ParseColor(l.Color); err != nil {
			errs = append(errs, fmt.Errorf("labels[%d]: %w", i, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("scene %q: %w", s.ID, err)
	}
	return nil
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scene: invalid YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return &s, nil
}

// Marshal encodes the scene as YAML.
func (s *Scene) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("scene: cannot encode %q: %w", s.ID, err)
	}
	return data, nil
}
