// Package config provides YAML-based sandbox settings: window geometry,
// physics constants and camera behaviour, plus the values derived from them.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-sandbox/internal/physics"
)

// Settings is the full sandbox configuration.
type Settings struct {
	Window  WindowSettings  `yaml:"window"`
	FPSCap  float64         `yaml:"fps_cap"`
	Physics PhysicsSettings `yaml:"physics"`
	Camera  CameraSettings  `yaml:"camera"`
	Paths   PathSettings    `yaml:"paths"`

	// Derived is recomputed by ReloadDerived and never read from file.
	Derived Derived `yaml:"-"`

	transform *physics.Transform
}

// WindowSettings describes the logical window the world is fitted into.
type WindowSettings struct {
	Title        string `yaml:"title"`
	AspectRatioX int    `yaml:"aspect_ratio_x"`
	AspectRatioY int    `yaml:"aspect_ratio_y"`
	Scale        int    `yaml:"scale"`
}

// PhysicsSettings holds simulation constants.
type PhysicsSettings struct {
	InvScaleFactor float64 `yaml:"inv_scale_factor"`
	ErrorMargin    float64 `yaml:"error_margin"`
	Gravity        float64 `yaml:"gravity"`
	MoveImpulse    float64 `yaml:"move_impulse"`
	JumpImpulse    float64 `yaml:"jump_impulse"`
	DiveImpulse    float64 `yaml:"dive_impulse"`
}

// CameraSettings holds the initial camera and its controls.
type CameraSettings struct {
	PositionX   float64 `yaml:"position_x"` // NDC
	PositionY   float64 `yaml:"position_y"` // NDC
	PanStep     float64 `yaml:"pan_step"`
	ZoomStep    float64 `yaml:"zoom_step"`
	MinInvScale float64 `yaml:"min_inv_scale"`
	MaxInvScale float64 `yaml:"max_inv_scale"`
}

// PathSettings points at optional on-disk assets.
type PathSettings struct {
	ScenesDir string `yaml:"scenes_dir"`
}

// Derived values computed from the file settings.
type Derived struct {
	WindowWidth   int
	WindowHeight  int
	AspectRatio   float64
	SPFCap        float64 // seconds per frame at the fps cap
	VirtualWidth  float64
	VirtualHeight float64
}

// ReloadDerived recomputes Derived and resets the shared transform to the
// configured camera. Call it after changing any file setting.
func (s *Settings) ReloadDerived() {
	s.Derived.WindowWidth = s.Window.AspectRatioX * s.Window.Scale
	s.Derived.WindowHeight = s.Window.AspectRatioY * s.Window.Scale
	s.Derived.AspectRatio = float64(s.Window.AspectRatioX) / float64(s.Window.AspectRatioY)
	s.Derived.SPFCap = 1 / s.FPSCap
	s.Derived.VirtualWidth = s.Derived.AspectRatio * s.Physics.InvScaleFactor
	s.Derived.VirtualHeight = s.Physics.InvScaleFactor

	s.ResetCamera()
}

// Transform returns the transform shared by every shape built from these
// settings. The pointer is stable for the life of the Settings.
func (s *Settings) Transform() *physics.Transform {
	if s.transform == nil {
		s.transform = &physics.Transform{}
		s.ResetCamera()
	}
	return s.transform
}

// ResetCamera restores the configured zoom and camera position.
func (s *Settings) ResetCamera() {
	if s.transform == nil {
		s.transform = &physics.Transform{}
	}
	s.transform.AspectRatio = s.Derived.AspectRatio
	s.transform.InverseScaleFactor = s.Physics.InvScaleFactor
	s.transform.CameraShift = physics.Point{X: s.Camera.PositionX, Y: s.Camera.PositionY}
}

// Zoom changes how many virtual units are visible by steps*ZoomStep.
// Positive steps zoom in. The result stays within the configured limits.
func (s *Settings) Zoom(steps int) {
	t := s.Transform()
	isf := t.InverseScaleFactor - float64(steps)*s.Camera.ZoomStep
	if isf < s.Camera.MinInvScale {
		isf = s.Camera.MinInvScale
	}
	if isf > s.Camera.MaxInvScale {
		isf = s.Camera.MaxInvScale
	}
	t.InverseScaleFactor = isf
}

// Pan moves the camera by whole pan steps in NDC.
func (s *Settings) Pan(dx, dy int) {
	t := s.Transform()
	t.CameraShift.X += float64(dx) * s.Camera.PanStep
	t.CameraShift.Y += float64(dy) * s.Camera.PanStep
}

// WorldBounds returns the region the body is kept inside: the whole
// virtual window at the configured zoom.
func (s *Settings) WorldBounds() physics.Bounds {
	return physics.Bounds{
		Max: physics.Point{X: s.Derived.VirtualWidth, Y: s.Derived.VirtualHeight},
	}
}

// SetFPSCap overrides the fps cap and refreshes derived values.
// Non-positive values are ignored.
func (s *Settings) SetFPSCap(fps float64) {
	if fps <= 0 {
		return
	}
	s.FPSCap = fps
	s.ReloadDerived()
}

// Clone returns an independent copy with its own transform, for a new
// session.
func (s *Settings) Clone() *Settings {
	c := *s
	c.transform = nil
	c.ReloadDerived()
	if s.transform != nil {
		*c.transform = *s.transform
	}
	return &c
}

// Validate rejects values the physics core cannot work with.
func (s *Settings) Validate() error {
	switch {
	case s.Window.AspectRatioX <= 0 || s.Window.AspectRatioY <= 0:
		return fmt.Errorf("config: aspect ratio must be positive, got %d:%d",
			s.Window.AspectRatioX, s.Window.AspectRatioY)
	case s.Window.Scale <= 0:
		return fmt.Errorf("config: window scale must be positive, got %d", s.Window.Scale)
	case s.FPSCap <= 0:
		return fmt.Errorf("config: fps_cap must be positive, got %v", s.FPSCap)
	case s.Physics.InvScaleFactor <= 0:
		return fmt.Errorf("config: inv_scale_factor must be positive, got %v", s.Physics.InvScaleFactor)
	case s.Physics.ErrorMargin < 0:
		return fmt.Errorf("config: error_margin must not be negative, got %v", s.Physics.ErrorMargin)
	case s.Camera.MinInvScale <= 0 || s.Camera.MaxInvScale < s.Camera.MinInvScale:
		return fmt.Errorf("config: invalid zoom limits [%v, %v]", s.Camera.MinInvScale, s.Camera.MaxInvScale)
	case s.Camera.PanStep < 0 || s.Camera.ZoomStep < 0:
		return fmt.Errorf("config: camera steps must not be negative")
	}
	return nil
}
