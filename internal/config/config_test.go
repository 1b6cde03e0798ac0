package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultSettingsDerived(t *testing.T) {
	s := DefaultSettings()

	if s.Derived.WindowWidth != 1600 || s.Derived.WindowHeight != 900 {
		t.Errorf("window = %dx%d, want 1600x900", s.Derived.WindowWidth, s.Derived.WindowHeight)
	}
	if math.Abs(s.Derived.AspectRatio-16.0/9.0) > 1e-12 {
		t.Errorf("AspectRatio = %v, want 16/9", s.Derived.AspectRatio)
	}
	if math.Abs(s.Derived.SPFCap-1.0/60) > 1e-12 {
		t.Errorf("SPFCap = %v, want 1/60", s.Derived.SPFCap)
	}
	if math.Abs(s.Derived.VirtualWidth-160.0/9.0) > 1e-9 || s.Derived.VirtualHeight != 10 {
		t.Errorf("virtual = %vx%v, want 17.78x10", s.Derived.VirtualWidth, s.Derived.VirtualHeight)
	}

	b := s.WorldBounds()
	if b.Min.X != 0 || b.Min.Y != 0 || b.Max.Y != 10 {
		t.Errorf("WorldBounds() = %+v", b)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	embedded, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) error = %v", err)
	}
	want := DefaultSettings()

	if embedded.Window != want.Window || embedded.FPSCap != want.FPSCap ||
		embedded.Physics != want.Physics || embedded.Camera != want.Camera {
		t.Errorf("embedded settings %+v differ from DefaultSettings %+v", embedded, want)
	}
}

func TestTransformIsShared(t *testing.T) {
	s := DefaultSettings()
	tr := s.Transform()

	if tr != s.Transform() {
		t.Fatal("Transform() should return the same pointer every call")
	}
	if tr.InverseScaleFactor != 10 || math.Abs(tr.AspectRatio-16.0/9.0) > 1e-12 {
		t.Errorf("transform = %+v", *tr)
	}

	s.Physics.InvScaleFactor = 20
	s.ReloadDerived()
	if tr != s.Transform() {
		t.Error("ReloadDerived must update the transform in place")
	}
	if tr.InverseScaleFactor != 20 {
		t.Errorf("InverseScaleFactor = %v after reload, want 20", tr.InverseScaleFactor)
	}
}

func TestZoomClamps(t *testing.T) {
	s := DefaultSettings()
	tr := s.Transform()

	tests := []struct {
		name  string
		steps int
		want  float64
	}{
		{name: "zoom in one step", steps: 1, want: 9},
		{name: "zoom out two steps", steps: -2, want: 12},
		{name: "clamped at min", steps: 100, want: 2},
		{name: "clamped at max", steps: -100, want: 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.ResetCamera()
			s.Zoom(tt.steps)
			if tr.InverseScaleFactor != tt.want {
				t.Errorf("InverseScaleFactor = %v, want %v", tr.InverseScaleFactor, tt.want)
			}
			if s.Physics.InvScaleFactor != 10 {
				t.Error("Zoom must not change the configured scale")
			}
		})
	}
}

func TestPanAndResetCamera(t *testing.T) {
	s := DefaultSettings()
	s.Pan(2, -1)

	tr := s.Transform()
	if math.Abs(tr.CameraShift.X-0.1) > 1e-12 || math.Abs(tr.CameraShift.Y+0.05) > 1e-12 {
		t.Errorf("CameraShift = %+v, want (0.1, -0.05)", tr.CameraShift)
	}

	s.Zoom(3)
	s.ResetCamera()
	if tr.CameraShift.X != 0 || tr.CameraShift.Y != 0 || tr.InverseScaleFactor != 10 {
		t.Errorf("after ResetCamera transform = %+v", *tr)
	}
}

func TestClone(t *testing.T) {
	s := DefaultSettings()
	s.Pan(1, 0)

	c := s.Clone()
	if c.Transform() == s.Transform() {
		t.Fatal("Clone must not share the transform")
	}
	if c.Transform().CameraShift != s.Transform().CameraShift {
		t.Error("Clone should start from the current view")
	}

	c.Zoom(1)
	if s.Transform().InverseScaleFactor != 10 {
		t.Error("zooming the clone changed the original")
	}
}

func TestSetFPSCap(t *testing.T) {
	s := DefaultSettings()
	s.SetFPSCap(0)
	if s.FPSCap != 60 {
		t.Errorf("SetFPSCap(0) changed FPSCap to %v", s.FPSCap)
	}
	s.SetFPSCap(30)
	if s.FPSCap != 30 || math.Abs(s.Derived.SPFCap-1.0/30) > 1e-12 {
		t.Errorf("FPSCap = %v, SPFCap = %v", s.FPSCap, s.Derived.SPFCap)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Settings) {}},
		{name: "zero aspect", mutate: func(s *Settings) { s.Window.AspectRatioY = 0 }, wantErr: "aspect ratio"},
		{name: "zero scale", mutate: func(s *Settings) { s.Window.Scale = 0 }, wantErr: "window scale"},
		{name: "zero fps", mutate: func(s *Settings) { s.FPSCap = 0 }, wantErr: "fps_cap"},
		{name: "negative inverse scale", mutate: func(s *Settings) { s.Physics.InvScaleFactor = -1 }, wantErr: "inv_scale_factor"},
		{name: "negative margin", mutate: func(s *Settings) { s.Physics.ErrorMargin = -1e-4 }, wantErr: "error_margin"},
		{name: "inverted zoom limits", mutate: func(s *Settings) { s.Camera.MaxInvScale = 1 }, wantErr: "zoom limits"},
		{name: "negative pan step", mutate: func(s *Settings) { s.Camera.PanStep = -0.1 }, wantErr: "camera steps"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	data := `
window:
  aspect_ratio_x: 4
  aspect_ratio_y: 3
physics:
  inv_scale_factor: 12
  gravity: -1.62
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Physics.Gravity != -1.62 || s.Physics.InvScaleFactor != 12 {
		t.Errorf("physics = %+v", s.Physics)
	}
	// Keys not in the file keep their defaults
	if s.Window.Scale != 100 || s.Physics.JumpImpulse != 9.0 || s.FPSCap != 60 {
		t.Errorf("defaults not kept: window %+v physics %+v fps %v", s.Window, s.Physics, s.FPSCap)
	}
	if math.Abs(s.Derived.VirtualWidth-16) > 1e-9 {
		t.Errorf("VirtualWidth = %v, want 16", s.Derived.VirtualWidth)
	}
	if s.Transform().InverseScaleFactor != 12 {
		t.Errorf("transform not derived from file: %+v", *s.Transform())
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("window: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("fps_cap: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil || !strings.Contains(err.Error(), "fps_cap") {
		t.Errorf("Load(invalid) error = %v, want fps_cap validation error", err)
	}
}

func TestLoadFallsBackToUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	userDir := filepath.Join(home, ".sandbox")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, SettingsFile), []byte("fps_cap: 120\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.FPSCap != 120 {
		t.Errorf("FPSCap = %v, want 120 from user settings", s.FPSCap)
	}
}

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Window.Title != "2D Physics Sandbox" || s.FPSCap != 60 {
		t.Errorf("unexpected defaults: %+v", s)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	s := DefaultSettings()
	s.Physics.Gravity = -3
	s.Camera.PositionX = 0.5
	s.Paths.ScenesDir = "/tmp/scenes"
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "derived") || strings.Contains(string(data), "virtualwidth") {
		t.Errorf("derived values should not be saved:\n%s", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Physics.Gravity != -3 || loaded.Camera.PositionX != 0.5 || loaded.Paths.ScenesDir != "/tmp/scenes" {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Transform().CameraShift.X != 0.5 {
		t.Errorf("camera position not applied: %+v", loaded.Transform().CameraShift)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := UserPath("host_key"); got != filepath.Join(home, ".sandbox", "host_key") {
		t.Errorf("UserPath() = %q", got)
	}
}
