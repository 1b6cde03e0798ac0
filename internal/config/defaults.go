package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings with derived values filled.
func DefaultSettings() *Settings {
	s := &Settings{
		Window: WindowSettings{
			Title:        "2D Physics Sandbox",
			AspectRatioX: 16,
			AspectRatioY: 9,
			Scale:        100,
		},
		FPSCap: 60,
		Physics: PhysicsSettings{
			InvScaleFactor: 10,
			ErrorMargin:    0.0001,
			Gravity:        -9.8,
			MoveImpulse:    0.2,
			JumpImpulse:    9.0,
			DiveImpulse:    0.2,
		},
		Camera: CameraSettings{
			PanStep:     0.05,
			ZoomStep:    1,
			MinInvScale: 2,
			MaxInvScale: 40,
		},
	}
	s.ReloadDerived()
	return s
}

// DefaultYAML returns the embedded default settings file.
func DefaultYAML() []byte {
	return defaultSettingsYAML
}
