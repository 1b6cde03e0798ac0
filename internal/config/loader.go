package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the file name looked up in the user and local config dirs.
const SettingsFile = "settings.yaml"

// Load reads sandbox settings.
// Search order: customPath -> ~/.sandbox/settings.yaml -> ./configs/settings.yaml -> embedded default
//
// Keys missing from a file keep their default value. The result is validated
// and has its derived values computed.
func Load(customPath string) (*Settings, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		s, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return s, nil
	}

	// Try user config directory
	if userCfgPath := UserPath(SettingsFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if s, err := parse(data); err == nil {
				return s, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", SettingsFile)); err == nil {
		if s, err := parse(data); err == nil {
			return s, nil
		}
	}

	// Use embedded default YAML
	s, err := parse(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings(), nil // Fallback to hardcoded if embed fails
	}
	return s, nil
}

// parse decodes data over the defaults, validates and derives.
func parse(data []byte) (*Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.ReloadDerived()
	return s, nil
}

// Save writes the file settings (not the derived ones) as YAML, creating
// parent directories as needed.
func (s *Settings) Save(path string) error {
	path = ExpandHome(path)
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("config: failed to encode settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}
	return nil
}

// UserDir returns ~/.sandbox, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sandbox")
}

// UserPath returns a path inside UserDir, or empty if home is unavailable.
func UserPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
