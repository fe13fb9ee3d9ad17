// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/mkweon/content-engine/pkg/types"
)

const settingsFile = "settings.json"

//go:embed defaults.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings: anthropic for content,
// google for images, and the shipped prompt presets.
func DefaultSettings() (types.AppSettings, error) {
	var settings types.AppSettings
	if err := yaml.Unmarshal(defaultSettingsYAML, &settings); err != nil {
		return types.AppSettings{}, fmt.Errorf("parsing default settings: %w", err)
	}
	return settings, nil
}

// Settings persists AppSettings as settings.json under a config directory.
type Settings struct {
	dir string
}

// NewSettings returns a settings store over the given config directory.
func NewSettings(dir string) *Settings {
	return &Settings{dir: dir}
}

// Load reads settings.json, falling back to the defaults when the file does
// not exist yet.
func (s *Settings) Load() (types.AppSettings, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, settingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings()
		}
		return types.AppSettings{}, fmt.Errorf("reading settings: %w", err)
	}

	var settings types.AppSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return types.AppSettings{}, fmt.Errorf("parsing settings: %w", err)
	}
	return settings, nil
}

// Save writes settings.json, creating the config directory if needed.
func (s *Settings) Save(settings types.AppSettings) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return writeJSON(filepath.Join(s.dir, settingsFile), settings)
}

// SetSavePath updates only the save path, preserving everything else.
func (s *Settings) SetSavePath(path string) error {
	settings, err := s.Load()
	if err != nil {
		return err
	}
	settings.SavePath = path
	return s.Save(settings)
}

// SetAPIKeys updates only the credentials, preserving everything else.
func (s *Settings) SetAPIKeys(keys types.APIKeys) error {
	settings, err := s.Load()
	if err != nil {
		return err
	}
	settings.APIKeys = keys
	return s.Save(settings)
}
