package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"bead-mixer/config"
)

// ScenePreset is a named set of overrides applied on top of config.DefaultScene.
// Fields left out of the JSON file keep their default values.
type ScenePreset struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Scene       config.Scene `json:"scene"`
}

// PresetManager manages scene presets loaded from JSON files
type PresetManager struct {
	Presets map[string]*ScenePreset
}

// NewPresetManager creates an empty preset manager
func NewPresetManager() *PresetManager {
	return &PresetManager{
		Presets: make(map[string]*ScenePreset),
	}
}

// LoadPresetsFromDirectory loads all JSON preset files from a directory
func (m *PresetManager) LoadPresetsFromDirectory(dirPath string) error {
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read preset directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}

		if _, err := m.LoadPresetFromFile(filepath.Join(dirPath, file.Name())); err != nil {
			return fmt.Errorf("failed to load preset from %s: %w", file.Name(), err)
		}
	}

	return nil
}

// LoadPresetFromFile loads a single preset. A file without an id is named after the file.
func (m *PresetManager) LoadPresetFromFile(filePath string) (*ScenePreset, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	preset := ScenePreset{Scene: config.DefaultScene()}
	if err := json.Unmarshal(raw, &preset); err != nil {
		return nil, err
	}

	if preset.ID == "" {
		preset.ID = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	if err := preset.Scene.Validate(); err != nil {
		return nil, fmt.Errorf("preset %s: %w", preset.ID, err)
	}

	m.Presets[preset.ID] = &preset
	return &preset, nil
}

// Get returns the preset with the given id
func (m *PresetManager) Get(id string) (*ScenePreset, bool) {
	p, ok := m.Presets[id]
	return p, ok
}

// IDs returns the loaded preset ids in sorted order
func (m *PresetManager) IDs() []string {
	ids := make([]string, 0, len(m.Presets))
	for id := range m.Presets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
