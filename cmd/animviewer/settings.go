package main

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	settingsObject   = "viewer"
	settingsProperty = "settings.yaml"
)

// Settings are the viewer preferences remembered between runs.
type Settings struct {
	Document string  `yaml:"document"`
	Clip     string  `yaml:"clip"`
	Zoom     float64 `yaml:"zoom"`
	Count    int     `yaml:"count"`
}

func DefaultSettings() Settings {
	return Settings{Document: "prefabs/soldier.yaml", Clip: "idle", Zoom: 4, Count: 5}
}

// SettingsStore persists Settings through gdata. A nil manager keeps
// settings in memory only.
type SettingsStore struct {
	manager *gdata.Manager
}

func OpenSettingsStore(appName string) *SettingsStore {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("viewer: settings storage unavailable, using defaults: %v", err)
		return &SettingsStore{}
	}
	return &SettingsStore{manager: m}
}

func (s *SettingsStore) Load() (Settings, error) {
	settings := DefaultSettings()
	if s == nil || s.manager == nil || !s.manager.ObjectPropExists(settingsObject, settingsProperty) {
		return settings, nil
	}
	data, err := s.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return settings, fmt.Errorf("viewer: load settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return DefaultSettings(), fmt.Errorf("viewer: unmarshal settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsStore) Save(settings Settings) error {
	if s == nil || s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("viewer: marshal settings: %w", err)
	}
	if err := s.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("viewer: save settings: %w", err)
	}
	return nil
}
