package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusloop/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusIntervalMinutes      int `yaml:"focus_interval_minutes"`
	ShortBreakIntervalMinutes int `yaml:"short_break_interval_minutes"`
	LongBreakIntervalMinutes  int `yaml:"long_break_interval_minutes"`
	LongBreakStartThreshold   int `yaml:"long_break_start_threshold"`
}

// SettingsPath returns the settings file location inside configDir.
func SettingsPath(configDir string) string {
	return filepath.Join(configDir, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusIntervalMinutes:      int(settings.FocusDuration / time.Minute),
		ShortBreakIntervalMinutes: int(settings.ShortBreakDuration / time.Minute),
		LongBreakIntervalMinutes:  int(settings.LongBreakDuration / time.Minute),
		LongBreakStartThreshold:   settings.LongBreakStartThreshold,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusIntervalMinutes > 0 {
		settings.FocusDuration = time.Duration(fileData.FocusIntervalMinutes) * time.Minute
	}
	if fileData.ShortBreakIntervalMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakIntervalMinutes) * time.Minute
	}
	if fileData.LongBreakIntervalMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakIntervalMinutes) * time.Minute
	}
	if fileData.LongBreakStartThreshold > 0 {
		settings.LongBreakStartThreshold = fileData.LongBreakStartThreshold
	}
}
