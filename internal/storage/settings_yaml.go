package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"wodtimer/internal/core/engine"
	"wodtimer/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Mode                string `yaml:"mode"`
	CountdownSeconds    int    `yaml:"countdown_seconds"`
	TabataWorkSeconds   int    `yaml:"tabata_work_seconds"`
	TabataRestSeconds   int    `yaml:"tabata_rest_seconds"`
	TabataRounds        int    `yaml:"tabata_rounds"`
	EmomIntervalSeconds int    `yaml:"emom_interval_seconds"`
	EmomTotalMinutes    int    `yaml:"emom_total_minutes"`
	AmrapSeconds        int    `yaml:"amrap_seconds"`
	// Pointer so an absent field falls back to the default while an
	// explicit 0 disables the intro.
	IntroSeconds *int `yaml:"intro_seconds"`
}

// LoadSettings reads workout settings and the last active mode from YAML.
// A missing config file yields defaults.
func LoadSettings(appName string) (model.WorkoutSettings, engine.Mode, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return model.DefaultWorkoutSettings(), engine.ModeStopwatch, err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes workout settings and the active mode to YAML.
func SaveSettings(appName string, settings model.WorkoutSettings, mode engine.Mode) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings, mode)
}

// LoadSettingsFile reads settings from an explicit path.
func LoadSettingsFile(path string) (model.WorkoutSettings, engine.Mode, error) {
	settings := model.DefaultWorkoutSettings()
	mode := engine.ModeStopwatch

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, mode, nil
		}
		return settings, mode, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, mode, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, &mode, fileData)
	return settings, mode, nil
}

// SaveSettingsFile writes settings to an explicit path.
func SaveSettingsFile(path string, settings model.WorkoutSettings, mode engine.Mode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	intro := int(settings.Intro / time.Second)
	fileData := yamlSettings{
		Mode:                string(mode),
		CountdownSeconds:    int(settings.Countdown.Total / time.Second),
		TabataWorkSeconds:   int(settings.Tabata.Work / time.Second),
		TabataRestSeconds:   int(settings.Tabata.Rest / time.Second),
		TabataRounds:        settings.Tabata.Rounds,
		EmomIntervalSeconds: int(settings.Emom.Interval / time.Second),
		EmomTotalMinutes:    settings.Emom.TotalMinutes,
		AmrapSeconds:        int(settings.Amrap.Total / time.Second),
		IntroSeconds:        &intro,
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

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *model.WorkoutSettings, mode *engine.Mode, fileData yamlSettings) {
	if fileData.CountdownSeconds > 0 {
		settings.Countdown.Total = time.Duration(fileData.CountdownSeconds) * time.Second
	}
	if fileData.TabataWorkSeconds > 0 {
		settings.Tabata.Work = time.Duration(fileData.TabataWorkSeconds) * time.Second
	}
	if fileData.TabataRestSeconds > 0 {
		settings.Tabata.Rest = time.Duration(fileData.TabataRestSeconds) * time.Second
	}
	if fileData.TabataRounds > 0 {
		settings.Tabata.Rounds = fileData.TabataRounds
	}
	if fileData.EmomIntervalSeconds > 0 {
		settings.Emom.Interval = time.Duration(fileData.EmomIntervalSeconds) * time.Second
	}
	if fileData.EmomTotalMinutes > 0 {
		settings.Emom.TotalMinutes = fileData.EmomTotalMinutes
	}
	if fileData.AmrapSeconds > 0 {
		settings.Amrap.Total = time.Duration(fileData.AmrapSeconds) * time.Second
	}
	if fileData.IntroSeconds != nil && *fileData.IntroSeconds >= 0 {
		settings.Intro = time.Duration(*fileData.IntroSeconds) * time.Second
	}

	for _, known := range engine.Modes {
		if engine.Mode(fileData.Mode) == known {
			*mode = known
		}
	}
}
