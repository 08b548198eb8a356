package storage_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wodtimer/internal/core/engine"
	"wodtimer/internal/core/model"
	"wodtimer/internal/storage"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings := model.WorkoutSettings{
		Countdown: model.CountdownSettings{Total: 90 * time.Second},
		Tabata:    model.TabataSettings{Work: 40 * time.Second, Rest: 20 * time.Second, Rounds: 6},
		Emom:      model.EmomSettings{Interval: 45 * time.Second, TotalMinutes: 12},
		Amrap:     model.AmrapSettings{Total: 15 * time.Minute},
		Intro:     5 * time.Second,
	}

	require.NoError(t, storage.SaveSettingsFile(path, settings, engine.ModeTabata))

	loaded, mode, err := storage.LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
	assert.Equal(t, engine.ModeTabata, mode)
}

func TestLoadSettingsMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	settings, mode, err := storage.LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultWorkoutSettings(), settings)
	assert.Equal(t, engine.ModeStopwatch, mode)
}

func TestLoadSettingsRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := "mode: jumping\ncountdown_seconds: -5\ntabata_rounds: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	settings, mode, err := storage.LoadSettingsFile(path)
	require.NoError(t, err)

	defaults := model.DefaultWorkoutSettings()
	assert.Equal(t, defaults.Countdown, settings.Countdown)
	assert.Equal(t, defaults.Tabata, settings.Tabata)
	assert.Equal(t, engine.ModeStopwatch, mode)
}

func TestZeroIntroSurvivesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	settings := model.DefaultWorkoutSettings()
	settings.Intro = 0
	require.NoError(t, storage.SaveSettingsFile(path, settings, engine.ModeAmrap))

	loaded, _, err := storage.LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), loaded.Intro)
}

func TestAbsentIntroKeepsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: emom\n"), 0o644))

	loaded, mode, err := storage.LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultWorkoutSettings().Intro, loaded.Intro)
	assert.Equal(t, engine.ModeEmom, mode)
}

func TestLoadSettingsCorruptYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- not yaml"), 0o644))

	settings, mode, err := storage.LoadSettingsFile(path)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultWorkoutSettings(), settings)
	assert.Equal(t, engine.ModeStopwatch, mode)
}
