package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusloop/internal/ui/preferences"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(SettingsPath(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := SettingsPath(filepath.Join(t.TempDir(), "nested"))
	want := preferences.Settings{
		FocusDuration:           50 * time.Minute,
		ShortBreakDuration:      10 * time.Minute,
		LongBreakDuration:       30 * time.Minute,
		LongBreakStartThreshold: 3,
	}
	require.NoError(t, SaveSettings(path, want))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "focus_interval_minutes: 50")
	assert.Contains(t, string(raw), "long_break_start_threshold: 3")

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsIgnoresNonPositiveValues(t *testing.T) {
	path := SettingsPath(t.TempDir())
	require.NoError(t, os.WriteFile(path, []byte("focus_interval_minutes: 0\nshort_break_interval_minutes: 7\nlong_break_start_threshold: -1\n"), 0o644))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.FocusDuration, got.FocusDuration)
	assert.Equal(t, 7*time.Minute, got.ShortBreakDuration)
	assert.Equal(t, defaults.LongBreakStartThreshold, got.LongBreakStartThreshold)
}

func TestLoadSettingsInvalidYAML(t *testing.T) {
	path := SettingsPath(t.TempDir())
	require.NoError(t, os.WriteFile(path, []byte("focus_interval_minutes: [oops"), 0o644))

	settings, err := LoadSettings(path)
	require.Error(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestWatchSettingsReloadsOnWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := SettingsPath(t.TempDir())
	reloaded := make(chan preferences.Settings, 8)
	require.NoError(t, WatchSettings(ctx, path, func(settings preferences.Settings) {
		reloaded <- settings
	}))

	updated := preferences.DefaultSettings()
	updated.LongBreakStartThreshold = 6
	require.NoError(t, SaveSettings(path, updated))

	select {
	case settings := <-reloaded:
		assert.Equal(t, 6, settings.LongBreakStartThreshold)
	case <-time.After(5 * time.Second):
		t.Fatal("settings were not reloaded")
	}
}
