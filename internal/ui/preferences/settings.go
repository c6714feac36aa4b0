package preferences

import (
	"time"

	"focusloop/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration      time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration

	LongBreakStartThreshold int
}

// DefaultSettings returns default settings for focusloop.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:           25 * time.Minute,
		ShortBreakDuration:      5 * time.Minute,
		LongBreakDuration:       15 * time.Minute,
		LongBreakStartThreshold: 4,
	}
}

// IntervalConfig converts settings to the interval engine configuration.
func (settings Settings) IntervalConfig() model.IntervalConfig {
	return model.IntervalConfig{
		Focus:                   settings.FocusDuration,
		ShortBreak:              settings.ShortBreakDuration,
		LongBreak:               settings.LongBreakDuration,
		LongBreakStartThreshold: settings.LongBreakStartThreshold,
	}
}
