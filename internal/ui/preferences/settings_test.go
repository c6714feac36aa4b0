package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalConfig(t *testing.T) {
	config := DefaultSettings().IntervalConfig()

	assert.Equal(t, 25*time.Minute, config.Focus)
	assert.Equal(t, 5*time.Minute, config.ShortBreak)
	assert.Equal(t, 15*time.Minute, config.LongBreak)
	assert.Equal(t, 4, config.LongBreakStartThreshold)
}

func TestApply(t *testing.T) {
	base := DefaultSettings()

	tests := []struct {
		name string
		form Form
		want Settings
	}{
		{name: "empty form keeps settings", form: Form{}, want: base},
		{
			name: "valid values override",
			form: Form{Focus: "50", ShortBreak: " 10 ", LongBreak: "20", Threshold: "2"},
			want: Settings{
				FocusDuration:           50 * time.Minute,
				ShortBreakDuration:      10 * time.Minute,
				LongBreakDuration:       20 * time.Minute,
				LongBreakStartThreshold: 2,
			},
		},
		{
			name: "invalid values are skipped",
			form: Form{Focus: "abc", ShortBreak: "0", LongBreak: "-5", Threshold: "3"},
			want: Settings{
				FocusDuration:           base.FocusDuration,
				ShortBreakDuration:      base.ShortBreakDuration,
				LongBreakDuration:       base.LongBreakDuration,
				LongBreakStartThreshold: 3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(base, tt.form))
		})
	}
}
