package status

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"focusloop/internal/core/interval"
	"focusloop/internal/core/model"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{seconds: -5, want: "00:00"},
		{seconds: 0, want: "00:00"},
		{seconds: 65, want: "01:05"},
		{seconds: 1500, want: "25:00"},
		{seconds: 3725, want: "1:02:05"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.seconds))
	}
}

func TestLine(t *testing.T) {
	assert.Equal(t, "idle", Line(nil, 0))

	in := &interval.Interval{Type: interval.TypeFocus, IntervalLength: 1500, Parts: []interval.Part{{StartedAt: 0}}}
	assert.Equal(t, "Focus 15:00 left", Line(in, 600))

	pausedAt := int64(600)
	in.Parts[0].PausedAt = &pausedAt
	assert.Equal(t, "Focus 15:00 left (paused)", Line(in, 900))
}

func TestRender(t *testing.T) {
	idle := Render(Snapshot{Completed: 2, Threshold: 4})
	assert.Contains(t, idle, "No interval running")
	assert.Contains(t, idle, "2/4")

	in := &interval.Interval{
		Type:           interval.TypeTask,
		IntervalLength: 1500,
		Parts:          []interval.Part{{StartedAt: 0}},
		Task:           &model.Task{ID: "t", Title: "Write report", TotalTimeSpent: 60},
	}
	out := Render(Snapshot{Interval: in, Now: 750, Completed: 1, Threshold: 4})
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "running")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Elapsed 12:30 / 25:00, 12:30 left")
	assert.Contains(t, out, "Task total: 13:30")

	finished := Render(Snapshot{Interval: in, Now: 1600, Threshold: 4})
	assert.Contains(t, finished, "finished")
	assert.True(t, strings.Contains(finished, "100%"))
}
