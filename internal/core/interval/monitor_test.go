package interval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusloop/internal/core/interval"
)

func drain(events <-chan interval.Event) []interval.Event {
	var out []interval.Event
	for {
		select {
		case event := <-events:
			out = append(out, event)
		default:
			return out
		}
	}
}

func TestMonitorPollReportsProgress(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	monitor := interval.NewMonitor(f.lifecycle, interval.MonitorConfig{})
	events := monitor.Subscribe(10)

	_, err := f.lifecycle.Create(ctx, interval.TypeFocus, true, nil)
	require.NoError(t, err)
	f.clock.Advance(750)

	monitor.Poll(ctx)
	got := drain(events)
	require.Len(t, got, 2)
	assert.Equal(t, interval.EventStateChange, got[0].Type)
	assert.Equal(t, interval.StateRunning, got[0].State)
	assert.Equal(t, interval.EventProgress, got[1].Type)
	assert.InDelta(t, 50.0, got[1].Progress, 0.0001)
	assert.Equal(t, int64(750), int64(got[1].Remaining.Seconds()))

	_, err = f.lifecycle.Pause(ctx)
	require.NoError(t, err)
	monitor.Poll(ctx)
	got = drain(events)
	require.NotEmpty(t, got)
	assert.Equal(t, interval.StatePaused, got[0].State)
}

func TestMonitorPollOffersNextIntervalOnCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	monitor := interval.NewMonitor(f.lifecycle, interval.MonitorConfig{})
	events := monitor.Subscribe(10)

	_, err := f.lifecycle.Create(ctx, interval.TypeFocus, false, nil)
	require.NoError(t, err)
	f.clock.Advance(1500)

	monitor.Poll(ctx)
	got := drain(events)
	require.NotEmpty(t, got)
	completed := got[len(got)-1]
	assert.Equal(t, interval.EventCompleted, completed.Type)
	require.NotNil(t, completed.Next)
	assert.Equal(t, interval.TypeShortBreak, completed.Next.Type)

	current, err := f.store.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	monitor.Poll(ctx)
	assert.Empty(t, drain(events), "idle store emits nothing new")
}

func TestMonitorStopClosesSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f := newFixture(t)
	monitor := interval.NewMonitor(f.lifecycle, interval.MonitorConfig{})
	events := monitor.Subscribe(1)

	monitor.Start(ctx)
	monitor.Stop()
	monitor.Stop()

	for range events {
	}
	_, open := <-events
	assert.False(t, open)
}
