package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusloop/internal/core/interval"
)

func TestRunCommandFlow(t *testing.T) {
	t.Setenv(homeEnv, t.TempDir())
	ctx := context.Background()

	assert.Equal(t, 0, run(ctx, []string{"config", "--focus", "30", "--threshold", "2"}))
	assert.Equal(t, 0, run(ctx, []string{"task", "add", "Write", "report", "--minutes", "45"}))
	assert.Equal(t, 0, run(ctx, []string{"start", "focus"}))
	assert.Equal(t, 0, run(ctx, []string{"pause"}))
	assert.Equal(t, 0, run(ctx, []string{"resume"}))
	assert.Equal(t, 0, run(ctx, []string{"status"}))
	assert.Equal(t, 1, run(ctx, []string{"next"}), "next refuses while an interval is running")

	app, err := openApplication()
	require.NoError(t, err)
	defer app.Close()

	current, err := app.lifecycle.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, interval.TypeFocus, current.Type)
	assert.Equal(t, int64(1800), current.IntervalLength)
	assert.Len(t, current.Parts, 2)

	tasks, err := app.tasks.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, 0, run(ctx, []string{"start", "task", tasks[0].ID[:8]}))
	current, err = app.lifecycle.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(45*60), current.IntervalLength)

	assert.Equal(t, 0, run(ctx, []string{"reset"}))
	current, err = app.lifecycle.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	assert.Equal(t, 0, run(ctx, []string{"next", "--start"}))
	current, err = app.lifecycle.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, interval.TypeLongBreak, current.Type, "two continuation starts reach the threshold of 2")
}

func TestRunUsageErrors(t *testing.T) {
	t.Setenv(homeEnv, t.TempDir())
	ctx := context.Background()

	assert.Equal(t, 2, run(ctx, []string{"bogus"}))
	assert.Equal(t, 2, run(ctx, []string{"start"}))
	assert.Equal(t, 2, run(ctx, []string{"start", "nap"}))
	assert.Equal(t, 2, run(ctx, []string{"start", "task"}))
	assert.Equal(t, 2, run(ctx, []string{"config", "--focus"}))
	assert.Equal(t, 0, run(ctx, []string{"help"}))
	assert.Equal(t, 0, run(ctx, []string{"version"}))
}

func TestConfigKeepsUnreadableSettingsFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv(homeEnv, home)
	ctx := context.Background()

	path := filepath.Join(home, "settings.yaml")
	broken := []byte("focus_interval_minutes: [oops\n")
	require.NoError(t, os.WriteFile(path, broken, 0o644))

	assert.Equal(t, 1, run(ctx, []string{"config", "--focus", "30"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, broken, data)

	assert.Equal(t, 0, run(ctx, []string{"config"}), "showing defaults still works")
}
