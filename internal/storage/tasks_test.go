package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskStoreCreateGetList(t *testing.T) {
	ctx := context.Background()
	store, err := NewTaskStore(openTestDB(t))
	require.NoError(t, err)

	minutes := 50
	created, err := store.CreateTask(ctx, "  Write report ", &minutes)
	require.NoError(t, err)
	assert.Equal(t, "Write report", created.Title)
	assert.NotEmpty(t, created.ID)

	got, err := store.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	require.NotNil(t, got.CustomDuration)
	assert.Equal(t, 50, *got.CustomDuration)
	assert.Nil(t, got.LastStartedAt)

	_, err = store.CreateTask(ctx, "Read", nil)
	require.NoError(t, err)

	tasks, err := store.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestTaskStoreValidation(t *testing.T) {
	ctx := context.Background()
	store, err := NewTaskStore(openTestDB(t))
	require.NoError(t, err)

	_, err = store.CreateTask(ctx, "   ", nil)
	require.Error(t, err)

	zero := 0
	_, err = store.CreateTask(ctx, "x", &zero)
	require.Error(t, err)

	_, err = store.GetTask(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTaskStoreUpdateTaskUpserts(t *testing.T) {
	ctx := context.Background()
	store, err := NewTaskStore(openTestDB(t))
	require.NoError(t, err)

	task, err := store.CreateTask(ctx, "Plan", nil)
	require.NoError(t, err)

	startedAt := int64(1_700_000_000)
	task.TotalTimeSpent = 600
	task.LastStartedAt = &startedAt
	_, err = store.UpdateTask(ctx, task)
	require.NoError(t, err)

	got, err := store.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), got.TotalTimeSpent)
	require.NotNil(t, got.LastStartedAt)
	assert.Equal(t, startedAt, *got.LastStartedAt)
	assert.True(t, got.CreatedAt.Equal(task.CreatedAt))

	task.ID = "external-id"
	_, err = store.UpdateTask(ctx, task)
	require.NoError(t, err)
	_, err = store.GetTask(ctx, "external-id")
	require.NoError(t, err)
}

func TestTaskStoreFindTaskByPrefix(t *testing.T) {
	ctx := context.Background()
	store, err := NewTaskStore(openTestDB(t))
	require.NoError(t, err)

	task, err := store.CreateTask(ctx, "Prefix", nil)
	require.NoError(t, err)

	found, err := store.FindTask(ctx, task.ID[:8])
	require.NoError(t, err)
	assert.Equal(t, task.ID, found.ID)

	_, err = store.FindTask(ctx, "zzzz")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTaskStoreFindTaskMatchesLiteralPrefix(t *testing.T) {
	ctx := context.Background()
	store, err := NewTaskStore(openTestDB(t))
	require.NoError(t, err)

	task, err := store.CreateTask(ctx, "Only", nil)
	require.NoError(t, err)

	found, err := store.FindTask(ctx, task.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, task.ID, found.ID)

	for _, pattern := range []string{"%", "_", task.ID[:2] + "%", "________"} {
		_, err = store.FindTask(ctx, pattern)
		require.ErrorIs(t, err, ErrNotFound, pattern)
	}
}
