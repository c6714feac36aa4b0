package interval

import (
	"context"
	"fmt"

	"focusloop/internal/core/model"
)

// Executor describes the interval to offer after one completes. Nothing is
// started until Start is called.
type Executor struct {
	Title      string
	Type       Type
	FreshStart bool
	Task       *model.Task
	start      func(ctx context.Context) (Interval, error)
}

// Start creates the offered interval.
func (executor *Executor) Start(ctx context.Context) (Interval, error) {
	return executor.start(ctx)
}

// NextExecutor is called once the current interval reaches 100% progress.
// It resets the current interval immediately and picks the next interval
// from the type of the one that just completed and the completed counter.
func (lifecycle *Lifecycle) NextExecutor(ctx context.Context) (*Executor, error) {
	lifecycle.mu.Lock()
	completed, err := lifecycle.resetLocked(ctx)
	if err != nil {
		lifecycle.mu.Unlock()
		return nil, fmt.Errorf("next interval: %w", err)
	}
	count, err := lifecycle.store.CompletedCount(ctx)
	threshold := lifecycle.config.LongBreakStartThreshold
	lifecycle.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("next interval: %w", err)
	}

	intervalType, freshStart, task := nextInterval(completed, count, threshold)
	title := intervalType.Title()
	if task != nil && task.Title != "" {
		title = task.Title
	}

	return &Executor{
		Title:      title,
		Type:       intervalType,
		FreshStart: freshStart,
		Task:       task,
		start: func(ctx context.Context) (Interval, error) {
			return lifecycle.Create(ctx, intervalType, freshStart, task)
		},
	}, nil
}

func nextInterval(completed *Interval, count, threshold int) (Type, bool, *model.Task) {
	var task *model.Task
	if completed != nil {
		task = completed.Task
	}

	switch {
	case completed == nil:
	case completed.Type == TypeShortBreak:
		if task != nil {
			return TypeTask, false, task
		}
		return TypeFocus, false, nil
	case completed.Type == TypeLongBreak:
		if task != nil {
			return TypeTask, true, task
		}
		return TypeFocus, true, nil
	case completed.Type == TypeTask && task != nil:
		return TypeTask, false, task
	case completed.Type == TypeFocus && task != nil:
		return TypeTask, false, task
	}

	if threshold > 0 && count >= threshold {
		return TypeLongBreak, true, nil
	}
	return TypeShortBreak, false, nil
}
