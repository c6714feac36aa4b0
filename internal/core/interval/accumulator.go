package interval

import (
	"context"
	"fmt"

	"focusloop/internal/core/model"
)

// Accumulator folds interval time into the attached task's TotalTimeSpent.
// Time is credited at transition points so a crash loses at most the open
// segment. Totals are always read back from the task store; the snapshot
// carried by an interval may be stale.
type Accumulator struct {
	tasks TaskUpdater
}

// NewAccumulator creates an accumulator writing through tasks.
func NewAccumulator(tasks TaskUpdater) *Accumulator {
	return &Accumulator{tasks: tasks}
}

// Refresh returns the stored copy of task, or task itself when the store
// does not know it yet.
func (acc *Accumulator) Refresh(ctx context.Context, task model.Task) (model.Task, error) {
	if acc.tasks == nil {
		return task, nil
	}
	stored, err := acc.tasks.LookupTask(ctx, task.ID)
	if err != nil {
		return model.Task{}, fmt.Errorf("load task %s: %w", task.ID, err)
	}
	if stored == nil {
		return task, nil
	}
	return *stored, nil
}

// Credit adds the not yet credited part of the interval's duration to its
// task and refreshes the interval's task snapshot. Intervals without a task
// are left untouched.
func (acc *Accumulator) Credit(ctx context.Context, in *Interval, now int64) error {
	if in == nil || in.Task == nil || acc.tasks == nil {
		return nil
	}
	elapsed := Duration(in.Parts, now)
	delta := elapsed - in.Credited
	if delta <= 0 {
		return nil
	}

	task, err := acc.Refresh(ctx, *in.Task)
	if err != nil {
		return fmt.Errorf("credit task: %w", err)
	}
	task.TotalTimeSpent += delta
	if len(in.Parts) > 0 {
		startedAt := in.Parts[len(in.Parts)-1].StartedAt
		task.LastStartedAt = &startedAt
	}
	updated, err := acc.tasks.UpdateTask(ctx, task)
	if err != nil {
		return fmt.Errorf("credit task %s: %w", task.ID, err)
	}
	in.Task = &updated
	in.Credited = elapsed
	return nil
}

// Uncredit takes back what Credit added since credited and restores the
// interval's Credited mark.
func (acc *Accumulator) Uncredit(ctx context.Context, in *Interval, credited int64) error {
	if in == nil || in.Task == nil || acc.tasks == nil {
		return nil
	}
	delta := in.Credited - credited
	if delta <= 0 {
		return nil
	}

	task, err := acc.Refresh(ctx, *in.Task)
	if err != nil {
		return fmt.Errorf("uncredit task: %w", err)
	}
	task.TotalTimeSpent -= delta
	if task.TotalTimeSpent < 0 {
		task.TotalTimeSpent = 0
	}
	updated, err := acc.tasks.UpdateTask(ctx, task)
	if err != nil {
		return fmt.Errorf("uncredit task %s: %w", task.ID, err)
	}
	in.Task = &updated
	in.Credited = credited
	return nil
}

// Sync is a Store observer: when a running interval carrying a task is
// written, the stored task is stamped as resumed. Only LastStartedAt
// changes.
func (acc *Accumulator) Sync(ctx context.Context, change Change) error {
	if change.Current == nil || change.Current.Task == nil || acc.tasks == nil {
		return nil
	}
	if IsPaused(change.Current) {
		return nil
	}
	last := change.Current.Parts[len(change.Current.Parts)-1]
	if previous := change.Previous; previous != nil && !IsPaused(previous) &&
		previous.Parts[len(previous.Parts)-1].StartedAt == last.StartedAt {
		return nil
	}

	task, err := acc.Refresh(ctx, *change.Current.Task)
	if err != nil {
		return fmt.Errorf("sync task: %w", err)
	}
	startedAt := last.StartedAt
	task.LastStartedAt = &startedAt
	if _, err := acc.tasks.UpdateTask(ctx, task); err != nil {
		return fmt.Errorf("sync task %s: %w", task.ID, err)
	}
	return nil
}
