package interval

import (
	"context"
	"errors"

	"focusloop/internal/core/model"
)

// ErrObserver marks errors raised by change observers after the write
// itself succeeded.
var ErrObserver = errors.New("interval change observer failed")

// Change describes a write to the current-interval slot. Current is nil
// after a removal.
type Change struct {
	Previous *Interval
	Current  *Interval
}

// ChangeObserver is notified after the current interval is written.
type ChangeObserver func(ctx context.Context, change Change) error

// Store persists the current interval and the completed pomodoro counter.
type Store interface {
	Current(ctx context.Context) (*Interval, error)
	SetCurrent(ctx context.Context, in Interval) error
	RemoveCurrent(ctx context.Context) error
	CompletedCount(ctx context.Context) (int, error)
	SetCompletedCount(ctx context.Context, count int) error
	OnIntervalChanged(observer ChangeObserver)
}

// TaskUpdater reads and upserts tasks by id. LookupTask returns nil for an
// unknown id.
type TaskUpdater interface {
	LookupTask(ctx context.Context, id string) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) (model.Task, error)
}
