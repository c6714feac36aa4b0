package interval

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"focusloop/internal/core/model"
)

// Lifecycle is the interval state machine: NoInterval, Running and Paused.
// Operations on a missing interval are no-ops because companion surfaces
// may clear the shared store at any time.
type Lifecycle struct {
	mu          sync.Mutex
	config      model.IntervalConfig
	store       Store
	clock       Clock
	accumulator *Accumulator
}

// New creates a Lifecycle. The task accumulator is registered as an
// interval-change observer on store.
func New(config model.IntervalConfig, store Store, tasks TaskUpdater, clock Clock) *Lifecycle {
	if clock == nil {
		clock = SystemClock{}
	}
	accumulator := NewAccumulator(tasks)
	store.OnIntervalChanged(accumulator.Sync)

	return &Lifecycle{
		config:      config,
		store:       store,
		clock:       clock,
		accumulator: accumulator,
	}
}

// UpdateConfig replaces durations and the long-break threshold. Running
// intervals keep the length they were created with.
func (lifecycle *Lifecycle) UpdateConfig(config model.IntervalConfig) {
	lifecycle.mu.Lock()
	lifecycle.config = config
	lifecycle.mu.Unlock()
}

// Config returns the active configuration.
func (lifecycle *Lifecycle) Config() model.IntervalConfig {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()
	return lifecycle.config
}

// Now returns the lifecycle clock in Unix seconds.
func (lifecycle *Lifecycle) Now() int64 {
	return Unix(lifecycle.clock.Now())
}

// Current returns the stored interval, or nil.
func (lifecycle *Lifecycle) Current(ctx context.Context) (*Interval, error) {
	return lifecycle.store.Current(ctx)
}

// Create starts a new interval, replacing any current one. A fresh start
// resets the completed counter; otherwise the counter is incremented.
func (lifecycle *Lifecycle) Create(ctx context.Context, intervalType Type, freshStart bool, task *model.Task) (Interval, error) {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	if intervalType == TypeTask && task == nil {
		return Interval{}, ErrTaskRequired
	}
	length, err := lifecycle.lengthLocked(intervalType, task)
	if err != nil {
		return Interval{}, err
	}

	now := lifecycle.Now()
	previous, err := lifecycle.store.Current(ctx)
	if err != nil {
		return Interval{}, fmt.Errorf("create interval: %w", err)
	}

	created := Interval{
		Type:           intervalType,
		IntervalLength: length,
		Parts:          []Part{{StartedAt: now}},
	}
	err = lifecycle.creditLocked(ctx, previous, now, func() error {
		if task != nil {
			snapshot, err := lifecycle.accumulator.Refresh(ctx, *task)
			if err != nil {
				return err
			}
			created.Task = &snapshot
		}
		return lifecycle.store.SetCurrent(ctx, created)
	})
	if err != nil {
		return Interval{}, fmt.Errorf("create interval: %w", err)
	}

	count := 0
	if !freshStart {
		count, err = lifecycle.store.CompletedCount(ctx)
		if err != nil {
			return Interval{}, fmt.Errorf("create interval: %w", err)
		}
		count++
	}
	if err := lifecycle.store.SetCompletedCount(ctx, count); err != nil {
		return Interval{}, fmt.Errorf("create interval: %w", err)
	}

	return created, nil
}

// Pause closes the live part of the current interval and credits the task.
// It returns nil when there is no interval.
func (lifecycle *Lifecycle) Pause(ctx context.Context) (*Interval, error) {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	current, err := lifecycle.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("pause interval: %w", err)
	}
	if current == nil || IsPaused(current) {
		return current, nil
	}

	now := lifecycle.Now()
	current.Parts[len(current.Parts)-1].PausedAt = &now
	err = lifecycle.creditLocked(ctx, current, now, func() error {
		return lifecycle.store.SetCurrent(ctx, *current)
	})
	if err != nil {
		return nil, fmt.Errorf("pause interval: %w", err)
	}
	return current, nil
}

// Continue appends a new live part to a paused interval. It returns nil
// when there is no interval.
func (lifecycle *Lifecycle) Continue(ctx context.Context) (*Interval, error) {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	current, err := lifecycle.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("continue interval: %w", err)
	}
	if current == nil || !IsPaused(current) {
		return current, nil
	}

	current.Parts = append(current.Parts, Part{StartedAt: lifecycle.Now()})
	if err := lifecycle.store.SetCurrent(ctx, *current); err != nil {
		return nil, fmt.Errorf("continue interval: %w", err)
	}
	return current, nil
}

// Reset credits any uncredited time to the task and removes the current
// interval.
func (lifecycle *Lifecycle) Reset(ctx context.Context) error {
	lifecycle.mu.Lock()
	defer lifecycle.mu.Unlock()

	_, err := lifecycle.resetLocked(ctx)
	return err
}

func (lifecycle *Lifecycle) resetLocked(ctx context.Context) (*Interval, error) {
	current, err := lifecycle.store.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("reset interval: %w", err)
	}
	if current == nil {
		return nil, nil
	}

	err = lifecycle.creditLocked(ctx, current, lifecycle.Now(), func() error {
		return lifecycle.store.RemoveCurrent(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("reset interval: %w", err)
	}
	return current, nil
}

// creditLocked credits in's task and then runs persist, which must record
// the new Credited mark. When persist fails before the write lands, the
// credit is taken back so the same seconds are not counted twice.
func (lifecycle *Lifecycle) creditLocked(ctx context.Context, in *Interval, now int64, persist func() error) error {
	var credited int64
	if in != nil {
		credited = in.Credited
	}
	if err := lifecycle.accumulator.Credit(ctx, in, now); err != nil {
		return err
	}

	err := persist()
	if err == nil || errors.Is(err, ErrObserver) {
		return err
	}
	if undoErr := lifecycle.accumulator.Uncredit(ctx, in, credited); undoErr != nil {
		return errors.Join(err, undoErr)
	}
	return err
}

func (lifecycle *Lifecycle) lengthLocked(intervalType Type, task *model.Task) (int64, error) {
	var length int64
	switch intervalType {
	case TypeFocus:
		length = model.Seconds(lifecycle.config.Focus)
	case TypeShortBreak:
		length = model.Seconds(lifecycle.config.ShortBreak)
	case TypeLongBreak:
		length = model.Seconds(lifecycle.config.LongBreak)
	case TypeTask:
		length = model.Seconds(lifecycle.config.Focus)
		if task != nil && task.CustomDuration != nil && *task.CustomDuration > 0 {
			length = int64(*task.CustomDuration) * 60
		}
	default:
		return 0, fmt.Errorf("create interval %q: %w", intervalType, ErrUnknownType)
	}
	if length <= 0 {
		return 0, fmt.Errorf("create interval %q: length must be positive", intervalType)
	}
	return length, nil
}
