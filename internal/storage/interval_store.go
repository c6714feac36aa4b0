package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"focusloop/internal/core/interval"
)

const (
	keyCurrentInterval        = "current-interval"
	keyCompletedPomodoroCount = "completed-pomodoro-count"
)

// IntervalStore keeps the current interval as JSON and the completed
// pomodoro counter as decimal text in a KV.
type IntervalStore struct {
	kv        KV
	mu        sync.Mutex
	observers []interval.ChangeObserver
}

// NewIntervalStore wraps kv.
func NewIntervalStore(kv KV) *IntervalStore {
	return &IntervalStore{kv: kv}
}

// OnIntervalChanged registers an observer called after every write to the
// current interval.
func (store *IntervalStore) OnIntervalChanged(observer interval.ChangeObserver) {
	if observer == nil {
		return
	}
	store.mu.Lock()
	store.observers = append(store.observers, observer)
	store.mu.Unlock()
}

// Current returns the stored interval or nil when absent.
func (store *IntervalStore) Current(ctx context.Context) (*interval.Interval, error) {
	raw, ok, err := store.kv.Get(ctx, keyCurrentInterval)
	if err != nil {
		return nil, fmt.Errorf("get current interval: %w", err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var current interval.Interval
	if err := json.Unmarshal([]byte(raw), &current); err != nil {
		return nil, fmt.Errorf("decode current interval: %w", err)
	}
	return &current, nil
}

// SetCurrent replaces the current interval.
func (store *IntervalStore) SetCurrent(ctx context.Context, in interval.Interval) error {
	previous, err := store.Current(ctx)
	if err != nil {
		return err
	}

	serialized, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode current interval: %w", err)
	}
	if err := store.kv.Set(ctx, keyCurrentInterval, string(serialized)); err != nil {
		return fmt.Errorf("set current interval: %w", err)
	}
	return store.notify(ctx, interval.Change{Previous: previous, Current: &in})
}

// RemoveCurrent deletes the current interval.
func (store *IntervalStore) RemoveCurrent(ctx context.Context) error {
	previous, err := store.Current(ctx)
	if err != nil {
		return err
	}
	if err := store.kv.Delete(ctx, keyCurrentInterval); err != nil {
		return fmt.Errorf("remove current interval: %w", err)
	}
	return store.notify(ctx, interval.Change{Previous: previous})
}

// CompletedCount returns the stored counter, 0 when absent or unreadable.
func (store *IntervalStore) CompletedCount(ctx context.Context) (int, error) {
	raw, ok, err := store.kv.Get(ctx, keyCompletedPomodoroCount)
	if err != nil {
		return 0, fmt.Errorf("get completed count: %w", err)
	}
	if !ok {
		return 0, nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, nil
	}
	return count, nil
}

// SetCompletedCount stores the counter.
func (store *IntervalStore) SetCompletedCount(ctx context.Context, count int) error {
	if err := store.kv.Set(ctx, keyCompletedPomodoroCount, strconv.Itoa(count)); err != nil {
		return fmt.Errorf("set completed count: %w", err)
	}
	return nil
}

func (store *IntervalStore) notify(ctx context.Context, change interval.Change) error {
	store.mu.Lock()
	observers := append([]interval.ChangeObserver(nil), store.observers...)
	store.mu.Unlock()

	var errs []error
	for _, observer := range observers {
		if err := observer(ctx, change); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", interval.ErrObserver, errors.Join(errs...))
}
