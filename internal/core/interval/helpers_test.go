package interval_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"focusloop/internal/core/interval"
	"focusloop/internal/core/model"
	"focusloop/internal/storage"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(seconds int64) {
	clock.mu.Lock()
	clock.now = clock.now.Add(time.Duration(seconds) * time.Second)
	clock.mu.Unlock()
}

type fakeTasks struct {
	mu      sync.Mutex
	tasks   map[string]model.Task
	updates int
}

func newFakeTasks(tasks ...model.Task) *fakeTasks {
	fake := &fakeTasks{tasks: make(map[string]model.Task)}
	for _, task := range tasks {
		fake.tasks[task.ID] = task
	}
	return fake
}

func (fake *fakeTasks) LookupTask(_ context.Context, id string) (*model.Task, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	task, ok := fake.tasks[id]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

func (fake *fakeTasks) UpdateTask(_ context.Context, task model.Task) (model.Task, error) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.tasks[task.ID] = task
	fake.updates++
	return task, nil
}

func (fake *fakeTasks) get(id string) model.Task {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.tasks[id]
}

func testConfig() model.IntervalConfig {
	return model.IntervalConfig{
		Focus:                   25 * time.Minute,
		ShortBreak:              5 * time.Minute,
		LongBreak:               15 * time.Minute,
		LongBreakStartThreshold: 4,
	}
}

type fixture struct {
	clock     *fakeClock
	store     *storage.IntervalStore
	tasks     *fakeTasks
	lifecycle *interval.Lifecycle
}

func newFixture(t *testing.T, tasks ...model.Task) *fixture {
	t.Helper()
	clock := newFakeClock()
	store := storage.NewIntervalStore(storage.NewMemoryKV())
	fakes := newFakeTasks(tasks...)
	return &fixture{
		clock:     clock,
		store:     store,
		tasks:     fakes,
		lifecycle: interval.New(testConfig(), store, fakes, clock),
	}
}

// flakyStore fails interval writes while failWrites is set.
type flakyStore struct {
	*storage.IntervalStore
	failWrites bool
}

var errWriteFailed = errors.New("write failed")

func (store *flakyStore) SetCurrent(ctx context.Context, in interval.Interval) error {
	if store.failWrites {
		return errWriteFailed
	}
	return store.IntervalStore.SetCurrent(ctx, in)
}

func (store *flakyStore) RemoveCurrent(ctx context.Context) error {
	if store.failWrites {
		return errWriteFailed
	}
	return store.IntervalStore.RemoveCurrent(ctx)
}

func closedAt(seconds int64) *int64 {
	return &seconds
}
