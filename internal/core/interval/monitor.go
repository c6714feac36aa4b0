package interval

import (
	"context"
	"sync"
	"time"
)

// MonitorConfig contains runtime options for Monitor.
type MonitorConfig struct {
	TickInterval time.Duration
}

// Monitor polls the store on a fixed tick and reports progress. When the
// current interval reaches 100% it asks the lifecycle for the next
// interval and publishes it without starting it.
type Monitor struct {
	mu        sync.Mutex
	pollMu    sync.Mutex
	lifecycle *Lifecycle
	options   MonitorConfig
	state     State
	events    []chan Event
	stopCh    chan struct{}
	running   bool
}

// NewMonitor creates a Monitor over lifecycle.
func NewMonitor(lifecycle *Lifecycle, options MonitorConfig) *Monitor {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Monitor{
		lifecycle: lifecycle,
		options:   options,
		state:     StateIdle,
	}
}

// Subscribe registers a new observer channel.
func (monitor *Monitor) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	monitor.mu.Lock()
	monitor.events = append(monitor.events, ch)
	monitor.mu.Unlock()
	return ch
}

// Start launches the polling loop.
func (monitor *Monitor) Start(ctx context.Context) {
	monitor.mu.Lock()
	if monitor.running {
		monitor.mu.Unlock()
		return
	}
	monitor.running = true
	monitor.stopCh = make(chan struct{})
	stopCh := monitor.stopCh
	monitor.mu.Unlock()

	monitor.Poll(ctx)
	go monitor.run(ctx, stopCh)
}

// Stop terminates the polling loop and closes observers.
func (monitor *Monitor) Stop() {
	monitor.mu.Lock()
	if !monitor.running {
		monitor.mu.Unlock()
		return
	}
	close(monitor.stopCh)
	monitor.running = false
	events := monitor.events
	monitor.events = nil
	monitor.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (monitor *Monitor) run(ctx context.Context, stopCh chan struct{}) {
	ticker := time.NewTicker(monitor.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			monitor.Poll(ctx)
		}
	}
}

// Poll re-reads the store once and emits the resulting events. Concurrent
// calls are serialized so a completion is reported once.
func (monitor *Monitor) Poll(ctx context.Context) {
	monitor.pollMu.Lock()
	defer monitor.pollMu.Unlock()

	at := monitor.lifecycle.clock.Now()
	current, err := monitor.lifecycle.Current(ctx)
	if err != nil {
		monitor.emit(Event{Type: EventError, State: monitor.currentState(), Message: err.Error(), At: at})
		return
	}

	state := StateOf(current)
	if monitor.swapState(state) {
		monitor.emit(Event{Type: EventStateChange, State: state, Interval: current, At: at})
	}
	if current == nil {
		return
	}

	now := Unix(at)
	progress := Progress(current, now)
	if progress < 100 {
		monitor.emit(Event{
			Type:      EventProgress,
			State:     state,
			Interval:  current,
			Remaining: time.Duration(Remaining(current, now)) * time.Second,
			Progress:  progress,
			At:        at,
		})
		return
	}

	next, err := monitor.lifecycle.NextExecutor(ctx)
	if err != nil {
		monitor.emit(Event{Type: EventError, State: state, Interval: current, Message: err.Error(), At: at})
		return
	}
	monitor.swapState(StateIdle)
	monitor.emit(Event{
		Type:     EventCompleted,
		State:    StateIdle,
		Interval: current,
		Progress: progress,
		Next:     next,
		Message:  current.Title() + " finished",
		At:       at,
	})
}

func (monitor *Monitor) currentState() State {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	return monitor.state
}

func (monitor *Monitor) swapState(state State) bool {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	if monitor.state == state {
		return false
	}
	monitor.state = state
	return true
}

func (monitor *Monitor) emit(event Event) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	for _, ch := range monitor.events {
		select {
		case ch <- event:
		default:
		}
	}
}
