package interval

import "time"

// State represents what the monitored store currently holds.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of Monitor event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
	EventError       EventType = "error"
)

// Event represents a Monitor update for observers.
type Event struct {
	Type      EventType
	State     State
	Interval  *Interval
	Remaining time.Duration
	Progress  float64
	Next      *Executor
	Message   string
	At        time.Time
}

// StateOf classifies an interval.
func StateOf(in *Interval) State {
	switch {
	case in == nil:
		return StateIdle
	case IsPaused(in):
		return StatePaused
	default:
		return StateRunning
	}
}
