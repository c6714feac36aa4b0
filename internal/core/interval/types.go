package interval

import (
	"errors"

	"focusloop/internal/core/model"
)

var (
	// ErrTaskRequired is returned when a task interval is created without a task.
	ErrTaskRequired = errors.New("task input required")
	// ErrUnknownType is returned for interval types outside the known set.
	ErrUnknownType = errors.New("unknown interval type")
)

// Type identifies the kind of an interval.
type Type string

const (
	TypeFocus      Type = "focus"
	TypeShortBreak Type = "short-break"
	TypeLongBreak  Type = "long-break"
	TypeTask       Type = "task"
)

// Types lists every interval type in display order.
var Types = []Type{TypeFocus, TypeShortBreak, TypeLongBreak, TypeTask}

// ParseType validates a textual interval type.
func ParseType(value string) (Type, error) {
	for _, candidate := range Types {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", ErrUnknownType
}

// Title returns a human-readable label for the interval type.
func (t Type) Title() string {
	switch t {
	case TypeFocus:
		return "Focus"
	case TypeShortBreak:
		return "Short Break"
	case TypeLongBreak:
		return "Long Break"
	case TypeTask:
		return "Task"
	default:
		return "Unknown"
	}
}

// Part is one contiguous running segment of an interval, in Unix seconds.
// PausedAt is nil while the segment is live.
type Part struct {
	StartedAt int64  `json:"startedAt"`
	PausedAt  *int64 `json:"pausedAt,omitempty"`
}

// Closed reports whether the segment has been paused.
func (part Part) Closed() bool {
	return part.PausedAt != nil
}

// Interval is the single active timer.
type Interval struct {
	Type           Type        `json:"type"`
	IntervalLength int64       `json:"intervalLength"`
	Parts          []Part      `json:"parts"`
	Task           *model.Task `json:"task,omitempty"`
	// Credited is the number of seconds already folded into Task.TotalTimeSpent.
	Credited int64 `json:"credited,omitempty"`
}

// Title returns the task title for task-bound intervals, else the type label.
func (in Interval) Title() string {
	if in.Task != nil && in.Task.Title != "" {
		return in.Task.Title
	}
	return in.Type.Title()
}
