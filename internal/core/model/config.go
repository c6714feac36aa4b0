package model

import "time"

// IntervalConfig contains the planned lengths of each interval kind and the
// cycle count at which a long break is offered instead of a short one.
type IntervalConfig struct {
	Focus      time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	LongBreakStartThreshold int
}

// Seconds converts a configured duration to whole seconds.
func Seconds(duration time.Duration) int64 {
	return int64(duration / time.Second)
}
