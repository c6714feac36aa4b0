package interval

import "time"

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Unix rounds a time to whole seconds since the epoch.
func Unix(at time.Time) int64 {
	return at.Round(time.Second).Unix()
}

// Duration sums the elapsed seconds of all parts. The open trailing part, if
// any, runs until now.
func Duration(parts []Part, now int64) int64 {
	var total int64
	for _, part := range parts {
		if part.PausedAt != nil {
			total += *part.PausedAt - part.StartedAt
			continue
		}
		total += now - part.StartedAt
	}
	return total
}

// Progress returns elapsed time as a percentage of the interval length.
// The value is not clamped; callers treat >= 100 as complete.
func Progress(in *Interval, now int64) float64 {
	if in == nil || in.IntervalLength <= 0 {
		return 0
	}
	return float64(Duration(in.Parts, now)) / float64(in.IntervalLength) * 100
}

// Completed reports whether the interval has run its full length.
func Completed(in *Interval, now int64) bool {
	return in != nil && Progress(in, now) >= 100
}

// Remaining returns the seconds left before the interval completes.
func Remaining(in *Interval, now int64) int64 {
	if in == nil {
		return 0
	}
	remaining := in.IntervalLength - Duration(in.Parts, now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsPaused reports whether the interval has no live part.
func IsPaused(in *Interval) bool {
	if in == nil || len(in.Parts) == 0 {
		return true
	}
	return in.Parts[len(in.Parts)-1].Closed()
}
