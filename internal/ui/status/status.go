package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"focusloop/internal/core/interval"
)

const barWidth = 30

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pausedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Snapshot is everything a status line needs.
type Snapshot struct {
	Interval  *interval.Interval
	Now       int64
	Completed int
	Threshold int
}

// FormatClock renders seconds as mm:ss, or h:mm:ss past an hour.
func FormatClock(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Line is a one-line summary used by the tray status item.
func Line(in *interval.Interval, now int64) string {
	if in == nil {
		return "idle"
	}
	label := fmt.Sprintf("%s %s left", in.Title(), FormatClock(interval.Remaining(in, now)))
	if interval.IsPaused(in) {
		label += " (paused)"
	}
	return label
}

// Render draws the multi-line status block for the CLI.
func Render(snapshot Snapshot) string {
	var builder strings.Builder
	in := snapshot.Interval

	if in == nil {
		builder.WriteString(titleStyle.Render("No interval running"))
		builder.WriteString("\n")
		builder.WriteString(mutedStyle.Render(fmt.Sprintf("Completed cycles: %d/%d", snapshot.Completed, snapshot.Threshold)))
		builder.WriteString("\n")
		return builder.String()
	}

	progress := interval.Progress(in, snapshot.Now)
	state := runningStyle.Render("running")
	switch {
	case progress >= 100:
		state = doneStyle.Render("finished")
	case interval.IsPaused(in):
		state = pausedStyle.Render("paused")
	}

	builder.WriteString(titleStyle.Render(in.Title()))
	builder.WriteString(" ")
	builder.WriteString(mutedStyle.Render("[" + string(in.Type) + "]"))
	builder.WriteString(" ")
	builder.WriteString(state)
	builder.WriteString("\n")

	builder.WriteString(bar(progress))
	builder.WriteString(fmt.Sprintf(" %3.0f%%\n", clampPercent(progress)))

	elapsed := interval.Duration(in.Parts, snapshot.Now)
	builder.WriteString(fmt.Sprintf("Elapsed %s / %s, %s left\n",
		FormatClock(elapsed),
		FormatClock(in.IntervalLength),
		FormatClock(interval.Remaining(in, snapshot.Now)),
	))
	if in.Task != nil {
		builder.WriteString(mutedStyle.Render(fmt.Sprintf("Task total: %s", FormatClock(in.Task.TotalTimeSpent+elapsed-in.Credited))))
		builder.WriteString("\n")
	}
	builder.WriteString(mutedStyle.Render(fmt.Sprintf("Completed cycles: %d/%d", snapshot.Completed, snapshot.Threshold)))
	builder.WriteString("\n")
	return builder.String()
}

func bar(progress float64) string {
	filled := int(clampPercent(progress) / 100 * barWidth)
	return runningStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", barWidth-filled))
}

func clampPercent(progress float64) float64 {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
