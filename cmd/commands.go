package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"focusloop/internal/core/interval"
	"focusloop/internal/core/model"
	"focusloop/internal/storage"
	"focusloop/internal/ui/preferences"
	"focusloop/internal/ui/status"
)

// cmdStart handles `focusloop start <type> [task-id] [--fresh]`.
func cmdStart(ctx context.Context, args []string) int {
	fresh := false
	positional := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--fresh" || arg == "-f" {
			fresh = true
			continue
		}
		positional = append(positional, arg)
	}
	if len(positional) == 0 {
		fmt.Fprintln(os.Stderr, "start: interval type required (focus, short-break, long-break, task <id>)")
		return 2
	}

	intervalType, err := interval.ParseType(positional[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v: %s\n", err, positional[0])
		return 2
	}

	app, err := openApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		return 1
	}
	defer app.Close()

	var task *model.Task
	if intervalType == interval.TypeTask {
		if len(positional) < 2 {
			fmt.Fprintln(os.Stderr, "start: task id required")
			return 2
		}
		found, err := app.tasks.FindTask(ctx, positional[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "start: %v\n", err)
			return 1
		}
		task = &found
	}

	created, err := app.lifecycle.Create(ctx, intervalType, fresh, task)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start: %v\n", err)
		if isUsageError(err) {
			return 2
		}
		return 1
	}
	fmt.Printf("Started %s (%s)\n", created.Title(), status.FormatClock(created.IntervalLength))
	return 0
}

// cmdPause handles `focusloop pause`.
func cmdPause(ctx context.Context, _ []string) int {
	app, err := openApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pause: %v\n", err)
		return 1
	}
	defer app.Close()

	paused, err := app.lifecycle.Pause(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pause: %v\n", err)
		return 1
	}
	if paused == nil {
		fmt.Println("No interval running.")
		return 0
	}
	fmt.Printf("Paused %s\n", status.Line(paused, app.lifecycle.Now()))
	return 0
}

// cmdResume handles `focusloop resume`.
func cmdResume(ctx context.Context, _ []string) int {
	app, err := openApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resume: %v\n", err)
		return 1
	}
	defer app.Close()

	resumed, err := app.lifecycle.Continue(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resume: %v\n", err)
		return 1
	}
	if resumed == nil {
		fmt.Println("No interval to resume.")
		return 0
	}
	fmt.Printf("Resumed %s\n", status.Line(resumed, app.lifecycle.Now()))
	return 0
}

// cmdReset handles `focusloop reset`.
func cmdReset(ctx context.Context, _ []string) int {
	app, err := openApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reset: %v\n", err)
		return 1
	}
	defer app.Close()

	if err := app.lifecycle.Reset(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "reset: %v\n", err)
		return 1
	}
	fmt.Println("Interval cleared.")
	return 0
}

// cmdStatus handles `focusloop status`.
func cmdStatus(ctx context.Context, _ []string) int {
	app, err := openApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: %v\n", err)
		return 1
	}
	defer app.Close()

	current, err := app.lifecycle.Current(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: %v\n", err)
		return 1
	}
	count, err := app.intervals.CompletedCount(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "status: %v\n", err)
		return 1
	}

	now := app.lifecycle.Now()
	fmt.Print(status.Render(status.Snapshot{
		Interval:  current,
		Now:       now,
		Completed: count,
		Threshold: app.settings.LongBreakStartThreshold,
	}))
	if interval.Completed(current, now) {
		fmt.Println("Run `focusloop next` to pick the next interval.")
	}
	return 0
}

// cmdNext handles `focusloop next [--start]`.
func cmdNext(ctx context.Context, args []string) int {
	start := false
	for _, arg := range args {
		switch arg {
		case "--start", "-s":
			start = true
		default:
			fmt.Fprintf(os.Stderr, "next: unknown argument %s\n", arg)
			return 2
		}
	}

	app, err := openApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "next: %v\n", err)
		return 1
	}
	defer app.Close()

	current, err := app.lifecycle.Current(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "next: %v\n", err)
		return 1
	}
	if current != nil && !interval.Completed(current, app.lifecycle.Now()) {
		fmt.Fprintf(os.Stderr, "next: %s is still running; use reset to stop it\n", current.Title())
		return 1
	}

	executor, err := app.lifecycle.NextExecutor(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "next: %v\n", err)
		return 1
	}
	if !start {
		fmt.Printf("Next: %s\n", describeExecutor(executor))
		return 0
	}

	created, err := executor.Start(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "next: %v\n", err)
		return 1
	}
	fmt.Printf("Started %s (%s)\n", created.Title(), status.FormatClock(created.IntervalLength))
	return 0
}

func describeExecutor(executor *interval.Executor) string {
	label := executor.Title
	if executor.Type == interval.TypeTask {
		label = fmt.Sprintf("%s [task]", label)
	}
	if executor.FreshStart {
		label += ", new cycle"
	}
	return label
}

// cmdTask handles `focusloop task add|list`.
func cmdTask(ctx context.Context, args []string) int {
	if len(args) == 0 {
		args = []string{"list"}
	}

	app, err := openApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "task: %v\n", err)
		return 1
	}
	defer app.Close()

	switch args[0] {
	case "add", "a":
		return taskAdd(ctx, app, args[1:])
	case "list", "ls", "l":
		return taskList(ctx, app)
	default:
		fmt.Fprintf(os.Stderr, "task: unknown subcommand %s\n", args[0])
		return 2
	}
}

func taskAdd(ctx context.Context, app *application, args []string) int {
	var minutes *int
	titleParts := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		if args[i] == "--minutes" || args[i] == "-m" {
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "task add: --minutes needs a value")
				return 2
			}
			value, err := strconv.Atoi(args[i+1])
			if err != nil || value <= 0 {
				fmt.Fprintln(os.Stderr, "task add: invalid minutes")
				return 2
			}
			minutes = &value
			i++
			continue
		}
		titleParts = append(titleParts, args[i])
	}

	task, err := app.tasks.CreateTask(ctx, strings.Join(titleParts, " "), minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "task add: %v\n", err)
		return 1
	}
	fmt.Printf("Saved %s as %s\n", task.Title, shortID(task.ID))
	return 0
}

func taskList(ctx context.Context, app *application) int {
	tasks, err := app.tasks.ListTasks(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "task list: %v\n", err)
		return 1
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks yet.")
		return 0
	}

	fmt.Printf("%-10s %-9s %-9s %s\n", "ID", "SPENT", "LENGTH", "TITLE")
	for _, task := range tasks {
		length := "default"
		if task.CustomDuration != nil {
			length = fmt.Sprintf("%dm", *task.CustomDuration)
		}
		fmt.Printf("%-10s %-9s %-9s %s\n", shortID(task.ID), status.FormatClock(task.TotalTimeSpent), length, task.Title)
	}
	return 0
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// cmdConfig handles `focusloop config [--focus N] [--short N] [--long N] [--threshold N]`.
func cmdConfig(_ context.Context, args []string) int {
	configDir, err := resolveConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	path := storage.SettingsPath(configDir)
	settings, err := storage.LoadSettings(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		if len(args) > 0 {
			fmt.Fprintf(os.Stderr, "config: fix or remove %s before changing settings\n", path)
			return 1
		}
	}

	if len(args) == 0 {
		printConfig(path, settings)
		return 0
	}

	var form preferences.Form
	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			fmt.Fprintf(os.Stderr, "config: %s needs a value\n", args[i])
			return 2
		}
		value := args[i+1]
		if _, err := strconv.Atoi(value); err != nil {
			fmt.Fprintf(os.Stderr, "config: invalid value %q for %s\n", value, args[i])
			return 2
		}
		switch args[i] {
		case "--focus":
			form.Focus = value
		case "--short":
			form.ShortBreak = value
		case "--long":
			form.LongBreak = value
		case "--threshold":
			form.Threshold = value
		default:
			fmt.Fprintf(os.Stderr, "config: unknown argument %s\n", args[i])
			return 2
		}
		i++
	}

	settings = preferences.Apply(settings, form)
	if err := storage.SaveSettings(path, settings); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	printConfig(path, settings)
	return 0
}

func printConfig(path string, settings preferences.Settings) {
	fmt.Printf("Config file: %s\n\n", path)
	fmt.Printf("Focus:            %s\n", settings.FocusDuration)
	fmt.Printf("Short break:      %s\n", settings.ShortBreakDuration)
	fmt.Printf("Long break:       %s\n", settings.LongBreakDuration)
	fmt.Printf("Long break after: %d cycles\n", settings.LongBreakStartThreshold)
}

func isUsageError(err error) bool {
	return errors.Is(err, interval.ErrUnknownType) || errors.Is(err, interval.ErrTaskRequired)
}
