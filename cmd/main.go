package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const appName = "focusloop"

// Version is the current CLI version string.
const Version = "v0.3"

// PrintHelp prints the CLI usage.
func PrintHelp() {
	fmt.Print(`focusloop: pomodoro intervals with task time tracking

Usage:
  focusloop <command> [args]

Commands:
  start, s       Start an interval: focus, short-break, long-break or task <id>
  pause, p       Pause the running interval
  resume, r      Resume a paused interval
  reset          Stop and clear the current interval
  status, st     Show the current interval
  next, n        Show (or --start) the interval that follows a finished one
  task, t        Manage tasks: add <title> [--minutes N], list
  config, c      View or change durations and the long-break threshold
  tray           Run the menu-bar display
  help, h        Show this help
  version, -v    Show version

Examples:
  focusloop start focus
  focusloop task add "Write report" --minutes 50
  focusloop start task 1a2b3c4d
  focusloop next --start
  focusloop config --focus 30 --threshold 3

Set FOCUSLOOP_HOME to use a different data directory.
`)
}

func run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		PrintHelp()
		return 0
	}

	command, rest := args[0], args[1:]
	switch command {
	case "start", "s":
		return cmdStart(ctx, rest)
	case "pause", "p":
		return cmdPause(ctx, rest)
	case "resume", "r", "continue":
		return cmdResume(ctx, rest)
	case "reset":
		return cmdReset(ctx, rest)
	case "status", "st":
		return cmdStatus(ctx, rest)
	case "next", "n":
		return cmdNext(ctx, rest)
	case "task", "t":
		return cmdTask(ctx, rest)
	case "config", "c":
		return cmdConfig(ctx, rest)
	case "tray":
		return cmdTray(ctx, rest)
	case "help", "h", "-h", "--help":
		PrintHelp()
		return 0
	case "version", "-v", "--version":
		fmt.Println(Version)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %s\n\n", command)
		PrintHelp()
		return 2
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}
