package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"focusloop/internal/core/interval"
	"focusloop/internal/platform"
	"focusloop/internal/storage"
	"focusloop/internal/ui/preferences"
	"focusloop/internal/ui/status"
	"focusloop/internal/ui/tray"
)

// pendingNext holds the executor offered after the last completed interval.
type pendingNext struct {
	mu       sync.Mutex
	executor *interval.Executor
}

func (pending *pendingNext) set(executor *interval.Executor) {
	pending.mu.Lock()
	pending.executor = executor
	pending.mu.Unlock()
}

func (pending *pendingNext) take() *interval.Executor {
	pending.mu.Lock()
	defer pending.mu.Unlock()
	executor := pending.executor
	pending.executor = nil
	return executor
}

// cmdTray runs the menu-bar display. It polls the shared database once per
// second, so CLI commands issued meanwhile show up on the next tick.
func cmdTray(ctx context.Context, _ []string) int {
	app, err := openApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tray: %v\n", err)
		return 1
	}
	defer app.Close()

	lock, err := platform.AcquireSingleInstance(appName + ":" + app.configDir)
	if err != nil {
		log.Printf("tray: %v", err)
		return 0
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Printf("release instance lock: %v", err)
		}
	}()

	interrupted := ctx.Done()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fyneApp := fyneapp.NewWithID("com.focusloop.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return 1
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("focusloop is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	monitor := interval.NewMonitor(app.lifecycle, interval.MonitorConfig{TickInterval: time.Second})
	next := &pendingNext{}

	prefsWindow := preferences.New(fyneApp, app.settings, func(updated preferences.Settings) {
		if err := storage.SaveSettings(app.settingsPath(), updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		app.lifecycle.UpdateConfig(updated.IntervalConfig())
	})

	if err := storage.WatchSettings(ctx, app.settingsPath(), func(updated preferences.Settings) {
		app.lifecycle.UpdateConfig(updated.IntervalConfig())
		fyne.Do(func() {
			prefsWindow.UpdateSettings(updated)
		})
	}); err != nil {
		log.Printf("settings reload disabled: %v", err)
	}

	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnStart: func(intervalType interval.Type) {
			next.set(nil)
			trayManager.SetNext("")
			if _, err := app.lifecycle.Create(ctx, intervalType, false, nil); err != nil {
				log.Printf("start %s: %v", intervalType, err)
			}
			monitor.Poll(ctx)
		},
		OnTogglePause: func() {
			if err := togglePause(ctx, app.lifecycle); err != nil {
				log.Printf("toggle pause: %v", err)
			}
			monitor.Poll(ctx)
		},
		OnReset: func() {
			if err := app.lifecycle.Reset(ctx); err != nil {
				log.Printf("reset: %v", err)
			}
			monitor.Poll(ctx)
		},
		OnStartNext: func() {
			trayManager.SetNext("")
			executor := next.take()
			if executor == nil {
				return
			}
			if _, err := executor.Start(ctx); err != nil {
				log.Printf("start next: %v", err)
			}
			monitor.Poll(ctx)
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
		OnQuit: func() {
			monitor.Stop()
			fyneApp.Quit()
		},
	})
	desktopApp.SetSystemTrayIcon(theme.MediaStopIcon())

	events := monitor.Subscribe(5)
	go func() {
		for event := range events {
			fyne.Do(func() {
				handleMonitorEvent(event, fyneApp, desktopApp, trayManager, next)
			})
		}
	}()

	go func() {
		select {
		case <-interrupted:
			fyne.Do(fyneApp.Quit)
		case <-ctx.Done():
		}
	}()

	monitor.Start(ctx)
	fyneApp.Run()
	monitor.Stop()
	return 0
}

func togglePause(ctx context.Context, lifecycle *interval.Lifecycle) error {
	current, err := lifecycle.Current(ctx)
	if err != nil {
		return err
	}
	if interval.IsPaused(current) {
		_, err = lifecycle.Continue(ctx)
		return err
	}
	_, err = lifecycle.Pause(ctx)
	return err
}

func handleMonitorEvent(event interval.Event, fyneApp fyne.App, desktopApp desktop.App, trayManager *tray.Manager, next *pendingNext) {
	switch event.Type {
	case interval.EventStateChange:
		trayManager.SetState(event.State)
		desktopApp.SetSystemTrayIcon(iconFor(event.State))
		if event.State != interval.StateIdle {
			next.set(nil)
			trayManager.SetNext("")
		}
		trayManager.SetStatus(status.Line(event.Interval, interval.Unix(event.At)))
	case interval.EventProgress:
		trayManager.SetStatus(status.Line(event.Interval, interval.Unix(event.At)))
	case interval.EventCompleted:
		next.set(event.Next)
		trayManager.SetState(interval.StateIdle)
		desktopApp.SetSystemTrayIcon(iconFor(interval.StateIdle))
		trayManager.SetStatus(event.Message)
		trayManager.SetNext(event.Next.Title)
		fyneApp.SendNotification(fyne.NewNotification(appName, fmt.Sprintf("%s. Up next: %s", event.Message, event.Next.Title)))
	case interval.EventError:
		log.Printf("monitor: %s", event.Message)
	}
}

func iconFor(state interval.State) fyne.Resource {
	switch state {
	case interval.StateRunning:
		return theme.MediaPlayIcon()
	case interval.StatePaused:
		return theme.MediaPauseIcon()
	default:
		return theme.MediaStopIcon()
	}
}
