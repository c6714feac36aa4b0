package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"focusloop/internal/core/interval"
)

const menuTitle = "focusloop"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStart       func(interval.Type)
	OnTogglePause func()
	OnReset       func()
	OnStartNext   func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	statusLabel string
	nextLabel   string
	state       interval.State
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
		state:       interval.StateIdle,
	}
	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshMenu()
}

// SetState toggles the menu items that depend on the interval state.
func (manager *Manager) SetState(state interval.State) {
	manager.state = state
	manager.refreshMenu()
}

// SetNext offers the next interval; an empty title hides the item.
func (manager *Manager) SetNext(title string) {
	manager.nextLabel = title
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle, manager.items()...))
}

func (manager *Manager) items() []*fyne.MenuItem {
	status := fyne.NewMenuItem(fmt.Sprintf("Status: %s", manager.statusLabel), nil)
	status.Disabled = true
	items := []*fyne.MenuItem{status}

	if manager.nextLabel != "" {
		items = append(items, fyne.NewMenuItem("Start next: "+manager.nextLabel, func() {
			if manager.callbacks.OnStartNext != nil {
				manager.callbacks.OnStartNext()
			}
		}))
	}

	startMenu := fyne.NewMenuItem("Start", nil)
	var starts []*fyne.MenuItem
	for _, intervalType := range []interval.Type{interval.TypeFocus, interval.TypeShortBreak, interval.TypeLongBreak} {
		starts = append(starts, fyne.NewMenuItem(intervalType.Title(), func() {
			if manager.callbacks.OnStart != nil {
				manager.callbacks.OnStart(intervalType)
			}
		}))
	}
	startMenu.ChildMenu = fyne.NewMenu("", starts...)
	items = append(items, startMenu)

	pauseLabel := "Pause"
	if manager.state == interval.StatePaused {
		pauseLabel = "Resume"
	}
	pause := fyne.NewMenuItem(pauseLabel, func() {
		if manager.callbacks.OnTogglePause != nil {
			manager.callbacks.OnTogglePause()
		}
	})
	pause.Disabled = manager.state == interval.StateIdle

	reset := fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	reset.Disabled = manager.state == interval.StateIdle

	preferences := fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})
	quit := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	quit.IsQuit = true

	return append(items, pause, reset, fyne.NewMenuItemSeparator(), preferences, quit)
}
