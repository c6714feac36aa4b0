package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	focus      *widget.Entry
	shortBreak *widget.Entry
	longBreak  *widget.Entry
	threshold  *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("focusloop Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		focus:      widget.NewEntry(),
		shortBreak: widget.NewEntry(),
		longBreak:  widget.NewEntry(),
		threshold:  widget.NewEntry(),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Intervals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), prefs.focus, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break after"), prefs.threshold, widget.NewLabel("cycles")),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 240))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.focus.SetText(fmt.Sprintf("%d", int(settings.FocusDuration.Minutes())))
	prefs.shortBreak.SetText(fmt.Sprintf("%d", int(settings.ShortBreakDuration.Minutes())))
	prefs.longBreak.SetText(fmt.Sprintf("%d", int(settings.LongBreakDuration.Minutes())))
	prefs.threshold.SetText(strconv.Itoa(settings.LongBreakStartThreshold))
}

func (prefs *Window) handleSave() {
	prefs.settings = Apply(prefs.settings, Form{
		Focus:      prefs.focus.Text,
		ShortBreak: prefs.shortBreak.Text,
		LongBreak:  prefs.longBreak.Text,
		Threshold:  prefs.threshold.Text,
	})
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

// Form holds raw minute and cycle values as typed by the user.
type Form struct {
	Focus      string
	ShortBreak string
	LongBreak  string
	Threshold  string
}

// Apply overrides settings with every positive integer in form. Blank or
// invalid fields keep their previous value.
func Apply(settings Settings, form Form) Settings {
	if minutes, ok := parsePositiveInt(form.Focus); ok {
		settings.FocusDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(form.ShortBreak); ok {
		settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(form.LongBreak); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if cycles, ok := parsePositiveInt(form.Threshold); ok {
		settings.LongBreakStartThreshold = cycles
	}
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
