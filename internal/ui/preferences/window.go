package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"wodtimer/internal/core/model"
)

// Window handles the settings UI. Values are parsed on save; fields that
// fail to parse keep their previous value. The caller decides whether the
// engine is in a state where edits may be applied.
type Window struct {
	window       fyne.Window
	settings     model.WorkoutSettings
	onSave       func(model.WorkoutSettings)
	countdownSec *widget.Entry
	tabataWork   *widget.Entry
	tabataRest   *widget.Entry
	tabataRounds *widget.Entry
	emomInterval *widget.Entry
	emomMinutes  *widget.Entry
	amrapSec     *widget.Entry
	introSec     *widget.Entry
}

// New creates a settings window.
func New(app fyne.App, settings model.WorkoutSettings, onSave func(model.WorkoutSettings)) *Window {
	window := app.NewWindow("WodTimer Settings")

	prefs := &Window{
		window:       window,
		settings:     settings,
		onSave:       onSave,
		countdownSec: widget.NewEntry(),
		tabataWork:   widget.NewEntry(),
		tabataRest:   widget.NewEntry(),
		tabataRounds: widget.NewEntry(),
		emomInterval: widget.NewEntry(),
		emomMinutes:  widget.NewEntry(),
		amrapSec:     widget.NewEntry(),
		introSec:     widget.NewEntry(),
	}
	prefs.fillEntries(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Countdown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Duration"), prefs.countdownSec, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Tabata", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), prefs.tabataWork, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Rest"), prefs.tabataRest, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Rounds"), prefs.tabataRounds),
		widget.NewLabelWithStyle("EMOM", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Interval"), prefs.emomInterval, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Minutes"), prefs.emomMinutes),
		widget.NewLabelWithStyle("AMRAP", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Time cap"), prefs.amrapSec, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Countdown before start"), prefs.introSec, widget.NewLabel("sec, 0 disables")),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 520))

	saveButton.OnTapped = prefs.handleSave

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.WorkoutSettings) {
	prefs.settings = settings
	prefs.fillEntries(settings)
}

func (prefs *Window) fillEntries(settings model.WorkoutSettings) {
	prefs.countdownSec.SetText(fmt.Sprintf("%d", int(settings.Countdown.Total.Seconds())))
	prefs.tabataWork.SetText(fmt.Sprintf("%d", int(settings.Tabata.Work.Seconds())))
	prefs.tabataRest.SetText(fmt.Sprintf("%d", int(settings.Tabata.Rest.Seconds())))
	prefs.tabataRounds.SetText(fmt.Sprintf("%d", settings.Tabata.Rounds))
	prefs.emomInterval.SetText(fmt.Sprintf("%d", int(settings.Emom.Interval.Seconds())))
	prefs.emomMinutes.SetText(fmt.Sprintf("%d", settings.Emom.TotalMinutes))
	prefs.amrapSec.SetText(fmt.Sprintf("%d", int(settings.Amrap.Total.Seconds())))
	prefs.introSec.SetText(fmt.Sprintf("%d", int(settings.Intro.Seconds())))
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if seconds, ok := parsePositiveInt(prefs.countdownSec.Text); ok {
		settings.Countdown.Total = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.tabataWork.Text); ok {
		settings.Tabata.Work = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.tabataRest.Text); ok {
		settings.Tabata.Rest = time.Duration(seconds) * time.Second
	}
	if rounds, ok := parsePositiveInt(prefs.tabataRounds.Text); ok {
		settings.Tabata.Rounds = rounds
	}
	if seconds, ok := parsePositiveInt(prefs.emomInterval.Text); ok {
		settings.Emom.Interval = time.Duration(seconds) * time.Second
	}
	if minutes, ok := parsePositiveInt(prefs.emomMinutes.Text); ok {
		settings.Emom.TotalMinutes = minutes
	}
	if seconds, ok := parsePositiveInt(prefs.amrapSec.Text); ok {
		settings.Amrap.Total = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parseNonNegativeInt(prefs.introSec.Text); ok {
		settings.Intro = time.Duration(seconds) * time.Second
	}

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
