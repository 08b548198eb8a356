package display

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"wodtimer/internal/core/driver"
	"wodtimer/internal/core/engine"
	"wodtimer/internal/format"
)

// Callbacks defines the control handlers wired into the main window.
type Callbacks struct {
	OnToggle      func()
	OnReset       func()
	OnModeChange  func(engine.Mode)
	OnPreferences func()
}

// Window is the main timer display: a large time readout, a detail line
// for round/phase progress, and the transport controls.
type Window struct {
	window       fyne.Window
	timeLabel    *canvas.Text
	detailLabel  *canvas.Text
	phaseBar     *canvas.Rectangle
	modeSelect   *widget.Select
	toggleButton *widget.Button
	resetButton  *widget.Button
	footerLabel  *widget.Label
	callbacks    Callbacks
}

var (
	timeColor   = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	detailColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	workColor   = color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	restColor   = color.NRGBA{R: 178, G: 56, B: 50, A: 255}
	idleColor   = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
)

// New creates the main window.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("WodTimer")

	timeLabel := canvas.NewText("00:00", timeColor)
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeLabel.TextSize = 72

	detailLabel := canvas.NewText("", detailColor)
	detailLabel.Alignment = fyne.TextAlignCenter
	detailLabel.TextSize = 20

	phaseBar := canvas.NewRectangle(idleColor)
	phaseBar.SetMinSize(fyne.NewSize(0, 6))

	modeLabels := make([]string, 0, len(engine.Modes))
	for _, mode := range engine.Modes {
		modeLabels = append(modeLabels, mode.Label())
	}

	view := &Window{
		window:      window,
		timeLabel:   timeLabel,
		detailLabel: detailLabel,
		phaseBar:    phaseBar,
		callbacks:   callbacks,
	}

	view.modeSelect = widget.NewSelect(modeLabels, func(label string) {
		for _, mode := range engine.Modes {
			if mode.Label() == label && view.callbacks.OnModeChange != nil {
				view.callbacks.OnModeChange(mode)
			}
		}
	})

	view.toggleButton = widget.NewButton("Start", func() {
		if view.callbacks.OnToggle != nil {
			view.callbacks.OnToggle()
		}
	})
	view.resetButton = widget.NewButton("Reset", func() {
		if view.callbacks.OnReset != nil {
			view.callbacks.OnReset()
		}
	})
	settingsButton := widget.NewButton("Settings", func() {
		if view.callbacks.OnPreferences != nil {
			view.callbacks.OnPreferences()
		}
	})

	view.footerLabel = widget.NewLabel("")

	controls := container.NewHBox(
		layout.NewSpacer(),
		view.toggleButton,
		view.resetButton,
		settingsButton,
		layout.NewSpacer(),
	)

	content := container.NewVBox(
		view.modeSelect,
		phaseBar,
		layout.NewSpacer(),
		timeLabel,
		detailLabel,
		layout.NewSpacer(),
		controls,
		view.footerLabel,
	)

	window.SetContent(content)
	window.Resize(fyne.NewSize(460, 380))
	window.CenterOnScreen()

	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
}

// SetCloseIntercept forwards a close handler to the underlying window.
func (view *Window) SetCloseIntercept(handler func()) {
	view.window.SetCloseIntercept(handler)
}

// Apply repaints the display from a driver event. Must run on the Fyne
// thread; callers in goroutines wrap it in fyne.Do.
func (view *Window) Apply(event driver.Event) {
	view.Refresh(event.Snapshot, event.Phase, event.At)
}

// Refresh repaints the display from a snapshot.
func (view *Window) Refresh(state engine.State, phase string, now time.Time) {
	view.timeLabel.Text = format.Display(state, now)
	view.timeLabel.Refresh()

	detail := format.Detail(state)
	if phase == driver.PhaseFinished {
		detail = "Done"
	}
	view.detailLabel.Text = detail
	view.detailLabel.Refresh()

	view.phaseBar.FillColor = phaseColor(state, phase)
	view.phaseBar.Refresh()

	view.modeSelect.Selected = state.Mode.Label()
	view.modeSelect.Refresh()

	if state.Running {
		view.toggleButton.SetText("Pause")
	} else {
		view.toggleButton.SetText("Start")
	}
	if state.Mode == engine.ModeClock {
		view.toggleButton.Disable()
	} else {
		view.toggleButton.Enable()
	}
}

// SetCompletedCount updates the footer with the all-time session count.
func (view *Window) SetCompletedCount(count int) {
	if count <= 0 {
		view.footerLabel.SetText("")
		return
	}
	view.footerLabel.SetText(fmt.Sprintf("%d workouts completed", count))
}

func phaseColor(state engine.State, phase string) color.NRGBA {
	switch phase {
	case driver.PhaseRunning:
		if state.Mode == engine.ModeTabata && !state.WorkPhase {
			return restColor
		}
		return workColor
	case driver.PhaseIntro:
		return timeColor
	case driver.PhaseFinished:
		return restColor
	}
	return idleColor
}
