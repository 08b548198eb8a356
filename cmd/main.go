package main

import (
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"wodtimer/internal/core/driver"
	"wodtimer/internal/core/engine"
	"wodtimer/internal/core/model"
	"wodtimer/internal/format"
	"wodtimer/internal/platform"
	"wodtimer/internal/storage"
	"wodtimer/internal/ui/display"
	"wodtimer/internal/ui/preferences"
	"wodtimer/internal/ui/tray"
)

const appName = "WodTimer"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, mode, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	var history *storage.History
	if historyPath, err := storage.HistoryPath(appName); err != nil {
		log.Printf("history path: %v", err)
	} else if history, err = storage.OpenHistory(historyPath); err != nil {
		log.Printf("open history: %v", err)
		history = nil
	}
	if history != nil {
		defer history.Close()
	}

	fyneApp := app.NewWithID("com.wodtimer.app")

	timer := driver.New(settings, driver.Config{TickInterval: 10 * time.Millisecond})
	if mode != engine.ModeStopwatch {
		timer.SetMode(mode)
	}

	var prefsWindow *preferences.Window
	mainWindow := display.New(fyneApp, display.Callbacks{
		OnToggle: func() {
			timer.Toggle()
		},
		OnReset: func() {
			timer.Reset()
		},
		OnModeChange: func(mode engine.Mode) {
			timer.SetMode(mode)
			saveSettings(timer)
		},
		OnPreferences: func() {
			prefsWindow.Show()
		},
	})

	prefsWindow = preferences.New(fyneApp, settings, func(updated model.WorkoutSettings) {
		applySettings(timer, updated)
		saveSettings(timer)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				mainWindow.Show()
			},
			OnToggle: func() {
				timer.Toggle()
			},
			OnReset: func() {
				timer.Reset()
			},
			OnPreferences: func() {
				prefsWindow.Show()
			},
			OnQuit: func() {
				timer.Close()
				fyneApp.Quit()
			},
		})
	}

	refreshCompletedCount(mainWindow, history)

	events := timer.Subscribe(16)
	go func() {
		lastPhase := timer.Phase()
		lastTrayUpdate := time.Time{}
		for event := range events {
			event := event
			finished := event.Phase == driver.PhaseFinished && lastPhase != driver.PhaseFinished
			if finished && history != nil {
				recordSession(history, event.Snapshot)
			}
			lastPhase = event.Phase

			updateTray := trayManager != nil && (finished || event.At.Sub(lastTrayUpdate) >= time.Second)
			if updateTray {
				lastTrayUpdate = event.At
			}

			fyne.Do(func() {
				mainWindow.Apply(event)
				if finished {
					refreshCompletedCount(mainWindow, history)
				}
				if updateTray {
					trayManager.SetStatus(format.Status(event.Snapshot, event.Phase))
					trayManager.SetRunning(event.Snapshot.Running)
				}
			})
		}
	}()

	// The driver only wakes while a timer runs; the clock face and a
	// paused display still need an occasional repaint.
	go func() {
		ticker := time.NewTicker(250 * time.Millisecond)
		defer ticker.Stop()
		for range ticker.C {
			snapshot := timer.Snapshot()
			if snapshot.Running {
				continue
			}
			phase := timer.Phase()
			fyne.Do(func() {
				mainWindow.Refresh(snapshot, phase, time.Now())
			})
		}
	}()

	mainWindow.Refresh(timer.Snapshot(), timer.Phase(), time.Now())
	mainWindow.Show()
	fyneApp.Run()
}

// applySettings pushes edited settings into the driver. Edits while a
// timer is mid-run are undefined, so any progress is cleared first.
func applySettings(timer *driver.Driver, settings model.WorkoutSettings) {
	snapshot := timer.Snapshot()
	if snapshot.Running || snapshot.Elapsed > 0 {
		timer.Reset()
	}
	timer.SetCountdown(settings.Countdown)
	timer.SetTabata(settings.Tabata)
	timer.SetEmom(settings.Emom)
	timer.SetAmrap(settings.Amrap)
	timer.SetIntro(settings.Intro)
}

func saveSettings(timer *driver.Driver) {
	snapshot := timer.Snapshot()
	if err := storage.SaveSettings(appName, snapshot.Settings, snapshot.Mode); err != nil {
		log.Printf("save settings: %v", err)
	}
}

func recordSession(history *storage.History, state engine.State) {
	total, ok := state.Boundary()
	if !ok {
		return
	}
	session := storage.Session{
		Mode:        string(state.Mode),
		Total:       total,
		CompletedAt: time.Now(),
	}
	if err := history.RecordSession(&session); err != nil {
		log.Printf("record session: %v", err)
	}
}

func refreshCompletedCount(mainWindow *display.Window, history *storage.History) {
	if history == nil {
		return
	}
	count, err := history.Count()
	if err != nil {
		log.Printf("count sessions: %v", err)
		return
	}
	mainWindow.SetCompletedCount(count)
}
