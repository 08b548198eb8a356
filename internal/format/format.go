// Package format derives display strings from engine snapshots. Every
// function is a pure read; nothing here feeds back into the engine.
package format

import (
	"fmt"
	"time"

	"wodtimer/internal/core/engine"
)

// Display returns the primary time readout for the snapshot. The wall
// clock is only consulted for Clock mode.
func Display(state engine.State, now time.Time) string {
	if state.InIntro {
		return Intro(state.IntroRemaining)
	}

	switch state.Mode {
	case engine.ModeClock:
		return now.Format("15:04:05")
	case engine.ModeStopwatch:
		return Stopwatch(state.Elapsed)
	case engine.ModeCountdown, engine.ModeAmrap:
		return MinSec(state.Remaining())
	case engine.ModeTabata:
		return MinSec(tabataPhaseRemaining(state))
	case engine.ModeEmom:
		return MinSec(emomMinuteRemaining(state))
	}
	return MinSec(state.Elapsed)
}

// Detail returns the secondary line under the main readout: round and
// phase for Tabata, minute progress for EMOM, empty where there is
// nothing to add.
func Detail(state engine.State) string {
	if state.InIntro {
		return "Get ready"
	}

	switch state.Mode {
	case engine.ModeTabata:
		phase := "REST"
		if state.WorkPhase {
			phase = "WORK"
		}
		return fmt.Sprintf("%s · Round %d/%d", phase, state.Round, state.Settings.Tabata.Rounds)
	case engine.ModeEmom:
		return fmt.Sprintf("Minute %d/%d", state.Minute, state.Settings.Emom.TotalMinutes)
	}
	return ""
}

// Status returns a one-line summary for the tray menu.
func Status(state engine.State, phase string) string {
	switch phase {
	case "intro":
		return "starting in " + Intro(state.IntroRemaining) + "s"
	case "running":
		if state.Mode == engine.ModeStopwatch {
			return state.Mode.Label() + " " + MinSec(state.Elapsed)
		}
		return state.Mode.Label() + " " + MinSec(state.Remaining()) + " left"
	case "paused":
		return state.Mode.Label() + " paused"
	case "finished":
		return state.Mode.Label() + " done"
	}
	return state.Mode.Label() + " ready"
}

// Intro formats the pre-roll countdown as whole seconds, rounded up so
// the display never shows 0 while the intro is still in progress.
func Intro(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := (remaining + time.Second - 1) / time.Second
	return fmt.Sprintf("%d", int(seconds))
}

// Stopwatch formats elapsed time with centisecond resolution, adding an
// hour field once the run passes one hour.
func Stopwatch(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	centis := int(elapsed / (10 * time.Millisecond))
	seconds := centis / 100
	centis = centis % 100

	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	seconds = seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
	}
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}

// MinSec formats a duration as MM:SS, rounding partial seconds up so a
// countdown holds "00:01" until it truly reaches zero.
func MinSec(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int((value + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func tabataPhaseRemaining(state engine.State) time.Duration {
	settings := state.Settings.Tabata
	cycle := settings.Cycle()
	if cycle <= 0 || state.Completed() {
		return 0
	}
	within := state.Elapsed % cycle
	if within < settings.Work {
		return settings.Work - within
	}
	return cycle - within
}

func emomMinuteRemaining(state engine.State) time.Duration {
	if state.Completed() {
		return 0
	}
	return time.Minute - state.Elapsed%time.Minute
}
