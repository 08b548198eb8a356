package engine

import (
	"time"

	"wodtimer/internal/core/model"
)

// State is the full engine snapshot. It is a value: Reduce returns a new
// State for every command and never mutates the one it was given, so a
// snapshot handed to an observer stays valid forever.
type State struct {
	Mode    Mode
	Running bool

	// Elapsed counts upward in every mode; countdown-style displays are
	// derived from it. It freezes exactly at the mode's boundary.
	Elapsed time.Duration

	Settings model.WorkoutSettings

	// Round and WorkPhase are Tabata progress, Minute is EMOM progress.
	// Both are recomputed from Elapsed on every tick.
	Round     int
	Minute    int
	WorkPhase bool

	InIntro        bool
	IntroRemaining time.Duration
}

// NewState returns the state a fresh engine starts in.
func NewState(settings model.WorkoutSettings) State {
	return clearProgress(State{Mode: ModeStopwatch, Settings: settings})
}

// Boundary returns the total duration of the active mode and whether the
// mode has a completion boundary at all.
func (state State) Boundary() (time.Duration, bool) {
	switch state.Mode {
	case ModeCountdown:
		return state.Settings.Countdown.Total, true
	case ModeTabata:
		return time.Duration(state.Settings.Tabata.Rounds) * state.Settings.Tabata.Cycle(), true
	case ModeEmom:
		return time.Duration(state.Settings.Emom.TotalMinutes) * time.Minute, true
	case ModeAmrap:
		return state.Settings.Amrap.Total, true
	}
	return 0, false
}

// Completed reports whether the active mode has reached its boundary.
func (state State) Completed() bool {
	boundary, ok := state.Boundary()
	return ok && boundary > 0 && state.Elapsed >= boundary
}

// Remaining returns time left until the mode's boundary, zero for
// unbounded modes.
func (state State) Remaining() time.Duration {
	boundary, ok := state.Boundary()
	if !ok || state.Elapsed >= boundary {
		return 0
	}
	return boundary - state.Elapsed
}

func clearProgress(state State) State {
	state.Running = false
	state.Elapsed = 0
	state.Round = 1
	state.Minute = 1
	state.WorkPhase = true
	state.InIntro = false
	state.IntroRemaining = 0
	return state
}
