package engine

import (
	"time"

	"wodtimer/internal/core/model"
)

// Command is a discrete request applied to the engine state by Reduce.
// The set of commands is closed; anything else is ignored.
type Command interface {
	isCommand()
}

// SetMode switches the active mode and clears all progress. Settings of
// every mode survive the switch.
type SetMode struct {
	Mode Mode
}

// SetCountdown replaces the countdown settings.
type SetCountdown struct {
	Settings model.CountdownSettings
}

// SetTabata replaces the tabata settings.
type SetTabata struct {
	Settings model.TabataSettings
}

// SetEmom replaces the EMOM settings.
type SetEmom struct {
	Settings model.EmomSettings
}

// SetAmrap replaces the AMRAP settings.
type SetAmrap struct {
	Settings model.AmrapSettings
}

// SetIntro replaces the intro pre-roll duration. Zero disables the intro.
type SetIntro struct {
	Duration time.Duration
}

// Start begins or resumes the timer. Starting an interval mode from zero
// with a nonzero intro enters the pre-roll first.
type Start struct{}

// Stop pauses the timer, keeping all progress.
type Stop struct{}

// Reset clears all progress, keeping mode and settings.
type Reset struct{}

// Tick advances the timer by a measured wall-clock delta.
type Tick struct {
	Delta time.Duration
}

func (SetMode) isCommand()      {}
func (SetCountdown) isCommand() {}
func (SetTabata) isCommand()    {}
func (SetEmom) isCommand()      {}
func (SetAmrap) isCommand()     {}
func (SetIntro) isCommand()     {}
func (Start) isCommand()        {}
func (Stop) isCommand()         {}
func (Reset) isCommand()        {}
func (Tick) isCommand()         {}
