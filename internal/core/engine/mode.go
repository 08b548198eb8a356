package engine

// Mode selects which timer discipline the engine runs.
type Mode string

const (
	ModeClock     Mode = "clock"
	ModeStopwatch Mode = "stopwatch"
	ModeCountdown Mode = "countdown"
	ModeTabata    Mode = "tabata"
	ModeEmom      Mode = "emom"
	ModeAmrap     Mode = "amrap"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeClock, ModeStopwatch, ModeCountdown, ModeTabata, ModeEmom, ModeAmrap}

// Label returns the user-facing name of the mode.
func (mode Mode) Label() string {
	switch mode {
	case ModeClock:
		return "Clock"
	case ModeStopwatch:
		return "Stopwatch"
	case ModeCountdown:
		return "Countdown"
	case ModeTabata:
		return "Tabata"
	case ModeEmom:
		return "EMOM"
	case ModeAmrap:
		return "AMRAP"
	}
	return string(mode)
}

// UsesIntro reports whether the mode runs the pre-roll countdown before
// its main timer. Clock never runs and a stopwatch starts instantly.
func (mode Mode) UsesIntro() bool {
	return mode != ModeClock && mode != ModeStopwatch
}
