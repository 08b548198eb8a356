package engine

import "time"

// Reduce applies a command to a state and returns the next state. It is
// total: it never panics and an unknown command leaves the state as is.
// Settings commands apply unconditionally even while running; callers are
// expected to edit settings only while stopped at zero.
func Reduce(state State, command Command) State {
	switch cmd := command.(type) {
	case SetMode:
		state = clearProgress(state)
		state.Mode = cmd.Mode
		return state
	case SetCountdown:
		state.Settings.Countdown = cmd.Settings
		return state
	case SetTabata:
		state.Settings.Tabata = cmd.Settings
		return state
	case SetEmom:
		state.Settings.Emom = cmd.Settings
		return state
	case SetAmrap:
		state.Settings.Amrap = cmd.Settings
		return state
	case SetIntro:
		state.Settings.Intro = cmd.Duration
		return state
	case Start:
		state.Running = true
		if state.Elapsed == 0 && state.Settings.Intro > 0 && state.Mode.UsesIntro() {
			state.InIntro = true
			state.IntroRemaining = state.Settings.Intro
		}
		return state
	case Stop:
		state.Running = false
		return state
	case Reset:
		return clearProgress(state)
	case Tick:
		return tick(state, cmd.Delta)
	}
	return state
}

// tickFuncs holds the per-mode completion and phase logic, applied after
// Elapsed has been advanced. Modes without an entry have no boundary.
var tickFuncs = map[Mode]func(State) State{
	ModeCountdown: tickCountdown,
	ModeTabata:    tickTabata,
	ModeEmom:      tickEmom,
	ModeAmrap:     tickAmrap,
}

func tick(state State, delta time.Duration) State {
	if delta < 0 {
		delta = 0
	}

	if state.InIntro {
		remaining := state.IntroRemaining - delta
		if remaining <= 0 {
			// Any overshoot past the end of the intro is discarded; the
			// main timer starts exactly at zero.
			state.InIntro = false
			state.IntroRemaining = 0
			state.Elapsed = 0
			return state
		}
		state.IntroRemaining = remaining
		return state
	}

	state.Elapsed += delta
	if apply, ok := tickFuncs[state.Mode]; ok {
		return apply(state)
	}
	return state
}

func tickCountdown(state State) State {
	total := state.Settings.Countdown.Total
	if state.Elapsed >= total {
		state.Elapsed = total
		state.Running = false
	}
	return state
}

func tickTabata(state State) State {
	settings := state.Settings.Tabata
	cycle := settings.Cycle()
	if cycle <= 0 {
		return state
	}

	round := int(state.Elapsed/cycle) + 1
	if round > settings.Rounds {
		state.Elapsed = time.Duration(settings.Rounds) * cycle
		state.Running = false
		state.Round = settings.Rounds
		state.WorkPhase = false
		return state
	}
	state.Round = round
	state.WorkPhase = state.Elapsed%cycle < settings.Work
	return state
}

func tickEmom(state State) State {
	// Minute arithmetic is fixed at 60s; the configurable interval only
	// affects the per-interval display.
	settings := state.Settings.Emom
	minute := int(state.Elapsed/time.Minute) + 1
	if minute > settings.TotalMinutes {
		state.Elapsed = time.Duration(settings.TotalMinutes) * time.Minute
		state.Running = false
		state.Minute = settings.TotalMinutes
		return state
	}
	state.Minute = minute
	return state
}

func tickAmrap(state State) State {
	total := state.Settings.Amrap.Total
	if state.Elapsed >= total {
		state.Elapsed = total
		state.Running = false
	}
	return state
}
