package model

import "time"

// CountdownSettings configures a fixed countdown.
type CountdownSettings struct {
	Total time.Duration
}

// TabataSettings configures alternating work/rest intervals.
type TabataSettings struct {
	Work   time.Duration
	Rest   time.Duration
	Rounds int
}

// Cycle returns the duration of one work+rest round.
func (settings TabataSettings) Cycle() time.Duration {
	return settings.Work + settings.Rest
}

// EmomSettings configures an every-minute-on-the-minute workout.
// Interval is the per-interval length shown to the user; completion
// arithmetic runs on whole 60s minutes regardless of its value.
type EmomSettings struct {
	Interval     time.Duration
	TotalMinutes int
}

// AmrapSettings configures an as-many-rounds-as-possible time cap.
type AmrapSettings struct {
	Total time.Duration
}

// WorkoutSettings bundles the settings of every mode plus the intro
// pre-roll. All modes keep their settings while another mode is active.
type WorkoutSettings struct {
	Countdown CountdownSettings
	Tabata    TabataSettings
	Emom      EmomSettings
	Amrap     AmrapSettings
	Intro     time.Duration
}

// DefaultWorkoutSettings returns the settings a fresh install starts with.
func DefaultWorkoutSettings() WorkoutSettings {
	return WorkoutSettings{
		Countdown: CountdownSettings{Total: 3 * time.Minute},
		Tabata:    TabataSettings{Work: 20 * time.Second, Rest: 10 * time.Second, Rounds: 8},
		Emom:      EmomSettings{Interval: time.Minute, TotalMinutes: 10},
		Amrap:     AmrapSettings{Total: 10 * time.Minute},
		Intro:     10 * time.Second,
	}
}
