package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wodtimer/internal/core/engine"
	"wodtimer/internal/core/model"
)

// fakeClock advances only when told to, so wake deltas are exact.
type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) Advance(delta time.Duration) {
	clock.now = clock.now.Add(delta)
}

// newTestDriver uses a wake period long enough that the real ticker never
// fires during a test; wake() is called by hand instead.
func newTestDriver(settings model.WorkoutSettings) (*Driver, *fakeClock) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	d := New(settings, Config{TickInterval: time.Hour, Now: clock.Now})
	return d, clock
}

func TestStartActivatesAndSeedsLastWake(t *testing.T) {
	d, clock := newTestDriver(model.DefaultWorkoutSettings())
	defer d.Close()
	d.SetIntro(0)

	startedAt := clock.Now()
	d.Start()

	assert.Equal(t, PhaseRunning, d.Phase())
	assert.True(t, d.active)
	assert.Equal(t, startedAt, d.lastWake)
}

func TestWakeMeasuresRealDelta(t *testing.T) {
	d, clock := newTestDriver(model.DefaultWorkoutSettings())
	defer d.Close()
	d.SetIntro(0)
	d.Start()

	// Jittery wake periods; elapsed time must follow the clock exactly.
	for _, delta := range []time.Duration{10 * time.Millisecond, 35 * time.Millisecond, 955 * time.Millisecond} {
		clock.Advance(delta)
		d.wake()
	}

	assert.Equal(t, time.Second, d.Snapshot().Elapsed)
}

func TestStopDeactivatesSynchronously(t *testing.T) {
	d, clock := newTestDriver(model.DefaultWorkoutSettings())
	defer d.Close()
	d.SetIntro(0)
	d.Start()
	clock.Advance(time.Second)
	d.wake()

	d.Stop()

	assert.Equal(t, PhasePaused, d.Phase())
	assert.False(t, d.active)

	// A wake that was already in flight must not dispatch a tick.
	clock.Advance(time.Minute)
	d.wake()
	assert.Equal(t, time.Second, d.Snapshot().Elapsed)
}

func TestResumeReseedsLastWake(t *testing.T) {
	d, clock := newTestDriver(model.DefaultWorkoutSettings())
	defer d.Close()
	d.SetIntro(0)
	d.Start()
	clock.Advance(2 * time.Second)
	d.wake()
	d.Stop()

	// Idle gap while paused must not leak into the next delta.
	clock.Advance(10 * time.Minute)
	d.Start()
	clock.Advance(time.Second)
	d.wake()

	assert.Equal(t, 3*time.Second, d.Snapshot().Elapsed)
}

func TestCompletionDeactivatesLoop(t *testing.T) {
	settings := model.DefaultWorkoutSettings()
	settings.Countdown.Total = 2 * time.Second
	d, clock := newTestDriver(settings)
	defer d.Close()
	d.SetIntro(0)
	d.SetMode(engine.ModeCountdown)
	d.Start()

	clock.Advance(3 * time.Second)
	d.wake()

	snapshot := d.Snapshot()
	assert.False(t, snapshot.Running)
	assert.Equal(t, 2*time.Second, snapshot.Elapsed)
	assert.Equal(t, PhaseFinished, d.Phase())
	assert.False(t, d.active)
}

func TestRestartAfterCompletion(t *testing.T) {
	settings := model.DefaultWorkoutSettings()
	settings.Countdown.Total = 2 * time.Second
	d, clock := newTestDriver(settings)
	defer d.Close()
	d.SetIntro(0)
	d.SetMode(engine.ModeCountdown)
	d.Start()
	clock.Advance(3 * time.Second)
	d.wake()
	require.Equal(t, PhaseFinished, d.Phase())

	restartedAt := clock.Now().Add(time.Hour)
	clock.Advance(time.Hour)
	d.Start()

	assert.Equal(t, PhaseRunning, d.Phase())
	assert.Equal(t, restartedAt, d.lastWake)
}

func TestIntroPhaseThenRunning(t *testing.T) {
	d, clock := newTestDriver(model.DefaultWorkoutSettings())
	defer d.Close()
	d.SetMode(engine.ModeAmrap)
	d.SetIntro(2 * time.Second)
	d.Start()

	assert.Equal(t, PhaseIntro, d.Phase())
	assert.True(t, d.active)

	clock.Advance(time.Second)
	d.wake()
	assert.Equal(t, PhaseIntro, d.Phase())
	assert.Equal(t, time.Second, d.Snapshot().IntroRemaining)

	clock.Advance(time.Second)
	d.wake()
	assert.Equal(t, PhaseRunning, d.Phase())
	assert.Equal(t, time.Duration(0), d.Snapshot().Elapsed)
	assert.True(t, d.active)
}

func TestClockModeNeverStarts(t *testing.T) {
	d, _ := newTestDriver(model.DefaultWorkoutSettings())
	defer d.Close()
	d.SetMode(engine.ModeClock)

	d.Start()
	assert.Equal(t, PhaseIdle, d.Phase())
	assert.False(t, d.active)

	d.Toggle()
	assert.Equal(t, PhaseIdle, d.Phase())
}

func TestToggleFlipsRunning(t *testing.T) {
	d, _ := newTestDriver(model.DefaultWorkoutSettings())
	defer d.Close()
	d.SetIntro(0)

	d.Toggle()
	assert.True(t, d.Snapshot().Running)

	d.Toggle()
	assert.False(t, d.Snapshot().Running)
}

func TestModeSwitchWhileRunningStopsLoop(t *testing.T) {
	d, clock := newTestDriver(model.DefaultWorkoutSettings())
	defer d.Close()
	d.SetIntro(0)
	d.Start()
	clock.Advance(time.Second)
	d.wake()

	d.SetMode(engine.ModeTabata)

	assert.Equal(t, PhaseIdle, d.Phase())
	assert.False(t, d.active)
	assert.Equal(t, time.Duration(0), d.Snapshot().Elapsed)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	d, clock := newTestDriver(model.DefaultWorkoutSettings())
	d.SetIntro(0)
	events := d.Subscribe(8)

	d.Start()
	clock.Advance(time.Second)
	d.wake()
	d.Close()

	var received []Event
	for event := range events {
		received = append(received, event)
	}
	require.Len(t, received, 2)
	assert.Equal(t, PhaseRunning, received[0].Phase)
	assert.True(t, received[0].Snapshot.Running)
	assert.Equal(t, time.Second, received[1].Snapshot.Elapsed)
}

func TestCommandsAfterCloseAreIgnored(t *testing.T) {
	d, _ := newTestDriver(model.DefaultWorkoutSettings())
	d.SetIntro(0)
	d.Close()

	d.Start()
	assert.False(t, d.Snapshot().Running)
}
