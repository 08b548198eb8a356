package driver

import (
	"context"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"wodtimer/internal/core/engine"
	"wodtimer/internal/core/model"
)

// Lifecycle phases of the driver. They are derived from the engine state
// after every command; the fsm's enter callbacks own the wake loop, so the
// ticker is active exactly while the phase is intro or running.
const (
	PhaseIdle     = "idle"
	PhaseIntro    = "intro"
	PhaseRunning  = "running"
	PhasePaused   = "paused"
	PhaseFinished = "finished"
)

// Event is a snapshot published to observers after every transition.
type Event struct {
	Snapshot engine.State
	Phase    string
	At       time.Time
}

// Config contains runtime options for the Driver.
type Config struct {
	// TickInterval is the wake period while running. Elapsed-time
	// correctness does not depend on it; it only bounds display latency.
	TickInterval time.Duration
	// Now overrides the wall clock, for tests.
	Now func() time.Time
}

// Driver bridges wall-clock time into engine Tick commands and exposes the
// command API and current snapshot to presentation layers. All engine
// state lives here; the engine itself is pure.
type Driver struct {
	mu           sync.Mutex
	state        engine.State
	lifecycle    *fsm.FSM
	now          func() time.Time
	tickInterval time.Duration
	lastWake     time.Time
	stopCh       chan struct{}
	active       bool
	events       []chan Event
	closed       bool
}

// New creates a stopped driver holding the provided settings.
func New(settings model.WorkoutSettings, config Config) *Driver {
	if config.TickInterval <= 0 {
		config.TickInterval = 10 * time.Millisecond
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	d := &Driver{
		state:        engine.NewState(settings),
		now:          config.Now,
		tickInterval: config.TickInterval,
	}

	d.lifecycle = fsm.NewFSM(
		PhaseIdle,
		fsm.Events{
			{Name: "arm", Src: []string{PhaseIdle, PhasePaused, PhaseFinished}, Dst: PhaseIntro},
			{Name: "run", Src: []string{PhaseIdle, PhaseIntro, PhasePaused, PhaseFinished}, Dst: PhaseRunning},
			{Name: "pause", Src: []string{PhaseIntro, PhaseRunning, PhaseFinished}, Dst: PhasePaused},
			{Name: "finish", Src: []string{PhaseIntro, PhaseRunning, PhasePaused}, Dst: PhaseFinished},
			{Name: "reset", Src: []string{PhaseIntro, PhaseRunning, PhasePaused, PhaseFinished}, Dst: PhaseIdle},
		},
		fsm.Callbacks{
			"enter_" + PhaseIntro: func(_ context.Context, _ *fsm.Event) {
				d.activateLocked()
			},
			"enter_" + PhaseRunning: func(_ context.Context, _ *fsm.Event) {
				d.activateLocked()
			},
			"enter_" + PhaseIdle: func(_ context.Context, _ *fsm.Event) {
				d.deactivateLocked()
			},
			"enter_" + PhasePaused: func(_ context.Context, _ *fsm.Event) {
				d.deactivateLocked()
			},
			"enter_" + PhaseFinished: func(_ context.Context, _ *fsm.Event) {
				d.deactivateLocked()
			},
		},
	)

	return d
}

// Start begins or resumes the timer. Clock mode is display only and is
// never started.
func (d *Driver) Start() {
	d.mu.Lock()
	if d.closed || d.state.Mode == engine.ModeClock {
		d.mu.Unlock()
		return
	}
	event := d.applyLocked(engine.Start{})
	d.mu.Unlock()
	d.publish(event)
}

// Stop pauses the timer, preserving progress.
func (d *Driver) Stop() {
	d.dispatch(engine.Stop{})
}

// Reset clears progress, keeping mode and settings.
func (d *Driver) Reset() {
	d.dispatch(engine.Reset{})
}

// Toggle starts when stopped and stops when running.
func (d *Driver) Toggle() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.state.Running {
		event := d.applyLocked(engine.Stop{})
		d.mu.Unlock()
		d.publish(event)
		return
	}
	if d.state.Mode == engine.ModeClock {
		d.mu.Unlock()
		return
	}
	event := d.applyLocked(engine.Start{})
	d.mu.Unlock()
	d.publish(event)
}

// SetMode switches the active mode, clearing progress.
func (d *Driver) SetMode(mode engine.Mode) {
	d.dispatch(engine.SetMode{Mode: mode})
}

// SetCountdown replaces the countdown settings.
func (d *Driver) SetCountdown(settings model.CountdownSettings) {
	d.dispatch(engine.SetCountdown{Settings: settings})
}

// SetTabata replaces the tabata settings.
func (d *Driver) SetTabata(settings model.TabataSettings) {
	d.dispatch(engine.SetTabata{Settings: settings})
}

// SetEmom replaces the EMOM settings.
func (d *Driver) SetEmom(settings model.EmomSettings) {
	d.dispatch(engine.SetEmom{Settings: settings})
}

// SetAmrap replaces the AMRAP settings.
func (d *Driver) SetAmrap(settings model.AmrapSettings) {
	d.dispatch(engine.SetAmrap{Settings: settings})
}

// SetIntro replaces the intro pre-roll duration.
func (d *Driver) SetIntro(duration time.Duration) {
	d.dispatch(engine.SetIntro{Duration: duration})
}

// Snapshot returns the current engine state.
func (d *Driver) Snapshot() engine.State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Phase returns the current lifecycle phase.
func (d *Driver) Phase() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lifecycle.Current()
}

// Subscribe registers a new observer channel.
func (d *Driver) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	d.mu.Lock()
	d.events = append(d.events, ch)
	d.mu.Unlock()
	return ch
}

// Close deactivates the wake loop and closes all observer channels.
func (d *Driver) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.state.Running = false
	d.deactivateLocked()
	events := d.events
	d.events = nil
	d.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (d *Driver) dispatch(cmd engine.Command) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	event := d.applyLocked(cmd)
	d.mu.Unlock()
	d.publish(event)
}

// applyLocked reduces the command and re-syncs the lifecycle fsm, whose
// enter callbacks activate or deactivate the wake loop. Caller holds mu.
func (d *Driver) applyLocked(cmd engine.Command) Event {
	d.state = engine.Reduce(d.state, cmd)

	target := phaseFor(d.state)
	if d.lifecycle.Current() != target {
		_ = d.lifecycle.Event(context.Background(), eventFor(target))
	}

	return Event{Snapshot: d.state, Phase: d.lifecycle.Current(), At: d.now()}
}

// activateLocked seeds lastWake to the activation instant before the first
// wake-up can fire, so the first delta never includes idle time.
func (d *Driver) activateLocked() {
	d.lastWake = d.now()
	if d.active {
		return
	}
	d.active = true
	d.stopCh = make(chan struct{})
	go d.loop(d.stopCh)
}

func (d *Driver) deactivateLocked() {
	if !d.active {
		return
	}
	d.active = false
	close(d.stopCh)
	d.stopCh = nil
}

func (d *Driver) loop(stop chan struct{}) {
	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			d.wake()
		}
	}
}

// wake measures the real elapsed time since the previous wake-up and feeds
// it to the engine. The active check under mu guarantees no Tick lands
// after the loop has been deactivated, even if the goroutine already woke.
func (d *Driver) wake() {
	d.mu.Lock()
	if !d.active || !d.state.Running {
		d.mu.Unlock()
		return
	}
	now := d.now()
	delta := now.Sub(d.lastWake)
	d.lastWake = now
	event := d.applyLocked(engine.Tick{Delta: delta})
	d.mu.Unlock()
	d.publish(event)
}

func (d *Driver) publish(event Event) {
	d.mu.Lock()
	channels := append([]chan Event(nil), d.events...)
	d.mu.Unlock()

	for _, ch := range channels {
		select {
		case ch <- event:
		default:
		}
	}
}

func phaseFor(state engine.State) string {
	if state.Running {
		if state.InIntro {
			return PhaseIntro
		}
		return PhaseRunning
	}
	if state.Completed() {
		return PhaseFinished
	}
	if state.Elapsed == 0 {
		return PhaseIdle
	}
	return PhasePaused
}

func eventFor(phase string) string {
	switch phase {
	case PhaseIntro:
		return "arm"
	case PhaseRunning:
		return "run"
	case PhasePaused:
		return "pause"
	case PhaseFinished:
		return "finish"
	}
	return "reset"
}
