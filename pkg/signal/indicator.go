package signal

import (
	"sync"
	"time"
)

// DefaultAnimationDuration is how long the indicator animates after a
// transition into StatusCorrected.
const DefaultAnimationDuration = 1000 * time.Millisecond

// State is the animation state of the indicator.
type State int

const (
	// Idle shows the status without animation.
	Idle State = iota
	// Animating runs the transient correction animation.
	Animating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return "unknown"
	}
}

// Timer is a pending callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. The default is the wall clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type wallClock struct{}

func (wallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// IndicatorConfig configures an Indicator.
type IndicatorConfig struct {
	// Duration of the animation. Zero or negative means
	// DefaultAnimationDuration.
	Duration time.Duration

	// Clock schedules the end of the animation. Nil means the wall clock.
	Clock Clock

	// OnStateChange, if set, is called after every state transition. It
	// runs without the indicator's lock held and may call back into it.
	OnStateChange func(State)
}

// Indicator is the {Idle, Animating} state machine behind the display.
//
// Moving to StatusCorrected from any other status starts the animation.
// The animation ends by itself after the configured duration. Any other
// status change before then cancels the pending end and returns to Idle
// at once. Setting the current status again is not a change.
//
// An Indicator is safe for concurrent use.
type Indicator struct {
	mu       sync.Mutex
	clock    Clock
	duration time.Duration
	notify   func(State)

	status     Status
	state      State
	timer      Timer
	generation uint64
}

// NewIndicator returns an Idle indicator showing StatusClean.
func NewIndicator(cfg IndicatorConfig) *Indicator {
	ind := &Indicator{
		clock:    cfg.Clock,
		duration: cfg.Duration,
		notify:   cfg.OnStateChange,
		status:   StatusClean,
		state:    Idle,
	}
	if ind.clock == nil {
		ind.clock = wallClock{}
	}
	if ind.duration <= 0 {
		ind.duration = DefaultAnimationDuration
	}
	return ind
}

// SetStatus applies a status change and returns the resulting state.
func (ind *Indicator) SetStatus(status Status) State {
	ind.mu.Lock()
	if status == ind.status {
		state := ind.state
		ind.mu.Unlock()
		return state
	}

	prev := ind.state
	ind.status = status
	ind.cancelLocked()

	if status == StatusCorrected {
		ind.state = Animating
		gen := ind.generation
		ind.timer = ind.clock.AfterFunc(ind.duration, func() { ind.expire(gen) })
	} else {
		ind.state = Idle
	}
	state := ind.state
	ind.mu.Unlock()

	if state != prev {
		ind.emit(state)
	}
	return state
}

// Apply validates props and applies their status.
func (ind *Indicator) Apply(props Props) (State, error) {
	if err := props.Validate(); err != nil {
		return ind.State(), err
	}
	return ind.SetStatus(props.Status), nil
}

// State returns the current state.
func (ind *Indicator) State() State {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.state
}

// Status returns the current status.
func (ind *Indicator) Status() Status {
	ind.mu.Lock()
	defer ind.mu.Unlock()
	return ind.status
}

// Stop cancels a pending animation end and leaves the indicator Idle.
func (ind *Indicator) Stop() {
	ind.mu.Lock()
	wasAnimating := ind.state == Animating
	ind.cancelLocked()
	ind.state = Idle
	ind.mu.Unlock()

	if wasAnimating {
		ind.emit(Idle)
	}
}

// cancelLocked stops the pending timer and invalidates its callback in
// case it already fired and is waiting on the lock.
func (ind *Indicator) cancelLocked() {
	ind.generation++
	if ind.timer != nil {
		ind.timer.Stop()
		ind.timer = nil
	}
}

func (ind *Indicator) expire(gen uint64) {
	ind.mu.Lock()
	if gen != ind.generation || ind.state != Animating {
		ind.mu.Unlock()
		return
	}
	ind.state = Idle
	ind.timer = nil
	ind.mu.Unlock()

	ind.emit(Idle)
}

func (ind *Indicator) emit(state State) {
	if ind.notify != nil {
		ind.notify(state)
	}
}
