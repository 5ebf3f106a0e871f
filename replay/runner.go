package replay

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler is the tick source seam. Production uses the wall clock; tests
// inject a fake to drive playback deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is the cancellable handle a Scheduler returns.
type Timer interface {
	Stop() bool
}

type wallScheduler struct{}

func (wallScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Runner drives a Clock's auto-play. One timer is armed per tick, and only
// after the previous tick has run, so ticks are never reentrant.
type Runner struct {
	mu      sync.Mutex
	clock   *Clock
	sched   Scheduler
	log     *zap.Logger
	timer   Timer
	running bool
}

// NewRunner wraps the clock. A nil scheduler means the wall clock; a nil
// logger means no logging.
func NewRunner(clock *Clock, sched Scheduler, log *zap.Logger) *Runner {
	if sched == nil {
		sched = wallScheduler{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{clock: clock, sched: sched, log: log}
}

// Play starts (or resumes) auto-advancing the clock.
func (r *Runner) Play() {
	switch r.clock.State() {
	case Stopped:
		r.clock.Start()
	case Paused:
		r.clock.Resume()
	case Playing:
	default:
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.armLocked()
	r.log.Debug("replay playing", zap.Duration("interval", r.clock.Interval()))
}

// Pause cancels the pending tick and pauses the clock.
func (r *Runner) Pause() {
	r.mu.Lock()
	r.cancelLocked()
	r.running = false
	r.mu.Unlock()

	r.clock.Pause()
	r.log.Debug("replay paused", zap.Int("cursor", r.clock.Cursor()))
}

// SetSpeed changes the tick interval. The pending wait is cancelled before
// the new interval is armed, so a speed change takes effect immediately.
func (r *Runner) SetSpeed(interval time.Duration) {
	r.clock.SetSpeed(interval)

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.cancelLocked()
	r.armLocked()
	r.log.Debug("replay speed changed", zap.Duration("interval", interval))
}

// Stop halts the tick timer synchronously, then resets the clock. The order
// matters: a late tick must never mutate a freshly reset session.
func (r *Runner) Stop() {
	r.mu.Lock()
	r.cancelLocked()
	r.running = false
	r.mu.Unlock()

	r.clock.Reset()
	r.log.Debug("replay stopped")
}

// Running reports whether auto-play is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

func (r *Runner) armLocked() {
	r.timer = r.sched.AfterFunc(r.clock.Interval(), r.tick)
}

func (r *Runner) cancelLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Runner) tick() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	// Step outside the runner lock; clock subscribers may call back into
	// the runner (e.g. a UI pausing on Finished).
	r.clock.Step()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	if r.clock.State() == Finished {
		r.running = false
		r.timer = nil
		r.log.Debug("replay finished", zap.Int("cursor", r.clock.Cursor()))
		return
	}
	r.armLocked()
}
