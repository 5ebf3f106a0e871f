// Package replay drives a scrubbable, speed-controlled playback of a
// historical candle series. The Clock is pure state-transition logic; the
// Runner (runner.go) supplies the timer that auto-advances it.
package replay

import (
	"sync"
	"time"

	"stocktrainer/market"
)

// DefaultWarmupOffset is where the cursor starts, leaving enough history
// below it for indicator overlays.
const DefaultWarmupOffset = 30

// DefaultStepInterval is the initial auto-play tick interval.
const DefaultStepInterval = 1000 * time.Millisecond

// State is the playback state.
type State int

const (
	Unloaded State = iota
	Stopped
	Playing
	Paused
	Finished
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return "unloaded"
	}
}

// Update is published to subscribers on every cursor or state change.
// Window shares the series' backing array and must not be mutated.
type Update struct {
	State  State
	Index  int
	Bar    market.Candle
	Window []market.Candle

	// SessionReset is set on the notification emitted by Reset(), telling
	// the virtual portfolio to start a fresh session.
	SessionReset bool
}

// Clock holds a cursor into a candle series and the play/pause/seek/reset
// transitions around it. All methods are safe for concurrent use, though a
// session has a single logical owner.
type Clock struct {
	mu       sync.Mutex
	series   *market.Series
	state    State
	cursor   int
	warmup   int
	interval time.Duration
	subs     []func(Update)
}

// NewClock creates an unloaded clock. Non-positive arguments fall back to
// the defaults.
func NewClock(warmupOffset int, stepInterval time.Duration) *Clock {
	if warmupOffset <= 0 {
		warmupOffset = DefaultWarmupOffset
	}
	if stepInterval <= 0 {
		stepInterval = DefaultStepInterval
	}
	return &Clock{
		warmup:   warmupOffset,
		interval: stepInterval,
	}
}

// Load assigns a new series and moves to Stopped. Loading replaces whatever
// session was in flight, so it also signals a session reset.
func (c *Clock) Load(s *market.Series) {
	c.mu.Lock()
	c.series = s
	c.state = Stopped
	c.cursor = c.startIndexLocked()
	u := c.updateLocked()
	u.SessionReset = true
	subs := c.subsLocked()
	c.mu.Unlock()

	publish(subs, u)
}

// startIndexLocked clamps the warm-up offset into the series.
func (c *Clock) startIndexLocked() int {
	last := c.series.Len() - 1
	if c.warmup > last {
		return last
	}
	return c.warmup
}

// Start begins playback from the warm-up offset.
func (c *Clock) Start() {
	c.mu.Lock()
	if c.series == nil || c.state != Stopped {
		c.mu.Unlock()
		return
	}
	c.state = Playing
	c.cursor = c.startIndexLocked()
	u := c.updateLocked()
	subs := c.subsLocked()
	c.mu.Unlock()

	publish(subs, u)
}

// Step advances the cursor by one bar. At the last bar the clock enters
// Finished and stays there; further steps are no-ops. Stepping is allowed
// while Paused so the user can single-step.
func (c *Clock) Step() {
	c.mu.Lock()
	if c.series == nil || (c.state != Playing && c.state != Paused) {
		c.mu.Unlock()
		return
	}

	last := c.series.Len() - 1
	if c.cursor < last {
		c.cursor++
	}
	if c.cursor == last {
		c.state = Finished
	}
	u := c.updateLocked()
	subs := c.subsLocked()
	c.mu.Unlock()

	publish(subs, u)
}

// Pause suspends auto-play ticking.
func (c *Clock) Pause() {
	c.mu.Lock()
	if c.state != Playing {
		c.mu.Unlock()
		return
	}
	c.state = Paused
	u := c.updateLocked()
	subs := c.subsLocked()
	c.mu.Unlock()

	publish(subs, u)
}

// Resume continues playback after a pause.
func (c *Clock) Resume() {
	c.mu.Lock()
	if c.state != Paused {
		c.mu.Unlock()
		return
	}
	c.state = Playing
	u := c.updateLocked()
	subs := c.subsLocked()
	c.mu.Unlock()

	publish(subs, u)
}

// Seek jumps the cursor to index, clamped into [warmup, len-1]. The
// play/pause state is unchanged.
func (c *Clock) Seek(index int) {
	c.mu.Lock()
	if c.series == nil || c.state == Unloaded {
		c.mu.Unlock()
		return
	}

	lo := c.startIndexLocked()
	hi := c.series.Len() - 1
	if index < lo {
		index = lo
	}
	if index > hi {
		index = hi
	}
	c.cursor = index
	u := c.updateLocked()
	subs := c.subsLocked()
	c.mu.Unlock()

	publish(subs, u)
}

// Reset returns to Stopped with the cursor back at the warm-up offset and
// tells subscribers to discard the current session.
func (c *Clock) Reset() {
	c.mu.Lock()
	if c.series == nil {
		c.mu.Unlock()
		return
	}
	c.state = Stopped
	c.cursor = c.startIndexLocked()
	u := c.updateLocked()
	u.SessionReset = true
	subs := c.subsLocked()
	c.mu.Unlock()

	publish(subs, u)
}

// SetSpeed changes the tick interval for subsequent ticks. An in-flight
// wait is the Runner's business, not the Clock's.
func (c *Clock) SetSpeed(interval time.Duration) {
	if interval <= 0 {
		return
	}
	c.mu.Lock()
	c.interval = interval
	c.mu.Unlock()
}

// Interval returns the current tick interval.
func (c *Clock) Interval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

// State returns the current playback state.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Cursor returns the current cursor index.
func (c *Clock) Cursor() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

// Current returns the bar under the cursor. ok is false while unloaded.
func (c *Clock) Current() (market.Candle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.series == nil {
		return market.Candle{}, false
	}
	return c.series.At(c.cursor), true
}

// Subscribe registers fn for cursor/state notifications. If a series is
// already loaded the current state is delivered immediately, so consumers
// must tolerate re-delivery.
func (c *Clock) Subscribe(fn func(Update)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	var u Update
	deliver := c.series != nil
	if deliver {
		u = c.updateLocked()
	}
	c.mu.Unlock()

	if deliver {
		fn(u)
	}
}

func (c *Clock) updateLocked() Update {
	return Update{
		State:  c.state,
		Index:  c.cursor,
		Bar:    c.series.At(c.cursor),
		Window: c.series.Window(c.cursor),
	}
}

// subsLocked copies the subscriber list so callbacks run outside the lock.
func (c *Clock) subsLocked() []func(Update) {
	out := make([]func(Update), len(c.subs))
	copy(out, c.subs)
	return out
}

func publish(subs []func(Update), u Update) {
	for _, fn := range subs {
		fn(u)
	}
}
