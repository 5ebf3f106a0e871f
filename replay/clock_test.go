package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrainer/market"
)

func testSeries(t *testing.T, n int) *market.Series {
	t.Helper()
	candles := make([]market.Candle, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		p := 10 + float64(i)*0.1
		candles[i] = market.Candle{
			Date: base.AddDate(0, 0, i),
			Open: p, High: p + 0.2, Low: p - 0.2, Close: p + 0.1,
			Volume: 1000,
		}
	}
	s, err := market.NewSeries("TEST", candles, nil)
	require.NoError(t, err)
	return s
}

func TestClockStartsAtWarmupOffset(t *testing.T) {
	c := NewClock(30, time.Second)
	assert.Equal(t, Unloaded, c.State())

	c.Load(testSeries(t, 100))
	assert.Equal(t, Stopped, c.State())

	c.Start()
	assert.Equal(t, Playing, c.State())
	assert.Equal(t, 30, c.Cursor())
}

func TestClockWarmupClampedForShortSeries(t *testing.T) {
	c := NewClock(30, time.Second)
	c.Load(testSeries(t, 10))
	c.Start()
	assert.Equal(t, 9, c.Cursor())
}

func TestClockStepToFinished(t *testing.T) {
	c := NewClock(5, time.Second)
	c.Load(testSeries(t, 8))
	c.Start()

	c.Step()
	assert.Equal(t, 6, c.Cursor())
	assert.Equal(t, Playing, c.State())

	c.Step()
	assert.Equal(t, 7, c.Cursor())
	assert.Equal(t, Finished, c.State())

	// Further steps are no-ops.
	c.Step()
	assert.Equal(t, 7, c.Cursor())
	assert.Equal(t, Finished, c.State())
}

func TestClockPauseResume(t *testing.T) {
	c := NewClock(5, time.Second)
	c.Load(testSeries(t, 50))
	c.Start()

	c.Pause()
	assert.Equal(t, Paused, c.State())

	// Single-stepping while paused is allowed.
	c.Step()
	assert.Equal(t, 6, c.Cursor())
	assert.Equal(t, Paused, c.State())

	c.Resume()
	assert.Equal(t, Playing, c.State())
}

func TestClockSeekClamps(t *testing.T) {
	c := NewClock(5, time.Second)
	c.Load(testSeries(t, 50))
	c.Start()

	c.Seek(20)
	assert.Equal(t, 20, c.Cursor())
	assert.Equal(t, Playing, c.State())

	c.Seek(-3)
	assert.Equal(t, 5, c.Cursor()) // clamped to warmup

	c.Seek(9999)
	assert.Equal(t, 49, c.Cursor()) // clamped to last index
}

func TestClockReset(t *testing.T) {
	c := NewClock(5, time.Second)
	c.Load(testSeries(t, 50))
	c.Start()
	c.Seek(30)

	var gotReset bool
	c.Subscribe(func(u Update) {
		if u.SessionReset {
			gotReset = true
		}
	})

	c.Reset()
	assert.Equal(t, Stopped, c.State())
	assert.Equal(t, 5, c.Cursor())
	assert.True(t, gotReset)
}

func TestClockPublishesWindow(t *testing.T) {
	c := NewClock(5, time.Second)
	c.Load(testSeries(t, 50))
	c.Start()

	var last Update
	var count int
	c.Subscribe(func(u Update) {
		last = u
		count++
	})

	// Immediate re-delivery of the current state on subscription.
	assert.Equal(t, 1, count)
	assert.Equal(t, 5, last.Index)
	assert.Len(t, last.Window, 6)

	c.Step()
	assert.Equal(t, 2, count)
	assert.Equal(t, 6, last.Index)
	assert.Len(t, last.Window, 7)
	assert.Equal(t, last.Bar, last.Window[len(last.Window)-1])
}

func TestClockSetSpeed(t *testing.T) {
	c := NewClock(5, time.Second)
	c.SetSpeed(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, c.Interval())

	// Non-positive interval ignored.
	c.SetSpeed(0)
	assert.Equal(t, 250*time.Millisecond, c.Interval())
}

func TestClockOperationsBeforeLoad(t *testing.T) {
	c := NewClock(5, time.Second)
	// None of these should panic or change state while unloaded.
	c.Start()
	c.Step()
	c.Pause()
	c.Seek(10)
	c.Reset()
	assert.Equal(t, Unloaded, c.State())

	_, ok := c.Current()
	assert.False(t, ok)
}
