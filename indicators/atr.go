package indicators

import (
	"errors"
	"fmt"
	"math"

	"stocktrainer/market"
)

// DefaultATRPeriod is the period used when callers pass period <= 0.
const DefaultATRPeriod = 14

// ErrInsufficientData is returned when a series is too short to produce a
// single true range (fewer than two usable bars).
var ErrInsufficientData = errors.New("indicators: insufficient data")

// trueRange computes the True Range of current given the previous close.
func trueRange(current market.Candle, prevClose float64) float64 {
	highLow := current.High - current.Low
	highClose := math.Abs(current.High - prevClose)
	lowClose := math.Abs(current.Low - prevClose)

	return math.Max(highLow, math.Max(highClose, lowClose))
}

// TrueRanges returns the TR sequence for the series. Bars with a
// non-positive high, low, or previous close are bad data and contribute no
// TR; the previous close carries over the last good bar.
func TrueRanges(candles []market.Candle) []float64 {
	trs := make([]float64, 0, len(candles))
	prevClose := 0.0
	for _, c := range candles {
		if c.High <= 0 || c.Low <= 0 {
			continue
		}
		if prevClose > 0 {
			trs = append(trs, trueRange(c, prevClose))
		}
		if c.Close > 0 {
			prevClose = c.Close
		}
	}
	return trs
}

// ATR calculates the Average True Range over the candle series using
// Wilder's smoothing: the first value is the simple mean of the first
// `period` true ranges, then ATR = ((P-1)*prev + TR) / P.
//
// With fewer than `period` true ranges available the result degrades to the
// simple mean of what exists. That is deliberately not an error — early in
// a replay the indicator should still produce something usable.
func ATR(candles []market.Candle, period int) (float64, error) {
	if period <= 0 {
		period = DefaultATRPeriod
	}
	if len(candles) < 2 {
		return 0, fmt.Errorf("%w: need 2 candles, got %d", ErrInsufficientData, len(candles))
	}

	trs := TrueRanges(candles)
	if len(trs) == 0 {
		return 0, fmt.Errorf("%w: no usable true ranges", ErrInsufficientData)
	}

	if len(trs) < period {
		sum := 0.0
		for _, tr := range trs {
			sum += tr
		}
		return sum / float64(len(trs)), nil
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += trs[i]
	}
	atr := sum / float64(period)

	for i := period; i < len(trs); i++ {
		atr = (atr*float64(period-1) + trs[i]) / float64(period)
	}

	return atr, nil
}

// ATROrFallback returns the ATR for the series, substituting 2% of the
// entry price whenever the real ATR is unavailable or non-positive. Zero or
// negative volatility must never reach the stop-placement math, so callers
// always get something strictly positive for a positive entry price.
func ATROrFallback(candles []market.Candle, period int, entryPrice float64) float64 {
	atr, err := ATR(candles, period)
	if err != nil || atr <= 0 {
		return 0.02 * entryPrice
	}
	return atr
}

// ATRStream is a streaming Average True Range indicator in the same
// Update/Ready/Value form as the rest of the package.
type ATRStream struct {
	period    int
	atr       float64
	count     int
	warmupSum float64
	prevClose float64
}

// NewATRStream creates a streaming ATR with the given period.
func NewATRStream(period int) *ATRStream {
	if period <= 0 {
		period = DefaultATRPeriod
	}
	return &ATRStream{period: period}
}

func (a *ATRStream) Name() string {
	return fmt.Sprintf("ATR(%d)", a.period)
}

func (a *ATRStream) Warmup() int {
	// Need period+1 candles because TR requires a previous close.
	return a.period + 1
}

func (a *ATRStream) Reset() {
	a.atr = 0
	a.count = 0
	a.warmupSum = 0
	a.prevClose = 0
}

func (a *ATRStream) Update(c market.Candle) {
	if c.High <= 0 || c.Low <= 0 {
		// bad bar, ignore
		return
	}
	if a.prevClose <= 0 {
		if c.Close > 0 {
			a.prevClose = c.Close
		}
		return
	}

	tr := trueRange(c, a.prevClose)

	if a.count < a.period {
		a.warmupSum += tr
		a.count++
		if a.count == a.period {
			a.atr = a.warmupSum / float64(a.period)
		}
	} else {
		a.atr = (a.atr*float64(a.period-1) + tr) / float64(a.period)
	}

	if c.Close > 0 {
		a.prevClose = c.Close
	}
}

func (a *ATRStream) Ready() bool {
	return a.count >= a.period
}

func (a *ATRStream) Value() float64 {
	if !a.Ready() {
		return 0
	}
	return a.atr
}
