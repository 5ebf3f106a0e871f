// Package market holds the OHLCV data model shared by the indicator,
// sizing, and replay engines.
package market

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrDataUnavailable is returned by history providers when candles for the
// requested symbol/range cannot be produced.
var ErrDataUnavailable = errors.New("market: data unavailable")

// ErrNonMonotonic is returned at ingestion when candle dates are not
// strictly increasing. A series like that is unusable for replay, so it is
// rejected before it ever reaches a calculator.
var ErrNonMonotonic = errors.New("market: candle dates not strictly increasing")

// Candle represents one OHLCV bar. Candles are immutable once a Series owns
// them.
type Candle struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is a date-sorted sequence of candles for one symbol.
type Series struct {
	Symbol  string
	Candles []Candle
}

// NewSeries validates and wraps a candle slice.
//
// Dates must be strictly increasing; anything else is rejected with
// ErrNonMonotonic. Bars whose OHLC relationships are broken (high below
// open/close, low above open/close) are a data-quality problem, not a
// structural one: they are logged and kept, and the calculators downstream
// skip them where it matters.
func NewSeries(symbol string, candles []Candle, log *zap.Logger) (*Series, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(candles) == 0 {
		return nil, fmt.Errorf("%w: empty series for %s", ErrDataUnavailable, symbol)
	}

	for i := 1; i < len(candles); i++ {
		if !candles[i].Date.After(candles[i-1].Date) {
			return nil, fmt.Errorf("%w: %s at index %d (%s not after %s)",
				ErrNonMonotonic, symbol, i,
				candles[i].Date.Format("2006-01-02"),
				candles[i-1].Date.Format("2006-01-02"))
		}
	}

	for i, c := range candles {
		if bad, why := c.qualityIssue(); bad {
			log.Warn("candle quality issue",
				zap.String("symbol", symbol),
				zap.Int("index", i),
				zap.Time("date", c.Date),
				zap.String("issue", why))
		}
	}

	return &Series{Symbol: symbol, Candles: candles}, nil
}

func (c Candle) qualityIssue() (bool, string) {
	switch {
	case c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0:
		return true, "non-positive price"
	case c.High < c.Open || c.High < c.Close:
		return true, "high below open/close"
	case c.Low > c.Open || c.Low > c.Close:
		return true, "low above open/close"
	case c.Volume < 0:
		return true, "negative volume"
	}
	return false, ""
}

func (s *Series) Len() int { return len(s.Candles) }

// At returns the candle at index i. The caller must keep i in bounds.
func (s *Series) At(i int) Candle { return s.Candles[i] }

// Window returns the bars visible up to and including index i, the slice a
// chart would render while the replay cursor sits at i. The returned slice
// shares the series' backing array; consumers must not mutate it.
func (s *Series) Window(i int) []Candle {
	if i < 0 {
		return nil
	}
	if i >= len(s.Candles) {
		i = len(s.Candles) - 1
	}
	return s.Candles[:i+1]
}

// Last returns the most recent candle.
func (s *Series) Last() Candle {
	return s.Candles[len(s.Candles)-1]
}
