package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func flatCandles(n int, price float64) []Candle {
	out := make([]Candle, n)
	for i := range out {
		out[i] = Candle{
			Date: day(i), Open: price, High: price, Low: price, Close: price,
			Volume: 1000,
		}
	}
	return out
}

func TestNewSeries(t *testing.T) {
	s, err := NewSeries("TEST", flatCandles(5, 10), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, "TEST", s.Symbol)
}

func TestNewSeriesEmpty(t *testing.T) {
	_, err := NewSeries("TEST", nil, nil)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestNewSeriesRejectsNonMonotonicDates(t *testing.T) {
	candles := flatCandles(3, 10)
	candles[2].Date = candles[1].Date // duplicate date

	_, err := NewSeries("TEST", candles, nil)
	assert.ErrorIs(t, err, ErrNonMonotonic)
}

func TestNewSeriesKeepsQualityIssueBars(t *testing.T) {
	candles := flatCandles(3, 10)
	candles[1].High = 5 // high below open/close: bad data, not fatal

	s, err := NewSeries("TEST", candles, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
}

func TestWindow(t *testing.T) {
	s, err := NewSeries("TEST", flatCandles(10, 10), nil)
	require.NoError(t, err)

	assert.Len(t, s.Window(0), 1)
	assert.Len(t, s.Window(4), 5)
	assert.Len(t, s.Window(9), 10)
	assert.Len(t, s.Window(99), 10) // clamped
	assert.Nil(t, s.Window(-1))
}
