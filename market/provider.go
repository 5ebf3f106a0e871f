package market

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// HistoryProvider is the contract the surrounding application satisfies to
// supply historical bars. Implementations may be slow (network fetch) and
// should honor ctx cancellation; failures surface as ErrDataUnavailable.
type HistoryProvider interface {
	FetchCandles(ctx context.Context, symbol string, start, end time.Time) (*Series, error)
}

// CSVProvider serves candles from local CSV files, one file per symbol.
// It is the provider used by the CLI and by tests.
type CSVProvider struct {
	// Path maps a symbol to its CSV file.
	Path func(symbol string) string
	Log  *zap.Logger
}

func (p *CSVProvider) FetchCandles(ctx context.Context, symbol string, start, end time.Time) (*Series, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Path == nil {
		return nil, fmt.Errorf("%w: no path mapping configured", ErrDataUnavailable)
	}

	s, err := LoadCSV(p.Path(symbol), symbol, p.Log)
	if err != nil {
		return nil, err
	}
	if start.IsZero() && end.IsZero() {
		return s, nil
	}

	var out []Candle
	for _, c := range s.Candles {
		if !start.IsZero() && c.Date.Before(start) {
			continue
		}
		if !end.IsZero() && c.Date.After(end) {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s has no candles in range", ErrDataUnavailable, symbol)
	}
	return &Series{Symbol: symbol, Candles: out}, nil
}
