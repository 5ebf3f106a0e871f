package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// LoadCSV reads daily bars from a CSV file.
//
// Format (header optional, detected by a leading "date" cell):
//
//	date,open,high,low,close,volume
//	2024-01-02,10.05,10.31,9.98,10.22,1203400
//
// Rows that fail to parse are skipped with a warning rather than aborting
// the load; the resulting series still goes through NewSeries validation.
func LoadCSV(path, symbol string, log *zap.Logger) (*Series, error) {
	if log == nil {
		log = zap.NewNop()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDataUnavailable, path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var candles []Candle
	line := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrDataUnavailable, path, err)
		}
		line++

		if len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "date") {
			continue
		}
		c, err := parseCandleRow(row)
		if err != nil {
			log.Warn("skipping bad candle row",
				zap.String("file", path),
				zap.Int("line", line),
				zap.Error(err))
			continue
		}
		candles = append(candles, c)
	}

	return NewSeries(symbol, candles, log)
}

func parseCandleRow(row []string) (Candle, error) {
	if len(row) < 5 {
		return Candle{}, fmt.Errorf("need at least 5 cols date,open,high,low,close: %v", row)
	}

	date, err := time.Parse(dateLayout, strings.TrimSpace(row[0]))
	if err != nil {
		return Candle{}, fmt.Errorf("bad date %q: %w", row[0], err)
	}

	vals := make([]float64, 4)
	for i := 1; i < 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		if err != nil {
			return Candle{}, fmt.Errorf("bad price %q: %w", row[i], err)
		}
		vals[i-1] = v
	}

	var volume float64
	if len(row) >= 6 && strings.TrimSpace(row[5]) != "" {
		volume, err = strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return Candle{}, fmt.Errorf("bad volume %q: %w", row[5], err)
		}
	}

	return Candle{
		Date:   date,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: volume,
	}, nil
}
