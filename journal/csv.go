package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	trades   *csv.Writer
	sessions *csv.Writer
	tf, sf   *os.File
}

func NewCSV(tradesPath, sessionsPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	sf, err := os.Create(sessionsPath)
	if err != nil {
		return nil, err
	}

	tw := csv.NewWriter(tf)
	sw := csv.NewWriter(sf)

	if err := tw.Write([]string{"session_id", "action", "price", "quantity", "bar_date", "executed_at", "profit_loss", "profit_loss_rate"}); err != nil {
		return nil, err
	}
	if err := sw.Write([]string{"session_id", "symbol", "started_at", "ended_at", "initial_capital", "final_capital", "total_trades", "win_rate", "profit_loss", "profit_loss_rate", "profit_loss_ratio"}); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{tw, sw, tf, sf}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.SessionID,
		t.Action,
		f(t.Price),
		strconv.Itoa(t.Quantity),
		t.BarDate.Format("2006-01-02"),
		t.ExecutedAt.Format(time.RFC3339),
		f(t.ProfitLoss),
		f(t.ProfitLossRate),
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordSession(s SessionRecord) error {
	err := j.sessions.Write([]string{
		s.SessionID,
		s.Symbol,
		s.StartedAt.Format(time.RFC3339),
		s.EndedAt.Format(time.RFC3339),
		f(s.InitialCapital),
		f(s.FinalCapital),
		strconv.Itoa(s.TotalTrades),
		f(s.WinRate),
		f(s.ProfitLoss),
		f(s.ProfitLossRate),
		f(s.ProfitLossRatio),
	})
	if err != nil {
		return err
	}
	j.sessions.Flush()
	return j.sessions.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	j.sessions.Flush()
	if err := j.sessions.Error(); err != nil {
		return err
	}

	if err := j.tf.Close(); err != nil {
		return err
	}
	return j.sf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 4, 64)
}
