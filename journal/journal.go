// Package journal persists executed replay trades and session summaries.
// The core engines never import it; the CLI wires a Journal in.
package journal

import "time"

// TradeRecord is one executed virtual trade.
type TradeRecord struct {
	SessionID      string
	Action         string // "buy" or "sell"
	Price          float64
	Quantity       int
	BarDate        time.Time
	ExecutedAt     time.Time
	ProfitLoss     float64 // sells only
	ProfitLossRate float64 // sells only
}

// SessionRecord summarizes one finished replay session.
type SessionRecord struct {
	SessionID       string
	Symbol          string
	StartedAt       time.Time
	EndedAt         time.Time
	InitialCapital  float64
	FinalCapital    float64
	TotalTrades     int
	WinRate         float64
	ProfitLoss      float64
	ProfitLossRate  float64
	ProfitLossRatio float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordSession(SessionRecord) error
	Close() error
}
