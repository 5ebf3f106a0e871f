// Package sim implements the virtual single-position brokerage account a
// replay session trades against, and the performance metrics derived from
// its journal.
package sim

import "time"

// Action is the side of an executed virtual trade.
type Action int

const (
	Buy Action = iota
	Sell
)

func (a Action) String() string {
	if a == Sell {
		return "sell"
	}
	return "buy"
}

// Trade is one journal entry. ProfitLoss and ProfitLossRate are populated
// only on sells.
type Trade struct {
	Action     Action
	Price      float64
	Quantity   int
	BarDate    time.Time
	ExecutedAt time.Time

	ProfitLoss     float64
	ProfitLossRate float64
}
