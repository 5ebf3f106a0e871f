package sim

import "math"

// Metrics is the per-session performance summary derived from the trade
// journal.
type Metrics struct {
	TotalTrades     int     // completed round trips (sell count)
	WinRate         float64 // percent of sells with positive P&L
	TotalProfitLoss float64
	ProfitLossRate  float64 // percent of initial capital
	ProfitLossRatio float64 // avg win / |avg loss|, 0 when no losers
	DurationMinutes int
}

// ComputeMetrics is a pure function over a session snapshot.
func ComputeMetrics(s Session) Metrics {
	var m Metrics

	var wins, losses int
	var winSum, lossSum float64
	for _, t := range s.Trades {
		if t.Action != Sell {
			continue
		}
		m.TotalTrades++
		switch {
		case t.ProfitLoss > 0:
			wins++
			winSum += t.ProfitLoss
		case t.ProfitLoss < 0:
			losses++
			lossSum += t.ProfitLoss
		}
	}

	if m.TotalTrades > 0 {
		m.WinRate = float64(wins) / float64(m.TotalTrades) * 100
	}

	m.TotalProfitLoss = s.CurrentCapital - s.InitialCapital
	if s.InitialCapital != 0 {
		m.ProfitLossRate = m.TotalProfitLoss / s.InitialCapital * 100
	}

	// Division by zero guard: with no losing trades the ratio is undefined
	// and reported as 0.
	if wins > 0 && losses > 0 {
		avgWin := winSum / float64(wins)
		avgLoss := lossSum / float64(losses)
		m.ProfitLossRatio = avgWin / math.Abs(avgLoss)
	}

	if !s.EndedAt.IsZero() && s.EndedAt.After(s.StartedAt) {
		m.DurationMinutes = int(s.EndedAt.Sub(s.StartedAt).Minutes())
	}

	return m
}
