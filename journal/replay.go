package journal

import "stocktrainer/sim"

// FromTrade converts an executed portfolio trade into its journal record.
func FromTrade(sessionID string, t sim.Trade) TradeRecord {
	return TradeRecord{
		SessionID:      sessionID,
		Action:         t.Action.String(),
		Price:          t.Price,
		Quantity:       t.Quantity,
		BarDate:        t.BarDate,
		ExecutedAt:     t.ExecutedAt,
		ProfitLoss:     t.ProfitLoss,
		ProfitLossRate: t.ProfitLossRate,
	}
}

// FromSession converts a finished session and its metrics into the summary
// record.
func FromSession(s sim.Session, m sim.Metrics) SessionRecord {
	return SessionRecord{
		SessionID:       s.ID,
		Symbol:          s.Symbol,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		InitialCapital:  s.InitialCapital,
		FinalCapital:    s.CurrentCapital,
		TotalTrades:     m.TotalTrades,
		WinRate:         m.WinRate,
		ProfitLoss:      m.TotalProfitLoss,
		ProfitLossRate:  m.ProfitLossRate,
		ProfitLossRatio: m.ProfitLossRatio,
	}
}
