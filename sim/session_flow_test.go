package sim_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrainer/journal"
	"stocktrainer/market"
	"stocktrainer/replay"
	"stocktrainer/sim"
)

// Drives a whole scripted session through the replay clock: buy at one bar,
// sell at a later one, play to the end, then check the journal and metrics.
func TestScriptedReplaySession(t *testing.T) {
	candles := make([]market.Candle, 60)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		p := 10 + float64(i)*0.1
		candles[i] = market.Candle{
			Date: base.AddDate(0, 0, i),
			Open: p, High: p + 0.3, Low: p - 0.3, Close: p,
			Volume: 10000,
		}
	}
	series, err := market.NewSeries("TEST", candles, nil)
	require.NoError(t, err)

	pf := sim.NewPortfolio("TEST", 100000)
	clock := replay.NewClock(30, time.Second)

	events := map[int]sim.Action{35: sim.Buy, 50: sim.Sell}
	var records []journal.TradeRecord
	lastIndex := -1
	clock.Subscribe(func(u replay.Update) {
		if u.SessionReset || u.Index == lastIndex {
			return
		}
		lastIndex = u.Index

		action, ok := events[u.Index]
		if !ok {
			return
		}
		var tr sim.Trade
		var err error
		if action == sim.Buy {
			tr, err = pf.Buy(u.Bar.Close, u.Bar.Date)
		} else {
			tr, err = pf.Sell(u.Bar.Close, u.Bar.Date)
		}
		require.NoError(t, err)
		records = append(records, journal.FromTrade(pf.Session().ID, tr))
	})

	clock.Load(series)
	clock.Start()
	for clock.State() != replay.Finished {
		clock.Step()
	}

	pf.End()
	session := pf.Session()
	m := sim.ComputeMetrics(session)

	// Bought at 13.50 (bar 35), sold at 15.00 (bar 50): 7400 shares.
	require.Len(t, session.Trades, 2)
	assert.Equal(t, 7400, session.Trades[0].Quantity)
	assert.Equal(t, candles[35].Date, session.Trades[0].BarDate)
	assert.Equal(t, candles[50].Date, session.Trades[1].BarDate)

	assert.Equal(t, 1, m.TotalTrades)
	assert.InDelta(t, 100.0, m.WinRate, 1e-9)
	assert.InDelta(t, 7400*1.5, m.TotalProfitLoss, 1e-6)
	assert.Equal(t, 0, session.Position)

	require.Len(t, records, 2)
	assert.Equal(t, "buy", records[0].Action)
	assert.Equal(t, "sell", records[1].Action)
	assert.Equal(t, session.ID, records[0].SessionID)
	assert.InDelta(t, 7400*1.5, records[1].ProfitLoss, 1e-6)
}
