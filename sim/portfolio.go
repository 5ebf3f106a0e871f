package sim

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"stocktrainer/internal/id"
	"stocktrainer/risk"
)

// ErrInsufficientFunds is returned by Buy when less than one round lot is
// affordable at the current price.
var ErrInsufficientFunds = errors.New("sim: insufficient funds for one lot")

// ErrNoPosition is returned by Sell while flat.
var ErrNoPosition = errors.New("sim: no open position")

// Session is an immutable snapshot of a portfolio's state, the input to the
// metrics aggregator and the journal.
type Session struct {
	ID             string
	Symbol         string
	InitialCapital float64
	CurrentCapital float64
	Position       int
	PositionCost   float64 // meaningful only while Position > 0
	Trades         []Trade
	StartedAt      time.Time
	EndedAt        time.Time // zero while the session is live
}

// Portfolio is the virtual account: cash, at most one open position, and an
// ordered trade journal. Trades execute at whatever bar price the caller
// passes in — the replay clock's current close.
type Portfolio struct {
	mu             sync.Mutex
	sessionID      string
	symbol         string
	initialCapital float64
	cash           float64
	position       int
	positionCost   float64
	trades         []Trade
	startedAt      time.Time
	endedAt        time.Time

	commissionRate float64
	now            func() time.Time
}

// Option configures a Portfolio.
type Option func(*Portfolio)

// WithCommission enables the commission-aware variant: rate is applied to
// both legs (e.g. 0.0003 for 0.03%). The base engine uses zero.
func WithCommission(rate float64) Option {
	return func(p *Portfolio) {
		if rate > 0 {
			p.commissionRate = rate
		}
	}
}

// WithClock injects the wall-clock source used for executedAt/startedAt
// timestamps. Tests pass a fixed clock.
func WithClock(now func() time.Time) Option {
	return func(p *Portfolio) {
		if now != nil {
			p.now = now
		}
	}
}

// NewPortfolio opens a fresh session with the given starting capital.
func NewPortfolio(symbol string, initialCapital float64, opts ...Option) *Portfolio {
	p := &Portfolio{
		sessionID:      id.New(),
		symbol:         symbol,
		initialCapital: initialCapital,
		cash:           initialCapital,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.startedAt = p.now()
	return p
}

// Buy commits all available capital to a position at price, on the bar
// dated barDate. The quantity is the largest affordable round-lot multiple;
// under one lot the buy is rejected with ErrInsufficientFunds.
//
// The engine holds a single lot at a time: a buy on top of an existing
// position adds quantity but overwrites the cost basis, it does not
// average.
func (p *Portfolio) Buy(price float64, barDate time.Time) (Trade, error) {
	if price <= 0 {
		return Trade{}, fmt.Errorf("sim: buy price must be positive, got %v", price)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// With commission enabled the buy leg costs price*(1+rate) per share;
	// sizing against that keeps cash non-negative after an all-in buy.
	effPrice := price * (1 + p.commissionRate)

	qty := (int(p.cash/effPrice) / risk.LotSize) * risk.LotSize
	if qty == 0 {
		return Trade{}, fmt.Errorf("%w: cash %.2f price %.2f", ErrInsufficientFunds, p.cash, price)
	}
	cost := float64(qty) * effPrice

	p.cash -= cost
	p.position += qty
	p.positionCost = price

	t := Trade{
		Action:     Buy,
		Price:      price,
		Quantity:   qty,
		BarDate:    barDate,
		ExecutedAt: p.now(),
	}
	p.trades = append(p.trades, t)
	return t, nil
}

// Sell liquidates the entire position at price. P&L is computed against the
// recorded cost basis and carried on the returned trade.
func (p *Portfolio) Sell(price float64, barDate time.Time) (Trade, error) {
	if price <= 0 {
		return Trade{}, fmt.Errorf("sim: sell price must be positive, got %v", price)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.position == 0 {
		return Trade{}, ErrNoPosition
	}

	qty := p.position
	revenue := float64(qty) * price
	if p.commissionRate > 0 {
		revenue -= revenue * p.commissionRate
	}
	cost := float64(qty) * p.positionCost

	pl := revenue - cost
	plRate := 0.0
	if cost != 0 {
		plRate = pl / cost * 100
	}

	p.cash += revenue
	p.position = 0
	p.positionCost = 0

	t := Trade{
		Action:         Sell,
		Price:          price,
		Quantity:       qty,
		BarDate:        barDate,
		ExecutedAt:     p.now(),
		ProfitLoss:     pl,
		ProfitLossRate: plRate,
	}
	p.trades = append(p.trades, t)
	return t, nil
}

// End marks the session finished. Further buys/sells still work (the caller
// decides when to stop routing them), but the snapshot now carries EndedAt.
func (p *Portfolio) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.endedAt.IsZero() {
		p.endedAt = p.now()
	}
}

// Session returns a snapshot of the current state. The trade slice is
// copied so the journal stays immutable to callers.
func (p *Portfolio) Session() Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	trades := make([]Trade, len(p.trades))
	copy(trades, p.trades)

	return Session{
		ID:             p.sessionID,
		Symbol:         p.symbol,
		InitialCapital: p.initialCapital,
		CurrentCapital: p.cash,
		Position:       p.position,
		PositionCost:   p.positionCost,
		Trades:         trades,
		StartedAt:      p.startedAt,
		EndedAt:        p.endedAt,
	}
}

// Cash returns the uncommitted capital.
func (p *Portfolio) Cash() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cash
}

// Position returns the open share quantity (0 while flat).
func (p *Portfolio) Position() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}
