// Package risk implements position sizing and stop/target evaluation for a
// round-lot equity market (minimum tradable unit 100 shares).
package risk

import (
	"errors"
	"fmt"
	"math"
)

// LotSize is the market's round lot. Quantities are always multiples of it,
// except for the documented clamp-to-minimum case.
const LotSize = 100

// DefaultRiskPercent is used by RiskBased sizing when the caller leaves
// RiskPercent unset or non-positive.
const DefaultRiskPercent = 2.0

// ErrInvalidStopPlacement is returned by RiskBased sizing when the stop sits
// on the wrong side of the entry (per-share loss would be zero or negative).
var ErrInvalidStopPlacement = errors.New("risk: stop loss on wrong side of entry")

// Side is the direction of a planned trade.
type Side int

const (
	Long Side = iota
	Short
)

func (s Side) String() string {
	if s == Short {
		return "short"
	}
	return "long"
}

// Mode selects which sizing rule applies. Exactly the fields relevant to
// the mode are consulted; the rest of Input is ignored.
type Mode int

const (
	// PercentOfEquity sizes the position as a fixed percentage of account
	// equity.
	PercentOfEquity Mode = iota
	// FixedQuantity takes the user's share count as-is, rounded to a lot.
	FixedQuantity
	// RiskBased sizes so that hitting the stop loses at most
	// RiskPercent of equity ("size by stop-loss").
	RiskBased
)

func (m Mode) String() string {
	switch m {
	case FixedQuantity:
		return "fixed"
	case RiskBased:
		return "risk"
	default:
		return "percent"
	}
}

// Input carries everything any of the three modes can need. It is cheap to
// construct on every keystroke; Compute is a pure function of it.
type Input struct {
	Mode          Mode
	Side          Side
	EntryPrice    float64
	AccountEquity float64

	// PercentOfEquity
	Percent float64

	// FixedQuantity
	Quantity int

	// RiskBased
	RiskPercent float64
	StopLoss    float64
}

// Result is the sizing outcome. Quantity is a multiple of LotSize unless
// the minimum clamp applied.
type Result struct {
	Quantity        int
	PositionValue   float64
	PositionPercent float64
}

// Compute runs the selected sizing mode. It owns no state: the caller
// re-invokes it whenever any input changes, which is what keeps the three
// modes mutually consistent.
func Compute(in Input) (Result, error) {
	if in.EntryPrice <= 0 {
		return Result{}, fmt.Errorf("risk: entry price must be positive, got %v", in.EntryPrice)
	}

	switch in.Mode {
	case FixedQuantity:
		return computeFixed(in), nil
	case RiskBased:
		return computeRiskBased(in)
	default:
		return computePercent(in), nil
	}
}

func computePercent(in Input) Result {
	requested := in.AccountEquity * in.Percent / 100
	qty := roundToLot(requested / in.EntryPrice)
	if qty == 0 {
		// Minimum tradable lot. Applied even when the account cannot afford
		// it; affordability is validated separately by the caller.
		qty = LotSize
	}
	return finish(qty, in)
}

func computeFixed(in Input) Result {
	qty := in.Quantity
	if qty < 0 {
		qty = 0
	}
	// Silently align to the round lot rather than erroring.
	qty = (qty / LotSize) * LotSize
	return finish(qty, in)
}

func computeRiskBased(in Input) (Result, error) {
	perShareLoss := in.EntryPrice - in.StopLoss
	if in.Side == Short {
		perShareLoss = in.StopLoss - in.EntryPrice
	}
	if perShareLoss <= 0 {
		return Result{}, fmt.Errorf("%w: entry %v stop %v (%s)",
			ErrInvalidStopPlacement, in.EntryPrice, in.StopLoss, in.Side)
	}

	riskPct := in.RiskPercent
	if riskPct <= 0 {
		riskPct = DefaultRiskPercent
	}

	maxLoss := in.AccountEquity * riskPct / 100
	qty := roundToLot(maxLoss / perShareLoss)
	if qty == 0 {
		qty = LotSize
	}
	return finish(qty, in), nil
}

// finish derives position value and percent from the actual quantity, not
// the requested one.
func finish(qty int, in Input) Result {
	value := float64(qty) * in.EntryPrice
	pct := 0.0
	if in.AccountEquity > 0 {
		pct = value / in.AccountEquity * 100
	}
	return Result{
		Quantity:        qty,
		PositionValue:   value,
		PositionPercent: pct,
	}
}

func roundToLot(shares float64) int {
	if shares <= 0 || math.IsNaN(shares) || math.IsInf(shares, 0) {
		return 0
	}
	return (int(shares) / LotSize) * LotSize
}
