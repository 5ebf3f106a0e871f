package risk

import "math"

// DefaultATRStopMultiple is the conventional stop distance in ATRs.
const DefaultATRStopMultiple = 2.0

// ProfitRisk is the outcome of evaluating an entry/stop/target triple.
// Ratio is reward distance over risk distance; Valid is false when the stop
// or target sits on the wrong side of the entry, in which case Ratio is 0.
type ProfitRisk struct {
	Risk   float64
	Reward float64
	Ratio  float64
	Valid  bool
}

// EvaluateProfitRisk is total: it never errors, because it runs on every
// half-typed form edit. For a Long the stop must be below entry and the
// target above it; for a Short the inequalities flip.
func EvaluateProfitRisk(side Side, entry, stop, target float64) ProfitRisk {
	pr := ProfitRisk{
		Risk:   math.Abs(entry - stop),
		Reward: math.Abs(target - entry),
	}

	ok := entry > stop && target > entry
	if side == Short {
		ok = stop > entry && entry > target
	}
	if !ok || pr.Risk == 0 {
		return pr
	}

	pr.Ratio = pr.Reward / pr.Risk
	pr.Valid = true
	return pr
}

// StopFromATR places a stop loss `multiple` ATRs away from the entry on the
// protective side. A non-positive multiple falls back to the default.
func StopFromATR(side Side, entry, atr, multiple float64) float64 {
	if multiple <= 0 {
		multiple = DefaultATRStopMultiple
	}
	dist := multiple * atr
	if side == Short {
		return entry + dist
	}
	return entry - dist
}
