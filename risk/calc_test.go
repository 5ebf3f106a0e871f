package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateProfitRisk(t *testing.T) {
	t.Parallel()

	pr := EvaluateProfitRisk(Long, 10, 9, 13)
	assert.True(t, pr.Valid)
	assert.InDelta(t, 3.0, pr.Ratio, 1e-9)
	assert.InDelta(t, 1.0, pr.Risk, 1e-9)
	assert.InDelta(t, 3.0, pr.Reward, 1e-9)
}

func TestEvaluateProfitRiskInvalidLongStop(t *testing.T) {
	t.Parallel()

	// Stop above entry on a long: total function, sentinel zero ratio.
	pr := EvaluateProfitRisk(Long, 10, 11, 13)
	assert.False(t, pr.Valid)
	assert.Equal(t, 0.0, pr.Ratio)
}

func TestEvaluateProfitRiskShort(t *testing.T) {
	t.Parallel()

	pr := EvaluateProfitRisk(Short, 10, 11, 7)
	assert.True(t, pr.Valid)
	assert.InDelta(t, 3.0, pr.Ratio, 1e-9)

	// Target above entry on a short is invalid.
	pr = EvaluateProfitRisk(Short, 10, 11, 12)
	assert.False(t, pr.Valid)
	assert.Equal(t, 0.0, pr.Ratio)
}

func TestEvaluateProfitRiskZeroRisk(t *testing.T) {
	t.Parallel()

	pr := EvaluateProfitRisk(Long, 10, 10, 13)
	assert.False(t, pr.Valid)
	assert.Equal(t, 0.0, pr.Ratio)
}

func TestStopFromATR(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 9.0, StopFromATR(Long, 10, 0.5, 2), 1e-9)
	assert.InDelta(t, 11.0, StopFromATR(Short, 10, 0.5, 2), 1e-9)
	// Non-positive multiple falls back to the default 2x.
	assert.InDelta(t, 9.0, StopFromATR(Long, 10, 0.5, 0), 1e-9)
}
