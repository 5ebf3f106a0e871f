package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentOfEquity(t *testing.T) {
	t.Parallel()

	res, err := Compute(Input{
		Mode:          PercentOfEquity,
		EntryPrice:    10,
		AccountEquity: 100000,
		Percent:       20,
	})
	require.NoError(t, err)

	assert.Equal(t, 2000, res.Quantity)
	assert.InDelta(t, 20000.0, res.PositionValue, 1e-9)
	assert.InDelta(t, 20.0, res.PositionPercent, 1e-9)
}

func TestPercentOfEquityRoundsDownToLot(t *testing.T) {
	t.Parallel()

	// 100000 * 21.5% / 10 = 2150 shares -> 2100 after lot rounding.
	res, err := Compute(Input{
		Mode:          PercentOfEquity,
		EntryPrice:    10,
		AccountEquity: 100000,
		Percent:       21.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 2100, res.Quantity)
	// Value and percent recomputed from the actual quantity.
	assert.InDelta(t, 21000.0, res.PositionValue, 1e-9)
	assert.InDelta(t, 21.0, res.PositionPercent, 1e-9)
}

func TestPercentOfEquityClampsToMinimumLot(t *testing.T) {
	t.Parallel()

	// 1% of 5000 at price 100 is 0 lots; clamped to the minimum lot even
	// though the account cannot afford it. Affordability is the caller's
	// check.
	res, err := Compute(Input{
		Mode:          PercentOfEquity,
		EntryPrice:    100,
		AccountEquity: 5000,
		Percent:       1,
	})
	require.NoError(t, err)

	assert.Equal(t, LotSize, res.Quantity)
	assert.InDelta(t, 10000.0, res.PositionValue, 1e-9)
	assert.InDelta(t, 200.0, res.PositionPercent, 1e-9)
}

func TestFixedQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		qty     int
		wantQty int
	}{
		{"exact lot", 2000, 2000},
		{"rounds down", 2350, 2300},
		{"below one lot", 80, 0},
		{"negative", -500, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := Compute(Input{
				Mode:          FixedQuantity,
				EntryPrice:    10,
				AccountEquity: 100000,
				Quantity:      tt.qty,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantQty, res.Quantity)
			assert.InDelta(t, float64(tt.wantQty)*10, res.PositionValue, 1e-9)
		})
	}
}

func TestFixedQuantityUnknownEquity(t *testing.T) {
	t.Parallel()

	res, err := Compute(Input{
		Mode:       FixedQuantity,
		EntryPrice: 10,
		Quantity:   2000,
	})
	require.NoError(t, err)
	assert.Equal(t, 2000, res.Quantity)
	assert.Equal(t, 0.0, res.PositionPercent)
}

func TestRiskBased(t *testing.T) {
	t.Parallel()

	// maxLoss = 100000 * 2% = 2000; perShareLoss = 1 -> 2000 shares.
	res, err := Compute(Input{
		Mode:          RiskBased,
		Side:          Long,
		EntryPrice:    10,
		StopLoss:      9,
		AccountEquity: 100000,
		RiskPercent:   2,
	})
	require.NoError(t, err)

	assert.Equal(t, 2000, res.Quantity)
	assert.InDelta(t, 20000.0, res.PositionValue, 1e-9)
	assert.InDelta(t, 20.0, res.PositionPercent, 1e-9)
}

func TestRiskBasedDefaultsRiskPercent(t *testing.T) {
	t.Parallel()

	res, err := Compute(Input{
		Mode:          RiskBased,
		Side:          Long,
		EntryPrice:    10,
		StopLoss:      9,
		AccountEquity: 100000,
		// RiskPercent unset -> defaults to 2.0
	})
	require.NoError(t, err)
	assert.Equal(t, 2000, res.Quantity)
}

func TestRiskBasedInvalidStop(t *testing.T) {
	t.Parallel()

	_, err := Compute(Input{
		Mode:          RiskBased,
		Side:          Long,
		EntryPrice:    10,
		StopLoss:      10.5, // stop above entry for a long
		AccountEquity: 100000,
	})
	assert.ErrorIs(t, err, ErrInvalidStopPlacement)

	_, err = Compute(Input{
		Mode:          RiskBased,
		Side:          Short,
		EntryPrice:    10,
		StopLoss:      9.5, // stop below entry for a short
		AccountEquity: 100000,
	})
	assert.ErrorIs(t, err, ErrInvalidStopPlacement)
}

func TestRiskBasedShort(t *testing.T) {
	t.Parallel()

	res, err := Compute(Input{
		Mode:          RiskBased,
		Side:          Short,
		EntryPrice:    10,
		StopLoss:      10.5,
		AccountEquity: 100000,
		RiskPercent:   2,
	})
	require.NoError(t, err)
	// maxLoss 2000 / 0.5 = 4000 shares
	assert.Equal(t, 4000, res.Quantity)
}

func TestQuantityAlwaysLotMultiple(t *testing.T) {
	t.Parallel()

	inputs := []Input{
		{Mode: PercentOfEquity, EntryPrice: 7.77, AccountEquity: 123456, Percent: 33.3},
		{Mode: FixedQuantity, EntryPrice: 7.77, AccountEquity: 123456, Quantity: 1234},
		{Mode: RiskBased, EntryPrice: 7.77, StopLoss: 7.31, AccountEquity: 123456, RiskPercent: 1.5},
	}
	for _, in := range inputs {
		res, err := Compute(in)
		require.NoError(t, err)
		assert.Zero(t, res.Quantity%LotSize, "mode %s quantity %d", in.Mode, res.Quantity)
	}
}

func TestComputeRejectsBadEntry(t *testing.T) {
	t.Parallel()

	_, err := Compute(Input{Mode: PercentOfEquity, EntryPrice: 0, AccountEquity: 1000, Percent: 10})
	assert.Error(t, err)
}
