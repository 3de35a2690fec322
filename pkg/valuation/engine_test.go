package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referenceInputs 规格化的参考输入集
func referenceInputs() ValuationInputs {
	return ValuationInputs{
		SharePrice:        100,
		SharesOutstanding: 100_000_000,
		NetDebt:           2_000_000_000,
		EBITDA:            1_500_000_000,
		FreeCashFlow:      800_000_000,
		BullMultiple:      12,
		BaseMultiple:      10,
		BearMultiple:      8,
	}
}

func TestRunValuation_ReferenceCase(t *testing.T) {
	res := RunValuation(referenceInputs())

	assert.Equal(t, 1e10, res.Current.MarketCap)
	assert.Equal(t, 1.2e10, res.Current.EnterpriseValue)
	assert.InDelta(t, 8.0, res.Current.EVToEBITDA, 1e-12)
	assert.InDelta(t, 0.08, res.Current.FCFYield, 1e-12)
	assert.InDelta(t, 2.0/1.5, res.Current.NetDebtToEBITDA, 1e-12)

	// 基准: (10×1.5B − 2B)/100M = 130
	assert.InDelta(t, 130.0, res.Current.ImpliedSharePrices.Base, 1e-9)
	assert.InDelta(t, 160.0, res.Current.ImpliedSharePrices.Bull, 1e-9)
	assert.InDelta(t, 100.0, res.Current.ImpliedSharePrices.Bear, 1e-9)
}

func TestRunValuation_ZeroGrowthForwardEqualsCurrent(t *testing.T) {
	res := RunValuation(referenceInputs())

	assert.Equal(t, 1.5e9, res.Forward.ForwardEBITDA)
	assert.Equal(t, 2e9, res.Forward.ForwardNetDebt)
	assert.Equal(t, res.Current.ImpliedSharePrices, res.Forward.ImpliedSharePrices)
}

func TestRunValuation_GrowthAndPaydown(t *testing.T) {
	in := referenceInputs()
	in.EBITDAGrowthPct = 10
	in.DebtPaydownPct = 20

	res := RunValuation(in)

	assert.InDelta(t, 1.65e9, res.Forward.ForwardEBITDA, 1)
	assert.InDelta(t, 1.6e9, res.Forward.ForwardNetDebt, 1)
	// (10×1.65B − 1.6B)/100M = 149
	assert.InDelta(t, 149.0, res.Forward.ImpliedSharePrices.Base, 1e-9)
}

func TestRunValuation_PaydownOverHundredMeansNetCash(t *testing.T) {
	in := referenceInputs()
	in.DebtPaydownPct = 150

	res := RunValuation(in)

	// 净现金状态有效且抬升隐含股权价值，不做钳制
	assert.InDelta(t, -1e9, res.Forward.ForwardNetDebt, 1)
	assert.Greater(t, res.Forward.ImpliedSharePrices.Base, res.Current.ImpliedSharePrices.Base)
}

func TestImpliedSharePrice_ZeroFloor(t *testing.T) {
	// 倍数×EBITDA − 净负债 < 0 时隐含股价精确为 0
	assert.Equal(t, 0.0, ImpliedSharePrice(2, 1e9, 5e9, 1e8))
	assert.Equal(t, 0.0, ImpliedSharePrice(0, 0, 1, 100))
}

func TestRunValuation_DegenerateInputsNeverNegative(t *testing.T) {
	cases := []ValuationInputs{
		{},
		{SharePrice: math.NaN(), SharesOutstanding: math.Inf(1)},
		{EBITDA: -1e9, NetDebt: 5e9, SharesOutstanding: 1e8, BaseMultiple: 10},
		{SharePrice: 50, EBITDA: 1e9, NetDebt: 9e9, SharesOutstanding: 1e8, BullMultiple: 3, BaseMultiple: 2, BearMultiple: 1},
	}

	for _, in := range cases {
		res := RunValuation(in)
		for _, p := range []float64{
			res.Current.ImpliedSharePrices.Bull,
			res.Current.ImpliedSharePrices.Base,
			res.Current.ImpliedSharePrices.Bear,
			res.Forward.ImpliedSharePrices.Bull,
			res.Forward.ImpliedSharePrices.Base,
			res.Forward.ImpliedSharePrices.Bear,
		} {
			require.False(t, math.IsNaN(p) || math.IsInf(p, 0))
			require.GreaterOrEqual(t, p, 0.0)
		}
	}
}

func TestRunSensitivity_UsesForwardBase(t *testing.T) {
	in := referenceInputs()
	in.EBITDAGrowthPct = 10
	in.DebtPaydownPct = 20

	points := RunSensitivity(in, DefaultSweepRange())
	require.Len(t, points, 21)

	// 10x 采样点应与前瞻基准情景一致
	var at10 *SensitivityPoint
	for i := range points {
		if points[i].Multiple == 10 {
			at10 = &points[i]
		}
	}
	require.NotNil(t, at10)
	assert.InDelta(t, 149.0, at10.ImpliedSharePrice, 1e-9)
}
