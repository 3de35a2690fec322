package valuation

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber_CoercesNumericKinds(t *testing.T) {
	assert.Equal(t, 1.5, ToNumber(1.5))
	assert.Equal(t, 2.0, ToNumber(float32(2)))
	assert.Equal(t, 3.0, ToNumber(3))
	assert.Equal(t, 4.0, ToNumber(int64(4)))
	assert.Equal(t, 5.0, ToNumber(uint(5)))
	assert.Equal(t, 6.25, ToNumber(json.Number("6.25")))
	assert.Equal(t, 7.5, ToNumber("7.5"))
	assert.Equal(t, -2e9, ToNumber("-2e9"))
}

func TestToNumber_InvalidBecomesZero(t *testing.T) {
	assert.Equal(t, 0.0, ToNumber(nil))
	assert.Equal(t, 0.0, ToNumber("not a number"))
	assert.Equal(t, 0.0, ToNumber(""))
	assert.Equal(t, 0.0, ToNumber(math.NaN()))
	assert.Equal(t, 0.0, ToNumber(math.Inf(1)))
	assert.Equal(t, 0.0, ToNumber(math.Inf(-1)))
	assert.Equal(t, 0.0, ToNumber(json.Number("garbage")))
	assert.Equal(t, 0.0, ToNumber([]string{"1"}))
}

func TestSafeDivide_ZeroDenominator(t *testing.T) {
	assert.Equal(t, 0.0, SafeDivide(10, 0))
	assert.Equal(t, 0.0, SafeDivide(10, math.Copysign(0, -1)))
	assert.Equal(t, 0.0, SafeDivide(10, math.NaN()))
	assert.Equal(t, 0.0, SafeDivide(10, math.Inf(1)))
	assert.Equal(t, 0.0, SafeDivide(math.NaN(), 5))
}

func TestSafeDivide_NormalDivision(t *testing.T) {
	assert.Equal(t, 2.5, SafeDivide(10, 4))
	assert.Equal(t, -2.0, SafeDivide(10, -5))
	assert.InDelta(t, 1.0/3.0, SafeDivide(1, 3), 1e-15)
}

func TestParseInputs_MissingFieldsDefaultToZero(t *testing.T) {
	in := ParseInputs(map[string]any{
		"share_price":        100,
		"shares_outstanding": "1e8",
		"ebitda":             json.Number("1500000000"),
	})

	assert.Equal(t, 100.0, in.SharePrice)
	assert.Equal(t, 1e8, in.SharesOutstanding)
	assert.Equal(t, 1.5e9, in.EBITDA)
	assert.Equal(t, 0.0, in.NetDebt)
	assert.Equal(t, 0.0, in.BaseMultiple) // 倍数无内置默认值
	assert.Equal(t, 0.0, in.EBITDAGrowthPct)
}

func TestSanitized_ReplacesNonFiniteFields(t *testing.T) {
	in := ValuationInputs{
		SharePrice:   math.NaN(),
		NetDebt:      math.Inf(1),
		EBITDA:       1e9,
		BaseMultiple: math.Inf(-1),
	}.Sanitized()

	assert.Equal(t, 0.0, in.SharePrice)
	assert.Equal(t, 0.0, in.NetDebt)
	assert.Equal(t, 1e9, in.EBITDA)
	assert.Equal(t, 0.0, in.BaseMultiple)
}
