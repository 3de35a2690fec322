package valuation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatCurrency(1234.5, 2))
	assert.Equal(t, "$10,000,000,000.00", FormatCurrency(1e10, 2))
	assert.Equal(t, "$0.00", FormatCurrency(0, 2))
	assert.Equal(t, "$130", FormatCurrency(130, 0))
}

func TestFormatCurrency_SanitizesInput(t *testing.T) {
	assert.Equal(t, "$0.00", FormatCurrency(math.NaN(), 2))
	assert.Equal(t, "$0.00", FormatCurrency(math.Inf(1), 2))
}

func TestFormatMultiple(t *testing.T) {
	assert.Equal(t, "8.00x", FormatMultiple(8, 2))
	assert.Equal(t, "10.5x", FormatMultiple(10.5, 1))
	assert.Equal(t, "0.00x", FormatMultiple(math.NaN(), 2))
}

func TestFormatPercent_TakesFraction(t *testing.T) {
	// 输入为小数而非百分数
	assert.Equal(t, "12.00%", FormatPercent(0.12, 2))
	assert.Equal(t, "8.0%", FormatPercent(0.08, 1))
	assert.Equal(t, "-15.00%", FormatPercent(-0.15, 2))
	assert.Equal(t, "0.00%", FormatPercent(math.Inf(1), 2))
}
