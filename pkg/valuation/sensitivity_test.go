package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMultipleSensitivity_InclusiveEndpoints(t *testing.T) {
	points := GenerateMultipleSensitivity(1.5e9, 2e9, 1e8, SweepRange{MinMultiple: 5, MaxMultiple: 15, Step: 0.5})

	// (15-5)/0.5 + 1 = 21 个点，含两端
	require.Len(t, points, 21)
	assert.Equal(t, 5.0, points[0].Multiple)
	assert.Equal(t, 15.0, points[len(points)-1].Multiple)

	// 升序且步长恒定
	for i := 1; i < len(points); i++ {
		assert.InDelta(t, 0.5, points[i].Multiple-points[i-1].Multiple, 1e-9)
	}
}

func TestGenerateMultipleSensitivity_DegenerateRanges(t *testing.T) {
	assert.Empty(t, GenerateMultipleSensitivity(1e9, 0, 1e8, SweepRange{MinMultiple: 15, MaxMultiple: 5, Step: 0.5}))
	assert.Empty(t, GenerateMultipleSensitivity(1e9, 0, 1e8, SweepRange{MinMultiple: 5, MaxMultiple: 15, Step: 0}))
	assert.Empty(t, GenerateMultipleSensitivity(1e9, 0, 1e8, SweepRange{MinMultiple: 5, MaxMultiple: 15, Step: -1}))
}

func TestGenerateMultipleSensitivity_SinglePointRange(t *testing.T) {
	points := GenerateMultipleSensitivity(1.5e9, 2e9, 1e8, SweepRange{MinMultiple: 10, MaxMultiple: 10, Step: 0.5})

	require.Len(t, points, 1)
	assert.Equal(t, 10.0, points[0].Multiple)
	assert.InDelta(t, 130.0, points[0].ImpliedSharePrice, 1e-9)
}

func TestGenerateMultipleSensitivity_FractionalStepNoDrift(t *testing.T) {
	// 0.1 无法精确表示，点数与 4 位舍入不受浮点漂移影响
	points := GenerateMultipleSensitivity(1e9, 0, 1e8, SweepRange{MinMultiple: 5, MaxMultiple: 6, Step: 0.1})

	require.Len(t, points, 11)
	assert.Equal(t, 5.3, points[3].Multiple)
	assert.Equal(t, 6.0, points[10].Multiple)
}

func TestGenerateMultipleSensitivity_ZeroFloorPerPoint(t *testing.T) {
	// 低倍数下隐含股权为负，逐点钳制到 0
	points := GenerateMultipleSensitivity(1e9, 8e9, 1e8, SweepRange{MinMultiple: 5, MaxMultiple: 15, Step: 0.5})

	require.Len(t, points, 21)
	assert.Equal(t, 0.0, points[0].ImpliedSharePrice)                // 5×1B − 8B < 0
	assert.Greater(t, points[len(points)-1].ImpliedSharePrice, 0.0) // 15×1B − 8B > 0
}

func TestDefaultSweepRange(t *testing.T) {
	rng := DefaultSweepRange()
	assert.Equal(t, SweepRange{MinMultiple: 5, MaxMultiple: 15, Step: 0.5}, rng)
	assert.True(t, rng.Valid())
}
