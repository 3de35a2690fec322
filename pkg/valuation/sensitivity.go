// 倍数敏感性分析
// 在一段倍数区间上扫描隐含股价，使用前瞻经营基数
package valuation

import "github.com/shopspring/decimal"

// sweepEpsilon 仅用于采样点数计算，容忍区间宽度的浮点误差
const sweepEpsilon = 1e-9

// SweepRange 倍数扫描区间
type SweepRange struct {
	MinMultiple float64 `json:"min_multiple"`
	MaxMultiple float64 `json:"max_multiple"`
	Step        float64 `json:"step"`
}

// DefaultSweepRange 默认扫描区间 5x-15x，步长 0.5x
func DefaultSweepRange() SweepRange {
	return SweepRange{MinMultiple: 5, MaxMultiple: 15, Step: 0.5}
}

// Valid 区间是否可扫描
func (r SweepRange) Valid() bool {
	return r.Step > 0 && r.MinMultiple <= r.MaxMultiple
}

// GenerateMultipleSensitivity 生成倍数敏感性序列
// 序列按倍数升序排列，含两端端点，全量物化 (图表消费方需要随机访问和已知长度)。
// 非法区间返回空序列而非错误，作为 "无有效扫描" 的信号。
// 采样点用 min + i*step 直接计算，避免累加带来的浮点漂移。
func GenerateMultipleSensitivity(forwardEBITDA, forwardNetDebt, shares float64, rng SweepRange) []SensitivityPoint {
	if !rng.Valid() {
		return []SensitivityPoint{}
	}

	count := int((rng.MaxMultiple-rng.MinMultiple)/rng.Step + sweepEpsilon)
	points := make([]SensitivityPoint, 0, count+1)

	for i := 0; i <= count; i++ {
		multiple := rng.MinMultiple + float64(i)*rng.Step
		// 舍入到 4 位小数，保证坐标轴标签整洁
		rounded, _ := decimal.NewFromFloat(multiple).Round(4).Float64()
		points = append(points, SensitivityPoint{
			Multiple:          rounded,
			ImpliedSharePrice: ImpliedSharePrice(rounded, forwardEBITDA, forwardNetDebt, shares),
		})
	}

	return points
}
