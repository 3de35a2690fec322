// 数值清洗
// 所有外部输入在进入计算前统一归一化为有限数
package valuation

import (
	"encoding/json"
	"math"
	"strconv"
)

// Sanitize 非有限数归零
func Sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// ToNumber 将任意值强制转换为有限数
// 无法转换或转换结果非有限时返回 0，永不报错
func ToNumber(v any) float64 {
	switch n := v.(type) {
	case float64:
		return Sanitize(n)
	case float32:
		return Sanitize(float64(n))
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return Sanitize(f)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return Sanitize(f)
	default:
		return 0
	}
}

// SafeDivide 除零保护
// 分母清洗后为 0 时返回 0，保证引擎不会触发除法异常
func SafeDivide(numerator, denominator float64) float64 {
	num := Sanitize(numerator)
	den := Sanitize(denominator)
	if den == 0 {
		return 0
	}
	return num / den
}

// ParseInputs 从字段映射构造估值输入
// 任何字段缺失或非法时归 0，三个倍数无内置默认值，调用方必须提供
func ParseInputs(raw map[string]any) ValuationInputs {
	return ValuationInputs{
		SharePrice:        ToNumber(raw["share_price"]),
		SharesOutstanding: ToNumber(raw["shares_outstanding"]),
		NetDebt:           ToNumber(raw["net_debt"]),
		EBITDA:            ToNumber(raw["ebitda"]),
		FreeCashFlow:      ToNumber(raw["free_cash_flow"]),
		BullMultiple:      ToNumber(raw["bull_multiple"]),
		BaseMultiple:      ToNumber(raw["base_multiple"]),
		BearMultiple:      ToNumber(raw["bear_multiple"]),
		EBITDAGrowthPct:   ToNumber(raw["ebitda_growth_pct"]),
		DebtPaydownPct:    ToNumber(raw["debt_paydown_pct"]),
	}
}

// Sanitized 返回全字段清洗后的副本
// 在边界调用一次，内部计算即可假定所有字段有限
func (in ValuationInputs) Sanitized() ValuationInputs {
	return ValuationInputs{
		SharePrice:        Sanitize(in.SharePrice),
		SharesOutstanding: Sanitize(in.SharesOutstanding),
		NetDebt:           Sanitize(in.NetDebt),
		EBITDA:            Sanitize(in.EBITDA),
		FreeCashFlow:      Sanitize(in.FreeCashFlow),
		BullMultiple:      Sanitize(in.BullMultiple),
		BaseMultiple:      Sanitize(in.BaseMultiple),
		BearMultiple:      Sanitize(in.BearMultiple),
		EBITDAGrowthPct:   Sanitize(in.EBITDAGrowthPct),
		DebtPaydownPct:    Sanitize(in.DebtPaydownPct),
	}
}
