// 当期估值计算
// EV/EBITDA 对资本结构中性，便于跨公司比较；EV 到股权的桥接显式扣除净负债
package valuation

import "math"

// ImpliedSharePrice 隐含股价
// (倍数 × EBITDA − 净负债) / 股本，下限为 0:
// 在这个简化桥接中，股权价值不能低于清算下限零
func ImpliedSharePrice(multiple, ebitda, netDebt, shares float64) float64 {
	impliedEquity := Sanitize(multiple)*Sanitize(ebitda) - Sanitize(netDebt)
	return math.Max(0, SafeDivide(impliedEquity, shares))
}

// ComputeCurrentMetrics 基于当期输入计算全部估值指标
func ComputeCurrentMetrics(in ValuationInputs) CurrentMetrics {
	marketCap := in.SharePrice * in.SharesOutstanding
	enterpriseValue := marketCap + in.NetDebt

	return CurrentMetrics{
		MarketCap:       marketCap,
		EnterpriseValue: enterpriseValue,
		EVToEBITDA:      SafeDivide(enterpriseValue, in.EBITDA),
		FCFYield:        SafeDivide(in.FreeCashFlow, marketCap),
		NetDebtToEBITDA: SafeDivide(in.NetDebt, in.EBITDA),
		ImpliedSharePrices: ScenarioPrices{
			Bull: ImpliedSharePrice(in.BullMultiple, in.EBITDA, in.NetDebt, in.SharesOutstanding),
			Base: ImpliedSharePrice(in.BaseMultiple, in.EBITDA, in.NetDebt, in.SharesOutstanding),
			Bear: ImpliedSharePrice(in.BearMultiple, in.EBITDA, in.NetDebt, in.SharesOutstanding),
		},
	}
}
