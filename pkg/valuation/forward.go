// 前瞻估值计算
// 单期增长/还债假设直接作用于当期经营基数，而非在已有估值上复利
package valuation

// ComputeForwardMetrics 计算前瞻指标
// paydownPct > 100 会得到负的前瞻净负债 (净现金)，属于有效状态，不做钳制
func ComputeForwardMetrics(in ValuationInputs) ForwardMetrics {
	forwardEBITDA := in.EBITDA * (1 + in.EBITDAGrowthPct/100)
	forwardNetDebt := in.NetDebt * (1 - in.DebtPaydownPct/100)

	return ForwardMetrics{
		ForwardEBITDA:  forwardEBITDA,
		ForwardNetDebt: forwardNetDebt,
		ImpliedSharePrices: ScenarioPrices{
			Bull: ImpliedSharePrice(in.BullMultiple, forwardEBITDA, forwardNetDebt, in.SharesOutstanding),
			Base: ImpliedSharePrice(in.BaseMultiple, forwardEBITDA, forwardNetDebt, in.SharesOutstanding),
			Bear: ImpliedSharePrice(in.BearMultiple, forwardEBITDA, forwardNetDebt, in.SharesOutstanding),
		},
	}
}
