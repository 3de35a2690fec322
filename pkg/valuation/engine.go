// 估值编排
package valuation

// RunValuation 执行一次完整估值
// 纯组合: 当期指标 + 前瞻指标。前瞻指标基于原始当期 EBITDA/净负债输入计算，
// 与当期情景隐含价相互独立，不在其上复利。
// 无错误路径: 非法输入经清洗退化为 0，永不报错。
func RunValuation(inputs ValuationInputs) ValuationResult {
	in := inputs.Sanitized()

	return ValuationResult{
		Current: ComputeCurrentMetrics(in),
		Forward: ComputeForwardMetrics(in),
	}
}

// RunSensitivity 基于同一输入生成倍数敏感性序列
// 先推导前瞻经营基数，再在给定区间上扫描
func RunSensitivity(inputs ValuationInputs, rng SweepRange) []SensitivityPoint {
	in := inputs.Sanitized()
	forward := ComputeForwardMetrics(in)

	return GenerateMultipleSensitivity(
		forward.ForwardEBITDA,
		forward.ForwardNetDebt,
		in.SharesOutstanding,
		rng,
	)
}
