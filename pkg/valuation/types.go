// 估值引擎类型定义
package valuation

// ValuationInputs 单次估值的全部输入
// 每次调用独立传入，引擎内部不保留任何状态
type ValuationInputs struct {
	SharePrice        float64 `json:"share_price"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	NetDebt           float64 `json:"net_debt"` // 负值表示净现金
	EBITDA            float64 `json:"ebitda"`
	FreeCashFlow      float64 `json:"free_cash_flow"`

	BullMultiple float64 `json:"bull_multiple"`
	BaseMultiple float64 `json:"base_multiple"`
	BearMultiple float64 `json:"bear_multiple"`

	// 百分比输入: 10 表示 10%
	EBITDAGrowthPct float64 `json:"ebitda_growth_pct"`
	DebtPaydownPct  float64 `json:"debt_paydown_pct"`
}

// ScenarioPrices 三种情景下的隐含股价
type ScenarioPrices struct {
	Bull float64 `json:"bull"`
	Base float64 `json:"base"`
	Bear float64 `json:"bear"`
}

// CurrentMetrics 当期估值指标
type CurrentMetrics struct {
	MarketCap          float64        `json:"market_cap"`
	EnterpriseValue    float64        `json:"enterprise_value"`
	EVToEBITDA         float64        `json:"ev_to_ebitda"`
	FCFYield           float64        `json:"fcf_yield"`
	NetDebtToEBITDA    float64        `json:"net_debt_to_ebitda"`
	ImpliedSharePrices ScenarioPrices `json:"implied_share_prices"`
}

// ForwardMetrics 前瞻估值指标
// 基于单期增长/去杠杆假设重新推导
type ForwardMetrics struct {
	ForwardEBITDA      float64        `json:"forward_ebitda"`
	ForwardNetDebt     float64        `json:"forward_net_debt"`
	ImpliedSharePrices ScenarioPrices `json:"implied_share_prices"`
}

// SensitivityPoint 敏感性分析中的单个采样点
type SensitivityPoint struct {
	Multiple          float64 `json:"multiple"` // 已舍入到 4 位小数
	ImpliedSharePrice float64 `json:"implied_share_price"`
}

// ValuationResult 估值汇总结果
// 当期指标 + 前瞻指标，传递给叙事生成和展示层的唯一对象
type ValuationResult struct {
	Current CurrentMetrics `json:"current"`
	Forward ForwardMetrics `json:"forward"`
}
