// 分析师叙事生成
// 先由阈值判定独立的语气枚举，再由纯渲染函数拼装成段落，
// 判定逻辑与文案组装分别可测
package valuation

import (
	"fmt"
	"strings"
)

// ValuationTone 估值语气
type ValuationTone string

const (
	ToneUndervalued ValuationTone = "undervalued"
	ToneInLine      ValuationTone = "in_line"
	ToneRich        ValuationTone = "rich"
)

// LeverageTone 杠杆语气
type LeverageTone string

const (
	LeverageElevated     LeverageTone = "elevated"
	LeverageManageable   LeverageTone = "manageable"
	LeverageConservative LeverageTone = "conservative"
)

// ForwardTone 前瞻语气
type ForwardTone string

const (
	ForwardAccretive   ForwardTone = "accretive"
	ForwardConstrained ForwardTone = "constrained"
)

// ToneSet 叙事语气组合及其依据的上行空间
type ToneSet struct {
	Valuation     ValuationTone `json:"valuation"`
	Leverage      LeverageTone  `json:"leverage"`
	Forward       ForwardTone   `json:"forward"`
	CurrentUpside float64       `json:"current_upside"` // (基准隐含价 − 现价) / 现价
	ForwardUpside float64       `json:"forward_upside"`
}

// upsideThreshold 估值语气阈值，两侧均为严格不等
const upsideThreshold = 0.15

// DeriveTones 从估值结果推导叙事语气
func DeriveTones(in ValuationInputs, res ValuationResult) ToneSet {
	in = in.Sanitized()

	currentUpside := SafeDivide(res.Current.ImpliedSharePrices.Base-in.SharePrice, in.SharePrice)
	forwardUpside := SafeDivide(res.Forward.ImpliedSharePrices.Base-in.SharePrice, in.SharePrice)

	var vt ValuationTone
	switch {
	case currentUpside > upsideThreshold:
		vt = ToneUndervalued
	case currentUpside < -upsideThreshold:
		vt = ToneRich
	default:
		// 恰好 ±0.15 落入中性区间
		vt = ToneInLine
	}

	// 下界为开区间: 恰好 1.5 归入保守档
	var lt LeverageTone
	switch {
	case res.Current.NetDebtToEBITDA > 3:
		lt = LeverageElevated
	case res.Current.NetDebtToEBITDA > 1.5:
		lt = LeverageManageable
	default:
		lt = LeverageConservative
	}

	ft := ForwardConstrained
	if forwardUpside > currentUpside {
		ft = ForwardAccretive
	}

	return ToneSet{
		Valuation:     vt,
		Leverage:      lt,
		Forward:       ft,
		CurrentUpside: currentUpside,
		ForwardUpside: forwardUpside,
	}
}

// RenderAnalystSummary 将语气组合和已计算指标渲染为一段文字
// 纯字符串拼装，不做任何新的数值推导
func RenderAnalystSummary(in ValuationInputs, res ValuationResult, tones ToneSet) string {
	in = in.Sanitized()
	var b strings.Builder

	b.WriteString(fmt.Sprintf(
		"At %s the stock carries a market capitalization of %s and an enterprise value of %s, equivalent to %s EV/EBITDA with a free cash flow yield of %s. ",
		FormatCurrency(in.SharePrice, 2),
		FormatCurrency(res.Current.MarketCap, 2),
		FormatCurrency(res.Current.EnterpriseValue, 2),
		FormatMultiple(res.Current.EVToEBITDA, 2),
		FormatPercent(res.Current.FCFYield, 2),
	))

	switch tones.Valuation {
	case ToneUndervalued:
		b.WriteString(fmt.Sprintf(
			"Against a base-case implied value of %s the shares appear undervalued, offering %s upside. ",
			FormatCurrency(res.Current.ImpliedSharePrices.Base, 2),
			FormatPercent(tones.CurrentUpside, 1),
		))
	case ToneRich:
		b.WriteString(fmt.Sprintf(
			"Against a base-case implied value of %s the shares screen rich, implying %s downside to fair value. ",
			FormatCurrency(res.Current.ImpliedSharePrices.Base, 2),
			FormatPercent(-tones.CurrentUpside, 1),
		))
	default:
		b.WriteString(fmt.Sprintf(
			"With a base-case implied value of %s the shares trade broadly in line with fair value. ",
			FormatCurrency(res.Current.ImpliedSharePrices.Base, 2),
		))
	}

	b.WriteString(fmt.Sprintf(
		"Scenario analysis brackets the equity between %s in the bear case (%s) and %s in the bull case (%s). ",
		FormatCurrency(res.Current.ImpliedSharePrices.Bear, 2),
		FormatMultiple(in.BearMultiple, 2),
		FormatCurrency(res.Current.ImpliedSharePrices.Bull, 2),
		FormatMultiple(in.BullMultiple, 2),
	))

	leverage := FormatMultiple(res.Current.NetDebtToEBITDA, 2)
	switch tones.Leverage {
	case LeverageElevated:
		b.WriteString(fmt.Sprintf(
			"Net leverage of %s EBITDA is elevated and leaves the equity exposed to balance-sheet risk. ",
			leverage,
		))
	case LeverageManageable:
		b.WriteString(fmt.Sprintf(
			"Net leverage of %s EBITDA is manageable, though it tempers the equity cushion. ",
			leverage,
		))
	default:
		b.WriteString(fmt.Sprintf(
			"Net leverage of %s EBITDA reflects a conservative balance sheet. ",
			leverage,
		))
	}

	forwardClause := fmt.Sprintf(
		"Assuming %s EBITDA growth and %s debt paydown over the next period, the forward base case moves to %s (bull %s, bear %s)",
		FormatPercent(in.EBITDAGrowthPct/100, 1),
		FormatPercent(in.DebtPaydownPct/100, 1),
		FormatCurrency(res.Forward.ImpliedSharePrices.Base, 2),
		FormatCurrency(res.Forward.ImpliedSharePrices.Bull, 2),
		FormatCurrency(res.Forward.ImpliedSharePrices.Bear, 2),
	)
	if tones.Forward == ForwardAccretive {
		b.WriteString(forwardClause + ", an accretive setup as operating momentum and deleveraging re-rate the equity.")
	} else {
		b.WriteString(forwardClause + ", a constrained setup with no incremental upside versus the current base case.")
	}

	return b.String()
}

// GenerateAnalystSummary 由估值结果直接生成叙事段落
func GenerateAnalystSummary(in ValuationInputs, res ValuationResult) string {
	return RenderAnalystSummary(in, res, DeriveTones(in, res))
}
