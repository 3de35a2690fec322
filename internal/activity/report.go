// 投研报告渲染
// 从已计算的估值结果确定性地拼装 Markdown，并转换为 HTML 供导出
package activity

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/equival-ai/equival/pkg/valuation"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var reportRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// buildReportMarkdown 拼装 Markdown 报告
// 所有数值均来自传入结果，不做任何新的数值推导
func buildReportMarkdown(input ReportGeneratorInput) string {
	var sb strings.Builder
	in := input.Inputs
	cur := input.Result.Current
	fwd := input.Result.Forward

	sb.WriteString(fmt.Sprintf("# Scenario Valuation: %s\n\n", input.Ticker))

	sb.WriteString("## Current Metrics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Share Price | %s |\n", valuation.FormatCurrency(in.SharePrice, 2)))
	sb.WriteString(fmt.Sprintf("| Market Cap | %s |\n", valuation.FormatCurrency(cur.MarketCap, 0)))
	sb.WriteString(fmt.Sprintf("| Enterprise Value | %s |\n", valuation.FormatCurrency(cur.EnterpriseValue, 0)))
	sb.WriteString(fmt.Sprintf("| EV/EBITDA | %s |\n", valuation.FormatMultiple(cur.EVToEBITDA, 2)))
	sb.WriteString(fmt.Sprintf("| FCF Yield | %s |\n", valuation.FormatPercent(cur.FCFYield, 2)))
	sb.WriteString(fmt.Sprintf("| Net Debt/EBITDA | %s |\n", valuation.FormatMultiple(cur.NetDebtToEBITDA, 2)))
	sb.WriteString("\n")

	sb.WriteString("## Scenario Implied Share Prices\n\n")
	sb.WriteString("| Scenario | Multiple | Current | Forward |\n")
	sb.WriteString("|----------|----------|---------|---------|\n")
	sb.WriteString(fmt.Sprintf("| Bull | %s | %s | %s |\n",
		valuation.FormatMultiple(in.BullMultiple, 2),
		valuation.FormatCurrency(cur.ImpliedSharePrices.Bull, 2),
		valuation.FormatCurrency(fwd.ImpliedSharePrices.Bull, 2)))
	sb.WriteString(fmt.Sprintf("| Base | %s | %s | %s |\n",
		valuation.FormatMultiple(in.BaseMultiple, 2),
		valuation.FormatCurrency(cur.ImpliedSharePrices.Base, 2),
		valuation.FormatCurrency(fwd.ImpliedSharePrices.Base, 2)))
	sb.WriteString(fmt.Sprintf("| Bear | %s | %s | %s |\n",
		valuation.FormatMultiple(in.BearMultiple, 2),
		valuation.FormatCurrency(cur.ImpliedSharePrices.Bear, 2),
		valuation.FormatCurrency(fwd.ImpliedSharePrices.Bear, 2)))
	sb.WriteString("\n")

	sb.WriteString("## Forward Assumptions\n\n")
	sb.WriteString(fmt.Sprintf("- EBITDA growth: %s\n", valuation.FormatPercent(in.EBITDAGrowthPct/100, 1)))
	sb.WriteString(fmt.Sprintf("- Debt paydown: %s\n", valuation.FormatPercent(in.DebtPaydownPct/100, 1)))
	sb.WriteString(fmt.Sprintf("- Forward EBITDA: %s\n", valuation.FormatCurrency(fwd.ForwardEBITDA, 0)))
	sb.WriteString(fmt.Sprintf("- Forward Net Debt: %s\n", valuation.FormatCurrency(fwd.ForwardNetDebt, 0)))
	sb.WriteString("\n")

	if len(input.Sensitivity) > 0 {
		sb.WriteString("## Multiple Sensitivity\n\n")
		sb.WriteString("| EV/EBITDA Multiple | Implied Share Price |\n")
		sb.WriteString("|--------------------|---------------------|\n")
		for _, p := range input.Sensitivity {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n",
				valuation.FormatMultiple(p.Multiple, 2),
				valuation.FormatCurrency(p.ImpliedSharePrice, 2)))
		}
		sb.WriteString("\n")
	}

	if input.Narrative != nil {
		sb.WriteString("## Analyst Summary\n\n")
		sb.WriteString(input.Narrative.Summary)
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderReportHTML Markdown 转 HTML
func renderReportHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := reportRenderer.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
