package activity

import (
	"strings"
	"testing"

	"github.com/equival-ai/equival/pkg/valuation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportFixture() ReportGeneratorInput {
	inputs := valuation.ValuationInputs{
		SharePrice:        100,
		SharesOutstanding: 100_000_000,
		NetDebt:           2_000_000_000,
		EBITDA:            1_500_000_000,
		FreeCashFlow:      800_000_000,
		BullMultiple:      12,
		BaseMultiple:      10,
		BearMultiple:      8,
		EBITDAGrowthPct:   10,
		DebtPaydownPct:    20,
	}
	result := valuation.RunValuation(inputs)
	return ReportGeneratorInput{
		Ticker:      "ACME",
		Inputs:      inputs,
		Result:      result,
		Sensitivity: valuation.RunSensitivity(inputs, valuation.DefaultSweepRange()),
		Narrative: &NarrativeResult{
			Ticker:  "ACME",
			Tones:   valuation.DeriveTones(inputs, result),
			Summary: valuation.GenerateAnalystSummary(inputs, result),
		},
	}
}

func TestBuildReportMarkdown(t *testing.T) {
	md := buildReportMarkdown(reportFixture())

	assert.True(t, strings.HasPrefix(md, "# Scenario Valuation: ACME\n"))

	// 当期指标表
	assert.Contains(t, md, "## Current Metrics")
	assert.Contains(t, md, "| Market Cap | $10,000,000,000 |")
	assert.Contains(t, md, "| Enterprise Value | $12,000,000,000 |")
	assert.Contains(t, md, "| EV/EBITDA | 8.00x |")

	// 情景隐含股价表: 基准倍数 10x, 当期 130, 前瞻 149
	assert.Contains(t, md, "| Base | 10.00x | $130.00 | $149.00 |")

	// 前瞻假设
	assert.Contains(t, md, "- EBITDA growth: 10.0%")
	assert.Contains(t, md, "- Debt paydown: 20.0%")
	assert.Contains(t, md, "- Forward EBITDA: $1,650,000,000")
	assert.Contains(t, md, "- Forward Net Debt: $1,600,000,000")

	// 敏感性表覆盖默认区间两端
	assert.Contains(t, md, "## Multiple Sensitivity")
	assert.Contains(t, md, "| 5.00x |")
	assert.Contains(t, md, "| 15.00x |")

	assert.Contains(t, md, "## Analyst Summary")
}

func TestBuildReportMarkdown_OmitsEmptySections(t *testing.T) {
	input := reportFixture()
	input.Sensitivity = nil
	input.Narrative = nil

	md := buildReportMarkdown(input)

	assert.NotContains(t, md, "## Multiple Sensitivity")
	assert.NotContains(t, md, "## Analyst Summary")
	assert.Contains(t, md, "## Current Metrics")
}

func TestRenderReportHTML(t *testing.T) {
	html, err := renderReportHTML(buildReportMarkdown(reportFixture()))
	require.NoError(t, err)

	// GFM 表格扩展生效
	assert.Contains(t, html, "<h1>Scenario Valuation: ACME</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>8.00x</td>")
}

func TestRenderReportHTML_Deterministic(t *testing.T) {
	md := buildReportMarkdown(reportFixture())
	a, err := renderReportHTML(md)
	require.NoError(t, err)
	b, err := renderReportHTML(md)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
