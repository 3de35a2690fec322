// Activity 类型定义
package activity

import (
	"time"

	"github.com/equival-ai/equival/pkg/valuation"
)

// ============== Run Valuation ==============

// RunValuationInput 估值输入
type RunValuationInput struct {
	Ticker string                    `json:"ticker"`
	Inputs valuation.ValuationInputs `json:"inputs"`
}

// RunValuationResult 估值结果
type RunValuationResult struct {
	Ticker    string                    `json:"ticker"`
	Inputs    valuation.ValuationInputs `json:"inputs"` // 清洗后的输入，供下游复用
	Result    valuation.ValuationResult `json:"result"`
	InputHash string                    `json:"input_hash"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// ============== Sensitivity Sweep ==============

// SensitivityInput 敏感性扫描输入
type SensitivityInput struct {
	Ticker string                    `json:"ticker"`
	Inputs valuation.ValuationInputs `json:"inputs"`
	Range  valuation.SweepRange      `json:"range"`
}

// SensitivityResult 敏感性扫描结果
type SensitivityResult struct {
	Ticker    string                       `json:"ticker"`
	Range     valuation.SweepRange         `json:"range"`
	Points    []valuation.SensitivityPoint `json:"points"` // 区间非法时为空序列
	UpdatedAt time.Time                    `json:"updated_at"`
}

// ============== Narrative ==============

// NarrativeInput 叙事生成输入
type NarrativeInput struct {
	Ticker string                    `json:"ticker"`
	Inputs valuation.ValuationInputs `json:"inputs"`
	Result valuation.ValuationResult `json:"result"`
}

// NarrativeResult 叙事生成结果
type NarrativeResult struct {
	Ticker    string            `json:"ticker"`
	Tones     valuation.ToneSet `json:"tones"`
	Summary   string            `json:"summary"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ============== Report Generator ==============

// ReportGeneratorInput 报告生成输入
type ReportGeneratorInput struct {
	Ticker      string                       `json:"ticker"`
	Inputs      valuation.ValuationInputs    `json:"inputs"`
	Result      valuation.ValuationResult    `json:"result"`
	Sensitivity []valuation.SensitivityPoint `json:"sensitivity"`
	Narrative   *NarrativeResult             `json:"narrative"`
}

// ReportResult 报告结果
type ReportResult struct {
	Ticker          string    `json:"ticker"`
	MarkdownContent string    `json:"markdown_content"`
	HTMLContent     string    `json:"html_content"`
	GeneratedAt     time.Time `json:"generated_at"`
}
