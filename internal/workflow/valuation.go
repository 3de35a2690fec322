// 估值主工作流
// 编排单个标的的完整估值: 指标计算 → 敏感性/叙事 (并行) → 报告
package workflow

import (
	"fmt"
	"time"

	"github.com/equival-ai/equival/internal/activity"
	"github.com/equival-ai/equival/pkg/errors"
	"github.com/equival-ai/equival/pkg/valuation"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// ValuationRequest 工作流输入
type ValuationRequest struct {
	Ticker string                    `json:"ticker"`
	Inputs valuation.ValuationInputs `json:"inputs"`
	Sweep  valuation.SweepRange      `json:"sweep"` // 零值时使用配置默认区间
}

// ValuationOutput 工作流输出
type ValuationOutput struct {
	Ticker      string                       `json:"ticker"`
	Result      *valuation.ValuationResult   `json:"result"`
	Sensitivity []valuation.SensitivityPoint `json:"sensitivity"`
	Narrative   *activity.NarrativeResult    `json:"narrative"`
	Report      *activity.ReportResult       `json:"report"`
	TraceID     string                       `json:"trace_id"`
	CompletedAt time.Time                    `json:"completed_at"`
}

// ProgressInfo 进度信息 (用于 Query)
type ProgressInfo struct {
	CurrentStep    string   `json:"current_step"`
	CompletedSteps []string `json:"completed_steps"`
	TotalSteps     int      `json:"total_steps"`
	Progress       float64  `json:"progress"`
}

// InterventionSignal 人工干预信号
type InterventionSignal struct {
	Type string `json:"type"` // pause, resume, cancel
}

// ValuationWorkflow 单标的估值工作流
func ValuationWorkflow(ctx workflow.Context, input ValuationRequest) (*ValuationOutput, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting Valuation Workflow", "ticker", input.Ticker)

	// 初始化 Saga 补偿
	saga := NewSagaCompensation()

	// 进度跟踪
	var currentStep string
	completedSteps := make([]string, 0)
	const totalSteps = 4

	// 注册 Query Handler
	err := workflow.SetQueryHandler(ctx, "progress", func() (ProgressInfo, error) {
		return ProgressInfo{
			CurrentStep:    currentStep,
			CompletedSteps: completedSteps,
			TotalSteps:     totalSteps,
			Progress:       float64(len(completedSteps)) / float64(totalSteps) * 100,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set query handler: %w", err)
	}

	// 配置 Activity 选项
	activityOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 1 * time.Minute,
		HeartbeatTimeout:    30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        1 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        30 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{"FatalError", "ValidationError"},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOpts)

	// 信号通道 - 人工干预
	isPaused := false
	signalChan := workflow.GetSignalChannel(ctx, "human-intervention")

	// 启动信号监听 goroutine
	workflow.Go(ctx, func(gCtx workflow.Context) {
		for {
			var signal InterventionSignal
			signalChan.Receive(gCtx, &signal)

			switch signal.Type {
			case "pause":
				isPaused = true
				logger.Info("Workflow paused by signal")
			case "resume":
				isPaused = false
				logger.Info("Workflow resumed by signal")
			case "cancel":
				logger.Info("Workflow cancelled by signal")
				return
			}
		}
	})

	// 等待恢复的辅助函数
	waitForResume := func() {
		_ = workflow.Await(ctx, func() bool { return !isPaused })
	}

	output := &ValuationOutput{
		Ticker:  input.Ticker,
		TraceID: workflow.GetInfo(ctx).WorkflowExecution.RunID,
	}

	// ============== Step 1: 估值指标计算 ==============
	currentStep = "RunValuation"

	var valuationResult activity.RunValuationResult
	if err := workflow.ExecuteActivity(ctx, "RunValuationActivity",
		activity.RunValuationInput{
			Ticker: input.Ticker,
			Inputs: input.Inputs,
		}).Get(ctx, &valuationResult); err != nil {
		classifiedErr := errors.ClassifyError(err)
		logger.Error("RunValuation failed",
			"error", err,
			"level", classifiedErr.Level.String(),
		)
		return nil, fmt.Errorf("valuation activity failed: %w", err)
	}

	completedSteps = append(completedSteps, "RunValuation")
	output.Result = &valuationResult.Result
	saga.AddCompensation("result", func(ctx workflow.Context) error {
		return cleanupCachedSection(ctx, input.Ticker, "result")
	})

	if isPaused {
		waitForResume()
	}

	// ============== Step 2 & 3: 并行执行敏感性扫描和叙事生成 ==============
	// 两者都只消费 Step 1 的结果，互不依赖
	currentStep = "Sensitivity,Narrative"

	var sensitivityResult activity.SensitivityResult
	var narrativeResult activity.NarrativeResult

	sensitivityFuture := workflow.ExecuteActivity(ctx, "SensitivityActivity",
		activity.SensitivityInput{
			Ticker: input.Ticker,
			Inputs: valuationResult.Inputs,
			Range:  input.Sweep,
		})

	narrativeFuture := workflow.ExecuteActivity(ctx, "NarrativeActivity",
		activity.NarrativeInput{
			Ticker: input.Ticker,
			Inputs: valuationResult.Inputs,
			Result: valuationResult.Result,
		})

	// 等待并行任务完成
	selector := workflow.NewSelector(ctx)

	selector.AddFuture(sensitivityFuture, func(f workflow.Future) {
		if err := f.Get(ctx, &sensitivityResult); err != nil {
			logger.Error("Sensitivity sweep failed", "error", err)
		} else {
			completedSteps = append(completedSteps, "Sensitivity")
			output.Sensitivity = sensitivityResult.Points
			saga.AddCompensation("sensitivity", func(ctx workflow.Context) error {
				return cleanupCachedSection(ctx, input.Ticker, "sensitivity")
			})
		}
	})

	selector.AddFuture(narrativeFuture, func(f workflow.Future) {
		if err := f.Get(ctx, &narrativeResult); err != nil {
			logger.Error("Narrative generation failed", "error", err)
		} else {
			completedSteps = append(completedSteps, "Narrative")
			output.Narrative = &narrativeResult
		}
	})

	for i := 0; i < 2; i++ {
		selector.Select(ctx)
	}

	if isPaused {
		waitForResume()
	}

	// ============== Step 4: 报告生成 ==============
	currentStep = "ReportGenerator"

	var reportResult activity.ReportResult
	if err := workflow.ExecuteActivity(ctx, "ReportGeneratorActivity",
		activity.ReportGeneratorInput{
			Ticker:      input.Ticker,
			Inputs:      valuationResult.Inputs,
			Result:      valuationResult.Result,
			Sensitivity: output.Sensitivity,
			Narrative:   output.Narrative,
		}).Get(ctx, &reportResult); err != nil {
		classifiedErr := errors.ClassifyError(err)
		if classifiedErr.Level >= errors.L2Intervention {
			_ = saga.Execute(ctx)
			return nil, fmt.Errorf("report generation failed: %w", err)
		}
		logger.Warn("ReportGenerator failed", "error", err)
	} else {
		completedSteps = append(completedSteps, "ReportGenerator")
		output.Report = &reportResult
	}

	output.CompletedAt = workflow.Now(ctx)

	logger.Info("Valuation Workflow completed",
		"ticker", input.Ticker,
		"completed_steps", completedSteps,
		"sensitivity_points", len(output.Sensitivity),
	)

	return output, nil
}

// cleanupCachedSection 补偿函数: 清理某一区段的缓存
func cleanupCachedSection(ctx workflow.Context, ticker, section string) error {
	return workflow.ExecuteActivity(ctx, "CleanupCacheActivity", ticker, section).Get(ctx, nil)
}
