// 批量估值工作流
// 对一组标的并行执行子工作流，单个失败不影响整体
package workflow

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/workflow"
)

// BatchValuationInput 批量估值输入
type BatchValuationInput struct {
	Requests []ValuationRequest `json:"requests"`
}

// BatchValuationOutput 批量估值输出
type BatchValuationOutput struct {
	Outputs     []*ValuationOutput `json:"outputs"`
	Failed      []string           `json:"failed"` // 失败标的列表
	CompletedAt time.Time          `json:"completed_at"`
}

// BatchValuationWorkflow 批量估值工作流
// 每个标的启动一个独立的子工作流，使用 Selector 收集结果
func BatchValuationWorkflow(ctx workflow.Context, input BatchValuationInput) (*BatchValuationOutput, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting Batch Valuation Workflow", "request_count", len(input.Requests))

	// 每个标的的进度，供 Query 查询
	tickerProgress := make(map[string]string)
	for _, req := range input.Requests {
		tickerProgress[req.Ticker] = "pending"
	}

	err := workflow.SetQueryHandler(ctx, "batch-progress", func() (map[string]string, error) {
		return tickerProgress, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set query handler: %w", err)
	}

	output := &BatchValuationOutput{
		Outputs: make([]*ValuationOutput, 0, len(input.Requests)),
		Failed:  make([]string, 0),
	}

	// 并行启动每个标的的子工作流
	futures := make([]workflow.ChildWorkflowFuture, 0, len(input.Requests))
	for i, req := range input.Requests {
		childOpts := workflow.ChildWorkflowOptions{
			WorkflowID: fmt.Sprintf("valuation-%s-%s-%d",
				req.Ticker, workflow.GetInfo(ctx).WorkflowExecution.RunID, i),
		}
		childCtx := workflow.WithChildOptions(ctx, childOpts)

		futures = append(futures, workflow.ExecuteChildWorkflow(childCtx, ValuationWorkflow, req))
		tickerProgress[req.Ticker] = "in_progress"
	}

	// 使用 Selector 收集所有子工作流结果
	selector := workflow.NewSelector(ctx)
	for i, future := range futures {
		ticker := input.Requests[i].Ticker
		selector.AddFuture(future, func(f workflow.Future) {
			var result ValuationOutput
			if err := f.Get(ctx, &result); err != nil {
				logger.Error("Child valuation failed", "ticker", ticker, "error", err)
				tickerProgress[ticker] = "failed"
				output.Failed = append(output.Failed, ticker)
			} else {
				tickerProgress[ticker] = "completed"
				output.Outputs = append(output.Outputs, &result)
			}
		})
	}

	for range futures {
		selector.Select(ctx)
	}

	output.CompletedAt = workflow.Now(ctx)

	logger.Info("Batch Valuation Workflow completed",
		"completed", len(output.Outputs),
		"failed", len(output.Failed),
	)

	return output, nil
}
