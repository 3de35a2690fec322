// Activity 实现
// 封装估值引擎的具体执行: 缓存优先，计算结果回写 Redis
package activity

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/equival-ai/equival/pkg/cache"
	"github.com/equival-ai/equival/pkg/config"
	"github.com/equival-ai/equival/pkg/metrics"
	"github.com/equival-ai/equival/pkg/tracing"
	"github.com/equival-ai/equival/pkg/valuation"
	"go.opentelemetry.io/otel/attribute"
	"go.temporal.io/sdk/activity"
	"go.uber.org/zap"
)

// Activities 包含所有 Activity 的依赖
type Activities struct {
	config *config.Config
	logger *zap.Logger
	cache  *cache.RedisCache
}

// NewActivities 创建 Activities 实例
func NewActivities(cfg *config.Config, logger *zap.Logger) (*Activities, error) {
	redisCache, err := cache.NewRedisCache(cfg.Storage.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis cache: %w", err)
	}

	return &Activities{
		config: cfg,
		logger: logger,
		cache:  redisCache,
	}, nil
}

// Close 关闭资源
func (a *Activities) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

// hashInputs 对清洗后的输入做内容寻址，同一输入集命中同一缓存键
func hashInputs(in valuation.ValuationInputs) string {
	payload, _ := json.Marshal(in)
	return fmt.Sprintf("%x", sha256.Sum256(payload))[:16]
}

// RunValuationActivity 执行当期 + 前瞻估值计算
func (a *Activities) RunValuationActivity(ctx context.Context, input RunValuationInput) (*RunValuationResult, error) {
	logger := a.logger.With(zap.String("activity", "RunValuation"), zap.String("ticker", input.Ticker))

	startTime := time.Now()
	defer func() {
		metrics.ActivityDuration.WithLabelValues("RunValuation", "success").Observe(time.Since(startTime).Seconds())
	}()

	ctx, span := tracing.StartSpan(ctx, "activity.RunValuation")
	defer span.End()
	tracing.SetAttributes(ctx, attribute.String("ticker", input.Ticker))

	// 在边界清洗一次，后续计算和缓存键都基于清洗后的输入
	inputs := input.Inputs.Sanitized()
	hash := hashInputs(inputs)

	// 1. 检查缓存
	cacheKey := fmt.Sprintf("valuation:%s:%s:result", input.Ticker, hash)
	cached, err := a.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var result RunValuationResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			logger.Info("Cache hit for valuation result")
			metrics.CacheHitRate.WithLabelValues("get", "hit").Inc()
			metrics.ValuationsTotal.WithLabelValues("cached").Inc()
			return &result, nil
		}
	}
	metrics.CacheHitRate.WithLabelValues("get", "miss").Inc()

	// 2. 心跳
	activity.RecordHeartbeat(ctx, "Computing valuation metrics...")

	// 3. 执行引擎
	result := &RunValuationResult{
		Ticker:    input.Ticker,
		Inputs:    inputs,
		Result:    valuation.RunValuation(inputs),
		InputHash: hash,
		UpdatedAt: time.Now(),
	}
	metrics.ValuationsTotal.WithLabelValues("computed").Inc()

	// 4. 存入缓存
	resultJSON, _ := json.Marshal(result)
	if err := a.cache.Set(ctx, cacheKey, string(resultJSON), a.config.Valuation.CacheTTL.Result); err != nil {
		logger.Warn("Failed to cache valuation result", zap.Error(err))
	}

	logger.Info("Valuation completed",
		zap.Float64("market_cap", result.Result.Current.MarketCap),
		zap.Float64("ev_to_ebitda", result.Result.Current.EVToEBITDA),
		zap.Float64("base_implied", result.Result.Current.ImpliedSharePrices.Base),
	)

	return result, nil
}

// SensitivityActivity 生成倍数敏感性序列
// 基于前瞻经营基数扫描；区间非法时返回空序列，同样作为有效结果缓存
func (a *Activities) SensitivityActivity(ctx context.Context, input SensitivityInput) (*SensitivityResult, error) {
	logger := a.logger.With(zap.String("activity", "Sensitivity"), zap.String("ticker", input.Ticker))

	startTime := time.Now()
	defer func() {
		metrics.ActivityDuration.WithLabelValues("Sensitivity", "success").Observe(time.Since(startTime).Seconds())
	}()

	ctx, span := tracing.StartSpan(ctx, "activity.Sensitivity")
	defer span.End()

	inputs := input.Inputs.Sanitized()
	rng := input.Range
	if rng == (valuation.SweepRange{}) {
		rng = valuation.SweepRange{
			MinMultiple: a.config.Valuation.Sweep.MinMultiple,
			MaxMultiple: a.config.Valuation.Sweep.MaxMultiple,
			Step:        a.config.Valuation.Sweep.Step,
		}
	}

	cacheKey := fmt.Sprintf("valuation:%s:%s:sensitivity:%g-%g-%g",
		input.Ticker, hashInputs(inputs), rng.MinMultiple, rng.MaxMultiple, rng.Step)
	cached, err := a.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var result SensitivityResult
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			logger.Info("Cache hit for sensitivity sweep")
			metrics.CacheHitRate.WithLabelValues("get", "hit").Inc()
			return &result, nil
		}
	}
	metrics.CacheHitRate.WithLabelValues("get", "miss").Inc()

	activity.RecordHeartbeat(ctx, "Sweeping valuation multiples...")

	points := valuation.RunSensitivity(inputs, rng)
	metrics.SensitivityPoints.Observe(float64(len(points)))
	if len(points) == 0 {
		logger.Warn("Degenerate sweep range, returning empty series",
			zap.Float64("min", rng.MinMultiple),
			zap.Float64("max", rng.MaxMultiple),
			zap.Float64("step", rng.Step),
		)
	}

	result := &SensitivityResult{
		Ticker:    input.Ticker,
		Range:     rng,
		Points:    points,
		UpdatedAt: time.Now(),
	}

	resultJSON, _ := json.Marshal(result)
	_ = a.cache.Set(ctx, cacheKey, string(resultJSON), a.config.Valuation.CacheTTL.Sensitivity)

	logger.Info("Sensitivity sweep completed", zap.Int("point_count", len(points)))
	return result, nil
}

// NarrativeActivity 生成分析师叙事
func (a *Activities) NarrativeActivity(ctx context.Context, input NarrativeInput) (*NarrativeResult, error) {
	logger := a.logger.With(zap.String("activity", "Narrative"), zap.String("ticker", input.Ticker))

	startTime := time.Now()
	defer func() {
		metrics.ActivityDuration.WithLabelValues("Narrative", "success").Observe(time.Since(startTime).Seconds())
	}()

	ctx, span := tracing.StartSpan(ctx, "activity.Narrative")
	defer span.End()

	inputs := input.Inputs.Sanitized()
	tones := valuation.DeriveTones(inputs, input.Result)
	summary := valuation.RenderAnalystSummary(inputs, input.Result, tones)

	metrics.NarrativeTone.WithLabelValues(
		string(tones.Valuation), string(tones.Leverage), string(tones.Forward),
	).Inc()

	logger.Info("Narrative generated",
		zap.String("valuation_tone", string(tones.Valuation)),
		zap.String("leverage_tone", string(tones.Leverage)),
		zap.String("forward_tone", string(tones.Forward)),
	)

	return &NarrativeResult{
		Ticker:    input.Ticker,
		Tones:     tones,
		Summary:   summary,
		UpdatedAt: time.Now(),
	}, nil
}

// ReportGeneratorActivity 生成投研报告 (Markdown + HTML)
func (a *Activities) ReportGeneratorActivity(ctx context.Context, input ReportGeneratorInput) (*ReportResult, error) {
	logger := a.logger.With(zap.String("activity", "ReportGenerator"), zap.String("ticker", input.Ticker))

	startTime := time.Now()
	defer func() {
		metrics.ActivityDuration.WithLabelValues("ReportGenerator", "success").Observe(time.Since(startTime).Seconds())
	}()

	ctx, span := tracing.StartSpan(ctx, "activity.ReportGenerator")
	defer span.End()

	activity.RecordHeartbeat(ctx, "Rendering valuation report...")

	markdown := buildReportMarkdown(input)
	html, err := renderReportHTML(markdown)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to render report HTML: %w", err)
	}

	result := &ReportResult{
		Ticker:          input.Ticker,
		MarkdownContent: markdown,
		HTMLContent:     html,
		GeneratedAt:     time.Now(),
	}

	// 存入缓存
	cacheKey := fmt.Sprintf("valuation:%s:report:latest", input.Ticker)
	resultJSON, _ := json.Marshal(result)
	_ = a.cache.Set(ctx, cacheKey, string(resultJSON), a.config.Valuation.CacheTTL.Report)

	logger.Info("Report generated", zap.Int("markdown_bytes", len(markdown)))
	return result, nil
}

// CleanupCacheActivity 清理某公司某一区段的缓存
// 由 Saga 补偿调用，回收失败工作流留下的半成品
func (a *Activities) CleanupCacheActivity(ctx context.Context, ticker, section string) error {
	pattern := fmt.Sprintf("valuation:%s:*:%s*", ticker, section)
	if section == "report" {
		pattern = fmt.Sprintf("valuation:%s:report:*", ticker)
	}

	deleted, err := a.cache.DeletePattern(ctx, pattern)
	if err != nil {
		return fmt.Errorf("failed to cleanup cache for %s/%s: %w", ticker, section, err)
	}

	a.logger.Info("Cache cleanup completed",
		zap.String("ticker", ticker),
		zap.String("section", section),
		zap.Int64("deleted", deleted),
	)
	return nil
}

// NotifyCompensationFailure 通知补偿失败
func (a *Activities) NotifyCompensationFailure(ctx context.Context, stepName string, errorMsg string) error {
	a.logger.Error("Compensation failed, manual intervention required",
		zap.String("step", stepName),
		zap.String("error", errorMsg),
	)
	return nil
}
