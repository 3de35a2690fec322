// Prometheus 指标定义
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WorkflowDuration 工作流执行时长
	WorkflowDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "equival_workflow_duration_seconds",
			Help:    "Workflow execution duration",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"workflow_type", "status"},
	)

	// ActivityDuration 活动执行时长
	ActivityDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "equival_activity_duration_seconds",
			Help:    "Activity execution duration",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"activity_name", "status"},
	)

	// ValuationsTotal 估值执行次数
	ValuationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equival_valuations_total",
			Help: "Total valuation runs",
		},
		[]string{"status"}, // status: computed/cached
	)

	// NarrativeTone 叙事语气分布
	NarrativeTone = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equival_narrative_tone_total",
			Help: "Analyst narrative tone selections",
		},
		[]string{"valuation", "leverage", "forward"},
	)

	// SensitivityPoints 敏感性扫描采样点数
	SensitivityPoints = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "equival_sensitivity_points",
			Help:    "Number of points per sensitivity sweep",
			Buckets: []float64{0, 5, 11, 21, 41, 101, 201},
		},
	)

	// CacheHitRate 缓存命中率
	CacheHitRate = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equival_cache_operations_total",
			Help: "Cache operations count",
		},
		[]string{"operation", "result"}, // result: hit/miss
	)

	// ErrorsTotal 错误计数
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equival_errors_total",
			Help: "Total errors by level and code",
		},
		[]string{"level", "code"},
	)

	// ActiveWorkflows 活跃工作流数
	ActiveWorkflows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "equival_active_workflows",
			Help: "Number of currently active workflows",
		},
	)
)
