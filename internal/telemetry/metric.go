package telemetry

import (
	"assetline/config"
	"assetline/internal/core"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metric struct
type Metric struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	ApproveTotal        *prometheus.CounterVec
	ReturnTotal         *prometheus.CounterVec
	RateLimitTotal      *prometheus.CounterVec
	config              *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    config.App.Name + "_" + string(core.MetricHttpRequestDuration),
				Help:    "Request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		ApproveTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricApproveTotal),
				Help: "Request approve attempts by outcome",
			},
			labelNames(core.MetricLabelOutcome),
		),
		ReturnTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricReturnTotal),
				Help: "Request return attempts by outcome",
			},
			labelNames(core.MetricLabelOutcome),
		),
		RateLimitTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricRateLimitTotal),
				Help: "Submissions rejected by the rate limiter",
			},
			labelNames(core.MetricLabelEndpoint),
		),
	}
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
