package metricsTypes

import "time"

type IMetricsClient interface {
	Incr(name string, labels []MetricsLabel, value float64) error
	Gauge(name string, value float64, labels []MetricsLabel) error
	Timing(name string, value time.Duration, labels []MetricsLabel) error
	Flush()
}

type MetricsLabel struct {
	Name  string
	Value string
}

type MetricsType string

var (
	MetricsType_Incr   MetricsType = "incr"
	MetricsType_Gauge  MetricsType = "gauge"
	MetricsType_Timing MetricsType = "timing"
)

type MetricsTypeConfig struct {
	Name   string
	Labels []string
}

var (
	Metric_Incr_PendingClaimsComputed = "claims.pending.computed"
	Metric_Incr_ReportFetched         = "claims.report.fetched"
	Metric_Incr_ReportCacheHit        = "claims.reportCache.hit"
	Metric_Incr_ReportCacheMiss       = "claims.reportCache.miss"
	Metric_Incr_ClaimSubmitted        = "claims.submitted"
	Metric_Incr_ClaimSubmitFailed     = "claims.submit.failed"
	Metric_Incr_EstimateFailed        = "estimate.failed"

	Metric_Gauge_PendingWeeks = "claims.pending.weeks"

	Metric_Timing_PendingClaimsDuration = "claims.pending.duration"
)

var MetricTypes = map[MetricsType][]MetricsTypeConfig{
	MetricsType_Incr: {
		MetricsTypeConfig{
			Name: Metric_Incr_PendingClaimsComputed,
			Labels: []string{
				"network",
			},
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_ReportFetched,
			Labels: []string{},
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_ReportCacheHit,
			Labels: []string{},
		},
		MetricsTypeConfig{
			Name:   Metric_Incr_ReportCacheMiss,
			Labels: []string{},
		},
		MetricsTypeConfig{
			Name: Metric_Incr_ClaimSubmitted,
			Labels: []string{
				"network",
			},
		},
		MetricsTypeConfig{
			Name: Metric_Incr_ClaimSubmitFailed,
			Labels: []string{
				"network",
			},
		},
		MetricsTypeConfig{
			Name: Metric_Incr_EstimateFailed,
			Labels: []string{
				"network",
				"reason",
			},
		},
	},
	MetricsType_Gauge: {
		MetricsTypeConfig{
			Name: Metric_Gauge_PendingWeeks,
			Labels: []string{
				"network",
				"token",
			},
		},
	},
	MetricsType_Timing: {
		MetricsTypeConfig{
			Name: Metric_Timing_PendingClaimsDuration,
			Labels: []string{
				"network",
				"hasError",
			},
		},
	},
}
