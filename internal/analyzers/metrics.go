package analyzers

import (
	"cdn-insight/internal/shared/metrics"
)

var (
	// metricAnalysesTotal counts engine invocations by terminal error code
	// (empty for success).
	metricAnalysesTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "analyses_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricAnalysisDuration observes the wall time of one full stage chain.
	metricAnalysisDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "analysis_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{},
	)
)
