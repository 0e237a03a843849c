package logsources

import (
	"cdn-insight/internal/shared/metrics"
)

var (
	// metricObjectsFetchedTotal counts log-object fetches by error code.
	metricObjectsFetchedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubLogSource,
			Name:      "objects_fetched_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
