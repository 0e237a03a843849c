package normalizers

import (
	"cdn-insight/internal/shared/metrics"
)

const valueNoError = metrics.ValueNoError

var (
	// metricRowsNormalizedTotal counts log rows turned into Records,
	// labeled with the parse error code when normalization fails outright.
	metricRowsNormalizedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubNormalize,
			Name:      "rows_normalized_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
