package analyzers

import (
	"sort"
	"strconv"

	"cdn-insight/internal/models"
)

const (
	fineBucketSeconds      = 60
	coarseBucketSeconds    = 900
	fineSpanCutoverMinutes = 180
)

// bucketize re-scans the filtered set into fixed-size time buckets. The
// bucket width follows the actual observed span of the filtered records,
// not the requested window, so an aggressive filter yielding a short real
// span still gets fine-grained buckets: span <= 180 minutes means
// 60-second buckets, otherwise 900-second. Buckets come back ascending
// and sparse; empty buckets are never synthesized. An empty filtered set
// yields the explicit empty-series marker (null bucketSeconds, no points).
func bucketize(records []*models.Record) models.Timeseries {
	series := models.Timeseries{Points: []models.TimeseriesPoint{}}

	var minTs, maxTs int64
	found := false
	for _, record := range records {
		if record.TimestampMs == nil {
			continue
		}
		ts := *record.TimestampMs
		if !found {
			minTs, maxTs = ts, ts
			found = true
			continue
		}
		if ts < minTs {
			minTs = ts
		}
		if ts > maxTs {
			maxTs = ts
		}
	}
	if !found {
		return series
	}

	bucketSeconds := int64(coarseBucketSeconds)
	if float64(maxTs-minTs)/60000 <= fineSpanCutoverMinutes {
		bucketSeconds = fineBucketSeconds
	}
	widthMs := bucketSeconds * 1000

	type bucketAccumulator struct {
		total         int64
		errors        int64
		latencies     []float64
		responseCodes map[string]int64
		resultCodes   map[string]int64
		hosts         map[string]int64
	}
	buckets := make(map[int64]*bucketAccumulator)
	for _, record := range records {
		if record.TimestampMs == nil {
			continue
		}
		bucketStart := (*record.TimestampMs / widthMs) * widthMs
		bucket, ok := buckets[bucketStart]
		if !ok {
			bucket = &bucketAccumulator{
				responseCodes: make(map[string]int64),
				resultCodes:   make(map[string]int64),
				hosts:         make(map[string]int64),
			}
			buckets[bucketStart] = bucket
		}
		bucket.total++
		if isErrorRecord(record) {
			bucket.errors++
		}
		if record.LatencyMs != nil {
			bucket.latencies = append(bucket.latencies, *record.LatencyMs)
		}
		if record.ResponseCode != nil {
			bucket.responseCodes[strconv.Itoa(*record.ResponseCode)]++
		}
		bucket.resultCodes[record.ResultCode]++
		bucket.hosts[record.Host]++
	}

	starts := make([]int64, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	for _, start := range starts {
		bucket := buckets[start]
		point := models.TimeseriesPoint{
			TimestampMs:   start,
			TotalRequests: bucket.total,
			ErrorCount:    bucket.errors,
			ErrorRatePct:  100 * float64(bucket.errors) / float64(bucket.total),
			ResponseCodes: bucket.responseCodes,
			ResultCodes:   bucket.resultCodes,
			Hosts:         bucket.hosts,
		}
		sort.Float64s(bucket.latencies)
		point.P95LatencyMs = percentileOf(bucket.latencies, 95)
		point.P99LatencyMs = percentileOf(bucket.latencies, 99)
		series.Points = append(series.Points, point)
	}

	startTs := (minTs / widthMs) * widthMs
	endTs := (maxTs / widthMs) * widthMs
	series.BucketSeconds = &bucketSeconds
	series.StartTs = &startTs
	series.EndTs = &endTs
	return series
}
