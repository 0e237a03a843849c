package analyzers

import (
	"testing"

	"cdn-insight/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketize_EmptySet(t *testing.T) {
	t.Parallel()

	series := bucketize(nil)

	assert.Nil(t, series.BucketSeconds)
	assert.Nil(t, series.StartTs)
	assert.Nil(t, series.EndTs)
	require.NotNil(t, series.Points)
	assert.Empty(t, series.Points)
}

func TestBucketize_ShortSpanUsesFineBuckets(t *testing.T) {
	t.Parallel()

	// 2025-06-01T10:00:00Z, records across 45 minutes.
	base := int64(1748772000000)
	records := []*models.Record{
		testRecord(base),
		testRecord(base + 10*60000),
		testRecord(base + 45*60000),
	}

	series := bucketize(records)

	require.NotNil(t, series.BucketSeconds)
	assert.Equal(t, int64(60), *series.BucketSeconds)
	require.NotNil(t, series.StartTs)
	assert.Equal(t, base, *series.StartTs)
	require.NotNil(t, series.EndTs)
	assert.Equal(t, base+45*60000, *series.EndTs)
}

func TestBucketize_LongSpanUsesCoarseBuckets(t *testing.T) {
	t.Parallel()

	base := int64(1748772000000)
	records := []*models.Record{
		testRecord(base),
		testRecord(base + 181*60000),
	}

	series := bucketize(records)

	require.NotNil(t, series.BucketSeconds)
	assert.Equal(t, int64(900), *series.BucketSeconds)
}

func TestBucketize_SpanExactlyAtCutoverStaysFine(t *testing.T) {
	t.Parallel()

	base := int64(1748772000000)
	records := []*models.Record{
		testRecord(base),
		testRecord(base + 180*60000),
	}

	series := bucketize(records)

	require.NotNil(t, series.BucketSeconds)
	assert.Equal(t, int64(60), *series.BucketSeconds)
}

func TestBucketize_SparseAscendingPointsCoverAllRecords(t *testing.T) {
	t.Parallel()

	base := int64(1748772000000)
	// Two records in the first minute, a two-minute gap, one record later.
	// The gap bucket must not be synthesized.
	records := []*models.Record{
		testRecord(base + 3*60000), // deliberately out of order
		testRecord(base),
		testRecord(base + 30000),
	}

	series := bucketize(records)

	require.Len(t, series.Points, 2)
	assert.Equal(t, base, series.Points[0].TimestampMs)
	assert.Equal(t, int64(2), series.Points[0].TotalRequests)
	assert.Equal(t, base+3*60000, series.Points[1].TimestampMs)
	assert.Equal(t, int64(1), series.Points[1].TotalRequests)

	var covered int64
	for _, point := range series.Points {
		covered += point.TotalRequests
	}
	assert.Equal(t, int64(len(records)), covered)
}

func TestBucketize_BucketAlignment(t *testing.T) {
	t.Parallel()

	// 10:00:37Z falls in the 10:00:00 minute bucket.
	base := int64(1748772000000)
	records := []*models.Record{testRecord(base + 37000)}

	series := bucketize(records)

	require.Len(t, series.Points, 1)
	assert.Equal(t, base, series.Points[0].TimestampMs)
	require.NotNil(t, series.StartTs)
	assert.Equal(t, base, *series.StartTs)
	require.NotNil(t, series.EndTs)
	assert.Equal(t, base, *series.EndTs)
}

func TestBucketize_PerBucketMetrics(t *testing.T) {
	t.Parallel()

	base := int64(1748772000000)
	records := make([]*models.Record, 0, 3)
	for i, spec := range []struct {
		status  int
		code    string
		host    string
		latency float64
	}{
		{200, "TCP_HIT", "edge-01", 10},
		{200, "TCP_MISS", "edge-02", 20},
		{503, "ERR_CONNECT_FAIL", "edge-01", 30},
	} {
		record := testRecord(base + int64(i)*1000)
		record.ResponseCode = intPtr(spec.status)
		record.ResultCode = spec.code
		record.Host = spec.host
		record.LatencyMs = floatPtr(spec.latency)
		records = append(records, record)
	}

	series := bucketize(records)

	require.Len(t, series.Points, 1)
	point := series.Points[0]
	assert.Equal(t, int64(3), point.TotalRequests)
	assert.Equal(t, int64(1), point.ErrorCount)
	assert.InDelta(t, 100.0/3, point.ErrorRatePct, 1e-9)
	assert.Equal(t, map[string]int64{"200": 2, "503": 1}, point.ResponseCodes)
	assert.Equal(t, map[string]int64{"TCP_HIT": 1, "TCP_MISS": 1, "ERR_CONNECT_FAIL": 1}, point.ResultCodes)
	assert.Equal(t, map[string]int64{"edge-01": 2, "edge-02": 1}, point.Hosts)
	require.NotNil(t, point.P95LatencyMs)
	assert.InDelta(t, 29.0, *point.P95LatencyMs, 1e-9)
}

func TestBucketize_RecordsWithoutTimestampsSkipped(t *testing.T) {
	t.Parallel()

	noTimestamp := testRecord(0)
	noTimestamp.TimestampMs = nil

	series := bucketize([]*models.Record{noTimestamp})

	assert.Nil(t, series.BucketSeconds)
	assert.Empty(t, series.Points)
}
