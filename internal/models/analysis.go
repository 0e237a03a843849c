package models

// S3ObjectRef names an S3 object holding the raw log text for one analysis.
type S3ObjectRef struct {
	Bucket string `json:"bucket" validate:"required"`
	Key    string `json:"key" validate:"required"`
}

// AnalyzeRequest is the declarative input of one engine invocation: the raw
// delimited log text (inline or by object reference), the three canonical
// dimension selectors ("all" or empty means wildcard), the trailing window
// length, and an optional ordered list of ad-hoc filters.
type AnalyzeRequest struct {
	LogText       string       `json:"logText"`
	Source        *S3ObjectRef `json:"source,omitempty"`
	Service       string       `json:"service"`
	Region        string       `json:"region"`
	Pop           string       `json:"pop"`
	WindowMinutes float64      `json:"windowMinutes"`
	Filters       []FilterSpec `json:"filters,omitempty" validate:"omitempty,dive"`
	Debug         bool         `json:"debug"`
}

// TimeRange is the selected window in ISO-8601 UTC, inclusive both ends.
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// KeyCount is one row of a categorical breakdown.
type KeyCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// CodeCount is one row of the response-code histogram.
type CodeCount struct {
	Code  int   `json:"code"`
	Count int64 `json:"count"`
}

// HostStats is the per-host sub-aggregate: its own total, percentile
// latencies, and capped response-code / result-code histograms.
type HostStats struct {
	Host          string      `json:"host"`
	TotalRequests int64       `json:"totalRequests"`
	P95LatencyMs  *float64    `json:"p95LatencyMs"`
	P99LatencyMs  *float64    `json:"p99LatencyMs"`
	ResponseCodes []CodeCount `json:"responseCodes"`
	ResultCodes   []KeyCount  `json:"resultCodes"`
}

// HostCodeCount is one flattened (host, resultCode, count) tuple.
type HostCodeCount struct {
	Host       string `json:"host"`
	ResultCode string `json:"resultCode"`
	Count      int64  `json:"count"`
}

// TimeseriesPoint is one non-empty time bucket. Per-bucket count maps are
// unbounded; consumers render them selectively.
type TimeseriesPoint struct {
	TimestampMs   int64            `json:"timestampMs"` // bucket start, epoch ms
	TotalRequests int64            `json:"totalRequests"`
	ErrorCount    int64            `json:"errorCount"`
	ErrorRatePct  float64          `json:"errorRatePct"`
	P95LatencyMs  *float64         `json:"p95LatencyMs"`
	P99LatencyMs  *float64         `json:"p99LatencyMs"`
	ResponseCodes map[string]int64 `json:"responseCodes"`
	ResultCodes   map[string]int64 `json:"resultCodes"`
	Hosts         map[string]int64 `json:"hosts"`
}

// Timeseries is the bucketed series over the filtered set. Buckets are
// ascending and sparse: empty buckets are never synthesized. When the
// filtered set is empty, BucketSeconds/StartTs/EndTs are null and Points
// is empty.
type Timeseries struct {
	BucketSeconds *int64            `json:"bucketSeconds"`
	StartTs       *int64            `json:"startTs"` // bucket-aligned floor of min observed ts, epoch ms
	EndTs         *int64            `json:"endTs"`   // bucket-aligned floor of max observed ts, epoch ms
	Points        []TimeseriesPoint `json:"points"`
}

// DataQualityCounters counts sentinel/missing values over one record set.
type DataQualityCounters struct {
	InvalidTimestamp    int64 `json:"invalidTimestamp"`
	MissingResponseCode int64 `json:"missingResponseCode"`
	UnknownService      int64 `json:"unknownService"`
	UnknownRegion       int64 `json:"unknownRegion"`
	UnknownPop          int64 `json:"unknownPop"`
	UnknownHost         int64 `json:"unknownHost"`
	UnknownResultCode   int64 `json:"unknownResultCode"`
}

// DataQualityReport carries counters for the whole dataset and for the
// in-window subset, reported separately.
type DataQualityReport struct {
	All    DataQualityCounters `json:"all"`
	Window DataQualityCounters `json:"window"`
}

// DebugInfo is attached to the result only when the caller sets debug=true.
type DebugInfo struct {
	RowsParsed   int      `json:"rowsParsed"`
	RowsInWindow int      `json:"rowsInWindow"`
	RowsMatched  int      `json:"rowsMatched"`
	SampleRecord *Record  `json:"sampleRecord,omitempty"`
	Services     []string `json:"services"`
	Regions      []string `json:"regions"`
	Pops         []string `json:"pops"`
	Hosts        []string `json:"hosts"`
}

// MetricsResult is the engine's sole output, produced fresh on every call.
// Percentile and ratio fields are null (never 0 or NaN) when undefined due
// to zero samples.
type MetricsResult struct {
	TimeRange             TimeRange         `json:"timeRange"`
	TotalRequests         int64             `json:"totalRequests"`
	P95LatencyMs          *float64          `json:"p95LatencyMs"`
	P99LatencyMs          *float64          `json:"p99LatencyMs"`
	CacheHitPct           *float64          `json:"cacheHitPct"`
	CacheMissPct          *float64          `json:"cacheMissPct"`
	ResponseCodeHistogram []CodeCount       `json:"responseCodeHistogram"`
	ErrorCount            int64             `json:"errorCount"`
	ErrorRatePct          *float64          `json:"errorRatePct"`
	TopServices           []KeyCount        `json:"topServices"`
	TopRegions            []KeyCount        `json:"topRegions"`
	TopPops               []KeyCount        `json:"topPops"`
	TopHosts              []KeyCount        `json:"topHosts"`
	TopResultClasses      []KeyCount        `json:"topResultClasses"`
	TopResultCodes        []KeyCount        `json:"topResultCodes"`
	HostBreakdown         []HostStats       `json:"hostBreakdown"`
	HostByResultCode      []HostCodeCount   `json:"hostByResultCodeFlattened"`
	Timeseries            Timeseries        `json:"timeseries"`
	Warnings              []string          `json:"warnings"`
	DataQuality           DataQualityReport `json:"dataQuality"`
	Debug                 *DebugInfo        `json:"debug,omitempty"`
}
