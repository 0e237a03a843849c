package normalizers

import (
	"encoding/csv"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cdn-insight/internal/models"
)

// Canonical column names. Historical exports spell several of these
// differently; fieldAliases maps the known spellings back.
const (
	colTimestamp  = "timestamp"
	colService    = "service"
	colRegion     = "region"
	colPop        = "pop"
	colHost       = "host"
	colStatusCode = "status_code"
	colLatencyMs  = "latency_ms"
	colCacheHit   = "cache_hit"
	colResultCode = "result_code"
	colURL        = "url"
)

// fieldAliases is the ordered candidate list per canonical field. The
// canonical name always wins; otherwise the first present alias does.
// Header names are matched case-sensitively.
var fieldAliases = []struct {
	canonical string
	aliases   []string
}{
	{colTimestamp, []string{"ts", "time", "datetime", "event_time", "@timestamp"}},
	{colService, []string{"service_name", "svc"}},
	{colRegion, []string{"edge_region"}},
	{colPop, []string{"edge_pop", "site"}},
	{colHost, []string{"hostname", "server", "edge_host"}},
	{colStatusCode, []string{"status", "http_status", "response_code"}},
	{colLatencyMs, []string{"ttms", "latency", "duration_ms", "response_time_ms"}},
	{colCacheHit, []string{"cache_status", "hit"}},
	{colResultCode, []string{"crc", "cache_result_code", "result"}},
	{colURL, []string{"raw_url", "request_url", "uri"}},
}

// edgeTokenPattern matches the embedded edge-<region>-<pop> token some
// exports carry in the request URL instead of dedicated columns.
var edgeTokenPattern = regexp.MustCompile(`edge-([a-z0-9]+)-([a-z0-9]+)`)

//go:generate mockgen -source=record_normalizer.go -destination=./mocks/record_normalizer_mock.go -package=mocks
type RecordNormalizer interface {
	// Normalize parses raw delimited log text (first line = header,
	// RFC4180 quoting) into an ordered sequence of Records.
	Normalize(logText string) ([]*models.Record, error)
}

type recordNormalizer struct{}

func NewRecordNormalizer() RecordNormalizer {
	return &recordNormalizer{}
}

func (n *recordNormalizer) Normalize(logText string) ([]*models.Record, error) {
	if strings.TrimSpace(logText) == "" {
		return nil, errParseFailed("log text is empty", nil)
	}

	reader := csv.NewReader(strings.NewReader(logText))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errParseFailed("malformed delimited text", err)
	}
	if len(rows) < 2 {
		return nil, errParseFailed("log text has a header but no data rows", nil)
	}

	layout := resolveColumns(rows[0])
	if len(layout) == 0 {
		// A wrong delimiter leaves the whole header in one unrecognized cell.
		return nil, errParseFailed("no recognizable columns in header; wrong delimiter?", nil)
	}

	records := make([]*models.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, n.normalizeRow(layout, row))
	}
	if len(records) == 0 {
		return nil, errParseFailed("log text produced zero rows", nil)
	}

	metricRowsNormalizedTotal.WithLabelValues(valueNoError).Add(float64(len(records)))
	return records, nil
}

// resolveColumns resolves the header once into a canonical-field -> column
// index table, per the alias configuration above.
func resolveColumns(header []string) map[string]int {
	byName := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}

	layout := make(map[string]int)
	for _, field := range fieldAliases {
		if idx, ok := byName[field.canonical]; ok {
			layout[field.canonical] = idx
			continue
		}
		for _, alias := range field.aliases {
			if idx, ok := byName[alias]; ok {
				layout[field.canonical] = idx
				break
			}
		}
	}
	return layout
}

func (n *recordNormalizer) normalizeRow(layout map[string]int, row []string) *models.Record {
	cell := func(field string) (string, bool) {
		idx, ok := layout[field]
		if !ok || idx >= len(row) {
			return "", false
		}
		v := strings.TrimSpace(row[idx])
		return v, v != ""
	}

	record := &models.Record{}

	if raw, ok := cell(colTimestamp); ok {
		record.TimestampMs = parseTimestampMs(raw)
	}

	record.Service = dimensionOrUnknown(cell(colService))
	record.Region = dimensionOrUnknown(cell(colRegion))
	record.Pop = dimensionOrUnknown(cell(colPop))
	record.Host = dimensionOrUnknown(cell(colHost))
	record.RawURL, _ = cell(colURL)

	// Fall back to the URL when dedicated dimension columns are absent.
	if record.Region == models.ValueUnknown || record.Pop == models.ValueUnknown {
		if region, pop, ok := deriveEdgeToken(record.RawURL); ok {
			if record.Region == models.ValueUnknown {
				record.Region = region
			}
			if record.Pop == models.ValueUnknown {
				record.Pop = pop
			}
		}
	}
	if record.Host == models.ValueUnknown {
		if host, ok := deriveAuthorityHost(record.RawURL); ok {
			record.Host = host
		}
	}

	if raw, ok := cell(colStatusCode); ok {
		if code, err := strconv.Atoi(raw); err == nil {
			record.ResponseCode = &code
		}
	}
	if raw, ok := cell(colLatencyMs); ok {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			record.LatencyMs = &v
		}
	}

	record.CacheHit = parseCacheState(cell(colCacheHit))

	if raw, ok := cell(colResultCode); ok {
		record.ResultCode = strings.ToUpper(raw)
	} else {
		record.ResultCode = models.ResultCodeUnknown
	}
	record.ResultClass = models.ClassifyResultCode(record.ResultCode)

	return record
}

func dimensionOrUnknown(raw string, ok bool) string {
	if !ok {
		return models.ValueUnknown
	}
	return strings.ToLower(raw)
}

func parseCacheState(raw string, ok bool) models.CacheState {
	if !ok {
		return models.CacheAbsent
	}
	switch strings.ToLower(raw) {
	case "hit", "true", "1":
		return models.CacheHitState
	case "miss", "false", "0":
		return models.CacheMissState
	default:
		return models.CacheAbsent
	}
}

// timestampLayouts are tried in order after the numeric-epoch fast path.
// Layouts without a zone suffix are interpreted as UTC.
var timestampLayouts = []struct {
	layout  string
	hasZone bool
}{
	{time.RFC3339Nano, true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02 15:04:05.999999999Z07:00", true},
	{"2006-01-02 15:04:05.999999999", false},
}

// parseTimestampMs parses a timestamp cell into epoch milliseconds UTC.
// Accepts RFC3339 with any fractional precision, the same without a zone
// suffix, a space instead of 'T', and numeric epochs (>= 1e12 means
// milliseconds, else seconds). Returns nil when unparsable.
func parseTimestampMs(raw string) *int64 {
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		var ms int64
		if math.Abs(v) >= 1e12 {
			ms = int64(math.Round(v))
		} else {
			ms = int64(math.Round(v * 1000))
		}
		return &ms
	}

	for _, candidate := range timestampLayouts {
		var t time.Time
		var err error
		if candidate.hasZone {
			t, err = time.Parse(candidate.layout, raw)
		} else {
			t, err = time.ParseInLocation(candidate.layout, raw, time.UTC)
		}
		if err == nil {
			ms := t.UTC().UnixMilli()
			return &ms
		}
	}
	return nil
}

// deriveEdgeToken scans a raw URL for an embedded edge-<region>-<pop> token.
func deriveEdgeToken(rawURL string) (region, pop string, ok bool) {
	if rawURL == "" {
		return "", "", false
	}
	m := edgeTokenPattern.FindStringSubmatch(strings.ToLower(rawURL))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// deriveAuthorityHost extracts the lower-cased authority host of a raw URL.
func deriveAuthorityHost(rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "", false
	}
	return strings.ToLower(u.Hostname()), true
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
