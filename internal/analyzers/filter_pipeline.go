package analyzers

import (
	"strconv"
	"strings"

	"cdn-insight/internal/models"
)

// dimensionEffect records how one canonical dimension filter narrowed the
// set; diagnostics uses it to flag filters that had no effect.
type dimensionEffect struct {
	name    string
	value   string
	applied bool
	before  int
	after   int
}

// filterOutcome is the result of the whole pipeline: the matched set plus
// the per-dimension narrowing trail.
type filterOutcome struct {
	matched    []*models.Record
	dimensions []dimensionEffect
}

// isWildcardSelector reports whether a dimension selector matches everything:
// the literal "all" (case-insensitive) or the empty string.
func isWildcardSelector(value string) bool {
	return value == "" || strings.EqualFold(value, "all")
}

// applyFilterPipeline narrows the in-window set by the three canonical
// dimension filters in order, then by the ad-hoc FilterSpecs as an
// AND-conjunction in the order supplied.
func applyFilterPipeline(records []*models.Record, req *models.AnalyzeRequest) *filterOutcome {
	outcome := &filterOutcome{matched: records}

	dimensions := []struct {
		name     string
		value    string
		selector func(*models.Record) string
	}{
		{"service", req.Service, func(r *models.Record) string { return r.Service }},
		{"region", req.Region, func(r *models.Record) string { return r.Region }},
		{"pop", req.Pop, func(r *models.Record) string { return r.Pop }},
	}
	for _, dim := range dimensions {
		effect := dimensionEffect{name: dim.name, value: dim.value, before: len(outcome.matched)}
		if !isWildcardSelector(dim.value) {
			effect.applied = true
			kept := make([]*models.Record, 0, len(outcome.matched))
			for _, record := range outcome.matched {
				if strings.EqualFold(dim.selector(record), dim.value) {
					kept = append(kept, record)
				}
			}
			outcome.matched = kept
		}
		effect.after = len(outcome.matched)
		outcome.dimensions = append(outcome.dimensions, effect)
	}

	for i := range req.Filters {
		spec := &req.Filters[i]
		kept := make([]*models.Record, 0, len(outcome.matched))
		for _, record := range outcome.matched {
			if matchesFilterSpec(record, spec) {
				kept = append(kept, record)
			}
		}
		outcome.matched = kept
	}

	return outcome
}

// matchesFilterSpec evaluates one tagged filter variant against a record.
// Range filters fail closed on non-numeric values; equality and membership
// compare the raw (possibly empty) string view case-insensitively, so an
// unknown key typically excludes the record.
func matchesFilterSpec(record *models.Record, spec *models.FilterSpec) bool {
	switch spec.Type {
	case models.FilterRange:
		v, ok := numericFieldValue(record, spec.Key)
		if !ok {
			return false
		}
		if spec.Min != nil && v < *spec.Min {
			return false
		}
		if spec.Max != nil && v > *spec.Max {
			return false
		}
		return true
	case models.FilterEquals:
		return strings.EqualFold(fieldValue(record, spec.Key), spec.Value)
	case models.FilterIn:
		v := fieldValue(record, spec.Key)
		for _, candidate := range spec.Values {
			if strings.EqualFold(v, candidate) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// fieldValue returns the raw string view of a record field by canonical
// key. Absent numeric fields and unknown keys yield the empty string.
func fieldValue(record *models.Record, key string) string {
	switch key {
	case "service":
		return record.Service
	case "region":
		return record.Region
	case "pop":
		return record.Pop
	case "host":
		return record.Host
	case "status_code":
		if record.ResponseCode == nil {
			return ""
		}
		return strconv.Itoa(*record.ResponseCode)
	case "latency_ms":
		if record.LatencyMs == nil {
			return ""
		}
		return strconv.FormatFloat(*record.LatencyMs, 'f', -1, 64)
	case "result_code":
		return record.ResultCode
	case "result_class":
		return string(record.ResultClass)
	case "cache_hit":
		if record.CacheHit == models.CacheAbsent {
			return ""
		}
		return record.CacheHit.String()
	case "timestamp":
		if record.TimestampMs == nil {
			return ""
		}
		return strconv.FormatInt(*record.TimestampMs, 10)
	case "url":
		return record.RawURL
	default:
		return ""
	}
}

func numericFieldValue(record *models.Record, key string) (float64, bool) {
	raw := fieldValue(record, key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
