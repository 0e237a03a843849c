package models

import "strings"

// ValueUnknown is the sentinel stored in every canonical dimension when the
// source column is absent or empty. Dimension fields are never the empty string.
const ValueUnknown = "unknown"

// ResultCodeUnknown is the sentinel for an absent delivery-outcome code.
const ResultCodeUnknown = "UNKNOWN"

// CacheState is the tri-state cache marker of a record: an explicit hit,
// an explicit miss, or no marker in the source row at all.
type CacheState int

const (
	CacheAbsent CacheState = iota
	CacheHitState
	CacheMissState
)

func (c CacheState) String() string {
	switch c {
	case CacheHitState:
		return "hit"
	case CacheMissState:
		return "miss"
	default:
		return "absent"
	}
}

// MarshalJSON encodes the tri-state as "hit"/"miss"/"absent" for readability
// in debug payloads.
func (c CacheState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// ResultClass is the coarse category derived from a record's raw result code.
type ResultClass string

const (
	ClassHit     ResultClass = "hit"
	ClassMiss    ResultClass = "miss"
	ClassClient  ResultClass = "client"
	ClassError   ResultClass = "error"
	ClassOther   ResultClass = "other"
	ClassUnknown ResultClass = "unknown"
)

// Record is one normalized edge-log line. Dimension strings are lower-cased
// and never empty (sentinel "unknown"); numeric fields are nil when the
// source column was absent or unparsable, so data-quality counters can tell
// "never supplied" from "legitimately zero". Records are immutable once
// produced by the normalizer.
type Record struct {
	TimestampMs  *int64      `json:"timestampMs"` // epoch milliseconds UTC, nil when unparsable
	Service      string      `json:"service"`
	Region       string      `json:"region"`
	Pop          string      `json:"pop"`
	Host         string      `json:"host"`
	ResponseCode *int        `json:"responseCode"`
	LatencyMs    *float64    `json:"latencyMs"`
	CacheHit     CacheState  `json:"cacheHit"`
	ResultCode   string      `json:"resultCode"` // upper-cased, "UNKNOWN" when absent
	ResultClass  ResultClass `json:"resultClass"`
	RawURL       string      `json:"rawUrl,omitempty"` // original url, kept only for derivation fallback
}

// ClassifyResultCode maps a raw result code onto its coarse class.
// The mapping is case-insensitive and a pure function of the code.
func ClassifyResultCode(code string) ResultClass {
	upper := strings.ToUpper(strings.TrimSpace(code))
	switch upper {
	case "", ResultCodeUnknown:
		return ClassUnknown
	case "TCP_HIT", "TCP_CF_HIT", "TCP_REF_FAIL_HIT", "TCP_REFRESH_HIT":
		return ClassHit
	case "TCP_MISS", "TCP_REFRESH_MISS":
		return ClassMiss
	case "TCP_CLIENT_REFRESH":
		return ClassClient
	}
	if strings.HasPrefix(upper, "ERR_") {
		return ClassError
	}
	return ClassOther
}
