package models

// FilterType discriminates the tagged FilterSpec variants.
type FilterType string

const (
	FilterRange  FilterType = "range"
	FilterEquals FilterType = "equals"
	FilterIn     FilterType = "in"
)

// FilterSpec is one declarative ad-hoc filter supplied by the caller.
// It is a tagged variant: range filters use Min/Max, equality filters use
// Value, membership filters use Values. Specs are validated at the request
// boundary and consumed once per engine invocation, never persisted.
//
// Example JSON:
//
//	[
//	  {"type": "range", "key": "latency_ms", "min": 100},
//	  {"type": "equals", "key": "result_code", "value": "TCP_MISS"},
//	  {"type": "in", "key": "host", "values": ["edge-01", "edge-02"]}
//	]
type FilterSpec struct {
	Type   FilterType `json:"type" validate:"required,oneof=range equals in"`
	Key    string     `json:"key" validate:"required"`
	Min    *float64   `json:"min,omitempty"`
	Max    *float64   `json:"max,omitempty"`
	Value  string     `json:"value,omitempty"`
	Values []string   `json:"values,omitempty"`
}

// IsWellFormed reports whether the variant carries the operands its type
// needs: at least one bound for range, a value for equality, a non-empty
// list for membership.
func (f *FilterSpec) IsWellFormed() bool {
	switch f.Type {
	case FilterRange:
		return f.Min != nil || f.Max != nil
	case FilterEquals:
		return f.Value != ""
	case FilterIn:
		return len(f.Values) > 0
	default:
		return false
	}
}
