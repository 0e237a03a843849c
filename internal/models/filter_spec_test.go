package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestFilterSpec_IsWellFormed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     FilterSpec
		expected bool
	}{
		{
			name:     "range with min only",
			spec:     FilterSpec{Type: FilterRange, Key: "latency_ms", Min: floatPtr(100)},
			expected: true,
		},
		{
			name:     "range with max only",
			spec:     FilterSpec{Type: FilterRange, Key: "latency_ms", Max: floatPtr(500)},
			expected: true,
		},
		{
			name:     "range with no bounds",
			spec:     FilterSpec{Type: FilterRange, Key: "latency_ms"},
			expected: false,
		},
		{
			name:     "equality with value",
			spec:     FilterSpec{Type: FilterEquals, Key: "result_code", Value: "TCP_MISS"},
			expected: true,
		},
		{
			name:     "equality without value",
			spec:     FilterSpec{Type: FilterEquals, Key: "result_code"},
			expected: false,
		},
		{
			name:     "membership with values",
			spec:     FilterSpec{Type: FilterIn, Key: "host", Values: []string{"edge-01"}},
			expected: true,
		},
		{
			name:     "membership with empty list",
			spec:     FilterSpec{Type: FilterIn, Key: "host", Values: []string{}},
			expected: false,
		},
		{
			name:     "unknown type",
			spec:     FilterSpec{Type: FilterType("glob"), Key: "host", Value: "x"},
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.spec.IsWellFormed())
		})
	}
}
