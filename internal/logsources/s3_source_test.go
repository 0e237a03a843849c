package logsources

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
)

func TestIsGzipObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		key             string
		contentEncoding *string
		expected        bool
	}{
		{
			name:     "plain csv key",
			key:      "2025/06/01/edge.csv",
			expected: false,
		},
		{
			name:     "gz suffix",
			key:      "2025/06/01/edge.csv.gz",
			expected: true,
		},
		{
			name:     "gz suffix uppercase",
			key:      "2025/06/01/EDGE.CSV.GZ",
			expected: true,
		},
		{
			name:            "content encoding gzip",
			key:             "2025/06/01/edge.csv",
			contentEncoding: aws.String("gzip"),
			expected:        true,
		},
		{
			name:            "content encoding gzip mixed case",
			key:             "2025/06/01/edge.csv",
			contentEncoding: aws.String("GZip"),
			expected:        true,
		},
		{
			name:            "content encoding identity",
			key:             "2025/06/01/edge.csv",
			contentEncoding: aws.String("identity"),
			expected:        false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, isGzipObject(tt.key, tt.contentEncoding))
		})
	}
}
