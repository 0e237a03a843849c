package analyzers

import (
	"cdn-insight/internal/models"
)

func msPtr(v int64) *int64        { return &v }
func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// testRecord builds a valid baseline record at the given timestamp with
// every dimension set to its sentinel.
func testRecord(tsMs int64) *models.Record {
	return &models.Record{
		TimestampMs: msPtr(tsMs),
		Service:     models.ValueUnknown,
		Region:      models.ValueUnknown,
		Pop:         models.ValueUnknown,
		Host:        models.ValueUnknown,
		ResultCode:  models.ResultCodeUnknown,
		ResultClass: models.ClassUnknown,
	}
}
