package analyzers

import (
	"fmt"

	"cdn-insight/internal/models"
)

// countDataQuality tallies sentinel and missing values over one record set.
func countDataQuality(records []*models.Record) models.DataQualityCounters {
	var counters models.DataQualityCounters
	for _, record := range records {
		if record.TimestampMs == nil {
			counters.InvalidTimestamp++
		}
		if record.ResponseCode == nil {
			counters.MissingResponseCode++
		}
		if record.Service == models.ValueUnknown {
			counters.UnknownService++
		}
		if record.Region == models.ValueUnknown {
			counters.UnknownRegion++
		}
		if record.Pop == models.ValueUnknown {
			counters.UnknownPop++
		}
		if record.Host == models.ValueUnknown {
			counters.UnknownHost++
		}
		if record.ResultCode == models.ResultCodeUnknown {
			counters.UnknownResultCode++
		}
	}
	return counters
}

// deriveWarnings produces the advisory warning strings. Warnings never
// alter control flow or metric values.
func deriveWarnings(outcome *filterOutcome, inWindowCount int, windowCounters models.DataQualityCounters) []string {
	warnings := []string{}

	for _, dim := range outcome.dimensions {
		if dim.applied && dim.before > 0 && dim.after == dim.before {
			warnings = append(warnings, fmt.Sprintf(
				"%s filter %q did not reduce the windowed set; the column may be missing or misnamed",
				dim.name, dim.value))
		}
	}

	if inWindowCount > 0 && len(outcome.matched) == 0 {
		warnings = append(warnings, "filters removed every record in the window")
	}

	if windowCounters.MissingResponseCode > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d records in the window have no response code", windowCounters.MissingResponseCode))
	}
	if windowCounters.InvalidTimestamp > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d records in the window have an invalid timestamp", windowCounters.InvalidTimestamp))
	}

	return warnings
}
