package analyzers

import (
	"math"

	"cdn-insight/internal/models"
)

// windowSelection is the outcome of anchoring a trailing window on the
// freshest observed timestamp and partitioning records against it.
type windowSelection struct {
	anchorMs int64
	startMs  int64
	endMs    int64
	inWindow []*models.Record
}

// selectWindow computes anchor = max(valid timestamps), the inclusive
// window [anchor - windowMinutes, anchor], and the in-window partition.
// Records outside the window (including those with invalid timestamps)
// are dropped from further processing but still feed the whole-dataset
// data-quality counters upstream. windowMinutes is validated before this
// stage.
func selectWindow(records []*models.Record, windowMinutes float64) (*windowSelection, error) {
	anchorFound := false
	var anchorMs int64
	for _, record := range records {
		if record.TimestampMs == nil {
			continue
		}
		if !anchorFound || *record.TimestampMs > anchorMs {
			anchorMs = *record.TimestampMs
			anchorFound = true
		}
	}
	if !anchorFound {
		return nil, errNoValidTimestamps()
	}

	startMs := anchorMs - int64(math.Round(windowMinutes*60000))
	selection := &windowSelection{
		anchorMs: anchorMs,
		startMs:  startMs,
		endMs:    anchorMs,
	}
	for _, record := range records {
		if record.TimestampMs == nil {
			continue
		}
		ts := *record.TimestampMs
		if ts >= startMs && ts <= anchorMs {
			selection.inWindow = append(selection.inWindow, record)
		}
	}
	return selection, nil
}
