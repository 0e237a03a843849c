package analyzers

import (
	"testing"

	"cdn-insight/internal/models"
	"cdn-insight/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectWindow_AnchorsOnFreshestTimestamp(t *testing.T) {
	t.Parallel()

	base := int64(1748772000000)
	records := []*models.Record{
		testRecord(base),
		testRecord(base + 30_000),
		testRecord(base + 90_000),
	}

	selection, err := selectWindow(records, 60)
	require.NoError(t, err)

	assert.Equal(t, base+90_000, selection.anchorMs)
	assert.Equal(t, base+90_000, selection.endMs)
	assert.Equal(t, base+90_000-3_600_000, selection.startMs)
	assert.Len(t, selection.inWindow, 3)
}

func TestSelectWindow_InclusiveBothEnds(t *testing.T) {
	t.Parallel()

	base := int64(1748772000000)
	records := []*models.Record{
		testRecord(base),           // exactly at start
		testRecord(base + 30_000),  // inside
		testRecord(base + 60_000),  // exactly at anchor
		testRecord(base - 1),       // one ms before start
	}

	selection, err := selectWindow(records, 1)
	require.NoError(t, err)

	assert.Equal(t, base+60_000, selection.anchorMs)
	assert.Equal(t, base, selection.startMs)
	require.Len(t, selection.inWindow, 3)
	for _, record := range selection.inWindow {
		ts := *record.TimestampMs
		assert.GreaterOrEqual(t, ts, selection.startMs)
		assert.LessOrEqual(t, ts, selection.endMs)
	}
}

func TestSelectWindow_InvalidTimestampsExcluded(t *testing.T) {
	t.Parallel()

	base := int64(1748772000000)
	invalid := testRecord(0)
	invalid.TimestampMs = nil
	records := []*models.Record{
		testRecord(base),
		invalid,
	}

	selection, err := selectWindow(records, 5)
	require.NoError(t, err)
	assert.Len(t, selection.inWindow, 1)
}

func TestSelectWindow_NoValidTimestamps(t *testing.T) {
	t.Parallel()

	first := testRecord(0)
	first.TimestampMs = nil
	second := testRecord(0)
	second.TimestampMs = nil

	selection, err := selectWindow([]*models.Record{first, second}, 5)
	assert.Nil(t, selection)
	require.Error(t, err)

	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ANL_1001", svcErr.Code)
}

func TestSelectWindow_FractionalMinutes(t *testing.T) {
	t.Parallel()

	base := int64(1748772000000)
	records := []*models.Record{
		testRecord(base),
		testRecord(base + 45_000),
	}

	selection, err := selectWindow(records, 0.5)
	require.NoError(t, err)

	assert.Equal(t, base+45_000-30_000, selection.startMs)
	assert.Len(t, selection.inWindow, 1)
}
