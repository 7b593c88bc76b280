package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseGranularity(t *testing.T) {
	g, ok := ParseGranularity("daily")
	assert.True(t, ok)
	assert.Equal(t, Daily, g)

	g, ok = ParseGranularity("yearly")
	assert.True(t, ok)
	assert.Equal(t, Yearly, g)

	// Empty selects the default.
	g, ok = ParseGranularity("")
	assert.True(t, ok)
	assert.Equal(t, Weekly, g)

	_, ok = ParseGranularity("hourly")
	assert.False(t, ok)
}

func TestBucketForDaily(t *testing.T) {
	ts := time.Date(2025, 9, 10, 18, 45, 12, 0, time.UTC)

	start, label := bucketFor(Daily, ts)
	assert.Equal(t, time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, "Sep 10, 2025", label)
}

func TestBucketForWeeklyStartsMonday(t *testing.T) {
	// Wednesday and the following Sunday land in the same bucket.
	wednesday := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 9, 14, 23, 0, 0, 0, time.UTC)

	startW, labelW := bucketFor(Weekly, wednesday)
	startS, labelS := bucketFor(Weekly, sunday)

	assert.Equal(t, time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC), startW)
	assert.Equal(t, startW, startS)
	assert.Equal(t, "2025-W37", labelW)
	assert.Equal(t, labelW, labelS)
}

func TestBucketForWeeklyYearBoundary(t *testing.T) {
	// Jan 1, 2027 is a Friday belonging to ISO week 2026-W53.
	ts := time.Date(2027, 1, 1, 10, 0, 0, 0, time.UTC)

	start, label := bucketFor(Weekly, ts)
	assert.Equal(t, time.Date(2026, 12, 28, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, "2026-W53", label)
}

func TestBucketForMonthly(t *testing.T) {
	ts := time.Date(2025, 9, 30, 23, 59, 59, 0, time.UTC)

	start, label := bucketFor(Monthly, ts)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, "Sep 2025", label)
}

func TestBucketForYearly(t *testing.T) {
	ts := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	start, label := bucketFor(Yearly, ts)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, "2025", label)
}

func TestBucketForPreservesLocation(t *testing.T) {
	loc := time.FixedZone("PDT", -7*60*60)
	ts := time.Date(2025, 9, 10, 1, 30, 0, 0, loc)

	start, _ := bucketFor(Daily, ts)
	assert.Equal(t, loc, start.Location())
	assert.Equal(t, 0, start.Hour())
}
