package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2026, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("05 Jan, 2026 00:00")
	require.True(t, ok)
	assert.Equal(t, date(time.January, 5), got)

	got, ok = ParseDate("  20 Mar, 2026 23:59  ")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.March, 20, 23, 59, 0, 0, time.UTC), got)

	_, ok = ParseDate("2026-01-05")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{"full semester", date(time.January, 5), date(time.April, 27), "1-6"},
		{"first half", date(time.January, 5), date(time.March, 20), "1-4"},
		{"second half", date(time.March, 25), date(time.April, 27), "5-6"},
		{"first segment pair", date(time.January, 5), date(time.February, 9), "1-2"},
		{"mid-term course", date(time.February, 10), date(time.March, 20), "2-4"},

		// Boundaries are inclusive on the lower bucket.
		{"start exactly on segment 1 boundary", date(time.January, 5), date(time.February, 9), "1-2"},
		{"start one day past segment 1 boundary", date(time.January, 6), date(time.February, 9), "2-2"},
		{"end exactly on Mar 09 boundary", date(time.January, 5), date(time.March, 9), "1-3"},
		{"end one day past Mar 09 boundary", date(time.January, 5), date(time.March, 10), "1-4"},

		// Everything past the second-to-last end boundary is terminal.
		{"end past Apr 27 still maps to 6", date(time.March, 30), date(time.June, 1), "5-6"},

		// Buckets are independent; start past end is accepted, not corrected.
		{"start after end", date(time.March, 30), date(time.January, 10), "5-2"},

		{"missing start", time.Time{}, date(time.April, 27), ""},
		{"missing end", date(time.January, 5), time.Time{}, ""},
		{"missing both", time.Time{}, time.Time{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.start, tt.end))
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	start, end := date(time.January, 5), date(time.March, 20)
	first := Classify(start, end)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(start, end))
	}
}

func TestClassifyDates(t *testing.T) {
	assert.Equal(t, "1-6", ClassifyDates("05 Jan, 2026 00:00", "27 Apr, 2026 00:00"))
	// Boundaries compare full datetimes: a time of day on the boundary
	// date falls past the midnight cutoff.
	assert.Equal(t, "2-3", ClassifyDates("05 Jan, 2026 09:00", "09 Feb, 2026 17:00"))
	assert.Equal(t, "", ClassifyDates("", "27 Apr, 2026 00:00"))
	assert.Equal(t, "", ClassifyDates("05 Jan, 2026 00:00", "not a date"))
}
