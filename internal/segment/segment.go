// Package segment infers an academic-term segment label for a course from
// its start and end dates. The label is a best-effort heuristic used only
// when the registration portal does not report an authoritative segment.
package segment

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the date format used by the course CSVs, e.g. "05 Jan, 2026 00:00".
const DateLayout = "02 Jan, 2006 15:04"

// Approximate segment boundaries for the Jan-Apr term. Common patterns:
// 1-6 full semester (Jan 05 -> Apr 27), 1-4 (Jan 05 -> Mar 20/23),
// 4-6 (Mar -> Apr 27), 1-2 (Jan 05 -> Feb 09).
var (
	jan05 = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	feb09 = time.Date(2026, time.February, 9, 0, 0, 0, 0, time.UTC)
	feb10 = time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC)
	feb26 = time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC)
	mar09 = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)
	mar20 = time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)
	mar23 = time.Date(2026, time.March, 23, 0, 0, 0, 0, time.UTC)
	apr27 = time.Date(2026, time.April, 27, 0, 0, 0, 0, time.UTC)
)

// ParseDate parses a course CSV date string. The boolean reports whether
// the string was a valid date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Classify maps a (start, end) date pair to a segment label of the form
// "<start>-<end>", or "" when either date is the zero time. The start and
// end buckets are computed independently; a start bucket past the end
// bucket is possible and deliberately not corrected.
func Classify(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d-%d", startBucket(start), endBucket(end))
}

// ClassifyDates parses both date strings and classifies them. Unparseable
// or empty dates yield "".
func ClassifyDates(startDate, endDate string) string {
	start, okStart := ParseDate(startDate)
	end, okEnd := ParseDate(endDate)
	if !okStart || !okEnd {
		return ""
	}
	return Classify(start, end)
}

// startBucket buckets a start date by on-or-before comparison against the
// ascending boundaries; anything past the last boundary lands in 5.
func startBucket(start time.Time) int {
	switch {
	case !start.After(jan05):
		return 1
	case !start.After(feb10):
		return 2
	case !start.After(feb26):
		return 3
	case !start.After(mar23):
		return 4
	default:
		return 5
	}
}

// endBucket buckets an end date. The boundary set is non-exhaustive on
// purpose: everything past Mar 20 maps to the terminal segment 6.
func endBucket(end time.Time) int {
	switch {
	case !end.After(feb09):
		return 2
	case !end.After(mar09):
		return 3
	case !end.After(mar20):
		return 4
	case !end.After(apr27):
		return 6
	default:
		return 6
	}
}
