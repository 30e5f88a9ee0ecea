// Package types provides type definitions for structured data used throughout the timetable aggregation system.
package types

import "strings"

// CourseMeta holds the locally sourced metadata for one running course.
// Instances are immutable once loaded; the first occurrence of an rcid
// across the input CSVs wins.
type CourseMeta struct {
	RCID      string `json:"rcid"`
	CCode     string `json:"ccode"`
	CName     string `json:"cname"`
	CoordName string `json:"coordname,omitempty"`
	Credits   string `json:"ccrd,omitempty"`

	// StartDate and EndDate are the raw strtdt/enddt strings from the
	// course CSV, e.g. "05 Jan, 2026 00:00". They feed the segment
	// heuristic; parsing failures there are tolerated.
	StartDate string `json:"strtdt,omitempty"`
	EndDate   string `json:"enddt,omitempty"`
}

// SlotKey is the composite identity of a logical slot. Two raw rows with
// the same SlotKey describe the same slot and must be merged.
type SlotKey struct {
	RCID     string
	SlotID   string
	SlotCode string
}

// RawSlotRow is one row of the remote timetable response after tolerant
// decoding. Fields are trimmed strings; numeric JSON values are rendered
// as their decimal text.
type RawSlotRow struct {
	RCID     string
	SlotID   string
	SlotCode string
	DayTime  string
	SegName  string
}

// Key returns the row's composite slot identity.
func (r RawSlotRow) Key() SlotKey {
	return SlotKey{RCID: r.RCID, SlotID: r.SlotID, SlotCode: r.SlotCode}
}

// SlotEntry is one deduplicated slot in the persisted aggregation.
type SlotEntry struct {
	SlotID   string   `json:"courseSlotId"`
	SlotCode string   `json:"courseSlotCd"`
	SegName  string   `json:"segName"`
	DayTimes []string `json:"slotPeriodCdDays"`
}

// CourseSlots is the per-course view of the aggregation, as written to
// slots.json. Slots are sorted by (SlotID, SlotCode); DayTimes are the
// sorted distinct day/time strings.
type CourseSlots struct {
	RCID  string      `json:"rcid"`
	CCode string      `json:"ccode"`
	CName string      `json:"cname"`
	Slots []SlotEntry `json:"slots"`
}

// CourseOutputRecord is the final merged row for one course, as written
// to courses_with_slots.csv. Records are ordered ascending by CCode.
type CourseOutputRecord struct {
	CCode     string `json:"ccode"`
	CName     string `json:"cname"`
	CoordName string `json:"coordname"`
	Credits   string `json:"ccrd"`
	Segment   string `json:"segment"`
	Slot      string `json:"slots"`
}

// IDLess orders course/slot identifiers the way the registration portal
// assigns them: all-digit ids compare by numeric value, everything else
// falls back to plain string comparison. Digit-only ids sort before
// non-digit ids.
func IDLess(a, b string) bool {
	aNum, bNum := isDigits(a), isDigits(b)
	switch {
	case aNum && bNum:
		at, bt := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if len(at) != len(bt) {
			return len(at) < len(bt)
		}
		if at != bt {
			return at < bt
		}
		return a < b
	case aNum != bNum:
		return aNum
	default:
		return a < b
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
