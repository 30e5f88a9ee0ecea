// Package merge combines course metadata, the aggregated slot data, and
// the heuristic segment fallback into the final per-course records.
package merge

import (
	"sort"

	"github.com/arjunmnair/aims-timetable/internal/types"
)

// Courses produces one output record per course in meta, sorted ascending
// by course code (plain string comparison).
//
// Per course: the slot field is a representative slot code, the last
// non-empty one across the course's slots; the segment is the last
// non-empty authoritative segment name across the slots, falling back to
// the precomputed heuristic, falling back to "". Authoritative data
// always overrides the heuristic. Slot data for rcids absent from meta is
// ignored here; it survives in the persisted aggregation.
func Courses(meta map[string]types.CourseMeta, slots map[string]types.CourseSlots, heuristic map[string]string) []types.CourseOutputRecord {
	rcids := make([]string, 0, len(meta))
	for rcid := range meta {
		rcids = append(rcids, rcid)
	}
	sort.Slice(rcids, func(i, j int) bool { return types.IDLess(rcids[i], rcids[j]) })

	records := make([]types.CourseOutputRecord, 0, len(meta))
	for _, rcid := range rcids {
		m := meta[rcid]
		record := types.CourseOutputRecord{
			CCode:     m.CCode,
			CName:     m.CName,
			CoordName: m.CoordName,
			Credits:   m.Credits,
			Segment:   heuristic[rcid],
		}
		if course, ok := slots[rcid]; ok {
			for _, slot := range course.Slots {
				if slot.SlotCode != "" {
					record.Slot = slot.SlotCode
				}
				if slot.SegName != "" {
					record.Segment = slot.SegName
				}
			}
		}
		records = append(records, record)
	}

	// Course code is the only sort key; courses sharing a code keep
	// their rcid order.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CCode < records[j].CCode
	})
	return records
}
