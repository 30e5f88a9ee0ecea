// Package aggregate deduplicates raw timetable rows into per-slot records.
package aggregate

import (
	"sort"

	"github.com/arjunmnair/aims-timetable/internal/types"
)

// Aggregator accumulates raw slot rows into a deduplicated mapping keyed
// by (rcid, slotId, slotCd). It is owned and mutated by a single
// sequential consumer; it is not safe for concurrent use.
type Aggregator struct {
	dayTimes map[types.SlotKey]map[string]struct{}
	segments map[types.SlotKey]string
}

// New returns an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{
		dayTimes: make(map[types.SlotKey]map[string]struct{}),
		segments: make(map[types.SlotKey]string),
	}
}

// Add records one raw row. Insertion is idempotent: the day/time strings
// for a key form a set, and the first non-empty segment name observed for
// a key is retained; later values never overwrite it.
func (a *Aggregator) Add(row types.RawSlotRow) {
	key := row.Key()
	set, ok := a.dayTimes[key]
	if !ok {
		set = make(map[string]struct{})
		a.dayTimes[key] = set
	}
	set[row.DayTime] = struct{}{}

	if row.SegName != "" {
		if _, taken := a.segments[key]; !taken {
			a.segments[key] = row.SegName
		}
	}
}

// Len reports the number of distinct slot keys seen.
func (a *Aggregator) Len() int {
	return len(a.dayTimes)
}

// DayTimes returns the sorted distinct day/time strings for a key.
func (a *Aggregator) DayTimes(key types.SlotKey) []string {
	set := a.dayTimes[key]
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for dt := range set {
		out = append(out, dt)
	}
	sort.Strings(out)
	return out
}

// Segment returns the first non-empty segment name recorded for a key,
// or "" when none was observed.
func (a *Aggregator) Segment(key types.SlotKey) string {
	return a.segments[key]
}

// Keys returns all slot keys ordered by (rcid, slotId, slotCd), with
// numeric-aware comparison on the rcid.
func (a *Aggregator) Keys() []types.SlotKey {
	keys := make([]types.SlotKey, 0, len(a.dayTimes))
	for key := range a.dayTimes {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].RCID != keys[j].RCID {
			return types.IDLess(keys[i].RCID, keys[j].RCID)
		}
		if keys[i].SlotID != keys[j].SlotID {
			return keys[i].SlotID < keys[j].SlotID
		}
		return keys[i].SlotCode < keys[j].SlotCode
	})
	return keys
}

// Snapshot builds the per-course aggregation view. Course metadata is
// joined by rcid; rcids without metadata still appear, with empty code
// and name. Slots are sorted by (slotId, slotCd) and day/times are
// sorted within each slot.
func (a *Aggregator) Snapshot(meta map[string]types.CourseMeta) map[string]types.CourseSlots {
	out := make(map[string]types.CourseSlots)
	for _, key := range a.Keys() {
		course, ok := out[key.RCID]
		if !ok {
			m := meta[key.RCID]
			course = types.CourseSlots{RCID: key.RCID, CCode: m.CCode, CName: m.CName}
		}
		course.Slots = append(course.Slots, types.SlotEntry{
			SlotID:   key.SlotID,
			SlotCode: key.SlotCode,
			SegName:  a.segments[key],
			DayTimes: a.DayTimes(key),
		})
		out[key.RCID] = course
	}
	return out
}
