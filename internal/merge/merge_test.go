package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunmnair/aims-timetable/internal/types"
)

func meta(rcid, ccode, cname string) types.CourseMeta {
	return types.CourseMeta{RCID: rcid, CCode: ccode, CName: cname, CoordName: "Prof. " + ccode, Credits: "3"}
}

func TestAuthoritativeSegmentOverridesHeuristic(t *testing.T) {
	metas := map[string]types.CourseMeta{"101": meta("101", "CS101", "Algorithms")}
	slots := map[string]types.CourseSlots{
		"101": {RCID: "101", Slots: []types.SlotEntry{
			{SlotID: "S1", SlotCode: "A", SegName: "3", DayTimes: []string{"Mon 09:00"}},
		}},
	}
	heuristic := map[string]string{"101": "2-4"}

	records := Courses(metas, slots, heuristic)
	require.Len(t, records, 1)
	assert.Equal(t, "3", records[0].Segment)
	assert.Equal(t, "A", records[0].Slot)
}

func TestHeuristicFallbackWhenNoAuthoritativeSegment(t *testing.T) {
	metas := map[string]types.CourseMeta{"101": meta("101", "CS101", "Algorithms")}
	slots := map[string]types.CourseSlots{
		"101": {RCID: "101", Slots: []types.SlotEntry{
			{SlotID: "S1", SlotCode: "A", SegName: "", DayTimes: []string{"Mon 09:00"}},
		}},
	}

	records := Courses(metas, slots, map[string]string{"101": "1-4"})
	require.Len(t, records, 1)
	assert.Equal(t, "1-4", records[0].Segment)
}

func TestCourseWithoutSlots(t *testing.T) {
	metas := map[string]types.CourseMeta{
		"101": meta("101", "CS101", "Algorithms"),
		"102": meta("102", "CS102", "Databases"),
	}
	heuristic := map[string]string{"101": "1-2"}

	records := Courses(metas, nil, heuristic)
	require.Len(t, records, 2)

	assert.Equal(t, "1-2", records[0].Segment)
	assert.Empty(t, records[0].Slot)
	assert.Empty(t, records[1].Segment)
	assert.Empty(t, records[1].Slot)
}

func TestRepresentativeSlotCodeIsLastNonEmpty(t *testing.T) {
	metas := map[string]types.CourseMeta{"101": meta("101", "CS101", "Algorithms")}
	slots := map[string]types.CourseSlots{
		"101": {RCID: "101", Slots: []types.SlotEntry{
			{SlotID: "S1", SlotCode: "A", SegName: "2"},
			{SlotID: "S2", SlotCode: "B", SegName: ""},
			{SlotID: "S3", SlotCode: "", SegName: ""},
		}},
	}

	records := Courses(metas, slots, nil)
	require.Len(t, records, 1)
	assert.Equal(t, "B", records[0].Slot)
	assert.Equal(t, "2", records[0].Segment)
}

func TestOutputSortedByCourseCodeAsPlainStrings(t *testing.T) {
	metas := map[string]types.CourseMeta{
		"1": meta("1", "CS9", "Nine"),
		"2": meta("2", "CS10", "Ten"),
		"3": meta("3", "AI101", "Intro"),
	}

	records := Courses(metas, nil, nil)
	require.Len(t, records, 3)
	// Plain string order: "CS10" < "CS9".
	assert.Equal(t, "AI101", records[0].CCode)
	assert.Equal(t, "CS10", records[1].CCode)
	assert.Equal(t, "CS9", records[2].CCode)
}

func TestEqualCourseCodesKeepRcidOrder(t *testing.T) {
	metas := map[string]types.CourseMeta{
		"30": meta("30", "CS101", "Section B"),
		"9":  meta("9", "CS101", "Section A"),
		"2":  meta("2", "AI101", "Intro"),
	}

	records := Courses(metas, nil, nil)
	require.Len(t, records, 3)
	assert.Equal(t, "AI101", records[0].CCode)
	assert.Equal(t, "Section A", records[1].CName)
	assert.Equal(t, "Section B", records[2].CName)
}

func TestSlotDataForUnknownCourseIsIgnoredWithoutError(t *testing.T) {
	metas := map[string]types.CourseMeta{"101": meta("101", "CS101", "Algorithms")}
	slots := map[string]types.CourseSlots{
		"999": {RCID: "999", Slots: []types.SlotEntry{{SlotID: "S9", SlotCode: "Z"}}},
	}

	records := Courses(metas, slots, nil)
	require.Len(t, records, 1)
	assert.Equal(t, "CS101", records[0].CCode)
	assert.Empty(t, records[0].Slot)
}
