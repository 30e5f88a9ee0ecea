package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunmnair/aims-timetable/internal/types"
)

func sampleSlots() map[string]types.CourseSlots {
	return map[string]types.CourseSlots{
		"101": {
			RCID:  "101",
			CCode: "CS101",
			CName: "Algorithms",
			Slots: []types.SlotEntry{
				{SlotID: "S1", SlotCode: "A", SegName: "2", DayTimes: []string{"Mon 09:00", "Tue 10:00"}},
			},
		},
		"99": {
			RCID: "99",
			Slots: []types.SlotEntry{
				{SlotID: "S9", SlotCode: "Z", SegName: "", DayTimes: []string{"Fri 15:00"}},
			},
		},
	}
}

func TestWriteAndReadSlotsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.json")
	require.NoError(t, WriteSlotsJSON(path, sampleSlots()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "\n"))

	back, err := ReadSlotsJSON(path)
	require.NoError(t, err)
	assert.Equal(t, sampleSlots(), back)
}

func TestWriteSlotsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.csv")
	require.NoError(t, WriteSlotsCSV(path, sampleSlots()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"rcid", "ccode", "cname", "courseSlotId", "courseSlotCd", "segName", "slotPeriodCdDays"}, rows[0])
	// Numeric-aware rcid order: 99 before 101.
	assert.Equal(t, []string{"99", "", "", "S9", "Z", "", "Fri 15:00"}, rows[1])
	assert.Equal(t, []string{"101", "CS101", "Algorithms", "S1", "A", "2", "Mon 09:00 | Tue 10:00"}, rows[2])
}

func TestWriteCoursesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses_with_slots.csv")
	records := []types.CourseOutputRecord{
		{CCode: "CS101", CName: "Algorithms", CoordName: "Prof. Rao", Credits: "3", Segment: "2", Slot: "S1"},
		{CCode: "CS102", CName: "Databases", CoordName: "Prof. Iyer", Credits: "3", Segment: "", Slot: ""},
	}
	require.NoError(t, WriteCoursesCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ccode", "cname", "coordname", "ccrd", "segment", "slots"}, rows[0])
	assert.Equal(t, []string{"CS101", "Algorithms", "Prof. Rao", "3", "2", "S1"}, rows[1])
	assert.Equal(t, []string{"CS102", "Databases", "Prof. Iyer", "3", "", ""}, rows[2])
}

func TestWriteSlotOutputs(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "slots.json")
	csvPath := filepath.Join(dir, "slots.csv")

	require.NoError(t, WriteSlotOutputs(jsonPath, csvPath, sampleSlots()))
	assert.FileExists(t, jsonPath)
	assert.FileExists(t, csvPath)
}

func TestReadSlotsCSVTolerantHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.csv")
	content := " RCID ,ccode,cname,courseSlotId,courseSlotCd ,cegName,slotPeriodCdDays\n" +
		"101,CS101,Algorithms,S1,A,2,Mon 09:00\n" +
		"101,CS101,Algorithms,S2,B,,Wed 11:00\n" +
		",X,Y,S3,C,,Thu 12:00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	slots, err := ReadSlotsCSV(path)
	require.NoError(t, err)
	require.Len(t, slots, 1)

	course := slots["101"]
	require.Len(t, course.Slots, 2)
	assert.Equal(t, "A", course.Slots[0].SlotCode)
	assert.Equal(t, "2", course.Slots[0].SegName)
	assert.Equal(t, "B", course.Slots[1].SlotCode)
}

func TestReadSlotsJSONMissingFile(t *testing.T) {
	_, err := ReadSlotsJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}
