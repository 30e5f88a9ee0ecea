// Package report reads and writes the pipeline's file outputs: the
// structured slots.json aggregation, the flat slots.csv view, and the
// final merged courses_with_slots.csv table.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/arjunmnair/aims-timetable/internal/types"
)

// slotsCSVHeader names the columns of slots.csv. A legacy export wrote
// this data under a misspelled "cegName" column; the segment-name
// semantics are what downstream consumers rely on, so the column is
// spelled segName here.
var slotsCSVHeader = []string{"rcid", "ccode", "cname", "courseSlotId", "courseSlotCd", "segName", "slotPeriodCdDays"}

var coursesCSVHeader = []string{"ccode", "cname", "coordname", "ccrd", "segment", "slots"}

// DayTimeSeparator joins the deduplicated day/time strings in slots.csv.
const DayTimeSeparator = " | "

// WriteSlotsJSON writes the per-course aggregation as indented JSON.
func WriteSlotsJSON(path string, slots map[string]types.CourseSlots) error {
	data, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode slots JSON: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteSlotsCSV writes one row per course slot, rcids in numeric-aware
// order, slots in (slotId, slotCd) order within a course.
func WriteSlotsCSV(path string, slots map[string]types.CourseSlots) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(slotsCSVHeader); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}

	rcids := make([]string, 0, len(slots))
	for rcid := range slots {
		rcids = append(rcids, rcid)
	}
	sort.Slice(rcids, func(i, j int) bool { return types.IDLess(rcids[i], rcids[j]) })

	for _, rcid := range rcids {
		course := slots[rcid]
		for _, slot := range course.Slots {
			record := []string{
				course.RCID,
				course.CCode,
				course.CName,
				slot.SlotID,
				slot.SlotCode,
				slot.SegName,
				strings.Join(slot.DayTimes, DayTimeSeparator),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("failed to write row of %s: %w", path, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteCoursesCSV writes the final merged table. Records are expected in
// their output order already.
func WriteCoursesCSV(path string, records []types.CourseOutputRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(coursesCSVHeader); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}
	for _, r := range records {
		if err := w.Write([]string{r.CCode, r.CName, r.CoordName, r.Credits, r.Segment, r.Slot}); err != nil {
			return fmt.Errorf("failed to write row of %s: %w", path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return f.Close()
}

// WriteSlotOutputs writes slots.json and slots.csv. The two files are
// independent, so they are written concurrently.
func WriteSlotOutputs(jsonPath, csvPath string, slots map[string]types.CourseSlots) error {
	var g errgroup.Group
	g.Go(func() error { return WriteSlotsJSON(jsonPath, slots) })
	g.Go(func() error { return WriteSlotsCSV(csvPath, slots) })
	return g.Wait()
}

// ReadSlotsJSON loads a slots.json file.
func ReadSlotsJSON(path string) (map[string]types.CourseSlots, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var slots map[string]types.CourseSlots
	if err := json.Unmarshal(data, &slots); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return slots, nil
}

// ReadSlotsCSV loads a slots.csv written by an earlier run, as a fallback
// when slots.json is unavailable. Header matching is tolerant: columns
// are located by substring, case-insensitively for rcid, because legacy
// exports padded or misspelled names.
func ReadSlotsCSV(path string) (map[string]types.CourseSlots, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return map[string]types.CourseSlots{}, nil
	}

	header := rows[0]
	rcidCol := findColumn(header, func(name string) bool { return strings.Contains(strings.ToLower(name), "rcid") })
	slotIDCol := findColumn(header, func(name string) bool { return strings.Contains(name, "courseSlotId") })
	slotCdCol := findColumn(header, func(name string) bool { return strings.Contains(name, "courseSlotCd") })
	segCol := findColumn(header, func(name string) bool { return strings.Contains(strings.ToLower(name), "egname") })

	slots := make(map[string]types.CourseSlots)
	for _, row := range rows[1:] {
		rcid := cell(row, rcidCol)
		if rcid == "" {
			continue
		}
		course := slots[rcid]
		course.RCID = rcid
		course.Slots = append(course.Slots, types.SlotEntry{
			SlotID:   cell(row, slotIDCol),
			SlotCode: cell(row, slotCdCol),
			SegName:  cell(row, segCol),
		})
		slots[rcid] = course
	}
	return slots, nil
}

func findColumn(header []string, match func(string) bool) int {
	for i, name := range header {
		if match(strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
