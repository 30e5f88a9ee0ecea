// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/arjunmnair/aims-timetable/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSlotMap outputs a human-readable summary of the aggregated slots.
func (p *Printer) PrintSlotMap(slots map[string]types.CourseSlots) {
	totalSlots := 0
	rcids := make([]string, 0, len(slots))
	for rcid, course := range slots {
		rcids = append(rcids, rcid)
		totalSlots += len(course.Slots)
	}
	sort.Slice(rcids, func(i, j int) bool { return types.IDLess(rcids[i], rcids[j]) })

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Courses:  %d\n", len(slots)))
	sb.WriteString(fmt.Sprintf("Slots:    %d\n", totalSlots))
	sb.WriteString("\n")

	for i, rcid := range rcids {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more", len(rcids)-maxItemsToShow))
			break
		}
		course := slots[rcid]
		label := course.CCode
		if label == "" {
			label = "(no metadata)"
		}
		sb.WriteString(fmt.Sprintf("%s %s: %d slot(s)\n", rcid, label, len(course.Slots)))
	}

	p.printBox("Aggregated Slots", strings.TrimRight(sb.String(), "\n"))
}

// PrintMergedCourses outputs a preview of the final merged records.
func (p *Printer) PrintMergedCourses(records []types.CourseOutputRecord) {
	withSlots := 0
	withSegments := 0
	for _, r := range records {
		if r.Slot != "" {
			withSlots++
		}
		if r.Segment != "" {
			withSegments++
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Courses:       %d\n", len(records)))
	sb.WriteString(fmt.Sprintf("With slots:    %d\n", withSlots))
	sb.WriteString(fmt.Sprintf("With segments: %d\n", withSegments))
	sb.WriteString("\n")

	for i, r := range records {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more", len(records)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("%s seg=%q slot=%q\n", r.CCode, r.Segment, r.Slot))
	}

	p.printBox("Merged Courses", strings.TrimRight(sb.String(), "\n"))
}
