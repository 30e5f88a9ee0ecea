// Package courses loads course metadata from the exported courses*.csv
// files. The first occurrence of an rcid across all files wins; later
// duplicates are ignored.
package courses

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arjunmnair/aims-timetable/internal/types"
)

// DefaultGlob matches the course CSV exports in the working directory.
const DefaultGlob = "courses*.csv"

// DiscoverPaths returns the course CSVs matching DefaultGlob under dir,
// sorted by name.
func DiscoverPaths(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, DefaultGlob))
	if err != nil {
		return nil, fmt.Errorf("failed to glob course CSVs: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads course metadata from the given CSVs in order. Files that do
// not exist are skipped. Rows without an rcid are skipped. The first
// metadata seen for an rcid is kept.
func Load(paths []string) (map[string]types.CourseMeta, error) {
	out := make(map[string]types.CourseMeta)
	for _, path := range paths {
		if err := loadFile(path, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func loadFile(path string, out map[string]types.CourseMeta) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open course CSV %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read row of %s: %w", path, err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rcid := field("rcid")
		if rcid == "" {
			continue
		}
		if _, seen := out[rcid]; seen {
			continue
		}
		out[rcid] = types.CourseMeta{
			RCID:      rcid,
			CCode:     field("ccode"),
			CName:     field("cname"),
			CoordName: field("coordname"),
			Credits:   field("ccrd"),
			StartDate: field("strtdt"),
			EndDate:   field("enddt"),
		}
	}
	return nil
}

// SortedIDs returns the rcids in numeric-aware ascending order, the order
// batches are fetched in.
func SortedIDs(meta map[string]types.CourseMeta) []string {
	ids := make([]string, 0, len(meta))
	for rcid := range meta {
		ids = append(ids, rcid)
	}
	sort.Slice(ids, func(i, j int) bool { return types.IDLess(ids[i], ids[j]) })
	return ids
}
