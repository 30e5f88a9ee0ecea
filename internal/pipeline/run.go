// Package pipeline provides the high-level orchestration for the
// timetable aggregation process: fetch-and-aggregate, and the local
// metadata/slot merge.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/arjunmnair/aims-timetable/internal/aggregate"
	"github.com/arjunmnair/aims-timetable/internal/batch"
	"github.com/arjunmnair/aims-timetable/internal/config"
	"github.com/arjunmnair/aims-timetable/internal/courses"
	"github.com/arjunmnair/aims-timetable/internal/db"
	"github.com/arjunmnair/aims-timetable/internal/fetch"
	"github.com/arjunmnair/aims-timetable/internal/merge"
	"github.com/arjunmnair/aims-timetable/internal/observability"
	"github.com/arjunmnair/aims-timetable/internal/report"
	"github.com/arjunmnair/aims-timetable/internal/segment"
	"github.com/arjunmnair/aims-timetable/internal/types"
)

// FetchOptions holds everything RunFetch needs beyond the context.
type FetchOptions struct {
	Config     config.Config
	Out        io.Writer          // step and progress lines; defaults to os.Stdout
	Err        io.Writer          // warnings; defaults to os.Stderr
	OnProgress batch.ProgressFunc // overrides the default progress printing when set
}

// CombineOptions holds everything RunCombine needs beyond the context.
type CombineOptions struct {
	Config config.Config
	Out    io.Writer
	Err    io.Writer // warnings; defaults to os.Stderr
}

// RunFetch loads course metadata, fetches the timetable rows batch by
// batch, aggregates them, and writes slots.json and slots.csv. Exhausted
// batches are reported and skipped; only configuration problems or a
// cancelled context abort the run.
func RunFetch(ctx context.Context, opts FetchOptions) error {
	out, errOut := opts.Out, opts.Err
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	cfg := opts.Config

	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	csvPaths := cfg.CSVPaths
	if len(csvPaths) == 0 {
		var err error
		csvPaths, err = courses.DiscoverPaths(".")
		if err != nil {
			return err
		}
	}

	meta, err := courses.Load(csvPaths)
	if err != nil {
		return err
	}
	rcids := courses.SortedIDs(meta)
	if len(rcids) == 0 {
		return fmt.Errorf("no rcid found in provided CSVs")
	}

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: Failed to connect to database: %v\n", err)
			fmt.Fprintf(errOut, "Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
		}
	}

	client := fetch.NewClient(fetch.Options{
		BaseURL:   cfg.BaseURL,
		StudentID: cfg.StudentID,
		Cookie:    cfg.Cookie,
		Referer:   cfg.Referer,
		UserAgent: cfg.UserAgent,
		Timeout:   time.Duration(cfg.TimeoutS) * time.Second,
	})

	onProgress := opts.OnProgress
	if onProgress == nil {
		onProgress = defaultProgress(out, errOut)
	}

	runner := &batch.Runner{
		Client:     client,
		BatchSize:  cfg.BatchSize,
		Retries:    cfg.Retries,
		Delay:      time.Duration(cfg.SleepMS) * time.Millisecond,
		OnProgress: onProgress,
	}

	if database != nil {
		runID, err = database.CreateRun(ctx, cfg.StudentID, len(rcids), cfg.BatchSize)
		if err != nil {
			fmt.Fprintf(errOut, "Warning: Failed to create database run: %v\n", err)
			runID = uuid.Nil
		}
	}

	agg := aggregate.New()
	if err := runner.Run(ctx, rcids, agg); err != nil {
		return err
	}

	snapshot := agg.Snapshot(meta)
	if err := report.WriteSlotOutputs(cfg.OutJSON, cfg.OutCSV, snapshot); err != nil {
		return err
	}

	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepSlotMap, db.CategoryFetch, snapshot)
		_ = database.CompleteRun(ctx, runID, "completed")
	}

	if cfg.Verbose {
		observability.NewPrinter(out).PrintSlotMap(snapshot)
	}

	fmt.Fprintf(out, "Wrote %s and %s\n", cfg.OutCSV, cfg.OutJSON)
	return nil
}

// RunCombine merges course metadata, the heuristic segment classifier,
// and a previously fetched aggregation into courses_with_slots.csv. The
// aggregation is read from slots.json, falling back to slots.csv; when
// neither exists the heuristic alone fills the segment column.
func RunCombine(ctx context.Context, opts CombineOptions) error {
	out, errOut := opts.Out, opts.Err
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	cfg := opts.Config

	csvPaths := cfg.CSVPaths
	if len(csvPaths) == 0 {
		var err error
		csvPaths, err = courses.DiscoverPaths(".")
		if err != nil {
			return err
		}
	}

	meta, err := courses.Load(csvPaths)
	if err != nil {
		return err
	}

	heuristic := make(map[string]string, len(meta))
	for rcid, m := range meta {
		if seg := segment.ClassifyDates(m.StartDate, m.EndDate); seg != "" {
			heuristic[rcid] = seg
		}
	}

	slots, err := report.ReadSlotsJSON(cfg.OutJSON)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		slots, err = report.ReadSlotsCSV(cfg.OutCSV)
		if err != nil {
			if !os.IsNotExist(err) {
				return err
			}
			slots = map[string]types.CourseSlots{}
		}
	}

	records := merge.Courses(meta, slots, heuristic)
	if err := report.WriteCoursesCSV(cfg.OutCourses, records); err != nil {
		return err
	}

	if cfg.DatabaseURL != "" {
		if database, dbErr := db.Connect(ctx, cfg.DatabaseURL); dbErr != nil {
			fmt.Fprintf(errOut, "Warning: Failed to connect to database: %v\n", dbErr)
		} else {
			defer database.Close()
			if runID, runErr := database.CreateRun(ctx, cfg.StudentID, len(meta), cfg.BatchSize); runErr == nil {
				_ = database.SaveArtifact(ctx, runID, db.StepMergedCourses, db.CategoryMerge, records)
				_ = database.CompleteRun(ctx, runID, "completed")
			}
		}
	}

	if cfg.Verbose {
		observability.NewPrinter(out).PrintMergedCourses(records)
	}

	withSlots, withSegments := 0, 0
	for _, r := range records {
		if r.Slot != "" {
			withSlots++
		}
		if r.Segment != "" {
			withSegments++
		}
	}
	fmt.Fprintf(out, "Created %s with %d courses\n", cfg.OutCourses, len(records))
	fmt.Fprintf(out, "  - %d courses with slots\n", withSlots)
	fmt.Fprintf(out, "  - %d courses with segments\n", withSegments)
	return nil
}

// defaultProgress prints human-readable progress lines: successes to
// out, warnings and abandoned batches to errOut.
func defaultProgress(out, errOut io.Writer) batch.ProgressFunc {
	return func(e batch.ProgressEvent) {
		switch {
		case e.Err == nil:
			fmt.Fprintf(out, "[%d/%d] fetched %d courses -> %d rows\n", e.Batch, e.TotalBatches, e.Courses, e.Rows)
		case e.Abandoned:
			fmt.Fprintf(errOut, "ERROR: batch %d/%d failed after retries: %v\n", e.Batch, e.TotalBatches, e.Err)
		default:
			fmt.Fprintf(errOut, "WARN: batch %d/%d attempt %d failed: %v\n", e.Batch, e.TotalBatches, e.Attempt, e.Err)
		}
	}
}
