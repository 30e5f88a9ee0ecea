// Package batch drives the sequential fetch loop: it partitions the
// course-id list into fixed-size batches, retries failed batches with a
// fixed short delay, and streams the surviving rows into the aggregator.
// One abandoned batch never aborts the run.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/arjunmnair/aims-timetable/internal/aggregate"
	"github.com/arjunmnair/aims-timetable/internal/types"
)

// DefaultRetryDelay is the fixed pause between attempts for the same
// batch. Constant on purpose: it is a politeness throttle, not a
// resilience strategy.
const DefaultRetryDelay = 800 * time.Millisecond

// Client fetches the timetable rows for one batch of course ids.
type Client interface {
	FetchBatch(ctx context.Context, rcids []string) ([]types.RawSlotRow, error)
}

// ProgressEvent is emitted once per attempt outcome: a success, a
// retry-eligible failure (Err set), or an abandoned batch (Err and
// Abandoned set).
type ProgressEvent struct {
	Batch        int
	TotalBatches int
	Courses      int
	Rows         int
	Attempt      int
	Err          error
	Abandoned    bool
}

// ProgressFunc receives progress events from a Runner.
type ProgressFunc func(ProgressEvent)

// Runner executes the fetch loop. Batches run strictly one after another;
// the inter-batch Delay is the only rate limiting applied.
type Runner struct {
	Client     Client
	BatchSize  int
	Retries    int
	Delay      time.Duration // slept after every batch, success or failure
	RetryDelay time.Duration // slept between attempts; DefaultRetryDelay when zero
	OnProgress ProgressFunc
}

// Chunk partitions ids into consecutive batches of at most size elements.
// The last batch may be smaller. A non-positive size is a configuration
// error.
func Chunk(ids []string, size int) ([][]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", size)
	}
	var batches [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[i:end])
	}
	return batches, nil
}

// Run fetches every batch and feeds the rows into agg. Rows missing a
// course id or a day/time string are tolerated data noise and dropped
// silently. Run returns an error only for a configuration problem or a
// cancelled context; exhausted batches are reported through OnProgress
// and skipped.
func (r *Runner) Run(ctx context.Context, rcids []string, agg *aggregate.Aggregator) error {
	batches, err := Chunk(rcids, r.BatchSize)
	if err != nil {
		return err
	}

	retryDelay := r.RetryDelay
	if retryDelay == 0 {
		retryDelay = DefaultRetryDelay
	}

	for i, ids := range batches {
		if err := r.runBatch(ctx, i+1, len(batches), ids, agg, retryDelay); err != nil {
			return err
		}
		if err := sleepCtx(ctx, r.Delay); err != nil {
			return err
		}
	}
	return nil
}

// runBatch makes up to Retries+1 attempts for one batch.
func (r *Runner) runBatch(ctx context.Context, index, total int, ids []string, agg *aggregate.Aggregator, retryDelay time.Duration) error {
	for attempt := 1; ; attempt++ {
		rows, err := r.Client.FetchBatch(ctx, ids)
		if err == nil {
			for _, row := range rows {
				if row.RCID == "" || row.DayTime == "" {
					continue
				}
				agg.Add(row)
			}
			r.emit(ProgressEvent{Batch: index, TotalBatches: total, Courses: len(ids), Rows: len(rows)})
			return nil
		}

		if attempt < r.Retries+1 {
			r.emit(ProgressEvent{Batch: index, TotalBatches: total, Courses: len(ids), Attempt: attempt, Err: err})
			if sleepErr := sleepCtx(ctx, retryDelay); sleepErr != nil {
				return sleepErr
			}
			continue
		}

		r.emit(ProgressEvent{Batch: index, TotalBatches: total, Courses: len(ids), Attempt: attempt, Err: err, Abandoned: true})
		return nil
	}
}

func (r *Runner) emit(event ProgressEvent) {
	if r.OnProgress != nil {
		r.OnProgress(event)
	}
}

// sleepCtx sleeps for d unless the context is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
