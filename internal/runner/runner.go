package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tunetrace/internal/artiststore"
	"tunetrace/internal/logging"
)

// DefaultWorkers is the pool width used when none is configured.
const DefaultWorkers = 8

// Unit processes one artist record. A non-nil error marks the unit failed;
// the batch always continues.
type Unit func(ctx context.Context, artist *artiststore.Artist) error

// Progress describes one completed unit.
type Progress struct {
	Artist    string
	Completed int
	Total     int
	ETA       time.Duration
	Err       error
}

// Summary reports the outcome of a batch run.
type Summary struct {
	BatchID   string
	Total     int
	Processed int
	Succeeded int
	Failed    int
	Elapsed   time.Duration
}

// Option configures a runner.
type Option func(*Runner)

// WithProgress registers a callback invoked after every completed unit.
// Invocations are serialized.
func WithProgress(fn func(Progress)) Option {
	return func(r *Runner) {
		r.onProgress = fn
	}
}

// Runner executes batch work with a fixed pool width.
type Runner struct {
	workers    int
	logger     *slog.Logger
	onProgress func(Progress)
}

// New constructs a runner. Non-positive worker counts fall back to
// DefaultWorkers.
func New(workers int, logger *slog.Logger, opts ...Option) *Runner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		workers: workers,
		logger:  logging.NewComponentLogger(logger, "runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run dispatches one unit per artist across the pool and blocks until every
// dispatched unit has finished. Cancelling ctx stops new dispatch only;
// units run under an uncancelled context so outstanding external calls wind
// down on their own timeouts.
func (r *Runner) Run(ctx context.Context, label string, artists []*artiststore.Artist, unit Unit) Summary {
	batchID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldBatchID, batchID))

	total := len(artists)
	start := time.Now()
	logger.Info("batch started",
		logging.String("kind", label),
		logging.Int("total", total),
		logging.Int("workers", r.workers))

	summary := Summary{BatchID: batchID, Total: total}
	var mu sync.Mutex

	unitCtx := context.WithoutCancel(ctx)
	var group errgroup.Group
	group.SetLimit(r.workers)

	for _, artist := range artists {
		artist := artist
		if ctx.Err() != nil {
			mu.Lock()
			done := summary.Processed
			mu.Unlock()
			logger.Warn("dispatch stopped",
				logging.Int("completed", done),
				logging.Int("total", total))
			break
		}
		group.Go(func() error {
			err := unit(unitCtx, artist)

			mu.Lock()
			summary.Processed++
			if err != nil {
				summary.Failed++
			} else {
				summary.Succeeded++
			}
			completed := summary.Processed
			elapsed := time.Since(start)
			var eta time.Duration
			if remaining := total - completed; remaining > 0 {
				eta = elapsed / time.Duration(completed) * time.Duration(remaining)
			}
			if err != nil {
				logger.Error("unit failed",
					logging.String(logging.FieldArtist, artist.Name),
					logging.Error(err))
			}
			if r.onProgress != nil {
				r.onProgress(Progress{
					Artist:    artist.Name,
					Completed: completed,
					Total:     total,
					ETA:       eta,
					Err:       err,
				})
			}
			mu.Unlock()
			return nil
		})
	}

	_ = group.Wait()
	summary.Elapsed = time.Since(start)
	logger.Info("batch complete",
		logging.String("kind", label),
		logging.Int("processed", summary.Processed),
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed))
	return summary
}
