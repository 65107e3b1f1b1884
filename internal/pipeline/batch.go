package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/phishscan/internal/model"
)

// DefaultConcurrency is used when WithConcurrency is not given.
const DefaultConcurrency = 8

// Assessor scores a single URL. *analyzer.Analyzer implements it.
type Assessor interface {
	Assess(raw string) (*model.Assessment, error)
}

// BatchProcessor handles concurrent analysis of multiple URLs.
// It uses errgroup to manage goroutines and respect concurrency limits.
// A BatchProcessor holds no per-batch state and may be reused.
type BatchProcessor struct {
	// assessor analyzes each URL.
	assessor Assessor

	// concurrency is the maximum number of concurrent analyses.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor that analyzes with assessor.
func NewBatchProcessor(assessor Assessor, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		assessor:    assessor,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch analyzes the URLs concurrently and returns one result per
// URL, in the same order as urls.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it is simpler and errgroup handles the concurrency correctly.
//
// Analysis errors are stored in the results and never returned. The error
// return is non-nil only when ctx is cancelled; results for URLs that were
// not analyzed are then nil.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string) ([]*model.ScanResult, error) {
	results := make([]*model.ScanResult, len(urls))
	err := bp.ProcessBatchWithCallback(ctx, urls, func(result *model.ScanResult, index int) {
		// Each goroutine writes its own index.
		results[index] = result
	})
	return results, err
}

// ProcessBatchWithCallback analyzes the URLs and calls callback for each
// completed analysis with the index of the URL in urls. This is useful for
// streaming results.
//
// The callback is called from the goroutine that completed the analysis,
// so it must be safe for concurrent use if it touches shared state.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	urls []string,
	callback func(result *model.ScanResult, index int),
) error {
	bp.logger.Debug("starting batch processing",
		"total", len(urls),
		"concurrency", bp.concurrency,
	)
	startTime := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, url := range urls {
		// Stop scheduling once cancelled; SetLimit makes Go block.
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			result := bp.scan(url)
			callback(result, i)
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	bp.logger.Debug("batch processing complete",
		"total", len(urls),
		"elapsed", time.Since(startTime),
	)
	return err
}

// scan analyzes one URL and wraps the outcome.
func (bp *BatchProcessor) scan(url string) *model.ScanResult {
	assessment, err := bp.assessor.Assess(url)
	if err != nil {
		bp.logger.Warn("scan failed", "url", url, "error", err)
	}
	return model.NewScanResult(url, assessment, err)
}
