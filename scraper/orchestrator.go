// Package scraper drives batches of room URLs through a Fetcher and a
// Normalizer with bounded concurrency, rate limiting and retries.
package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"airbnb-rooms-scraper/models"
	"airbnb-rooms-scraper/utils"
)

// Fetcher retrieves the raw document of one room page. Implementations
// classify failures with models.Transient and models.Permanent.
type Fetcher interface {
	Fetch(ctx context.Context, url string, dates *models.DateRange) (models.RawListingDocument, error)
}

// Normalizer converts a raw document into a record. A non-nil error marks the
// document as malformed.
type Normalizer interface {
	Normalize(doc models.RawListingDocument, sourceURL string) (*models.ListingRecord, error)
}

// Options are the per-run scheduling settings.
type Options struct {
	ConcurrencyLimit int
	MaxRetries       int
	BackoffBase      time.Duration
	BackoffCap       time.Duration
}

// DefaultOptions returns the documented fallbacks.
func DefaultOptions() Options {
	return Options{
		ConcurrencyLimit: 4,
		MaxRetries:       2,
		BackoffBase:      time.Second,
		BackoffCap:       30 * time.Second,
	}
}

// Validate rejects settings a run cannot start with.
func (o Options) Validate() error {
	switch {
	case o.ConcurrencyLimit <= 0:
		return fmt.Errorf("%w: concurrency limit must be > 0, got %d", models.ErrInvalidConfig, o.ConcurrencyLimit)
	case o.MaxRetries < 0:
		return fmt.Errorf("%w: max retries must be >= 0, got %d", models.ErrInvalidConfig, o.MaxRetries)
	case o.BackoffBase < 0 || o.BackoffCap < 0:
		return fmt.Errorf("%w: backoff delays must not be negative", models.ErrInvalidConfig)
	case o.BackoffCap > 0 && o.BackoffCap < o.BackoffBase:
		return fmt.Errorf("%w: backoff cap %v is below base %v", models.ErrInvalidConfig, o.BackoffCap, o.BackoffBase)
	}
	return nil
}

// Orchestrator runs batches. It holds no per-run state, so one value can
// serve several runs.
type Orchestrator struct {
	fetcher     Fetcher
	normalizer  Normalizer
	logger      *utils.Logger
	rateLimiter *utils.RateLimiter
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithRateLimiter paces every fetch attempt through limiter.
func WithRateLimiter(limiter *utils.RateLimiter) Option {
	return func(o *Orchestrator) { o.rateLimiter = limiter }
}

// WithSleep replaces the backoff sleep, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Orchestrator) { o.sleep = sleep }
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(fetcher Fetcher, normalizer Normalizer, logger *utils.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher:    fetcher,
		normalizer: normalizer,
		logger:     logger,
		sleep:      utils.SleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type job struct {
	index int
	input models.RoomInput
}

// Stream starts the run and returns a channel carrying exactly one outcome
// per input, in completion order. The channel is closed once every input is
// accounted for; the caller must drain it. Invalid options fail before any
// fetch starts.
//
// When ctx is canceled no new input is started: inputs still queued are
// reported as canceled failures with zero attempts.
func (o *Orchestrator) Stream(ctx context.Context, inputs []models.RoomInput, opts Options) (<-chan models.Outcome, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	tracker := utils.NewURLTracker()
	for _, in := range inputs {
		tracker.Add(in.URL)
	}
	if d := tracker.Duplicates(); d > 0 {
		o.logger.Warn("Input has %d duplicate URL(s); each is processed independently", d)
	}

	workers := opts.ConcurrencyLimit
	if workers > len(inputs) {
		workers = len(inputs)
	}
	o.logger.Info("Processing %d room URL(s) with %d worker(s), max retries %d", len(inputs), workers, opts.MaxRetries)

	jobs := make(chan job)
	outcomes := make(chan models.Outcome)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				outcomes <- o.process(ctx, j, opts)
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, in := range inputs {
			select {
			case jobs <- job{index: i, input: in}:
			case <-ctx.Done():
				o.logger.Warn("Run canceled, %d input(s) not started", len(inputs)-i)
				for ; i < len(inputs); i++ {
					outcomes <- canceledOutcome(i, inputs[i].URL, 0, ctx.Err())
				}
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	return outcomes, nil
}

// Run processes every input and collects the outcomes into one BatchResult.
// On cancellation the partial result is returned together with ctx.Err().
func (o *Orchestrator) Run(ctx context.Context, inputs []models.RoomInput, opts Options) (*models.BatchResult, error) {
	start := time.Now()
	outcomes, err := o.Stream(ctx, inputs, opts)
	if err != nil {
		return nil, err
	}

	result := models.NewBatchResult()
	for out := range outcomes {
		result.Add(out)
	}

	o.logger.Info("Run finished in %v: %d succeeded, %d failed",
		time.Since(start).Round(time.Millisecond), len(result.Successes), len(result.Failures))
	return result, ctx.Err()
}

// process fetches and normalizes one input. It never panics on bad input and
// always produces an outcome.
func (o *Orchestrator) process(ctx context.Context, j job, opts Options) models.Outcome {
	url := j.input.URL
	policy := utils.RetryPolicy{
		MaxRetries:  opts.MaxRetries,
		Backoff:     utils.Backoff{Base: opts.BackoffBase, Cap: opts.BackoffCap},
		IsRetryable: models.IsRetryable,
		Sleep:       o.sleep,
	}

	var doc models.RawListingDocument
	attempts, err := utils.RetryWithBackoff(ctx, policy, func(attempt int) error {
		if err := o.rateLimiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			// the limiter refuses waits that would outlive the deadline
			return fmt.Errorf("rate limiter: %w", context.DeadlineExceeded)
		}
		o.logger.Debug("Fetching %s (attempt %d)", url, attempt)
		var fetchErr error
		doc, fetchErr = o.fetcher.Fetch(ctx, url, j.input.Dates)
		return fetchErr
	}, o.logger)
	if err != nil {
		kind := models.KindOf(err)
		if kind == models.KindTransientFetch && ctx.Err() != nil {
			kind = models.KindCanceled
		}
		if kind == models.KindCanceled {
			return canceledOutcome(j.index, url, attempts, err)
		}
		o.logger.Error("Fetch failed for %s after %d attempt(s): %v", url, attempts, err)
		return failedOutcome(j.index, url, kind, attempts, err)
	}

	record, err := o.normalizer.Normalize(doc, url)
	if err != nil {
		o.logger.Error("Malformed document for %s: %v", url, err)
		return failedOutcome(j.index, url, models.KindMalformedDocument, attempts, err)
	}
	if j.input.Dates == nil {
		record.Price = nil
		record.Warnings = dropWarnings(record.Warnings, "price")
	}

	o.logger.Info("Extracted %s (%s) in %d attempt(s)", url, record.PropertyType, attempts)
	return models.Outcome{Index: j.index, Record: record}
}

// dropWarnings removes the warnings about field, keeping nil when none remain.
func dropWarnings(warnings []models.DataQualityWarning, field string) []models.DataQualityWarning {
	var kept []models.DataQualityWarning
	for _, w := range warnings {
		if w.Field != field {
			kept = append(kept, w)
		}
	}
	return kept
}

func failedOutcome(index int, url string, kind models.ErrorKind, attempts int, err error) models.Outcome {
	return models.Outcome{
		Index: index,
		Failure: &models.Failure{
			URL:      url,
			Reason:   kind,
			Attempts: attempts,
			Message:  err.Error(),
		},
	}
}

func canceledOutcome(index int, url string, attempts int, err error) models.Outcome {
	return failedOutcome(index, url, models.KindCanceled, attempts, err)
}
