package fetcher

import (
	"context"
	"github.com/berkocan/genelpara-api/internal/entities"
	"github.com/pkg/errors"
	"log/slog"
	"sync"
	"time"
)

// Fetcher polls the rate API on an interval. A new tick cancels the fetch still in
// flight from the previous one, and results of superseded fetches are dropped.
type Fetcher struct {
	client   RateClient
	storages []Storage
	query    entities.RateQuery
	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	mu           sync.Mutex
	generation   uint64
	cancel       context.CancelFunc
	backoffUntil time.Time

	// publishMu orders writes to storages; published is the newest generation written.
	publishMu sync.Mutex
	published uint64
}

func NewFetcher(client RateClient, query entities.RateQuery, interval, timeout time.Duration, storages ...Storage) *Fetcher {
	return &Fetcher{
		client:   client,
		storages: storages,
		query:    query,
		interval: interval,
		timeout:  timeout,
		now:      time.Now,
	}
}

func (f *Fetcher) Start(ctx context.Context) error {
	const op = "fetcher.Start"

	if err := f.query.Validate(); err != nil {
		return errors.Wrap(err, op)
	}
	if f.interval <= 0 || f.timeout <= 0 {
		return errors.Errorf("%s: interval and timeout must be positive", op)
	}

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	f.launch(ctx, &wg)

	for {
		select {
		case <-ticker.C:
			f.launch(ctx, &wg)

		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), op)
		}
	}
}

func (f *Fetcher) launch(ctx context.Context, wg *sync.WaitGroup) {
	f.mu.Lock()
	if until := f.backoffUntil; f.now().Before(until) {
		f.mu.Unlock()
		fetchTotal.WithLabelValues(outcomeSkipped).Inc()
		slog.Debug("rate limit exhausted, skipping tick", "until", until)
		return
	}

	if f.cancel != nil {
		f.cancel()
	}
	f.generation++
	gen := f.generation

	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()

		f.fetchRate(runCtx, gen)
	}()
}

func (f *Fetcher) fetchRate(ctx context.Context, gen uint64) {
	const op = "fetcher.fetchRate"

	start := time.Now()
	resp, err := f.client.Fetch(ctx, f.query, f.timeout)
	fetchDuration.Observe(time.Since(start).Seconds())

	if ctx.Err() != nil || !f.isCurrent(gen) {
		fetchTotal.WithLabelValues(outcomeStale).Inc()
		slog.Debug("discarding superseded fetch", "op", op, "generation", gen)
		return
	}

	if err != nil {
		fetchTotal.WithLabelValues(outcomeError).Inc()
		slog.Error("failed to fetch rates", "op", op, "query", f.query.Key(), "error", err)
		return
	}

	f.observeRateLimit(resp.RateLimit)

	if !resp.Success {
		fetchTotal.WithLabelValues(outcomeRejected).Inc()
		slog.Warn("rate api rejected the request", "op", op, "query", f.query.Key(), "error", resp.ErrorMessage)
		return
	}

	f.publish(ctx, gen, resp)
}

func (f *Fetcher) publish(ctx context.Context, gen uint64, resp *entities.RateResponse) {
	const op = "fetcher.publish"

	f.publishMu.Lock()
	defer f.publishMu.Unlock()

	if gen <= f.published || !f.isCurrent(gen) {
		fetchTotal.WithLabelValues(outcomeStale).Inc()
		return
	}

	// a save that already started is not torn down by the next tick
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	for _, storage := range f.storages {
		if err := storage.SaveRates(saveCtx, f.query, resp); err != nil {
			slog.Error("failed to save rates", "op", op, "query", f.query.Key(), "error", err)
		}
	}

	f.published = gen
	fetchTotal.WithLabelValues(outcomeSuccess).Inc()
	slog.Debug("rates updated", "op", op, "query", f.query.Key(), "symbols", len(resp.Records))
}

func (f *Fetcher) observeRateLimit(rl *entities.RateLimitInfo) {
	if rl == nil {
		return
	}

	rateLimitRemaining.Set(float64(rl.Remaining))

	if !rl.Exhausted() {
		return
	}

	reset, ok := rl.ResetTime()
	if !ok || !reset.After(f.now()) {
		return
	}

	f.mu.Lock()
	f.backoffUntil = reset
	f.mu.Unlock()

	slog.Warn("rate limit exhausted", "limit", rl.Limit, "reset_at", rl.ResetAt)
}

func (f *Fetcher) isCurrent(gen uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.generation == gen
}
