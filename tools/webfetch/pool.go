package webfetch

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/trustme-ai/trustme/internal/helpers"
	"github.com/trustme-ai/trustme/internal/telemetry"
	"github.com/trustme-ai/trustme/tools/webfetch/models"
)

// Pool runs page fetches through a shared concurrency limiter. One Pool is
// created per process: the semaphore caps in-flight fetches across all
// concurrent analysis runs, not per run.
type Pool struct {
	fetcher WebFetcher
	sem     *semaphore.Weighted
	logger  *log.Logger
}

func NewPool(fetcher WebFetcher, maxConcurrent int64, logger *log.Logger) *Pool {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[FETCH] ", log.LstdFlags)
	}
	return &Pool{
		fetcher: fetcher,
		sem:     semaphore.NewWeighted(maxConcurrent),
		logger:  logger,
	}
}

// FetchAll retrieves every valid URL concurrently and returns the results
// that produced text. Invalid URLs are dropped before any I/O; individual
// failures are logged and skipped, never aborting the batch. Result order is
// unspecified.
func (p *Pool) FetchAll(ctx context.Context, urls []string) []models.Result {
	valid := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		if !helpers.ValidURL(u) {
			continue
		}
		key := helpers.CanonicalURL(u)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		valid = append(valid, u)
	}
	if len(valid) == 0 {
		return nil
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []models.Result
	)
	for _, u := range valid {
		if err := p.sem.Acquire(ctx, 1); err != nil {
			break // context cancelled; keep whatever finished
		}
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			defer p.sem.Release(1)

			res, err := p.fetcher.Exec(ctx, target)
			if err != nil || !res.OK() {
				telemetry.FetchesTotal.WithLabelValues("failed").Inc()
				p.logger.Printf("skipping site %s: err=%v status=%d", target, err, res.Status)
				return
			}
			telemetry.FetchesTotal.WithLabelValues("ok").Inc()
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(u)
	}
	wg.Wait()
	return results
}
