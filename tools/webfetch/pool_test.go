package webfetch

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/trustme-ai/trustme/tools/webfetch/models"
)

type fetcherStub struct {
	mu       sync.Mutex
	calls    []string
	results  map[string]models.Result
	errs     map[string]error
	delay    time.Duration
	inFlight atomic.Int64
	maxSeen  atomic.Int64
}

func (f *fetcherStub) Exec(ctx context.Context, url string) (models.Result, error) {
	if err := ctx.Err(); err != nil {
		return models.Result{URL: url}, err
	}
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		prev := f.maxSeen.Load()
		if cur <= prev || f.maxSeen.CompareAndSwap(prev, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if err, ok := f.errs[url]; ok {
		return models.Result{URL: url}, err
	}
	if res, ok := f.results[url]; ok {
		return res, nil
	}
	return models.Result{URL: url, Text: "page text for " + url, Status: 200}, nil
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestFetchAllDropsInvalidURLsBeforeIO(t *testing.T) {
	stub := &fetcherStub{}
	pool := NewPool(stub, 4, quietLogger())

	got := pool.FetchAll(context.Background(), []string{"not a url", "ftp://x.com", "javascript:alert(1)"})
	if got != nil {
		t.Fatalf("expected nil results, got %v", got)
	}
	if len(stub.calls) != 0 {
		t.Fatalf("fetcher must not be called for invalid URLs, got %v", stub.calls)
	}
}

func TestFetchAllDeduplicates(t *testing.T) {
	stub := &fetcherStub{}
	pool := NewPool(stub, 4, quietLogger())

	pool.FetchAll(context.Background(), []string{
		"https://example.com/a?utm_source=x",
		"https://Example.com/a",
		"https://example.com/b",
	})
	if len(stub.calls) != 2 {
		t.Fatalf("expected 2 fetches after dedup, got %v", stub.calls)
	}
}

func TestFetchAllSkipsFailures(t *testing.T) {
	stub := &fetcherStub{
		errs: map[string]error{"https://bad.example.com/x": errors.New("connection refused")},
		results: map[string]models.Result{
			"https://empty.example.com/x": {URL: "https://empty.example.com/x", Status: 404},
		},
	}
	pool := NewPool(stub, 4, quietLogger())

	got := pool.FetchAll(context.Background(), []string{
		"https://good.example.com/x",
		"https://bad.example.com/x",
		"https://empty.example.com/x",
	})
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].URL != "https://good.example.com/x" {
		t.Fatalf("unexpected surviving result: %+v", got[0])
	}
}

func TestFetchAllRespectsConcurrencyLimit(t *testing.T) {
	stub := &fetcherStub{delay: 20 * time.Millisecond}
	pool := NewPool(stub, 2, quietLogger())

	urls := []string{
		"https://a.example.com/1",
		"https://b.example.com/2",
		"https://c.example.com/3",
		"https://d.example.com/4",
		"https://e.example.com/5",
	}
	got := pool.FetchAll(context.Background(), urls)
	if len(got) != len(urls) {
		t.Fatalf("expected %d results, got %d", len(urls), len(got))
	}
	if max := stub.maxSeen.Load(); max > 2 {
		t.Fatalf("concurrency limit exceeded: %d in flight", max)
	}
}

func TestFetchAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &fetcherStub{}
	pool := NewPool(stub, 1, quietLogger())
	got := pool.FetchAll(ctx, []string{"https://a.example.com/1", "https://b.example.com/2"})
	if len(got) != 0 {
		t.Fatalf("expected no results under cancelled context, got %v", got)
	}
}
