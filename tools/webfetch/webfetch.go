package webfetch

import (
	"context"
	"errors"
	"time"

	"github.com/trustme-ai/trustme/tools/webfetch/chromedp"
	"github.com/trustme-ai/trustme/tools/webfetch/httpfetch"
	"github.com/trustme-ai/trustme/tools/webfetch/models"
)

const (
	DefaultTimeout  = 10 * time.Second
	MaxCharsDefault = 20000
)

// WebFetcher retrieves the visible text of a single page.
type WebFetcher interface {
	Exec(ctx context.Context, url string) (models.Result, error)
}

type FetcherType string

const (
	HTTPFetcherType     FetcherType = "http"
	ChromedpFetcherType FetcherType = "chromedp"
)

var ErrUnsupportedFetcher = errors.New("unsupported fetcher type")

func NewWebFetcher(fetcherType FetcherType, timeout time.Duration, maxChars int) (WebFetcher, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}

	switch fetcherType {
	case HTTPFetcherType:
		return &httpfetch.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	case ChromedpFetcherType:
		return &chromedp.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	default:
		return nil, ErrUnsupportedFetcher
	}
}
