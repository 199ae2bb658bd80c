package chromedp

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-shiori/go-readability"
	"github.com/trustme-ai/trustme/tools/webfetch/models"
)

// Fetch renders pages in headless Chrome before extracting text. Slower than
// the plain HTTP fetcher but survives script-heavy sites.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
}

func (f *Fetch) Exec(ctx context.Context, target string) (models.Result, error) {
	if strings.TrimSpace(target) == "" {
		return models.Result{}, errors.New("invalid url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	t0 := time.Now()

	html, err := fetchHTML(ctx, target)
	if err != nil {
		return models.Result{URL: target, Status: 599, FetchMS: ms(t0)}, nil
	}

	article, err := readability.FromReader(strings.NewReader(html), mustParseURL(target))
	if err != nil {
		return models.Result{URL: target, Status: 200, FetchMS: ms(t0)}, nil
	}
	text := article.TextContent
	if len(text) > f.MaxChars {
		text = text[:f.MaxChars]
	}

	return models.Result{
		URL:     target,
		Title:   strings.TrimSpace(article.Title),
		Text:    strings.TrimSpace(text),
		Status:  200,
		FetchMS: ms(t0),
	}, nil
}

func fetchHTML(ctx context.Context, target string) (string, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.UserAgent("TrustmeAgent/1.0 (+contact@example.com)"),
	)
	actx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelBrowser := chromedp.NewContext(actx)
	defer cancelBrowser()

	var html string
	err := chromedp.Run(bctx,
		chromedp.Navigate(target),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	return html, err
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}

func ms(t0 time.Time) int { return int(time.Since(t0) / time.Millisecond) }
