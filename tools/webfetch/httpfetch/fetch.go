package httpfetch

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
	"github.com/trustme-ai/trustme/tools/webfetch/models"
)

const maxBodyBytes = 4 << 20 // 4 MiB of HTML is plenty for article pages

type Fetch struct {
	Timeout  time.Duration
	MaxChars int
}

var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "it-IT,it;q=0.9,en-US;q=0.8,en;q=0.7",
	"Referer":         "https://www.google.com/",
}

var strictPolicy = bluemonday.StrictPolicy()

func (f *Fetch) Exec(ctx context.Context, target string) (models.Result, error) {
	if strings.TrimSpace(target) == "" {
		return models.Result{}, errors.New("invalid url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()
	t0 := time.Now()

	req, err := http.NewRequestWithContext(ctx, "GET", target, nil)
	if err != nil {
		return models.Result{URL: target, Status: 0}, nil
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.Result{URL: target, Status: 599, FetchMS: ms(t0)}, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.Result{URL: target, Status: resp.StatusCode, FetchMS: ms(t0)}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.Result{URL: target, Status: resp.StatusCode, FetchMS: ms(t0)}, nil
	}

	html := string(body)
	title, text := extractText(html, target)
	if len(text) > f.MaxChars {
		text = text[:f.MaxChars]
	}

	return models.Result{
		URL:     target,
		Title:   title,
		Text:    strings.TrimSpace(text),
		Status:  resp.StatusCode,
		FetchMS: ms(t0),
	}, nil
}

// extractText prefers readability's article extraction; pages readability
// cannot parse fall back to a strict sanitiser pass that drops every tag
// (scripts and styles included).
func extractText(html, target string) (title, text string) {
	article, err := readability.FromReader(strings.NewReader(html), mustParseURL(target))
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return strings.TrimSpace(article.Title), article.TextContent
	}
	return "", strictPolicy.Sanitize(html)
}

func mustParseURL(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return &url.URL{}
	}
	return u
}

func ms(t0 time.Time) int { return int(time.Since(t0) / time.Millisecond) }
