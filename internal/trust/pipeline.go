package trust

import (
	"context"
	"fmt"
	"log"

	"github.com/trustme-ai/trustme/internal/segment"
	"github.com/trustme-ai/trustme/tools/webfetch"
	"github.com/trustme-ai/trustme/tools/websearch"
)

// Pipeline implements EvidenceCollector: it discovers URLs for each query,
// fetches them through the shared pool, segments the page text into chunks,
// and ranks the chunks against the topic.
type Pipeline struct {
	searcher websearch.WebSearcher
	pool     *webfetch.Pool
	ranker   *Ranker
	searchK  int
	rankK    int
	logger   *log.Logger
}

func NewPipeline(searcher websearch.WebSearcher, pool *webfetch.Pool, ranker *Ranker, searchK, rankK int, logger *log.Logger) *Pipeline {
	if searchK <= 0 {
		searchK = 5
	}
	if rankK <= 0 {
		rankK = 5
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[PIPE] ", log.LstdFlags)
	}
	return &Pipeline{searcher: searcher, pool: pool, ranker: ranker, searchK: searchK, rankK: rankK, logger: logger}
}

func (p *Pipeline) Collect(ctx context.Context, queries []string, topic string) ([]string, error) {
	var urls []string
	for _, q := range queries {
		results, err := p.searcher.Discover(ctx, q, p.searchK)
		if err != nil {
			return nil, fmt.Errorf("search %q: %w", q, err)
		}
		for _, r := range results {
			if r.URL != "" {
				urls = append(urls, r.URL)
			}
		}
	}
	if len(urls) == 0 {
		return nil, nil
	}

	pages := p.pool.FetchAll(ctx, urls)
	p.logger.Printf("fetched %d/%d pages", len(pages), len(urls))

	var docs []Doc
	for _, page := range pages {
		for chunk := range segment.Chunks(page.Text) {
			docs = append(docs, Doc{URL: page.URL, Text: chunk})
		}
	}
	if len(docs) == 0 {
		return nil, nil
	}

	ranked, err := p.ranker.Rank(ctx, docs, topic, p.rankK)
	if err != nil {
		return nil, fmt.Errorf("ranking chunks: %w", err)
	}

	chunks := make([]string, 0, len(ranked))
	for _, d := range ranked {
		chunks = append(chunks, d.Text)
	}
	return chunks, nil
}
