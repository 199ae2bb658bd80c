package websearch

import (
	"context"
	"errors"

	"github.com/trustme-ai/trustme/tools/websearch/brave"
	"github.com/trustme-ai/trustme/tools/websearch/models"
	"github.com/trustme-ai/trustme/tools/websearch/serper"
)

// WebSearcher is the search collaborator: a black-box query to URL-list
// service. Implementations must not follow links or crawl.
type WebSearcher interface {
	Discover(ctx context.Context, q string, k int) ([]models.Result, error)
}

type Provider string

const (
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

func NewWebSearcher(provider Provider, apiKey string) (WebSearcher, error) {
	switch provider {
	case SerperProvider:
		return serper.Search{ApiKey: apiKey}, nil
	case BraveProvider:
		return brave.Search{ApiKey: apiKey}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
