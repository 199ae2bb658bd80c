package trust

import (
	"fmt"
	"log"
	"net"

	"github.com/trustme-ai/trustme/config"
	"github.com/trustme-ai/trustme/provider"
	"github.com/trustme-ai/trustme/session"
	"github.com/trustme-ai/trustme/session/inmemory"
	redis_session "github.com/trustme-ai/trustme/session/redis"
	"github.com/trustme-ai/trustme/tools/embedding"
	"github.com/trustme-ai/trustme/tools/webfetch"
	"github.com/trustme-ai/trustme/tools/websearch"
)

// NewFromConfig assembles a ready-to-run Orchestrator from configuration:
// LLM provider, web searcher, fetch pool, session store, ranker, and the
// verification and scoring collaborators.
func NewFromConfig(cfg *config.Config, logger *log.Logger) (*Orchestrator, error) {
	if logger == nil {
		logger = log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	}

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("building llm provider: %w", err)
	}

	searcher, err := websearch.NewWebSearcher(websearch.Provider(cfg.Search.Provider), cfg.Search.APIKey)
	if err != nil {
		return nil, fmt.Errorf("building web searcher: %w", err)
	}

	fetcher, err := webfetch.NewWebFetcher(webfetch.FetcherType(cfg.Fetch.Fetcher), cfg.Fetch.Timeout, cfg.Fetch.MaxChars)
	if err != nil {
		return nil, fmt.Errorf("building web fetcher: %w", err)
	}
	pool := webfetch.NewPool(fetcher, int64(cfg.Fetch.MaxConcurrent), nil)

	var store session.Store
	switch cfg.Rank.Store {
	case "redis":
		store = redis_session.NewStore(net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port), cfg.Redis.Password, cfg.Redis.DB)
	case "", "inmemory":
		store = inmemory.NewStore()
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Rank.Store)
	}

	ranker := NewRanker(store, embedding.NewEmbedding(llm), cfg.Rank.Mode)
	pipeline := NewPipeline(searcher, pool, ranker, cfg.Search.TopK, cfg.Rank.TopK, nil)
	planner := NewQueryPlanner(llm, cfg.Search.TopK, nil)

	return NewOrchestrator(planner, pipeline, NewVerifier(llm), NewScorer(llm), cfg.Analysis.MaxRetries, cfg.Analysis.Deadline, logger), nil
}
