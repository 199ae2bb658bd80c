package trust

import (
	"context"
	"fmt"
	"log"

	"github.com/trustme-ai/trustme/provider"
)

// LLMQueryPlanner asks the completion collaborator to phrase search-engine
// queries for a subject. Ordering matters: earlier queries are issued first.
type LLMQueryPlanner struct {
	provider provider.Provider
	topK     int
	logger   *log.Logger
}

func NewQueryPlanner(p provider.Provider, topK int, logger *log.Logger) *LLMQueryPlanner {
	if topK <= 0 {
		topK = 5
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[PLAN] ", log.LstdFlags)
	}
	return &LLMQueryPlanner{provider: p, topK: topK, logger: logger}
}

func (p *LLMQueryPlanner) Plan(ctx context.Context, req AnalysisRequest, refinement string) ([]string, error) {
	prompt := queryDefinerPrompt(req.Subject, req.Language, req.Context, refinement, p.topK)
	out, err := p.provider.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("query planning completion: %w", err)
	}

	queries := ExtractQueries(out)
	if queries == nil {
		// Unparseable planner output leads to zero queries, which the
		// orchestrator treats as an empty dataset downstream.
		p.logger.Printf("could not parse queries from planner output: %.120s", out)
	}
	if refinement != "" {
		// The refined query from the failed verification is also issued
		// verbatim, not only as a phrasing hint.
		queries = append(queries, refinement)
	}
	return queries, nil
}
