package trust

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/trustme-ai/trustme/provider"
)

// LLMScorer turns a run's verification log into a 0-100 trust score with an
// explanation, parsed through the resilient fallback chain.
type LLMScorer struct {
	provider provider.Provider
}

func NewScorer(p provider.Provider) *LLMScorer {
	return &LLMScorer{provider: p}
}

func (s *LLMScorer) Score(ctx context.Context, vlog *VerificationLog, language string) (ScoreFields, error) {
	searches, err := json.Marshal(vlog.Searches)
	if err != nil {
		return ScoreFields{}, fmt.Errorf("marshalling verification log: %w", err)
	}

	out, err := s.provider.Complete(ctx, scorerPrompt(string(searches), language))
	if err != nil {
		return ScoreFields{}, fmt.Errorf("scoring completion: %w", err)
	}
	return ExtractScore(out), nil
}
