package trust

import (
	"context"
	"fmt"
	"strings"

	"github.com/trustme-ai/trustme/provider"
)

// LLMVerifier asks the completion collaborator whether a set of chunks is
// mutually consistent.
type LLMVerifier struct {
	provider provider.Provider
}

func NewVerifier(p provider.Provider) *LLMVerifier {
	return &LLMVerifier{provider: p}
}

func (v *LLMVerifier) Verify(ctx context.Context, chunks []string, language string) (Verdict, error) {
	texts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if strings.TrimSpace(c) != "" {
			texts = append(texts, c)
		}
	}

	out, err := v.provider.Complete(ctx, verifierPrompt(texts, language))
	if err != nil {
		return Verdict{}, fmt.Errorf("verification completion: %w", err)
	}

	verdict := ExtractVerdict(out)
	verdict.Data = texts
	return verdict, nil
}
