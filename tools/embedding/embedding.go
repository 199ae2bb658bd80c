package embedding

import (
	"context"

	"github.com/trustme-ai/trustme/provider"
)

// Embedder is the embedding collaborator consumed by the ranker. The
// interface exists so tests can substitute deterministic vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedMany(ctx context.Context, texts []string) ([][]float32, error)
}

type Embedding struct {
	provider provider.Provider
}

func NewEmbedding(p provider.Provider) *Embedding {
	return &Embedding{provider: p}
}

func (e *Embedding) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.EmbedMany(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 {
		return nil, nil
	}
	return vecs[0], nil
}

func (e *Embedding) EmbedMany(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	return e.provider.CreateEmbedding(ctx, texts)
}
