package trust

import (
	"context"
	"fmt"
	"time"

	"github.com/trustme-ai/trustme/session"
	"github.com/trustme-ai/trustme/tools/embedding"
)

// Doc is a candidate text chunk with its source URL.
type Doc struct {
	URL  string
	Text string
}

// Rank modes.
const (
	RankModeVector = "vector"
	RankModeHybrid = "hybrid"
)

const sessionTTL = 30 * time.Minute

// Ranker orders chunks by relevance to a query. Each Rank call builds a fresh
// per-run session, embeds every chunk and the query once, and returns the top
// k by cosine similarity; hybrid mode additionally runs BM25 over the same
// chunks and fuses both rankings by reciprocal rank.
type Ranker struct {
	store    session.Store
	embedder embedding.Embedder
	mode     string
}

func NewRanker(store session.Store, embedder embedding.Embedder, mode string) *Ranker {
	if mode == "" {
		mode = RankModeVector
	}
	return &Ranker{store: store, embedder: embedder, mode: mode}
}

// Rank returns at most k docs ordered by descending similarity to query.
// Ties keep ingestion order, so ranking is deterministic for deterministic
// embeddings. An empty input returns an empty result without touching the
// embedding collaborator.
func (r *Ranker) Rank(ctx context.Context, docs []Doc, query string, k int) ([]Doc, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if k <= 0 {
		return nil, nil
	}

	sess, err := r.store.NewSession(sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	defer sess.Close()

	texts := make([]string, len(docs))
	now := time.Now()
	for i, d := range docs {
		texts[i] = d.Text
		chunk := session.Chunk{
			ID:         fmt.Sprintf("chunk-%04d", i),
			URL:        d.URL,
			Text:       d.Text,
			Index:      i,
			IngestedAt: now,
		}
		if err := sess.AddChunk(chunk); err != nil {
			return nil, fmt.Errorf("indexing chunk: %w", err)
		}
	}

	vecs, err := r.embedder.EmbedMany(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks: %w", err)
	}
	for i, v := range vecs {
		sess.SetVector(fmt.Sprintf("chunk-%04d", i), v)
	}

	qvec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits := sess.VectorSearch(qvec, k)
	if r.mode == RankModeHybrid {
		if bm, err := sess.BM25Search(query, k); err == nil && len(bm) > 0 {
			hits = session.FuseRRF(hits, bm, k)
		}
	}

	out := make([]Doc, 0, len(hits))
	for _, h := range hits {
		out = append(out, Doc{URL: h.URL, Text: h.Text})
	}
	return out, nil
}
