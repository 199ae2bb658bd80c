package inmemory

import (
	"fmt"
	"testing"
	"time"

	"github.com/trustme-ai/trustme/session"
)

func newSessionWithChunks(t *testing.T, texts []string) session.Session {
	t.Helper()
	store := NewStore()
	sess, err := store.NewSession(time.Minute)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	t.Cleanup(func() { sess.Close() })
	for i, text := range texts {
		chunk := session.Chunk{
			ID:         fmt.Sprintf("chunk-%04d", i),
			URL:        "https://example.com",
			Text:       text,
			Index:      i,
			IngestedAt: time.Now(),
		}
		if err := sess.AddChunk(chunk); err != nil {
			t.Fatalf("adding chunk: %v", err)
		}
	}
	return sess
}

func TestVectorSearchOrdersByCosine(t *testing.T) {
	sess := newSessionWithChunks(t, []string{"far", "near", "middle"})
	sess.SetVector("chunk-0000", []float32{0, 1})
	sess.SetVector("chunk-0001", []float32{1, 0})
	sess.SetVector("chunk-0002", []float32{1, 1})

	hits := sess.VectorSearch([]float32{1, 0}, 3)
	if len(hits) != 3 {
		t.Fatalf("expected 3 hits, got %d", len(hits))
	}
	if hits[0].Text != "near" || hits[1].Text != "middle" || hits[2].Text != "far" {
		t.Fatalf("unexpected order: %q %q %q", hits[0].Text, hits[1].Text, hits[2].Text)
	}
	for i, h := range hits {
		if h.Rank != i+1 {
			t.Fatalf("hit %d has rank %d", i, h.Rank)
		}
	}
}

func TestVectorSearchFewerThanK(t *testing.T) {
	sess := newSessionWithChunks(t, []string{"only one"})
	sess.SetVector("chunk-0000", []float32{1, 0})

	hits := sess.VectorSearch([]float32{1, 0}, 10)
	if len(hits) != 1 {
		t.Fatalf("expected all hits when fewer than k, got %d", len(hits))
	}
}

func TestVectorSearchTiesKeepInsertionOrder(t *testing.T) {
	sess := newSessionWithChunks(t, []string{"first", "second", "third"})
	for i := 0; i < 3; i++ {
		sess.SetVector(fmt.Sprintf("chunk-%04d", i), []float32{1, 0})
	}

	for run := 0; run < 5; run++ {
		hits := sess.VectorSearch([]float32{1, 0}, 3)
		if hits[0].Text != "first" || hits[1].Text != "second" || hits[2].Text != "third" {
			t.Fatalf("run %d: tie order not stable: %q %q %q", run, hits[0].Text, hits[1].Text, hits[2].Text)
		}
	}
}

func TestBM25Search(t *testing.T) {
	sess := newSessionWithChunks(t, []string{
		"the quick brown fox jumps over the lazy dog",
		"stock markets fell sharply on tuesday",
		"the fox is a small carnivorous mammal",
	})

	hits, err := sess.BM25Search("fox", 2)
	if err != nil {
		t.Fatalf("bm25 search: %v", err)
	}
	if len(hits) == 0 || len(hits) > 2 {
		t.Fatalf("expected 1-2 hits, got %d", len(hits))
	}
	for _, h := range hits {
		if h.Text == "stock markets fell sharply on tuesday" {
			t.Fatalf("irrelevant chunk ranked: %q", h.Text)
		}
	}
}

func TestStoreSessionLifecycle(t *testing.T) {
	store := NewStore()
	sess, err := store.NewSession(time.Minute)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	if _, err := store.GetSession(sess.ID()); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("closing session: %v", err)
	}
	if _, err := store.GetSession(sess.ID()); err != session.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound after close, got %v", err)
	}
}

func TestStoreExpiredSession(t *testing.T) {
	store := NewStore()
	sess, err := store.NewSession(-time.Second)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}
	defer sess.Close()

	if _, err := store.GetSession(sess.ID()); err != session.ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound for expired session, got %v", err)
	}
}
