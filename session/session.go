// Package session holds the evidence gathered during one analysis run:
// cleaned text chunks, their embedding vectors, and a BM25 index over them.
// A session is owned by exactly one run and is discarded when the run ends;
// nothing is shared across requests.
package session

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Chunk is one cleaned, sentence-like unit of scraped text.
type Chunk struct {
	ID         string
	URL        string
	Text       string
	Index      int // insertion order within the run, used for tie-breaking
	IngestedAt time.Time
}

// Hit is a ranked chunk.
type Hit struct {
	ID    string
	URL   string
	Text  string
	Score float64
	Rank  int
}

// Store creates and retrieves sessions.
type Store interface {
	NewSession(ttl time.Duration) (Session, error)
	GetSession(id string) (Session, error)
}

// Session indexes chunks for one run.
type Session interface {
	ID() string
	AddChunk(chunk Chunk) error
	Chunks() []Chunk
	SetVector(chunkID string, v []float32)
	BM25Search(q string, k int) ([]Hit, error)
	VectorSearch(q []float32, k int) []Hit
	Close() error
}
