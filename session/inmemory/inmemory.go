package inmemory

import (
	"sort"
	"sync"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/google/uuid"

	"github.com/trustme-ai/trustme/session"
)

// Store keeps sessions in process memory.
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (store *Store) NewSession(ttl time.Duration) (session.Session, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	sess := &Session{
		id:        uuid.NewString(),
		store:     store,
		expiresAt: time.Now().Add(ttl),
		bleve:     index,
		meta:      make(map[string]session.Chunk),
	}
	store.mu.Lock()
	store.sessions[sess.id] = sess
	store.mu.Unlock()
	return sess, nil
}

func (store *Store) GetSession(id string) (session.Session, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	sess, ok := store.sessions[id]
	if !ok || time.Now().After(sess.expiresAt) {
		return nil, session.ErrSessionNotFound
	}
	return sess, nil
}

// Session indexes one run's chunks in a mem-only bleve index plus an
// insertion-ordered vector list for cosine search.
type Session struct {
	id        string
	store     *Store
	expiresAt time.Time
	bleve     bleve.Index
	meta      map[string]session.Chunk
	vectors   []vec // insertion order preserved for deterministic ties
	mu        sync.RWMutex
}

type vec struct {
	id string
	v  []float32
}

func (s *Session) ID() string { return s.id }

func (s *Session) AddChunk(chunk session.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meta[chunk.ID] = chunk
	return s.bleve.Index(chunk.ID, chunk)
}

func (s *Session) Chunks() []session.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]session.Chunk, 0, len(s.meta))
	for _, c := range s.meta {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

func (s *Session) SetVector(chunkID string, v []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = append(s.vectors, vec{id: chunkID, v: v})
}

func (s *Session) BM25Search(q string, k int) ([]session.Hit, error) {
	query := bleve.NewQueryStringQuery(q)
	searchReq := bleve.NewSearchRequestOptions(query, k*3, 0, false)
	res, err := s.bleve.Search(searchReq)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []session.Hit
	for i, hit := range res.Hits {
		doc := s.meta[hit.ID]
		out = append(out, session.Hit{
			ID: hit.ID, URL: doc.URL, Text: doc.Text,
			Score: hit.Score, Rank: i + 1,
		})
		if len(out) >= k {
			break
		}
	}
	return out, nil
}

func (s *Session) VectorSearch(q []float32, k int) []session.Hit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type scored struct {
		id    string
		score float64
	}
	scoreds := make([]scored, 0, len(s.vectors))
	for _, v := range s.vectors {
		scoreds = append(scoreds, scored{id: v.id, score: session.Cosine(q, v.v)})
	}
	// Stable sort keeps insertion order on ties, so ranking is deterministic
	// given deterministic embeddings.
	sort.SliceStable(scoreds, func(i, j int) bool { return scoreds[i].score > scoreds[j].score })

	var out []session.Hit
	for i, sc := range scoreds {
		if i >= k {
			break
		}
		doc := s.meta[sc.id]
		out = append(out, session.Hit{
			ID: sc.id, URL: doc.URL, Text: doc.Text,
			Score: sc.score, Rank: i + 1,
		})
	}
	return out
}

func (s *Session) Close() error {
	s.store.mu.Lock()
	delete(s.store.sessions, s.id)
	s.store.mu.Unlock()
	return s.bleve.Close()
}
