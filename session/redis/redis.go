// Package redis_session keeps chunk metadata in redis so a run's evidence
// survives process restarts and can be inspected out of band. The bleve index
// and the vectors stay in-process: they are rebuildable from the stored
// chunks and only live for the duration of one run.
package redis_session

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/blevesearch/bleve"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/trustme-ai/trustme/session"
)

type Store struct {
	client *redis.Client
}

func NewStore(addr, password string, db int) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Store{client: rdb}
}

func (store *Store) NewSession(ttl time.Duration) (session.Session, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	sess := &Session{
		client:    store.client,
		id:        uuid.NewString(),
		expiresAt: time.Now().Add(ttl),
		bleve:     index,
	}
	if err := store.client.Set(context.Background(), sess.metaKey(), "{}", ttl).Err(); err != nil {
		return nil, fmt.Errorf("initializing session: %w", err)
	}
	return sess, nil
}

func (store *Store) GetSession(id string) (session.Session, error) {
	key := fmt.Sprintf("trustme:session:%s:meta", id)
	exists, err := store.client.Exists(context.Background(), key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, session.ErrSessionNotFound
	}
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	sess := &Session{client: store.client, id: id, bleve: index}
	for _, c := range sess.Chunks() {
		if err := sess.bleve.Index(c.ID, c); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

type Session struct {
	client    *redis.Client
	id        string
	expiresAt time.Time
	bleve     bleve.Index
	vectors   []vec
	mu        sync.RWMutex
}

type vec struct {
	id string
	v  []float32
}

func (s *Session) metaKey() string { return fmt.Sprintf("trustme:session:%s:meta", s.id) }

func (s *Session) ID() string { return s.id }

func (s *Session) AddChunk(chunk session.Chunk) error {
	ctx := context.Background()
	val, err := s.client.Get(ctx, s.metaKey()).Result()
	if err != nil && err != redis.Nil {
		return err
	}
	meta := map[string]session.Chunk{}
	if val != "" {
		_ = json.Unmarshal([]byte(val), &meta)
	}
	meta[chunk.ID] = chunk
	data, _ := json.Marshal(meta)
	if err := s.client.Set(ctx, s.metaKey(), data, time.Until(s.expiresAt)).Err(); err != nil {
		return err
	}
	return s.bleve.Index(chunk.ID, chunk)
}

func (s *Session) Chunks() []session.Chunk {
	val, err := s.client.Get(context.Background(), s.metaKey()).Result()
	if err != nil {
		return nil
	}
	meta := map[string]session.Chunk{}
	_ = json.Unmarshal([]byte(val), &meta)
	out := make([]session.Chunk, 0, len(meta))
	for _, c := range meta {
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
	meta := s.chunkMap()
	var out []session.Hit
	for i, hit := range res.Hits {
		doc := meta[hit.ID]
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
	vectors := s.vectors
	s.mu.RUnlock()

	type scored struct {
		id    string
		score float64
	}
	scoreds := make([]scored, 0, len(vectors))
	for _, v := range vectors {
		scoreds = append(scoreds, scored{id: v.id, score: session.Cosine(q, v.v)})
	}
	sort.SliceStable(scoreds, func(i, j int) bool { return scoreds[i].score > scoreds[j].score })

	meta := s.chunkMap()
	var out []session.Hit
	for i, sc := range scoreds {
		if i >= k {
			break
		}
		doc := meta[sc.id]
		out = append(out, session.Hit{
			ID: sc.id, URL: doc.URL, Text: doc.Text,
			Score: sc.score, Rank: i + 1,
		})
	}
	return out
}

func (s *Session) chunkMap() map[string]session.Chunk {
	meta := map[string]session.Chunk{}
	for _, c := range s.Chunks() {
		meta[c.ID] = c
	}
	return meta
}

func (s *Session) Close() error {
	_ = s.client.Del(context.Background(), s.metaKey()).Err()
	return s.bleve.Close()
}
