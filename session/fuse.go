package session

import (
	"math"
	"sort"
)

const rrfK = 60 // reciprocal-rank-fusion constant

const cosineEpsilon = 1e-9

// Cosine returns the cosine similarity of a and b. The epsilon in the
// denominator keeps degenerate (zero) vectors from dividing by zero.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		ai := float64(a[i])
		bi := float64(b[i])
		dot += ai * bi
		na += ai * ai
		nb += bi * bi
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + cosineEpsilon)
}

// FuseRRF merges two ranked lists by reciprocal-rank fusion and returns the
// top k fused hits.
func FuseRRF(a, b []Hit, k int) []Hit {
	type agg struct {
		item  Hit
		score float64
		order int
	}
	m := map[string]*agg{}
	next := 0
	add := func(list []Hit) {
		for _, h := range list {
			x, ok := m[h.ID]
			if !ok {
				x = &agg{item: h, order: next}
				next++
				m[h.ID] = x
			}
			x.score += 1.0 / float64(rrfK+h.Rank)
		}
	}
	add(a)
	add(b)

	items := make([]*agg, 0, len(m))
	for _, v := range m {
		items = append(items, v)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].order < items[j].order
	})

	out := make([]Hit, 0, min(k, len(items)))
	for i := 0; i < min(k, len(items)); i++ {
		h := items[i].item
		h.Score = items[i].score
		h.Rank = i + 1
		out = append(out, h)
	}
	return out
}
