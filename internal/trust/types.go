// Package trust implements the trust analysis core: query planning, evidence
// collection and ranking, consistency verification, and scoring, driven by a
// bounded retry loop.
package trust

import (
	"context"
)

// AnalysisRequest is the immutable input to one analysis run.
type AnalysisRequest struct {
	Subject  string `json:"subject"`
	Context  string `json:"context"`
	Language string `json:"language"`
}

// Outcome classifies how a run ended. Every run resolves to exactly one.
type Outcome string

const (
	OutcomeVerified           Outcome = "verified"
	OutcomeNoData             Outcome = "no_data"
	OutcomeNoValidData        Outcome = "no_valid_data"
	OutcomeRetriesExhausted   Outcome = "retries_exhausted"
	OutcomeScoringUnavailable Outcome = "scoring_unavailable"
)

// User-visible messages for terminal zero-score outcomes.
const (
	MsgNoData      = "Nessun dato recuperato dalle fonti."
	MsgNoValidData = "Nessun dato valido dopo la validazione."
	MsgExhausted   = "Verifica non conclusa: raggiunto il numero massimo di tentativi."
	MsgNoScore     = "Scoring non disponibile o nessun dettaglio prodotto."
)

// Result is the outcome of one analysis run. Score is 0 for every non-verified
// outcome; Details always carries a human-readable explanation.
type Result struct {
	Score      float64          `json:"score"`
	Details    string           `json:"details"`
	Outcome    Outcome          `json:"outcome"`
	Iterations int              `json:"iterations"`
	Log        *VerificationLog `json:"log,omitempty"`
}

// VerificationLog accumulates the evidence and disagreement reasons of each
// loop iteration. It is append-only and owned by a single run.
type VerificationLog struct {
	Searches [][]string `json:"searches"`
	Whys     [][]string `json:"whys"`
}

// Append records one iteration: the verified chunks always, the disagreement
// reasons only when there were any.
func (l *VerificationLog) Append(chunks []string, whys []string) {
	l.Searches = append(l.Searches, chunks)
	if len(whys) > 0 {
		l.Whys = append(l.Whys, whys)
	}
}

// Len is the number of loop iterations recorded.
func (l *VerificationLog) Len() int { return len(l.Searches) }

// Verdict is the verifier's judgement over one set of chunks.
type Verdict struct {
	OK             bool     `json:"ok"`
	Data           []string `json:"data"`
	Whys           []string `json:"whys,omitempty"`
	SuggestedRetry string   `json:"suggested_retry,omitempty"`
	Raw            string   `json:"-"` // unparsed model output, for debugging
}

// ScoreFields holds the nullable outputs of the score parser. A nil field
// means the model output carried no usable value; zero is a valid score and
// must stay distinguishable from "no value".
type ScoreFields struct {
	Score   *float64
	Details *string
}

// QueryPlanner turns a request plus an optional refinement hint into search
// queries.
type QueryPlanner interface {
	Plan(ctx context.Context, req AnalysisRequest, refinement string) ([]string, error)
}

// EvidenceCollector runs the search, fetch, segment and rank pipeline and
// returns the top relevant chunks for the topic.
type EvidenceCollector interface {
	Collect(ctx context.Context, queries []string, topic string) ([]string, error)
}

// ChunkVerifier judges whether a set of chunks is mutually consistent.
type ChunkVerifier interface {
	Verify(ctx context.Context, chunks []string, language string) (Verdict, error)
}

// TrustScorer turns an accumulated verification log into a score.
type TrustScorer interface {
	Score(ctx context.Context, log *VerificationLog, language string) (ScoreFields, error)
}
