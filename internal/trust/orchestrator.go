package trust

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/trustme-ai/trustme/internal/telemetry"
)

// Orchestrator drives the analysis loop:
// plan -> collect -> verify -> (retry on disagreement) -> score.
//
// Disagreement is the only retryable condition: the verifier's suggested
// query seeds the next iteration, bounded by the retry budget. An empty
// dataset and a scorer that yields no value are terminal. Collaborator
// failures (search, completion, embedding) are the only errors returned.
type Orchestrator struct {
	planner    QueryPlanner
	collector  EvidenceCollector
	verifier   ChunkVerifier
	scorer     TrustScorer
	maxRetries int
	deadline   time.Duration
	logger     *log.Logger
}

func NewOrchestrator(planner QueryPlanner, collector EvidenceCollector, verifier ChunkVerifier, scorer TrustScorer, maxRetries int, deadline time.Duration, logger *log.Logger) *Orchestrator {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[ORCH] ", log.LstdFlags)
	}
	return &Orchestrator{
		planner:    planner,
		collector:  collector,
		verifier:   verifier,
		scorer:     scorer,
		maxRetries: maxRetries,
		deadline:   deadline,
		logger:     logger,
	}
}

// Run executes one analysis. It resolves every run to a Result; the returned
// error is non-nil only when a collaborator is unreachable or the deadline
// expires.
func (o *Orchestrator) Run(ctx context.Context, req AnalysisRequest) (Result, error) {
	start := time.Now()
	defer func() {
		telemetry.AnalysisDuration.Observe(time.Since(start).Seconds())
	}()

	if o.deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.deadline)
		defer cancel()
	}
	if req.Language == "" {
		req.Language = "en-US"
	}

	vlog := &VerificationLog{}
	topic := req.Subject + " " + req.Context
	query := ""
	attempts := 0

	o.logger.Printf("beginning analysis of subject %q", req.Subject)

	for {
		queries, err := o.planner.Plan(ctx, req, query)
		if err != nil {
			return o.fail(err)
		}

		chunks, err := o.collector.Collect(ctx, queries, topic)
		if err != nil {
			return o.fail(err)
		}
		if len(chunks) == 0 {
			// Absence of any scrapable content is terminal, not retryable.
			o.logger.Printf("no data scraped from any site")
			return o.terminal(OutcomeNoData, MsgNoData, vlog), nil
		}

		verdict, err := o.verifier.Verify(ctx, chunks, req.Language)
		if err != nil {
			return o.fail(err)
		}
		if len(verdict.Data) == 0 {
			o.logger.Printf("validation returned no data")
			return o.terminal(OutcomeNoValidData, MsgNoValidData, vlog), nil
		}

		vlog.Append(verdict.Data, verdict.Whys)

		if verdict.OK {
			break
		}
		if attempts >= o.maxRetries {
			o.logger.Printf("retry budget exhausted after %d iterations", vlog.Len())
			return o.terminal(OutcomeRetriesExhausted, MsgExhausted, vlog), nil
		}

		telemetry.VerificationRetries.Inc()
		o.logger.Printf("verification disagreement (attempt %d/%d), refining query: %q", attempts+1, o.maxRetries, verdict.SuggestedRetry)
		query = verdict.SuggestedRetry
		attempts++
	}

	fields, err := o.scorer.Score(ctx, vlog, req.Language)
	if err != nil {
		return o.fail(err)
	}
	if fields.Score == nil || fields.Details == nil || *fields.Details == "" {
		// A nil score is not a zero score: the model produced no usable
		// value, so the run resolves to a scoring failure.
		o.logger.Printf("scoring failed or returned no details")
		return o.terminal(OutcomeScoringUnavailable, MsgNoScore, vlog), nil
	}

	telemetry.AnalysesTotal.WithLabelValues(telemetry.OutcomeVerified).Inc()
	o.logger.Printf("analysis complete: score=%.1f iterations=%d", *fields.Score, vlog.Len())
	return Result{
		Score:      *fields.Score,
		Details:    *fields.Details,
		Outcome:    OutcomeVerified,
		Iterations: vlog.Len(),
		Log:        vlog,
	}, nil
}

func (o *Orchestrator) terminal(outcome Outcome, msg string, vlog *VerificationLog) Result {
	telemetry.AnalysesTotal.WithLabelValues(metricOutcome(outcome)).Inc()
	return Result{
		Score:      0,
		Details:    msg,
		Outcome:    outcome,
		Iterations: vlog.Len(),
		Log:        vlog,
	}
}

func (o *Orchestrator) fail(err error) (Result, error) {
	telemetry.AnalysesTotal.WithLabelValues(telemetry.OutcomeError).Inc()
	return Result{}, fmt.Errorf("trust analysis: %w", err)
}

func metricOutcome(outcome Outcome) string {
	switch outcome {
	case OutcomeNoData, OutcomeNoValidData:
		return telemetry.OutcomeNoData
	case OutcomeRetriesExhausted:
		return telemetry.OutcomeExhausted
	case OutcomeScoringUnavailable:
		return telemetry.OutcomeNoScore
	default:
		return telemetry.OutcomeVerified
	}
}
