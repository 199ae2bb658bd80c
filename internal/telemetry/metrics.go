package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis outcomes used as metric label values.
const (
	OutcomeVerified  = "verified"
	OutcomeNoData    = "no_data"
	OutcomeExhausted = "retries_exhausted"
	OutcomeNoScore   = "scoring_unavailable"
	OutcomeError     = "error"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustme_analyses_total",
		Help: "Completed trust analyses by outcome.",
	}, []string{"outcome"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trustme_analysis_duration_seconds",
		Help:    "Wall-clock duration of trust analysis runs.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trustme_fetches_total",
		Help: "Page fetches by result.",
	}, []string{"result"})

	VerificationRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trustme_verification_retries_total",
		Help: "Verification disagreements that triggered a retry iteration.",
	})
)
