package trust

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type providerStub struct {
	response string
	err      error
	prompts  []string
}

func (p *providerStub) Complete(ctx context.Context, prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.response, p.err
}

func (p *providerStub) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, errors.New("not used")
}

func TestPlannerParsesQueries(t *testing.T) {
	stub := &providerStub{response: `["acme corp history", "acme corp reviews"]`}
	planner := NewQueryPlanner(stub, 5, quietLogger())

	got, err := planner.Plan(context.Background(), AnalysisRequest{Subject: "acme", Language: "en-US"}, "")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	want := []string{"acme corp history", "acme corp reviews"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPlannerAppendsRefinement(t *testing.T) {
	stub := &providerStub{response: `["base query"]`}
	planner := NewQueryPlanner(stub, 5, quietLogger())

	got, err := planner.Plan(context.Background(), AnalysisRequest{Subject: "acme"}, "acme official registry")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(got) != 2 || got[1] != "acme official registry" {
		t.Fatalf("refinement not appended verbatim: %v", got)
	}
	if !strings.Contains(stub.prompts[0], "acme official registry") {
		t.Fatal("refinement missing from prompt")
	}
}

func TestPlannerUnparseableOutput(t *testing.T) {
	stub := &providerStub{response: "I would search for various things."}
	planner := NewQueryPlanner(stub, 5, quietLogger())

	got, err := planner.Plan(context.Background(), AnalysisRequest{Subject: "acme"}, "")
	if err != nil {
		t.Fatalf("unparseable output is not an error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil queries, got %v", got)
	}
}

func TestPlannerProviderError(t *testing.T) {
	boom := errors.New("rate limited")
	planner := NewQueryPlanner(&providerStub{err: boom}, 5, quietLogger())

	if _, err := planner.Plan(context.Background(), AnalysisRequest{Subject: "acme"}, ""); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}

func TestVerifierAgreement(t *testing.T) {
	stub := &providerStub{response: "OK"}
	verifier := NewVerifier(stub)

	verdict, err := verifier.Verify(context.Background(), []string{"chunk a", "", "chunk b", "  "}, "en-US")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verdict.OK {
		t.Fatal("expected agreement")
	}
	want := []string{"chunk a", "chunk b"}
	if !reflect.DeepEqual(verdict.Data, want) {
		t.Fatalf("blank chunks should be filtered, got %v", verdict.Data)
	}
}

func TestVerifierDisagreement(t *testing.T) {
	stub := &providerStub{response: `{"whys": ["sources conflict"], "suggested_retry": "better query"}`}
	verifier := NewVerifier(stub)

	verdict, err := verifier.Verify(context.Background(), []string{"chunk a"}, "en-US")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if verdict.OK {
		t.Fatal("expected disagreement")
	}
	if verdict.SuggestedRetry != "better query" {
		t.Fatalf("unexpected retry: %q", verdict.SuggestedRetry)
	}
	if !reflect.DeepEqual(verdict.Data, []string{"chunk a"}) {
		t.Fatalf("verdict must carry the verified chunks, got %v", verdict.Data)
	}
}

func TestScorerParsesFields(t *testing.T) {
	stub := &providerStub{response: `{"score": 77, "details": "broadly consistent"}`}
	scorer := NewScorer(stub)

	vlog := &VerificationLog{}
	vlog.Append([]string{"chunk a"}, nil)

	fields, err := scorer.Score(context.Background(), vlog, "en-US")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if fields.Score == nil || *fields.Score != 77 {
		t.Fatalf("unexpected score: %v", fields.Score)
	}
	if fields.Details == nil || *fields.Details != "broadly consistent" {
		t.Fatalf("unexpected details: %v", fields.Details)
	}
	if !strings.Contains(stub.prompts[0], "chunk a") {
		t.Fatal("evidence missing from scorer prompt")
	}
}

func TestScorerProviderError(t *testing.T) {
	boom := errors.New("model offline")
	scorer := NewScorer(&providerStub{err: boom})

	if _, err := scorer.Score(context.Background(), &VerificationLog{}, "en-US"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped provider error, got %v", err)
	}
}
