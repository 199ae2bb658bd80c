package trust

import (
	"strings"
	"testing"
)

func TestRenderReport(t *testing.T) {
	vlog := &VerificationLog{}
	vlog.Append([]string{"chunk one", "chunk two"}, []string{"dates conflicted"})
	vlog.Append([]string{"chunk three"}, nil)

	res := Result{Score: 72.5, Details: "mostly consistent", Outcome: OutcomeVerified, Iterations: 2, Log: vlog}
	out := RenderReport(AnalysisRequest{Subject: "acme corp"}, res)

	for _, want := range []string{
		"# Trust Report: acme corp",
		"72.5/100",
		"mostly consistent",
		"Evidence (2 iterations)",
		"chunk one",
		"chunk three",
		"dates conflicted",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReportWithoutLog(t *testing.T) {
	out := RenderReport(AnalysisRequest{Subject: "acme"}, Result{Score: 0, Details: MsgNoData, Outcome: OutcomeNoData})
	if !strings.Contains(out, MsgNoData) {
		t.Fatalf("details missing:\n%s", out)
	}
	if strings.Contains(out, "Evidence") {
		t.Fatalf("empty log must not render an evidence section:\n%s", out)
	}
}
