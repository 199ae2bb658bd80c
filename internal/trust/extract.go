package trust

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/trustme-ai/trustme/internal/helpers"
)

// Model output is supposed to be JSON but frequently is not: it arrives
// wrapped in prose, fenced in markdown, or with trailing commas. Each
// extractor below runs a three-stage fallback (direct parse, balanced-brace
// span parse, field-level regex) and signals absence with nil fields instead
// of failing. Malformed output is an expected condition here, not an error.

var (
	scoreFieldPattern   = regexp.MustCompile(`"score"\s*:\s*([0-9]+\.?[0-9]*)`)
	detailsFieldPattern = regexp.MustCompile(`(?s)"details"\s*:\s*"(.*?)"`)
	retryFieldPattern   = regexp.MustCompile(`(?s)"suggested_retry"\s*:\s*"(.*?)"`)
)

// ExtractScore pulls score and details out of raw model output.
func ExtractScore(raw string) ScoreFields {
	content := strings.TrimSpace(raw)

	var parsed struct {
		Score   *float64 `json:"score"`
		Details *string  `json:"details"`
	}

	// Stage 1: the whole output is the JSON object.
	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		return ScoreFields{Score: parsed.Score, Details: parsed.Details}
	}

	// Stage 2: first balanced {...} span anywhere in the text, with trailing
	// commas stripped.
	if span, err := helpers.ExtractJSON(content); err == nil {
		if err := json.Unmarshal([]byte(helpers.StripTrailingCommas(span)), &parsed); err == nil {
			return ScoreFields{Score: parsed.Score, Details: parsed.Details}
		}
	}

	// Stage 3: field-level regexes over the raw text, each on its own.
	var fields ScoreFields
	if m := scoreFieldPattern.FindStringSubmatch(content); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			fields.Score = &v
		}
	}
	if m := detailsFieldPattern.FindStringSubmatch(content); m != nil {
		d := strings.TrimSpace(m[1])
		fields.Details = &d
	}
	return fields
}

// ExtractVerdict interprets raw verifier output. A bare "OK" (however padded)
// means the chunks are consistent; anything else is parsed as a structured
// disagreement through the same fallback chain.
func ExtractVerdict(raw string) Verdict {
	content := strings.TrimSpace(raw)
	if strings.EqualFold(strings.Trim(content, `"'.`), "OK") {
		return Verdict{OK: true, Raw: raw}
	}

	var parsed struct {
		Whys           []string `json:"whys"`
		SuggestedRetry string   `json:"suggested_retry"`
	}

	if err := json.Unmarshal([]byte(content), &parsed); err == nil {
		return Verdict{Whys: parsed.Whys, SuggestedRetry: parsed.SuggestedRetry, Raw: raw}
	}

	if span, err := helpers.ExtractJSON(content); err == nil {
		if err := json.Unmarshal([]byte(helpers.StripTrailingCommas(span)), &parsed); err == nil {
			return Verdict{Whys: parsed.Whys, SuggestedRetry: parsed.SuggestedRetry, Raw: raw}
		}
	}

	verdict := Verdict{Raw: raw}
	if m := retryFieldPattern.FindStringSubmatch(content); m != nil {
		verdict.SuggestedRetry = strings.TrimSpace(m[1])
	}
	// No parseable reasons: keep the raw output as the single reason so the
	// log still records why this iteration failed.
	verdict.Whys = []string{content}
	return verdict
}

// ExtractQueries parses a JSON list of query strings out of planner output,
// unwrapping markdown fences the model may have added despite instructions.
// A single JSON string is promoted to a one-element list. Returns nil when
// nothing parseable is found.
func ExtractQueries(raw string) []string {
	content := helpers.StripCodeFence(strings.TrimSpace(raw))

	var queries []string
	if err := json.Unmarshal([]byte(content), &queries); err == nil {
		return nonEmpty(queries)
	}

	var single string
	if err := json.Unmarshal([]byte(content), &single); err == nil && strings.TrimSpace(single) != "" {
		return []string{single}
	}

	if span, err := helpers.ExtractJSON(content); err == nil {
		if err := json.Unmarshal([]byte(helpers.StripTrailingCommas(span)), &queries); err == nil {
			return nonEmpty(queries)
		}
	}
	return nil
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
