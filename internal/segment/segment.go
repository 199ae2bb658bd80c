// Package segment turns raw scraped page text into cleaned, sentence-like
// chunks suitable for embedding and verification.
package segment

import (
	"iter"
	"regexp"
	"strings"
)

// Chunk length bounds, exclusive on both ends.
const (
	MinChunkLen = 15
	MaxChunkLen = 1024
)

var (
	citationMarkers = regexp.MustCompile(`\[\w+\]`)
	symbolRuns      = regexp.MustCompile(`[^\w\s]{2,}|_{2,}|-{2,}`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// Chunks returns a lazy, restartable sequence of cleaned sentence chunks.
// Normalisation strips bracketed citation markers (e.g. [12]), collapses runs
// of punctuation and whitespace, and drops non-printable characters. Only
// chunks whose length is strictly between MinChunkLen and MaxChunkLen and
// that are not purely numeric are emitted.
func Chunks(text string) iter.Seq[string] {
	cleaned := normalize(text)
	return func(yield func(string) bool) {
		for sentence := range sentences(cleaned) {
			chunk := strings.TrimSpace(stripNonPrintable(sentence))
			if !keep(chunk) {
				continue
			}
			if !yield(chunk) {
				return
			}
		}
	}
}

// Segment collects Chunks into a slice.
func Segment(text string) []string {
	var out []string
	for c := range Chunks(text) {
		out = append(out, c)
	}
	return out
}

func normalize(text string) string {
	text = citationMarkers.ReplaceAllString(text, "")
	text = symbolRuns.ReplaceAllString(text, " ")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// sentences splits on ., ! or ? followed by whitespace, keeping the
// terminator with the preceding sentence.
func sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		for i := 0; i < len(text)-1; i++ {
			switch text[i] {
			case '.', '!', '?':
				if text[i+1] == ' ' || text[i+1] == '\t' || text[i+1] == '\n' || text[i+1] == '\r' {
					if !yield(text[start : i+1]) {
						return
					}
					start = i + 2
				}
			}
		}
		if start < len(text) {
			yield(text[start:])
		}
	}
}

func stripNonPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 32 && r <= 126) || r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func keep(chunk string) bool {
	if len(chunk) <= MinChunkLen || len(chunk) >= MaxChunkLen {
		return false
	}
	return !isNumeric(chunk)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
