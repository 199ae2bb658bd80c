package helpers

import (
	"errors"
	"regexp"
	"strings"
)

// StripCodeFence unwraps a leading markdown code fence (``` or ~~~, with an
// optional language tag) when the input is entirely wrapped in one. Content
// without fences comes back unchanged.
func StripCodeFence(s string) string {
	trim := strings.TrimSpace(s)
	fence := ""
	switch {
	case strings.HasPrefix(trim, "```"):
		fence = "```"
	case strings.HasPrefix(trim, "~~~"):
		fence = "~~~"
	default:
		return s
	}
	rest := trim[len(fence):]
	nl := strings.IndexByte(rest, '\n')
	if nl == -1 {
		return s
	}
	rest = rest[nl+1:]
	end := strings.Index(rest, fence)
	if end == -1 {
		return s
	}
	return strings.TrimSpace(rest[:end])
}

// ExtractJSON finds and returns the first balanced JSON object or array in s,
// ignoring braces inside string literals. Markdown fences are unwrapped
// first, since models frequently wrap JSON despite instructions.
func ExtractJSON(s string) (string, error) {
	s = StripCodeFence(strings.TrimSpace(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			if out, ok := balancedFrom(s, i); ok {
				return out, nil
			}
		}
	}
	return "", errors.New("no balanced JSON object/array found")
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// StripTrailingCommas removes commas that directly precede a closing brace or
// bracket, a malformation models produce often enough to matter.
func StripTrailingCommas(s string) string {
	return trailingComma.ReplaceAllString(s, "$1")
}

// balancedFrom extracts a balanced JSON value starting at startIdx, handling
// strings and escape sequences.
func balancedFrom(s string, startIdx int) (string, bool) {
	open := s[startIdx]
	if open != '{' && open != '[' {
		return "", false
	}

	var (
		stack    []byte
		inString bool
		escape   bool
	)
	stack = append(stack, open)

	for i := startIdx + 1; i < len(s); i++ {
		c := s[i]

		if inString {
			if escape {
				escape = false
				continue
			}
			switch c {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			top := stack[len(stack)-1]
			if (top == '{' && c != '}') || (top == '[' && c != ']') {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[startIdx : i+1], true
			}
		}
	}
	return "", false
}
