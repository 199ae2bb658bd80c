package helpers

import "testing"

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n[1, 2]\n```", "[1, 2]"},
		{"tilde fence", "~~~\nhello\n~~~", "hello"},
		{"no fence", `{"a": 1}`, `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", "```json\n{\"a\": 1}"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripCodeFence(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`},
		{"prose around", `Here you go: {"a": 1} hope that helps`, `{"a": 1}`},
		{"nested", `{"a": {"b": [1, 2]}}`, `{"a": {"b": [1, 2]}}`},
		{"braces in strings", `{"msg": "use { and } freely"}`, `{"msg": "use { and } freely"}`},
		{"escaped quote", `{"msg": "say \"hi\""}`, `{"msg": "say \"hi\""}`},
		{"array", `prefix ["a", "b"] suffix`, `["a", "b"]`},
		{"fenced", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractJSONNoSpan(t *testing.T) {
	for _, in := range []string{"no json here", "{unclosed", `["mismatched"}`} {
		if _, err := ExtractJSON(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestStripTrailingCommas(t *testing.T) {
	cases := []struct{ in, want string }{
		{`{"a": 1,}`, `{"a": 1}`},
		{`[1, 2, ]`, `[1, 2]`},
		{`{"a": [1,], "b": 2,}`, `{"a": [1], "b": 2}`},
		{`{"a": 1}`, `{"a": 1}`},
	}
	for _, tc := range cases {
		if got := StripTrailingCommas(tc.in); got != tc.want {
			t.Fatalf("StripTrailingCommas(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
