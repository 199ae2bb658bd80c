package helpers

import "testing"

func TestValidURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com/path/to/page",
		"https://example.com:8443/page?q=1&r=2",
		"HTTPS://EXAMPLE.COM/CAPS",
		"  https://example.com  ",
	}
	for _, u := range valid {
		if !ValidURL(u) {
			t.Fatalf("expected %q to be valid", u)
		}
	}

	invalid := []string{
		"",
		"example.com",
		"ftp://example.com",
		"javascript:alert(1)",
		"https://",
		"https://exa mple.com",
		"not a url at all",
	}
	for _, u := range invalid {
		if ValidURL(u) {
			t.Fatalf("expected %q to be invalid", u)
		}
	}
}

func TestCanonicalURL(t *testing.T) {
	cases := []struct{ name, in, want string }{
		{"lowercases host", "https://Example.COM/Path", "https://example.com/Path"},
		{"strips default https port", "https://example.com:443/x", "https://example.com/x"},
		{"strips default http port", "http://example.com:80/x", "http://example.com/x"},
		{"keeps custom port", "https://example.com:8443/x", "https://example.com:8443/x"},
		{"drops fragment", "https://example.com/x#section", "https://example.com/x"},
		{"drops tracking params", "https://example.com/x?utm_source=tw&id=7&fbclid=abc", "https://example.com/x?id=7"},
		{"sorts query params", "https://example.com/x?b=2&a=1", "https://example.com/x?a=1&b=2"},
		{"invalid passes through", "not a url", "not a url"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanonicalURL(tc.in); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCanonicalURLDeduplicates(t *testing.T) {
	a := CanonicalURL("https://Example.com:443/article?utm_campaign=x&page=2#top")
	b := CanonicalURL("https://example.com/article?page=2")
	if a != b {
		t.Fatalf("expected identical canonical forms, got %q and %q", a, b)
	}
}
