package helpers

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// urlPattern is deliberately conservative: scheme://host[:port][/path].
// Candidates that do not match are dropped before any network I/O happens.
var urlPattern = regexp.MustCompile(`(?i)^https?://[\w\-.]+(:\d+)?(/[\w\-.~:/?#\[\]@!$&'"()*+,;=%]*)?$`)

// ValidURL reports whether raw looks like a fetchable http(s) URL.
func ValidURL(raw string) bool {
	return urlPattern.MatchString(strings.TrimSpace(raw))
}

var trackingQueryParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"utm_id":       {},
	"gclid":        {},
	"fbclid":       {},
	"msclkid":      {},
	"igshid":       {},
}

// CanonicalURL normalises a URL for deduplication: lowercased scheme and
// host, default ports and fragments removed, tracking query parameters
// stripped, remaining parameters sorted. Invalid input comes back unchanged
// so callers can still use it as a map key.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return raw
	}

	parsed.Scheme = strings.ToLower(parsed.Scheme)
	host := strings.ToLower(parsed.Host)
	if h, port, ok := strings.Cut(host, ":"); ok {
		if (parsed.Scheme == "http" && port == "80") || (parsed.Scheme == "https" && port == "443") {
			host = h
		}
	}
	parsed.Host = host
	parsed.Fragment = ""

	query := parsed.Query()
	for key := range query {
		if _, drop := trackingQueryParams[strings.ToLower(key)]; drop {
			query.Del(key)
		}
	}
	if len(query) == 0 {
		parsed.RawQuery = ""
	} else {
		keys := make([]string, 0, len(query))
		for key := range query {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			values := append([]string(nil), query[key]...)
			sort.Strings(values)
			for _, value := range values {
				if b.Len() > 0 {
					b.WriteByte('&')
				}
				b.WriteString(url.QueryEscape(key))
				b.WriteByte('=')
				b.WriteString(url.QueryEscape(value))
			}
		}
		parsed.RawQuery = b.String()
	}

	return parsed.String()
}
