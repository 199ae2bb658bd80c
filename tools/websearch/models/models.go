package models

// Result is a single search hit. Only the URL is consumed by the core
// pipeline; title and snippet are kept for reporting.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
