package models

// Result is the outcome of fetching one URL. Text is empty on any transport
// failure or timeout; callers drop empty results rather than retrying them.
type Result struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Status  int    `json:"status"`
	FetchMS int    `json:"fetch_ms"`
}

// OK reports whether the fetch produced usable text.
func (r Result) OK() bool { return r.Text != "" }
