// Package search finds past generations. It prefers Meilisearch and
// falls back to PostgreSQL full-text search when Meilisearch is down.
package search

// Result is a single search hit returned to the caller.
type Result struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	UserID  string `json:"-"`
}

// Query describes a search request. UserID scopes results to the
// requesting user and is always required.
type Query struct {
	Text       string
	UserID     string
	FilterKind string // empty = all kinds
	Limit      int
	Offset     int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a full-text search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// GenerationRecord is the data we index for a completed generation.
type GenerationRecord struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
