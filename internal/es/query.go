package es

// Query is a composed search query: an optional relevance-ranked text match
// ANDed with exact-match filters, plus offset pagination.
type Query struct {
	// Text is matched against Fields with relevance ranking.
	// Empty means match all documents.
	Text string
	// Fields lists the full-text fields, with an optional boost suffix
	// understood by the backend (e.g. "title^2").
	Fields []string
	// Terms holds exact-match filters, ANDed together. A multi-valued entry
	// matches documents whose field value intersects any of the given values.
	Terms map[string][]string
	// From skips the leading results; Size caps the page.
	From int
	Size int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total int
	Hits  []Hit
}

// Hit is a single document returned by a search, in backend rank order.
type Hit struct {
	ID     string
	Score  float64
	Source []byte
}
