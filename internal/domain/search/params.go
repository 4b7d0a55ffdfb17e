// Package search defines validated article search parameters.
package search

import (
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/domain"
)

const (
	// DefaultLimit is the page size used when the caller does not pass one.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// Params are validated search parameters (immutable value object).
// An empty query means "match all". Category and tags narrow the result set
// with exact matches ANDed onto the text query.
type Params struct {
	query    string
	category string
	tags     []string
	limit    int
	offset   int
}

// New validates and creates Params. limit == 0 means "not set" and takes
// DefaultLimit; any other value outside [1, MaxLimit] is rejected.
func New(query, category string, tags []string, limit, offset int) (Params, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Params{}, fmt.Errorf("limit must be between 1 and %d: %w", MaxLimit, domain.ErrInvalidQuery)
	}
	if offset < 0 {
		return Params{}, fmt.Errorf("offset must not be negative: %w", domain.ErrInvalidQuery)
	}

	return Params{
		query:    query,
		category: category,
		tags:     append([]string(nil), tags...),
		limit:    limit,
		offset:   offset,
	}, nil
}

// Query returns the full-text query; empty means match all.
func (p Params) Query() string { return p.query }

// Category returns the exact-match category filter; empty means no filter.
func (p Params) Category() string { return p.category }

// Tags returns the tag filter values; a document matches when its tag set
// intersects them. Empty means no filter.
func (p Params) Tags() []string { return p.tags }

// Limit returns the page size.
func (p Params) Limit() int { return p.limit }

// Offset returns the number of leading results to skip.
func (p Params) Offset() int { return p.offset }
