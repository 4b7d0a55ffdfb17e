// Package es defines the search backend facade. Consumers depend on the
// narrow sub-interfaces; the concrete implementation lives in es/elastic.
package es

import (
	"context"
	"time"
)

// Store is the search backend facade combining all sub-interfaces.
type Store interface {
	Pinger
	DocumentStore
	IndexManager
	ClusterChecker
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DocumentStore provides document operations against a named index.
type DocumentStore interface {
	// Index persists a new document and returns its assigned id.
	Index(ctx context.Context, index string, doc []byte) (string, error)
	// Update re-persists a document under an existing id.
	Update(ctx context.Context, index, id string, doc []byte) error
	// Get returns the raw source of a document, or ErrDocNotFound.
	Get(ctx context.Context, index, id string) ([]byte, error)
	// Delete removes a document, or returns ErrDocNotFound.
	Delete(ctx context.Context, index, id string) error
	// Search runs a composed query and returns ordered hits.
	Search(ctx context.Context, index string, q *Query) (*SearchResult, error)
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	// EnsureIndex creates an index with the given settings and mappings.
	// An index that already exists is not an error.
	EnsureIndex(ctx context.Context, index string, mapping []byte) error
}

// ClusterChecker reports search cluster health.
type ClusterChecker interface {
	// ClusterHealthy returns nil when the cluster can serve requests.
	ClusterHealthy(ctx context.Context) error
}
