package es

import "errors"

// Sentinel errors for backend operations.
var (
	ErrDocNotFound = errors.New("es: document not found")
)

// Op constants map to Elasticsearch API calls for error context.
const (
	OpIndex         = "Index"
	OpGet           = "Get"
	OpDelete        = "Delete"
	OpSearch        = "Search"
	OpCreateIndex   = "Indices.Create"
	OpClusterHealth = "Cluster.Health"
	OpPing          = "Ping"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
