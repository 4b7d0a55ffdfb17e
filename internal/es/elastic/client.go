// Package elastic implements es.Store on top of the official Elasticsearch client.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	elasticsearch "github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"github.com/kailas-cloud/docsearch/internal/es"
)

// Compile-time check: Store implements es.Store.
var _ es.Store = (*Store)(nil)

// Config holds connection parameters for an Elasticsearch store.
type Config struct {
	Addresses      []string
	Username       string
	Password       string
	MaxRetries     int
	RequestTimeout time.Duration
}

// Store implements es.Store via go-elasticsearch.
type Store struct {
	client    *elasticsearch.Client
	transport *http.Transport
}

// NewStore creates an Elasticsearch store. Requests are retried on timeouts
// and transient 429/502/503/504 responses up to MaxRetries times.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	transport := &http.Transport{}
	if cfg.RequestTimeout > 0 {
		transport.ResponseHeaderTimeout = cfg.RequestTimeout
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses:            cfg.Addresses,
		Username:             cfg.Username,
		Password:             cfg.Password,
		MaxRetries:    cfg.MaxRetries,
		RetryOnStatus: []int{429, 502, 503, 504},
		Transport:     transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, transport: transport}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return &es.Error{Op: es.OpPing, Err: err}
	}
	defer drain(res.Body)

	if res.IsError() {
		return &es.Error{Op: es.OpPing, Err: fmt.Errorf("status %s", res.Status())}
	}
	return nil
}

// Close releases held connections.
func (s *Store) Close() {
	s.transport.CloseIdleConnections()
}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for elasticsearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Index persists a new document. The id is assigned here so that indexing is
// idempotent from the backend's point of view.
func (s *Store) Index(ctx context.Context, index string, doc []byte) (string, error) {
	id := uuid.NewString()
	if err := s.put(ctx, index, id, doc); err != nil {
		return "", err
	}
	return id, nil
}

// Update re-persists a document under an existing id.
func (s *Store) Update(ctx context.Context, index, id string, doc []byte) error {
	return s.put(ctx, index, id, doc)
}

func (s *Store) put(ctx context.Context, index, id string, doc []byte) error {
	res, err := s.client.Index(index, bytes.NewReader(doc),
		s.client.Index.WithDocumentID(id),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return &es.Error{Op: es.OpIndex, Err: err}
	}
	defer drain(res.Body)

	if res.IsError() {
		return &es.Error{Op: es.OpIndex, Err: fmt.Errorf("status %s", res.Status())}
	}
	return nil
}

// Get returns the raw _source of a document.
func (s *Store) Get(ctx context.Context, index, id string) ([]byte, error) {
	res, err := s.client.Get(index, id, s.client.Get.WithContext(ctx))
	if err != nil {
		return nil, &es.Error{Op: es.OpGet, Err: err}
	}
	defer drain(res.Body)

	if res.StatusCode == http.StatusNotFound {
		return nil, es.ErrDocNotFound
	}
	if res.IsError() {
		return nil, &es.Error{Op: es.OpGet, Err: fmt.Errorf("status %s", res.Status())}
	}

	var body struct {
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, &es.Error{Op: es.OpGet, Err: fmt.Errorf("decode response: %w", err)}
	}
	return body.Source, nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, index, id string) error {
	res, err := s.client.Delete(index, id, s.client.Delete.WithContext(ctx))
	if err != nil {
		return &es.Error{Op: es.OpDelete, Err: err}
	}
	defer drain(res.Body)

	if res.StatusCode == http.StatusNotFound {
		return es.ErrDocNotFound
	}
	if res.IsError() {
		return &es.Error{Op: es.OpDelete, Err: fmt.Errorf("status %s", res.Status())}
	}
	return nil
}

// Search runs a composed query against an index.
func (s *Store) Search(ctx context.Context, index string, q *es.Query) (*es.SearchResult, error) {
	body, err := json.Marshal(buildSearchBody(q))
	if err != nil {
		return nil, &es.Error{Op: es.OpSearch, Err: fmt.Errorf("marshal query: %w", err)}
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, &es.Error{Op: es.OpSearch, Err: err}
	}
	defer drain(res.Body)

	if res.IsError() {
		return nil, &es.Error{Op: es.OpSearch, Err: fmt.Errorf("status %s", res.Status())}
	}

	return parseSearchResult(res.Body)
}

// EnsureIndex creates an index with the given settings and mappings.
// A pre-existing index is not an error.
func (s *Store) EnsureIndex(ctx context.Context, index string, mapping []byte) error {
	res, err := s.client.Indices.Create(index,
		s.client.Indices.Create.WithBody(bytes.NewReader(mapping)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return &es.Error{Op: es.OpCreateIndex, Err: err}
	}
	defer res.Body.Close()

	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		if strings.Contains(string(raw), "resource_already_exists_exception") {
			return nil
		}
		return &es.Error{Op: es.OpCreateIndex, Err: fmt.Errorf("status %s", res.Status())}
	}
	return nil
}

// ClusterHealthy returns nil when the cluster status is green or yellow.
func (s *Store) ClusterHealthy(ctx context.Context) error {
	res, err := s.client.Cluster.Health(s.client.Cluster.Health.WithContext(ctx))
	if err != nil {
		return &es.Error{Op: es.OpClusterHealth, Err: err}
	}
	defer drain(res.Body)

	if res.IsError() {
		return &es.Error{Op: es.OpClusterHealth, Err: fmt.Errorf("status %s", res.Status())}
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return &es.Error{Op: es.OpClusterHealth, Err: fmt.Errorf("decode response: %w", err)}
	}

	switch body.Status {
	case "green", "yellow":
		return nil
	default:
		return &es.Error{Op: es.OpClusterHealth, Err: fmt.Errorf("cluster status %q", body.Status)}
	}
}

func parseSearchResult(r io.Reader) (*es.SearchResult, error) {
	var body struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string          `json:"_id"`
				Score  float64         `json:"_score"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return nil, &es.Error{Op: es.OpSearch, Err: fmt.Errorf("decode response: %w", err)}
	}

	result := &es.SearchResult{
		Total: body.Hits.Total.Value,
		Hits:  make([]es.Hit, 0, len(body.Hits.Hits)),
	}
	for _, h := range body.Hits.Hits {
		result.Hits = append(result.Hits, es.Hit{ID: h.ID, Score: h.Score, Source: h.Source})
	}
	return result, nil
}

// drain consumes and closes a response body so the connection can be reused.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
