// Package article persists articles in the "<prefix>_articles" index.
package article

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/domain"
	domart "github.com/kailas-cloud/docsearch/internal/domain/article"
	domsearch "github.com/kailas-cloud/docsearch/internal/domain/search"
	"github.com/kailas-cloud/docsearch/internal/es"
)

// fullTextFields are the relevance-ranked search targets; title counts double.
var fullTextFields = []string{"title^2", "content"}

// store is the consumer interface for article persistence (ISP).
type store interface {
	Index(ctx context.Context, index string, doc []byte) (string, error)
	Update(ctx context.Context, index, id string, doc []byte) error
	Get(ctx context.Context, index, id string) ([]byte, error)
	Delete(ctx context.Context, index, id string) error
	Search(ctx context.Context, index string, q *es.Query) (*es.SearchResult, error)
	EnsureIndex(ctx context.Context, index string, mapping []byte) error
}

// Repo implements usecase/document.ArticleRepository.
type Repo struct {
	store store
	index string
}

// New creates an article repository over the "<prefix>_articles" index.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, index: prefix + "_articles"}
}

// EnsureIndex creates the article index with its mappings if missing.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	if err := r.store.EnsureIndex(ctx, r.index, []byte(indexMapping)); err != nil {
		return fmt.Errorf("ensure index %s: %w", r.index, err)
	}
	return nil
}

// Create persists a new article and returns its assigned id.
func (r *Repo) Create(ctx context.Context, a *domart.Article) (string, error) {
	data, err := json.Marshal(toDoc(a))
	if err != nil {
		return "", fmt.Errorf("marshal article: %w", err)
	}

	id, err := r.store.Index(ctx, r.index, data)
	if err != nil {
		return "", fmt.Errorf("index article: %w", err)
	}
	return id, nil
}

// Update re-persists an existing article under its id.
func (r *Repo) Update(ctx context.Context, a *domart.Article) error {
	data, err := json.Marshal(toDoc(a))
	if err != nil {
		return fmt.Errorf("marshal article: %w", err)
	}

	if err := r.store.Update(ctx, r.index, a.ID, data); err != nil {
		return fmt.Errorf("update article %s: %w", a.ID, err)
	}
	return nil
}

// Get returns an article by id, or domain.ErrArticleNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domart.Article, error) {
	raw, err := r.store.Get(ctx, r.index, id)
	if err != nil {
		if errors.Is(err, es.ErrDocNotFound) {
			return domart.Article{}, domain.ErrArticleNotFound
		}
		return domart.Article{}, fmt.Errorf("get article %s: %w", id, err)
	}

	var d doc
	if err := json.Unmarshal(raw, &d); err != nil {
		return domart.Article{}, fmt.Errorf("unmarshal article %s: %w", id, err)
	}
	return fromDoc(id, d), nil
}

// Delete removes an article, or returns domain.ErrArticleNotFound.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, r.index, id); err != nil {
		if errors.Is(err, es.ErrDocNotFound) {
			return domain.ErrArticleNotFound
		}
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	return nil
}

// Search runs a composed article search and returns matches in rank order.
func (r *Repo) Search(ctx context.Context, p domsearch.Params) ([]domart.Article, error) {
	q := &es.Query{
		Text:   p.Query(),
		Fields: fullTextFields,
		From:   p.Offset(),
		Size:   p.Limit(),
	}

	terms := make(map[string][]string)
	if p.Category() != "" {
		terms["category"] = []string{p.Category()}
	}
	if len(p.Tags()) > 0 {
		terms["tags"] = p.Tags()
	}
	if len(terms) > 0 {
		q.Terms = terms
	}

	res, err := r.store.Search(ctx, r.index, q)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}

	articles := make([]domart.Article, 0, len(res.Hits))
	for _, hit := range res.Hits {
		var d doc
		if err := json.Unmarshal(hit.Source, &d); err != nil {
			return nil, fmt.Errorf("unmarshal hit %s: %w", hit.ID, err)
		}
		articles = append(articles, fromDoc(hit.ID, d))
	}
	return articles, nil
}
