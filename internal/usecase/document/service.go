// Package document implements the domain operations over the search backend.
package document

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	domart "github.com/kailas-cloud/docsearch/internal/domain/article"
	domsearch "github.com/kailas-cloud/docsearch/internal/domain/search"
	domuser "github.com/kailas-cloud/docsearch/internal/domain/user"
)

// Service handles article and user CRUD plus article search.
// The storage backend is authoritative; the service owns only the mapping
// from partial updates to full documents and the timestamp invariants.
type Service struct {
	articles ArticleRepository
	users    UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// New creates a document service.
func New(articles ArticleRepository, users UserRepository, logger *zap.Logger) *Service {
	return &Service{
		articles: articles,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the timestamp source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateArticle persists a new article. Both timestamps are stamped to the
// same instant, so created_at == updated_at on a fresh document.
func (s *Service) CreateArticle(ctx context.Context, a domart.Article) (domart.Article, error) {
	a.Stamp(s.now().UTC())

	id, err := s.articles.Create(ctx, &a)
	if err != nil {
		return domart.Article{}, fmt.Errorf("create article: %w", err)
	}
	a.ID = id

	s.logger.Info("created article", zap.String("id", id))
	return a, nil
}

// GetArticle returns an article by id; absence surfaces as
// domain.ErrArticleNotFound, distinct from backend failures.
func (s *Service) GetArticle(ctx context.Context, id string) (domart.Article, error) {
	a, err := s.articles.Get(ctx, id)
	if err != nil {
		return domart.Article{}, fmt.Errorf("get article: %w", err)
	}
	return a, nil
}

// SearchArticles returns matching articles in backend rank order: relevance
// when the params carry a text query, index default order otherwise.
func (s *Service) SearchArticles(ctx context.Context, p domsearch.Params) ([]domart.Article, error) {
	articles, err := s.articles.Search(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}
	return articles, nil
}

// UpdateArticle applies a partial update: only fields present in the patch
// overwrite the stored document. Last write wins; there is no concurrency
// check between the read and the write.
func (s *Service) UpdateArticle(ctx context.Context, id string, p domart.Patch) (domart.Article, error) {
	a, err := s.articles.Get(ctx, id)
	if err != nil {
		return domart.Article{}, fmt.Errorf("get article for update: %w", err)
	}

	p.Apply(&a)
	a.Stamp(s.now().UTC())

	if err := s.articles.Update(ctx, &a); err != nil {
		return domart.Article{}, fmt.Errorf("update article: %w", err)
	}

	s.logger.Info("updated article", zap.String("id", id))
	return a, nil
}

// DeleteArticle removes an article. Deleting a missing id reports
// domain.ErrArticleNotFound on every call, never a hard failure.
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	s.logger.Info("deleted article", zap.String("id", id))
	return nil
}

// CreateUser persists a new user with the same timestamp semantics as articles.
func (s *Service) CreateUser(ctx context.Context, u domuser.User) (domuser.User, error) {
	u.Stamp(s.now().UTC())

	id, err := s.users.Create(ctx, &u)
	if err != nil {
		return domuser.User{}, fmt.Errorf("create user: %w", err)
	}
	u.ID = id

	s.logger.Info("created user", zap.String("id", id))
	return u, nil
}

// GetUser returns a user by id, or domain.ErrUserNotFound.
func (s *Service) GetUser(ctx context.Context, id string) (domuser.User, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return domuser.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
