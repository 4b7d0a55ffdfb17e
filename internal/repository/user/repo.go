// Package user persists users in the "<prefix>_users" index.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docsearch/internal/domain"
	domuser "github.com/kailas-cloud/docsearch/internal/domain/user"
	"github.com/kailas-cloud/docsearch/internal/es"
)

// store is the consumer interface for user persistence (ISP).
type store interface {
	Index(ctx context.Context, index string, doc []byte) (string, error)
	Get(ctx context.Context, index, id string) ([]byte, error)
	EnsureIndex(ctx context.Context, index string, mapping []byte) error
}

// Repo implements usecase/document.UserRepository.
type Repo struct {
	store store
	index string
}

// New creates a user repository over the "<prefix>_users" index.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, index: prefix + "_users"}
}

// EnsureIndex creates the user index with its mappings if missing.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	if err := r.store.EnsureIndex(ctx, r.index, []byte(indexMapping)); err != nil {
		return fmt.Errorf("ensure index %s: %w", r.index, err)
	}
	return nil
}

// Create persists a new user and returns its assigned id.
func (r *Repo) Create(ctx context.Context, u *domuser.User) (string, error) {
	data, err := json.Marshal(toDoc(u))
	if err != nil {
		return "", fmt.Errorf("marshal user: %w", err)
	}

	id, err := r.store.Index(ctx, r.index, data)
	if err != nil {
		return "", fmt.Errorf("index user: %w", err)
	}
	return id, nil
}

// Get returns a user by id, or domain.ErrUserNotFound.
func (r *Repo) Get(ctx context.Context, id string) (domuser.User, error) {
	raw, err := r.store.Get(ctx, r.index, id)
	if err != nil {
		if errors.Is(err, es.ErrDocNotFound) {
			return domuser.User{}, domain.ErrUserNotFound
		}
		return domuser.User{}, fmt.Errorf("get user %s: %w", id, err)
	}

	var d doc
	if err := json.Unmarshal(raw, &d); err != nil {
		return domuser.User{}, fmt.Errorf("unmarshal user %s: %w", id, err)
	}
	return fromDoc(id, d), nil
}
