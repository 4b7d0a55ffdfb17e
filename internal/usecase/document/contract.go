package document

import (
	"context"

	domart "github.com/kailas-cloud/docsearch/internal/domain/article"
	domsearch "github.com/kailas-cloud/docsearch/internal/domain/search"
	domuser "github.com/kailas-cloud/docsearch/internal/domain/user"
)

// ArticleRepository defines the storage contract for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domart.Article) (id string, err error)
	Get(ctx context.Context, id string) (domart.Article, error)
	Update(ctx context.Context, a *domart.Article) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, p domsearch.Params) ([]domart.Article, error)
}

// UserRepository defines the storage contract for users.
type UserRepository interface {
	Create(ctx context.Context, u *domuser.User) (id string, err error)
	Get(ctx context.Context, id string) (domuser.User, error)
}
