package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docsearch/internal/domain"
	domart "github.com/kailas-cloud/docsearch/internal/domain/article"
	domsearch "github.com/kailas-cloud/docsearch/internal/domain/search"
	domuser "github.com/kailas-cloud/docsearch/internal/domain/user"
	documentuc "github.com/kailas-cloud/docsearch/internal/usecase/document"
	healthuc "github.com/kailas-cloud/docsearch/internal/usecase/health"
)

type fakeArticleRepo struct {
	docs   map[string]domart.Article
	nextID string

	searchParams *domsearch.Params
	searchResult []domart.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{docs: map[string]domart.Article{}, nextID: "a-1"}
}

func (f *fakeArticleRepo) Create(_ context.Context, a *domart.Article) (string, error) {
	id := f.nextID
	stored := *a
	stored.ID = id
	f.docs[id] = stored
	return id, nil
}

func (f *fakeArticleRepo) Get(_ context.Context, id string) (domart.Article, error) {
	a, ok := f.docs[id]
	if !ok {
		return domart.Article{}, domain.ErrArticleNotFound
	}
	return a, nil
}

func (f *fakeArticleRepo) Update(_ context.Context, a *domart.Article) error {
	f.docs[a.ID] = *a
	return nil
}

func (f *fakeArticleRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return domain.ErrArticleNotFound
	}
	delete(f.docs, id)
	return nil
}

func (f *fakeArticleRepo) Search(_ context.Context, p domsearch.Params) ([]domart.Article, error) {
	f.searchParams = &p
	return f.searchResult, nil
}

type fakeUserRepo struct {
	docs   map[string]domuser.User
	nextID string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{docs: map[string]domuser.User{}, nextID: "u-1"}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domuser.User) (string, error) {
	id := f.nextID
	stored := *u
	stored.ID = id
	f.docs[id] = stored
	return id, nil
}

func (f *fakeUserRepo) Get(_ context.Context, id string) (domuser.User, error) {
	u, ok := f.docs[id]
	if !ok {
		return domuser.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

type unhealthyChecker struct{}

func (unhealthyChecker) ClusterHealthy(context.Context) error {
	return domain.ErrBackendUnavailable
}

type healthyChecker struct{}

func (healthyChecker) ClusterHealthy(context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *fakeArticleRepo, *fakeUserRepo) {
	t.Helper()

	articles := newFakeArticleRepo()
	users := newFakeUserRepo()
	documents := documentuc.New(articles, users, zap.NewNop())
	health := healthuc.New(healthyChecker{})

	r := chirouter.NewRouter()
	NewServer(documents, health, zap.NewNop()).Routes(r)
	return r, articles, users
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestCreateArticle(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodPost, "/documents/articles", map[string]any{
		"title":    "Getting started with Elasticsearch",
		"content":  "Elasticsearch is a distributed search engine.",
		"author":   "jane",
		"category": "technology",
		"tags":     []string{"python", "elasticsearch"},
		"views":    0,
		"rating":   4.5,
	})

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got articleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "technology", got.Category)
	assert.Contains(t, got.Tags, "python")
	assert.Contains(t, got.Tags, "elasticsearch")
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestCreateArticle_MissingFields(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodPost, "/documents/articles", map[string]any{
		"title": "only a title",
	})

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Contains(t, got.Detail, "Validation failed")
}

func TestCreateArticle_MalformedBody(t *testing.T) {
	h, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/documents/articles", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetArticle_NotFound(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodGet, "/documents/articles/missing", nil)

	require.Equal(t, http.StatusNotFound, rr.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Article not found", got.Detail)
}

func TestUpdateArticle_Partial(t *testing.T) {
	h, _, _ := newTestRouter(t)

	created := doJSON(t, h, http.MethodPost, "/documents/articles", map[string]any{
		"title":    "before",
		"content":  "body",
		"author":   "jane",
		"category": "technology",
	})
	require.Equal(t, http.StatusOK, created.Code)

	var art articleResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &art))

	rr := doJSON(t, h, http.MethodPut, "/documents/articles/"+art.ID, map[string]any{
		"title": "after",
		"views": 7,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got articleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "after", got.Title)
	assert.Equal(t, 7, got.Views)
	assert.Equal(t, "body", got.Content, "absent fields keep stored values")
	assert.Equal(t, art.CreatedAt, got.CreatedAt)
}

func TestDeleteArticle_Idempotent(t *testing.T) {
	h, _, _ := newTestRouter(t)

	created := doJSON(t, h, http.MethodPost, "/documents/articles", map[string]any{
		"title":    "t",
		"content":  "c",
		"author":   "a",
		"category": "technology",
	})
	require.Equal(t, http.StatusOK, created.Code)

	var art articleResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &art))

	first := doJSON(t, h, http.MethodDelete, "/documents/articles/"+art.ID, nil)
	require.Equal(t, http.StatusOK, first.Code)

	var msg messageResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &msg))
	assert.Equal(t, "Article deleted successfully", msg.Message)

	second := doJSON(t, h, http.MethodDelete, "/documents/articles/"+art.ID, nil)
	assert.Equal(t, http.StatusNotFound, second.Code)

	third := doJSON(t, h, http.MethodDelete, "/documents/articles/"+art.ID, nil)
	assert.Equal(t, http.StatusNotFound, third.Code, "repeat deletes stay 404")
}

func TestSearchArticles_PassesParams(t *testing.T) {
	h, articles, _ := newTestRouter(t)
	articles.searchResult = []domart.Article{
		{ID: "a-9", Title: "hit", Tags: []string{"go"}},
	}

	rr := doJSON(t, h, http.MethodGet,
		"/documents/articles?query=search&category=technology&tags=go&tags[]=es&limit=5&offset=10", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.NotNil(t, articles.searchParams)
	p := *articles.searchParams
	assert.Equal(t, "search", p.Query())
	assert.Equal(t, "technology", p.Category())
	assert.ElementsMatch(t, []string{"go", "es"}, p.Tags())
	assert.Equal(t, 5, p.Limit())
	assert.Equal(t, 10, p.Offset())

	var got []articleResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a-9", got[0].ID)
}

func TestSearchArticles_LimitOutOfRange(t *testing.T) {
	h, _, _ := newTestRouter(t)

	for _, path := range []string{
		"/documents/articles?limit=101",
		"/documents/articles?limit=-1",
		"/documents/articles?offset=-1",
		"/documents/articles?limit=abc",
	} {
		rr := doJSON(t, h, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}
}

func TestCreateUser_DefaultsIsActive(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodPost, "/documents/users", map[string]any{
		"username":  "jdoe",
		"email":     "jdoe@example.com",
		"full_name": "Jane Doe",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var got userResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "true", got.IsActive)
}

func TestCreateUser_InvalidEmail(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodPost, "/documents/users", map[string]any{
		"username":  "jdoe",
		"email":     "not-an-email",
		"full_name": "Jane Doe",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestGetUser_NotFound(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodGet, "/documents/users/missing", nil)

	require.Equal(t, http.StatusNotFound, rr.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "User not found", got.Detail)
}

func TestHealthCheck(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodGet, "/health/", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got["status"])
	assert.Equal(t, "connected", got["elasticsearch"])
}

func TestHealthCheck_BackendDown(t *testing.T) {
	articles := newFakeArticleRepo()
	users := newFakeUserRepo()
	documents := documentuc.New(articles, users, zap.NewNop())

	r := chirouter.NewRouter()
	NewServer(documents, healthuc.New(unhealthyChecker{}), zap.NewNop()).Routes(r)

	rr := doJSON(t, r, http.MethodGet, "/health/", nil)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var got errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "Elasticsearch is not healthy", got.Detail)

	es := doJSON(t, r, http.MethodGet, "/health/elasticsearch", nil)
	require.Equal(t, http.StatusOK, es.Code, "backend status endpoint always answers 200")

	var esBody map[string]string
	require.NoError(t, json.Unmarshal(es.Body.Bytes(), &esBody))
	assert.Equal(t, "unhealthy", esBody["elasticsearch"])
}

func TestElasticsearchHealth(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodGet, "/health/elasticsearch", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "healthy", got["elasticsearch"])
}

func TestRoot(t *testing.T) {
	h, _, _ := newTestRouter(t)

	rr := doJSON(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var got messageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got.Message)
}
