package article

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kailas-cloud/docsearch/internal/domain"
	domart "github.com/kailas-cloud/docsearch/internal/domain/article"
	domsearch "github.com/kailas-cloud/docsearch/internal/domain/search"
	"github.com/kailas-cloud/docsearch/internal/es"
)

// --- Mock store ---

type mockStore struct {
	indexedDoc   []byte
	indexedIndex string
	indexID      string
	indexErr     error

	updatedID  string
	updatedDoc []byte
	updateErr  error

	getResult []byte
	getErr    error

	deleteErr error

	searchQuery  *es.Query
	searchResult *es.SearchResult
	searchErr    error

	ensuredMapping []byte
	ensureErr      error
}

func (m *mockStore) Index(_ context.Context, index string, doc []byte) (string, error) {
	m.indexedIndex = index
	m.indexedDoc = doc
	return m.indexID, m.indexErr
}

func (m *mockStore) Update(_ context.Context, _ string, id string, doc []byte) error {
	m.updatedID = id
	m.updatedDoc = doc
	return m.updateErr
}

func (m *mockStore) Get(_ context.Context, _, _ string) ([]byte, error) {
	return m.getResult, m.getErr
}

func (m *mockStore) Delete(_ context.Context, _, _ string) error {
	return m.deleteErr
}

func (m *mockStore) Search(_ context.Context, _ string, q *es.Query) (*es.SearchResult, error) {
	m.searchQuery = q
	if m.searchResult == nil {
		return &es.SearchResult{}, m.searchErr
	}
	return m.searchResult, m.searchErr
}

func (m *mockStore) EnsureIndex(_ context.Context, _ string, mapping []byte) error {
	m.ensuredMapping = mapping
	return m.ensureErr
}

func testArticle() domart.Article {
	return domart.Article{
		Title:     "Test Article",
		Content:   "body",
		Author:    "alice",
		Category:  "technology",
		Tags:      []string{"python", "elasticsearch"},
		Views:     100,
		Rating:    4.5,
		CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

// --- Tests ---

func TestCreate_WritesPrefixedIndex(t *testing.T) {
	store := &mockStore{indexID: "a-1"}
	repo := New(store, "app")
	a := testArticle()

	id, err := repo.Create(context.Background(), &a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "a-1" {
		t.Errorf("id: got %q, want %q", id, "a-1")
	}
	if store.indexedIndex != "app_articles" {
		t.Errorf("index: got %q, want %q", store.indexedIndex, "app_articles")
	}

	var d doc
	if err := json.Unmarshal(store.indexedDoc, &d); err != nil {
		t.Fatalf("unmarshal indexed doc: %v", err)
	}
	if d.Title != "Test Article" || d.Category != "technology" {
		t.Errorf("unexpected doc: %+v", d)
	}
	if !reflect.DeepEqual(d.Tags, []string{"python", "elasticsearch"}) {
		t.Errorf("tags: got %v", d.Tags)
	}
}

func TestCreate_NilTagsSerializeAsEmptyList(t *testing.T) {
	store := &mockStore{indexID: "a-1"}
	repo := New(store, "app")
	a := domart.Article{Title: "t"}

	if _, err := repo.Create(context.Background(), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(store.indexedDoc, &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["tags"]) != "[]" {
		t.Errorf("tags: got %s, want []", raw["tags"])
	}
}

func TestGet_MapsNotFound(t *testing.T) {
	store := &mockStore{getErr: es.ErrDocNotFound}
	repo := New(store, "app")

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestGet_RoundTrip(t *testing.T) {
	a := testArticle()
	raw, err := json.Marshal(toDoc(&a))
	if err != nil {
		t.Fatal(err)
	}

	store := &mockStore{getResult: raw}
	repo := New(store, "app")

	got, err := repo.Get(context.Background(), "a-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a.ID = "a-1"
	if !reflect.DeepEqual(got, a) {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", got, a)
	}
}

func TestDelete_MapsNotFound(t *testing.T) {
	store := &mockStore{deleteErr: es.ErrDocNotFound}
	repo := New(store, "app")

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrArticleNotFound) {
		t.Fatalf("expected ErrArticleNotFound, got %v", err)
	}
}

func TestSearch_BuildsQuery(t *testing.T) {
	store := &mockStore{searchResult: &es.SearchResult{}}
	repo := New(store, "app")

	p, err := domsearch.New("golang", "technology", []string{"go", "search"}, 5, 15)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Search(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := store.searchQuery
	if q.Text != "golang" {
		t.Errorf("text: got %q", q.Text)
	}
	if !reflect.DeepEqual(q.Fields, []string{"title^2", "content"}) {
		t.Errorf("fields: got %v", q.Fields)
	}
	if !reflect.DeepEqual(q.Terms["category"], []string{"technology"}) {
		t.Errorf("category terms: got %v", q.Terms["category"])
	}
	if !reflect.DeepEqual(q.Terms["tags"], []string{"go", "search"}) {
		t.Errorf("tags terms: got %v", q.Terms["tags"])
	}
	if q.From != 15 || q.Size != 5 {
		t.Errorf("pagination: from=%d size=%d", q.From, q.Size)
	}
}

func TestSearch_NoFiltersLeavesTermsNil(t *testing.T) {
	store := &mockStore{searchResult: &es.SearchResult{}}
	repo := New(store, "app")

	p, err := domsearch.New("", "", nil, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := repo.Search(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.searchQuery.Terms != nil {
		t.Errorf("terms: got %v, want nil", store.searchQuery.Terms)
	}
	if store.searchQuery.Size != domsearch.DefaultLimit {
		t.Errorf("size: got %d, want %d", store.searchQuery.Size, domsearch.DefaultLimit)
	}
}

func TestSearch_ParsesHitsInOrder(t *testing.T) {
	first := testArticle()
	second := testArticle()
	second.Title = "Second"

	firstRaw, _ := json.Marshal(toDoc(&first))
	secondRaw, _ := json.Marshal(toDoc(&second))

	store := &mockStore{searchResult: &es.SearchResult{
		Total: 2,
		Hits: []es.Hit{
			{ID: "a-1", Score: 3.2, Source: firstRaw},
			{ID: "a-2", Score: 1.1, Source: secondRaw},
		},
	}}
	repo := New(store, "app")

	p, err := domsearch.New("test", "", nil, 10, 0)
	if err != nil {
		t.Fatal(err)
	}

	got, err := repo.Search(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a-1" || got[1].ID != "a-2" {
		t.Errorf("unexpected results: %+v", got)
	}
	if got[1].Title != "Second" {
		t.Errorf("second hit title: got %q", got[1].Title)
	}
}
