package blog

import (
	"context"
	"testing"

	"github.com/kailas-cloud/blogdex/internal/db"
	"github.com/kailas-cloud/blogdex/internal/domain/blog"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	putFn         func(ctx context.Context, index, id string, source []byte) error
	putNXFn       func(ctx context.Context, index, id string, source []byte) error
	getFn         func(ctx context.Context, index, id string) ([]byte, error)
	deleteFn      func(ctx context.Context, index, id string) error
	existsFn      func(ctx context.Context, index, id string) (bool, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	searchFn      func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	listFn        func(ctx context.Context, index string, offset, limit int) (*db.SearchResult, error)
}

func (m *mockStore) Put(ctx context.Context, index, id string, source []byte) error {
	if m.putFn != nil {
		return m.putFn(ctx, index, id, source)
	}
	return nil
}

func (m *mockStore) PutNX(ctx context.Context, index, id string, source []byte) error {
	if m.putNXFn != nil {
		return m.putNXFn(ctx, index, id, source)
	}
	return nil
}

func (m *mockStore) Get(ctx context.Context, index, id string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, index, id)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Delete(ctx context.Context, index, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, index, id)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, index, id string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, index, id)
	}
	return false, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) List(ctx context.Context, index string, offset, limit int) (*db.SearchResult, error) {
	if m.listFn != nil {
		return m.listFn(ctx, index, offset, limit)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T, s store, cfg Config) *Repo {
	t.Helper()
	r, err := New(s, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func testDoc(id int64) blog.Document {
	return blog.Document{
		ID:                 id,
		Author:             "jane",
		Name:               "AI rising",
		Content:            "Machines learn.",
		PublishDate:        blog.MustParseDate("2023-05-01"),
		LastUpdateDate:     blog.MustParseDate("2023-05-02"),
		Topics:             []blog.Topic{blog.TopicTechnology},
		CelebrityFullNames: []string{"Elon Musk"},
		Active:             true,
	}
}

func mustEncode(t *testing.T, d blog.Document) []byte {
	t.Helper()
	data, err := encodeDocument(d)
	if err != nil {
		t.Fatalf("encodeDocument: %v", err)
	}
	return data
}
