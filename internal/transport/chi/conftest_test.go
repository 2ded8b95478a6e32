package chi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	blevestore "github.com/kailas-cloud/blogdex/internal/db/bleve"
	blogrepo "github.com/kailas-cloud/blogdex/internal/repository/blog"
	bloguc "github.com/kailas-cloud/blogdex/internal/usecase/blog"
	healthuc "github.com/kailas-cloud/blogdex/internal/usecase/health"
)

type testAPI struct {
	store   *blevestore.Store
	handler http.Handler
}

func newTestAPI(t *testing.T, strict bool) *testAPI {
	t.Helper()
	store := blevestore.NewMemStore()
	t.Cleanup(store.Close)

	repo, err := blogrepo.New(store, blogrepo.Config{})
	if err != nil {
		t.Fatalf("blogrepo.New: %v", err)
	}
	if err := repo.EnsureIndex(context.Background()); err != nil {
		t.Fatalf("EnsureIndex: %v", err)
	}

	blogs := bloguc.New(repo).WithStrictCreate(strict)
	health := healthuc.New(store, store, blogrepo.DefaultIndexName)
	server := NewServer(blogs, health, zap.NewNop())

	return &testAPI{store: store, handler: NewRouter(server, zap.NewNop())}
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode %T: %v (body %q)", v, err, rec.Body.String())
	}
	return v
}

const blogOne = `{
	"id": 1,
	"author": "jane",
	"name": "AI rising",
	"content": "Machines learn fast",
	"publishDate": "2023-03-01",
	"topics": ["TECHNOLOGY"],
	"celebrityFullNames": ["Elon Musk"]
}`

const blogTwo = `{
	"id": 2,
	"author": "jane",
	"name": "unrelated",
	"content": "AI rising mentioned",
	"publishDate": "2023-06-01",
	"celebrityFullNames": ["Elon Musk"],
	"active": true
}`
