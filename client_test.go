package blogdex

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleBlog(id int64) Blog {
	return Blog{
		ID:                 id,
		Author:             "jane",
		Name:               "AI rising",
		Content:            "Machines learn quickly",
		PublishDate:        day(2023, time.May, 1),
		Topics:             []Topic{TopicTechnology},
		CelebrityFullNames: []string{"Elon Musk"},
		Active:             true,
	}
}

func ids(blogs []Blog) []int64 {
	out := make([]int64, len(blogs))
	for i, b := range blogs {
		out[i] = b.ID
	}
	return out
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := &clientConfig{driver: "unknown"}
	if _, err := createStore(cfg); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestNew_InvalidIndexName(t *testing.T) {
	_, err := New(context.Background(), WithIndex("bad name", ""))
	if err == nil {
		t.Fatal("expected error for invalid index name")
	}
}

func TestClient_Lifecycle(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	in := sampleBlog(1)
	in.LastUpdateDate = day(2030, time.January, 1)
	saved, err := c.Save(ctx, in)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !saved.LastUpdateDate.Equal(in.PublishDate) {
		t.Errorf("lastUpdateDate = %v, want publishDate %v", saved.LastUpdateDate, in.PublishDate)
	}

	got, err := c.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "AI rising" || !got.PublishDate.Equal(in.PublishDate) {
		t.Errorf("unexpected blog: %+v", got)
	}
	if !slices.Equal(got.Topics, []Topic{TopicTechnology}) {
		t.Errorf("topics = %v", got.Topics)
	}

	upd := got
	upd.Name = "AI everywhere"
	upd.Author = "someone else"
	updated, err := c.Update(ctx, 1, upd)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "AI everywhere" || updated.Author != "jane" {
		t.Errorf("update policy not applied: %+v", updated)
	}

	all, err := c.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("All returned %d blogs, want 1", len(all))
	}

	if err := c.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: expected ErrNotFound, got %v", err)
	}
	if err := c.Delete(ctx, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: expected ErrNotFound, got %v", err)
	}
}

func TestClient_SaveValidation(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Save(context.Background(), Blog{ID: 1})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Violations) < 3 {
		t.Errorf("expected every blank field reported, got %v", err)
	}
}

func TestClient_StrictCreate(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, WithStrictCreate())

	if _, err := c.Save(ctx, sampleBlog(1)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := c.Save(ctx, sampleBlog(1)); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestClient_Search(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	nameHit := sampleBlog(1)
	contentHit := sampleBlog(2)
	contentHit.Name = "Weekly notes"
	contentHit.Content = "AI is rising again"
	noText := sampleBlog(3)
	noText.Name = "Gardening"
	noText.Content = "Tomatoes and peppers"
	inactive := sampleBlog(4)
	inactive.Active = false
	otherYear := sampleBlog(5)
	otherYear.PublishDate = day(2022, time.December, 31)

	for _, b := range []Blog{nameHit, contentHit, noText, inactive, otherYear} {
		if _, err := c.Save(ctx, b); err != nil {
			t.Fatalf("Save %d: %v", b.ID, err)
		}
	}

	hits, err := c.Search().Word("AI rising").Celebrities("Elon Musk").Year(2023).Author("jane").Do(ctx)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(hits); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("hits = %v, want [1 2]", got)
	}

	hits, err = c.Search().Year(2023).Author("jane").Do(ctx)
	if err != nil {
		t.Fatalf("Search without word: %v", err)
	}
	got := ids(hits)
	slices.Sort(got)
	if !slices.Equal(got, []int64{1, 2, 3}) {
		t.Errorf("filter-only hits = %v, want [1 2 3]", got)
	}

	hits, err = c.Search().Word("AI").Year(2023).Author("nobody").Do(ctx)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if hits == nil || len(hits) != 0 {
		t.Errorf("expected empty non-nil hits, got %v", hits)
	}
}

func TestClient_SearchTextMatchOptional(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, WithTextMatchOptional())

	match := sampleBlog(1)
	other := sampleBlog(2)
	other.Name = "Gardening"
	other.Content = "Tomatoes and peppers"
	for _, b := range []Blog{other, match} {
		if _, err := c.Save(ctx, b); err != nil {
			t.Fatalf("Save %d: %v", b.ID, err)
		}
	}

	hits, err := c.Search().Word("rising").Year(2023).Author("jane").Do(ctx)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := ids(hits); !slices.Equal(got, []int64{1, 2}) {
		t.Errorf("hits = %v, want text match first then filter-only match", got)
	}
}

func TestClient_SearchInvalid(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Search().Word("x").Year(0).Do(context.Background())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestClient_Metrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	c := newTestClient(t, WithPrometheus(reg))

	if _, err := c.Get(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.Save(ctx, sampleBlog(1)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	ops := c.obs.metrics.operations
	if v := testutil.ToFloat64(ops.WithLabelValues(opGet, "not_found")); v != 1 {
		t.Errorf("get/not_found = %v, want 1", v)
	}
	if v := testutil.ToFloat64(ops.WithLabelValues(opSave, "ok")); v != 1 {
		t.Errorf("save/ok = %v, want 1", v)
	}

	// A second client on the same registry reuses the collectors.
	c2 := newTestClient(t, WithPrometheus(reg))
	if c2.obs.metrics.operations != ops {
		t.Error("expected collectors to be reused")
	}
}

func TestClient_Handler(t *testing.T) {
	c := newTestClient(t)
	if _, err := c.Save(context.Background(), sampleBlog(7)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	tests := []struct {
		path string
		want int
	}{
		{"/blogs/7", http.StatusOK},
		{"/blogs/8", http.StatusNotFound},
		{"/blogs", http.StatusOK},
		{"/health", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tc.path, err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.want {
				t.Errorf("GET %s = %d, want %d", tc.path, resp.StatusCode, tc.want)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{ErrNotFound, "not_found"},
		{ErrAlreadyExists, "conflict"},
		{ErrValidation, "invalid"},
		{errors.New("boom"), "error"},
	}
	for _, tc := range tests {
		if got := statusOf(tc.err); got != tc.want {
			t.Errorf("statusOf(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
