package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newBlogRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/blogs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "404" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("{}"))
	})
	r.Post("/blogs", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Delete("/blogs/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func serve(h http.Handler, method, path string) {
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, http.NoBody))
}

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	h := newBlogRouter()

	tests := []struct {
		method string
		path   string
		route  string
		code   string
	}{
		{http.MethodGet, "/blogs/7", "/blogs/{id}", "200"},
		{http.MethodGet, "/blogs/404", "/blogs/{id}", "404"},
		{http.MethodPost, "/blogs", "/blogs", "201"},
		{http.MethodDelete, "/blogs/9", "/blogs/{id}", "204"},
		{http.MethodGet, "/nope", RouteUnmatched, "404"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			counter := HTTPRequestsTotal.WithLabelValues(tc.method, tc.route, tc.code)
			before := testutil.ToFloat64(counter)

			serve(h, tc.method, tc.path)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("requests_total{%s,%s,%s} delta = %v, want 1", tc.method, tc.route, tc.code, got)
			}
		})
	}
}

func TestMiddleware_ObservesDurationPerRoute(t *testing.T) {
	h := newBlogRouter()
	serve(h, http.MethodGet, "/blogs/1")
	serve(h, http.MethodGet, "/blogs/2")

	if n := testutil.CollectAndCount(HTTPRequestDuration, "blogdex_http_request_duration_seconds"); n == 0 {
		t.Error("expected duration observations")
	}
	if got := testutil.ToFloat64(HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v after requests completed, want 0", got)
	}
}

func TestMiddleware_InFlightDuringRequest(t *testing.T) {
	var during float64
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Get("/blogs", func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(HTTPRequestsInFlight)
		w.WriteHeader(http.StatusNoContent)
	})

	before := testutil.ToFloat64(HTTPRequestsInFlight)
	serve(r, http.MethodGet, "/blogs")
	if during != before+1 {
		t.Errorf("in flight during request = %v, want %v", during, before+1)
	}
}

func TestRegisterHTTPMetrics_Idempotent(t *testing.T) {
	RegisterHTTPMetrics()
	RegisterHTTPMetrics()

	HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/health", "200").Inc()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "blogdex_http_") {
			found = true
		}
	}
	if !found {
		t.Error("expected blogdex_http_* families on the default registry")
	}
}
