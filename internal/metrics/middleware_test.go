package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter(t *testing.T) (*chi.Mux, *HTTPMetrics) {
	t.Helper()
	m := NewHTTPMetrics(prometheus.NewRegistry(), "test")
	r := chi.NewRouter()
	r.Use(m.Middleware())
	return r, m
}

func TestMiddleware_RecordsDurationAndCount(t *testing.T) {
	r, m := newRouter(t)
	r.Get("/v1/schema/{class}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	req := httptest.NewRequest("GET", "/v1/schema/Article", http.NoBody)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if v := testutil.ToFloat64(m.Requests().WithLabelValues("GET", "/v1/schema/{class}", "200")); v != 1 {
		t.Errorf("expected 1 request on route pattern, got %f", v)
	}
	if testutil.CollectAndCount(m.duration) == 0 {
		t.Error("expected duration observations")
	}
}

func TestMiddleware_DifferentStatusCodes(t *testing.T) {
	r, m := newRouter(t)
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/notfound", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
	r.Get("/error", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		path           string
		expectedStatus string
	}{
		{"/ok", "200"},
		{"/notfound", "404"},
		{"/error", "500"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tc.path, http.NoBody))
			if v := testutil.ToFloat64(m.Requests().WithLabelValues("GET", tc.path, tc.expectedStatus)); v < 1 {
				t.Errorf("expected requests_total for %s with status %s >= 1, got %f", tc.path, tc.expectedStatus, v)
			}
		})
	}
}

func TestMiddleware_NilRegistry(t *testing.T) {
	m := NewHTTPMetrics(nil, "test")
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("DELETE", "/x", http.NoBody))
	if v := testutil.ToFloat64(m.Requests().WithLabelValues("DELETE", "unknown", "204")); v != 1 {
		t.Errorf("expected unrouted request under unknown, got %f", v)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", "unknown"},
		{"/v1/objects/{id}", "/v1/objects/{id}"},
	}
	for _, tc := range tests {
		if got := normalizePath(tc.input); got != tc.expected {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRegisterEmbeddingMetrics_Idempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterEmbeddingMetrics(reg)
	RegisterEmbeddingMetrics(reg)

	EmbeddingRequestsTotal.WithLabelValues("test", "m", "success").Inc()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Error("expected registered embedding metrics")
	}
}
