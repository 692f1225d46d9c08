// Package storetest is an in-memory stand-in for the vector store's REST and
// GraphQL surface, for tests and local runs of the CLI.
package storetest

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk/internal/metrics"
	"github.com/kailas-cloud/vecdesk/internal/normalize"
)

// Failure makes matching requests fail with Status and Body.
// Empty Method or Path match anything; Query matches a substring of the
// GraphQL document. Times <= 0 means every matching request.
type Failure struct {
	Method string
	Path   string
	Query  string
	Status int
	Body   string
	Times  int
}

type storedObject struct {
	id         string
	class      string
	properties map[string]any
	created    int64
}

// Server is the fake store. It implements http.Handler.
type Server struct {
	mu       sync.Mutex
	classes  []normalize.ClassInfo
	objects  map[string]*storedObject
	sequence int64
	failures []*Failure
	queries  []string

	apiKeys  []string
	logger   *zap.Logger
	registry *prometheus.Registry
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithAPIKeys requires one of keys as a bearer token.
func WithAPIKeys(keys ...string) Option {
	return func(s *Server) { s.apiKeys = keys }
}

// WithLogger sets the request logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates an empty store.
func New(opts ...Option) *Server {
	s := &Server{
		objects:  make(map[string]*storedObject),
		logger:   zap.NewNop(),
		registry: prometheus.NewRegistry(),
	}
	for _, o := range opts {
		o(s)
	}

	m := metrics.NewHTTPMetrics(s.registry, "storetest")
	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Use(BearerAuthMiddleware(s.apiKeys))
	r.Use(s.failureMiddleware)

	r.Get("/v1/.well-known/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/v1/schema", s.listClasses)
	r.Post("/v1/schema", s.createClass)
	r.Get("/v1/schema/{class}", s.getClass)
	r.Delete("/v1/schema/{class}", s.deleteClass)

	r.Post("/v1/objects", s.createObject)
	r.Get("/v1/objects/{id}", s.getObject)
	r.Patch("/v1/objects/{id}", s.patchObject)
	r.Delete("/v1/objects/{id}", s.deleteObject)

	r.Post("/v1/graphql", s.graphql)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Fail registers a failure rule.
func (s *Server) Fail(f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, &f)
}

// Requests returns the number of requests served, failed ones included.
func (s *Server) Requests() int {
	families, err := s.registry.Gather()
	if err != nil {
		return 0
	}
	var total float64
	for _, f := range families {
		if !strings.HasSuffix(f.GetName(), "http_requests_total") {
			continue
		}
		for _, m := range f.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return int(total)
}

// Queries returns every GraphQL document received, in order.
func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// AddClass registers a class directly.
func (s *Server) AddClass(ci normalize.ClassInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classes = append(s.classes, ci)
}

// AddObject stores an object directly and returns its id.
func (s *Server) AddObject(class string, props map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(class, props)
}

// ObjectCount returns the number of objects stored in class.
func (s *Server) ObjectCount(class string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objectsOfLocked(class))
}

func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var doc string
		if r.Method == http.MethodPost && r.URL.Path == "/v1/graphql" {
			doc = peekQuery(r)
		}
		if f := s.matchFailure(r, doc); f != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.Status)
			_, _ = w.Write([]byte(f.Body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) matchFailure(r *http.Request, doc string) *Failure {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.failures {
		if f.Method != "" && f.Method != r.Method {
			continue
		}
		if f.Path != "" && f.Path != r.URL.Path {
			continue
		}
		if f.Query != "" && !strings.Contains(doc, f.Query) {
			continue
		}
		out := *f
		if f.Times > 0 {
			f.Times--
			if f.Times == 0 {
				s.failures = append(s.failures[:i], s.failures[i+1:]...)
			}
		}
		return &out
	}
	return nil
}

type storeError struct {
	Message string `json:"message"`
}

type errorBody struct {
	Error []storeError `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers in the store's {"error": [{"message": ...}]} shape.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: []storeError{{Message: message}}})
}
