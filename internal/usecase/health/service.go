package health

import (
	"context"

	"go.uber.org/zap"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store works but the vectorizer does not.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used as Report keys.
const (
	ComponentStore     = "store"
	ComponentEmbedding = "embedding"
)

// probeText is embedded to exercise the vectorizer.
const probeText = "health check"

// Report aggregates health check results. Errors holds the failure message
// of every failed component.
type Report struct {
	Status Status
	Checks map[string]CheckResult
	Errors map[string]string
}

// Service coordinates health checks.
type Service struct {
	store     StorePinger
	embedding EmbeddingChecker
	logger    *zap.Logger
}

// New creates a Service. embedding can be nil.
func New(store StorePinger, embedding EmbeddingChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, embedding: embedding, logger: logger}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	r := Report{
		Status: Healthy,
		Checks: make(map[string]CheckResult),
		Errors: make(map[string]string),
	}

	if err := s.store.Ping(ctx); err != nil {
		r.fail(ComponentStore, err)
		r.Status = Unhealthy
		s.logger.Warn("Store health check failed", zap.Error(err))
	} else {
		r.Checks[ComponentStore] = CheckOK
	}

	if s.embedding != nil {
		if _, err := s.embedding.Embed(ctx, probeText); err != nil {
			r.fail(ComponentEmbedding, err)
			if r.Status == Healthy {
				r.Status = Degraded
			}
			s.logger.Warn("Embedding health check failed", zap.Error(err))
		} else {
			r.Checks[ComponentEmbedding] = CheckOK
		}
	}

	return r
}

func (r *Report) fail(component string, err error) {
	r.Checks[component] = CheckError
	r.Errors[component] = err.Error()
}
