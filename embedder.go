package vecdesk

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	"github.com/kailas-cloud/vecdesk/internal/metrics"
	"github.com/kailas-cloud/vecdesk/internal/transport/openai"
)

// Embedder turns a search query into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// OpenAIEmbedderConfig configures NewOpenAIEmbedder.
type OpenAIEmbedderConfig struct {
	APIKey     string
	BaseURL    string // empty = api.openai.com
	Model      string
	Dimensions int
	Provider   string // metrics label; default "openai"
	// Instruction is prepended to every query before embedding
	// (instruction-tuned models such as e5 or bge).
	Instruction string

	Logger *zap.Logger
	// Registerer, when set, receives the embedding request metrics.
	Registerer prometheus.Registerer
}

// NewOpenAIEmbedder returns an Embedder backed by an OpenAI-compatible API.
func NewOpenAIEmbedder(cfg OpenAIEmbedderConfig) Embedder {
	if cfg.Registerer != nil {
		metrics.RegisterEmbeddingMetrics(cfg.Registerer)
	}
	var inner domain.Embedder = openai.NewEmbedder(&openai.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Model:      cfg.Model,
		Dimensions: cfg.Dimensions,
		Provider:   cfg.Provider,
		Logger:     cfg.Logger,
	})
	if cfg.Instruction != "" {
		inner = domain.NewInstructionEmbedder(inner, cfg.Instruction)
	}
	return &publicEmbedder{inner: inner}
}

// publicEmbedder exposes an internal domain.Embedder publicly.
type publicEmbedder struct {
	inner domain.Embedder
}

func (p *publicEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	r, err := p.inner.Embed(ctx, text)
	if err != nil {
		return EmbeddingResult{}, err //nolint:wrapcheck // already wrapped by the provider
	}
	return EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}
