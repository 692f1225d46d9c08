package health

import (
	"context"

	"github.com/kailas-cloud/vecdesk/internal/domain"
)

// StorePinger checks store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker is the query vectorizer; a probe embedding proves it works.
type EmbeddingChecker interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
