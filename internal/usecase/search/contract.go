package search

import (
	"context"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	domcol "github.com/kailas-cloud/vecdesk/internal/domain/collection"
	domobj "github.com/kailas-cloud/vecdesk/internal/domain/object"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/request"
	"github.com/kailas-cloud/vecdesk/internal/query"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	Search(ctx context.Context, req *request.Request, fields []query.Field, vector []float32) ([]domobj.Row, error)
}

// CollectionReader resolves the full property list of the target collection.
type CollectionReader interface {
	Get(ctx context.Context, name string) (domcol.Collection, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
