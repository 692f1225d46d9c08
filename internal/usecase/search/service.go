package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	domcol "github.com/kailas-cloud/vecdesk/internal/domain/collection"
	domobj "github.com/kailas-cloud/vecdesk/internal/domain/object"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/mode"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/request"
	"github.com/kailas-cloud/vecdesk/internal/query"
)

// Service handles keyword, vector and hybrid search.
type Service struct {
	repo   Repository
	colls  CollectionReader
	embed  Embedder
	logger *zap.Logger
}

// New creates a search service. embed may be nil: vector search then relies
// on the store's own vectorizer (nearText).
func New(repo Repository, colls CollectionReader, embed Embedder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, colls: colls, embed: embed, logger: logger}
}

// Search runs req and returns rows in the store's ranking order.
// Every row carries all properties of the collection, whatever the
// property filter of req.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]domobj.Row, error) {
	col, err := s.colls.Get(ctx, req.Collection())
	if err != nil {
		return nil, fmt.Errorf("get collection: %w", err)
	}

	if err := validatePropertiesAgainstSchema(req.Properties(), col); err != nil {
		return nil, err
	}

	var vector []float32
	if req.Mode() == mode.Vector && s.embed != nil {
		emb, err := s.embed.Embed(ctx, req.Query())
		if err != nil {
			return nil, fmt.Errorf("vectorize query: %w", err)
		}
		s.logger.Debug("Query vectorized",
			zap.String("collection", req.Collection()),
			zap.Int("dimensions", len(emb.Embedding)),
			zap.Int("tokens", emb.TotalTokens),
		)
		vector = emb.Embedding
	}

	rows, err := s.repo.Search(ctx, req, query.FieldsFor(col.Properties()), vector)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", req.Mode(), err)
	}
	return rows, nil
}

// validatePropertiesAgainstSchema ensures every filter property exists.
func validatePropertiesAgainstSchema(props []string, col domcol.Collection) error {
	for _, p := range props {
		if _, ok := col.PropertyByName(p); !ok {
			return domain.NewValidation("properties", "unknown property %q in %s", p, col.Name())
		}
	}
	return nil
}
