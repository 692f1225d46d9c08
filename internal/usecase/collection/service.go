package collection

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domcol "github.com/kailas-cloud/vecdesk/internal/domain/collection"
)

// DefaultCountConcurrency bounds parallel count queries during a listing.
const DefaultCountConcurrency = 4

// Service handles collection listing and schema changes.
type Service struct {
	repo        Repository
	concurrency int
	logger      *zap.Logger
}

// New creates a collection service.
func New(repo Repository, concurrency int, logger *zap.Logger) *Service {
	if concurrency <= 0 {
		concurrency = DefaultCountConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, concurrency: concurrency, logger: logger}
}

// List returns every collection with its object count.
// A failed count is logged and reported as 0; only the schema fetch can
// fail the listing.
func (s *Service) List(ctx context.Context) ([]domcol.Collection, error) {
	cols, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range cols {
		i := i
		g.Go(func() error {
			n, err := s.repo.Count(gctx, cols[i].Name())
			if err != nil {
				s.logger.Warn("Count failed, reporting 0",
					zap.String("collection", cols[i].Name()),
					zap.Error(err),
				)
				n = 0
			}
			cols[i] = cols[i].WithCount(n)
			return nil
		})
	}
	_ = g.Wait()

	return cols, nil
}

// Get returns one collection without its count.
func (s *Service) Get(ctx context.Context, name string) (domcol.Collection, error) {
	col, err := s.repo.Get(ctx, name)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

// Create validates the schema and creates the collection.
func (s *Service) Create(ctx context.Context, name, description string, props []domcol.PropertyInput) error {
	schema, err := domcol.NewSchema(name, description, props)
	if err != nil {
		return err
	}
	if err := s.repo.Create(ctx, schema); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

// Delete removes a collection.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}
