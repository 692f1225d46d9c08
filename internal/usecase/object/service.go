package object

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	domobj "github.com/kailas-cloud/vecdesk/internal/domain/object"
	"github.com/kailas-cloud/vecdesk/internal/domain/page"
	"github.com/kailas-cloud/vecdesk/internal/query"
)

// SortInput is an optional caller-supplied ordering.
type SortInput struct {
	Property string
	Order    string
}

// Service handles object paging and CRUD.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// New creates an object service.
func New(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Page returns one window of rows projected onto properties.
// No properties means identity only.
func (s *Service) Page(
	ctx context.Context, class string, properties []string, sort *SortInput, limit, offset int,
) ([]domobj.Row, error) {
	pg, err := page.New(limit, offset)
	if err != nil {
		return nil, err
	}
	var order *page.Sort
	if sort != nil && sort.Property != "" {
		st, err := page.NewSort(sort.Property, page.Order(sort.Order))
		if err != nil {
			return nil, err
		}
		order = &st
	}
	rows, err := s.repo.Page(ctx, class, query.NamedFields(properties), order, pg)
	if err != nil {
		return nil, fmt.Errorf("get page: %w", err)
	}
	return rows, nil
}

// Get returns one object's properties; found is false when it does not exist.
func (s *Service) Get(ctx context.Context, id string) (domobj.Properties, bool, error) {
	props, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("get object: %w", err)
	}
	return props, found, nil
}

// Create stores a new object and returns its identity.
func (s *Service) Create(ctx context.Context, class string, props domobj.Properties) (string, error) {
	id, err := s.repo.Create(ctx, class, props)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	return id, nil
}

// Update merges props into an existing object.
func (s *Service) Update(ctx context.Context, class, id string, props domobj.Properties) error {
	if err := s.repo.Update(ctx, class, id, props); err != nil {
		return fmt.Errorf("update object: %w", err)
	}
	return nil
}

// DeleteMany deletes ids one by one in order and stops at the first failure.
// Earlier deletions are not rolled back; the returned *domain.DeleteError
// lists them.
func (s *Service) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := s.repo.Delete(ctx, id); err != nil {
			s.logger.Warn("Bulk delete stopped",
				zap.String("id", id),
				zap.Int("deleted", len(deleted)),
				zap.Int("remaining", len(ids)-len(deleted)),
				zap.Error(err),
			)
			return deleted, &domain.DeleteError{ID: id, Deleted: deleted, Err: err}
		}
		deleted = append(deleted, id)
	}
	return deleted, nil
}
