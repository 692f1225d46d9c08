package collection

import (
	"context"

	domcol "github.com/kailas-cloud/vecdesk/internal/domain/collection"
)

// Repository defines the storage contract for collections.
type Repository interface {
	List(ctx context.Context) ([]domcol.Collection, error)
	Get(ctx context.Context, class string) (domcol.Collection, error)
	Count(ctx context.Context, class string) (int, error)
	Create(ctx context.Context, s domcol.Schema) error
	Delete(ctx context.Context, class string) error
}
