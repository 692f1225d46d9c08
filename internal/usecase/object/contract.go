package object

import (
	"context"

	domobj "github.com/kailas-cloud/vecdesk/internal/domain/object"
	"github.com/kailas-cloud/vecdesk/internal/domain/page"
	"github.com/kailas-cloud/vecdesk/internal/query"
)

// Repository defines the storage contract for objects.
type Repository interface {
	Page(ctx context.Context, class string, fields []query.Field, sort *page.Sort, pg page.Page) ([]domobj.Row, error)
	Get(ctx context.Context, id string) (domobj.Properties, bool, error)
	Create(ctx context.Context, class string, props domobj.Properties) (string, error)
	Update(ctx context.Context, class, id string, props domobj.Properties) error
	Delete(ctx context.Context, id string) error
}
