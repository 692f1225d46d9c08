package object

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	domobj "github.com/kailas-cloud/vecdesk/internal/domain/object"
	"github.com/kailas-cloud/vecdesk/internal/domain/page"
	"github.com/kailas-cloud/vecdesk/internal/normalize"
	"github.com/kailas-cloud/vecdesk/internal/query"
	"github.com/kailas-cloud/vecdesk/internal/transport/rest"
)

// store is the consumer interface for object operations (ISP).
type store interface {
	Lookup(ctx context.Context, op, path string, dest any) (bool, error)
	Post(ctx context.Context, op, path string, body, dest any) error
	Patch(ctx context.Context, op, path string, body any) error
	Delete(ctx context.Context, op, path string) error
	GraphQL(ctx context.Context, op, document string, dest any) error
}

// Repo implements usecase/object.Repository.
type Repo struct {
	store store
}

// New creates an object repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Page fetches one window of a class.
func (r *Repo) Page(
	ctx context.Context, class string, fields []query.Field, sort *page.Sort, pg page.Page,
) ([]domobj.Row, error) {
	doc, err := query.GetDocument(class, fields, sort, pg)
	if err != nil {
		return nil, err
	}
	var resp normalize.GraphQLResponse
	if err := r.store.GraphQL(ctx, "get_page", doc, &resp); err != nil {
		return nil, fmt.Errorf("get page %s: %w", class, err)
	}
	return normalize.Rows("get_page", class, resp)
}

// Get fetches one object's properties. found is false on 404.
func (r *Repo) Get(ctx context.Context, id string) (domobj.Properties, bool, error) {
	if id == "" {
		return nil, false, domain.NewValidation("id", "must not be empty")
	}
	var env normalize.ObjectEnvelope
	found, err := r.store.Lookup(ctx, "get_object", rest.ObjectPath(id), &env)
	if err != nil {
		return nil, false, fmt.Errorf("get object %s: %w", id, err)
	}
	if !found {
		return nil, false, nil
	}
	return normalize.Properties(env), true, nil
}

// Create stores a new object and returns the assigned identity.
func (r *Repo) Create(ctx context.Context, class string, props domobj.Properties) (string, error) {
	if err := domain.ValidateIdentifier("collection", class); err != nil {
		return "", err
	}
	var created normalize.CreatedObject
	if err := r.store.Post(ctx, "create_object", rest.PathObjects, query.NewObjectPayload(class, props), &created); err != nil {
		return "", fmt.Errorf("create object in %s: %w", class, err)
	}
	if created.ID == "" {
		return "", domain.NewProtocol("create_object", "response carries no id")
	}
	return created.ID, nil
}

// Update merges props into an existing object.
func (r *Repo) Update(ctx context.Context, class, id string, props domobj.Properties) error {
	if err := domain.ValidateIdentifier("collection", class); err != nil {
		return err
	}
	if id == "" {
		return domain.NewValidation("id", "must not be empty")
	}
	if err := r.store.Patch(ctx, "update_object", rest.ObjectPath(id), query.NewObjectPayload(class, props)); err != nil {
		return fmt.Errorf("update object %s: %w", id, err)
	}
	return nil
}

// Delete removes one object.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewValidation("id", "must not be empty")
	}
	if err := r.store.Delete(ctx, "delete_object", rest.ObjectPath(id)); err != nil {
		return fmt.Errorf("delete object %s: %w", id, err)
	}
	return nil
}
