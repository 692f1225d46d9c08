package schema

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	domcol "github.com/kailas-cloud/vecdesk/internal/domain/collection"
	"github.com/kailas-cloud/vecdesk/internal/normalize"
	"github.com/kailas-cloud/vecdesk/internal/query"
	"github.com/kailas-cloud/vecdesk/internal/transport/rest"
)

// store is the consumer interface for schema operations (ISP).
type store interface {
	Get(ctx context.Context, op, path string, dest any) error
	Lookup(ctx context.Context, op, path string, dest any) (bool, error)
	Post(ctx context.Context, op, path string, body, dest any) error
	Delete(ctx context.Context, op, path string) error
	GraphQL(ctx context.Context, op, document string, dest any) error
}

// Repo implements usecase/collection.Repository on top of the store REST
// and query surfaces.
type Repo struct {
	store store
}

// New creates a schema repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// List returns every class in schema order, counts not filled in.
func (r *Repo) List(ctx context.Context) ([]domcol.Collection, error) {
	var resp normalize.SchemaResponse
	if err := r.store.Get(ctx, "list_collections", rest.PathSchema, &resp); err != nil {
		return nil, fmt.Errorf("get schema: %w", err)
	}
	return normalize.Collections(resp), nil
}

// Get fetches one class. A missing class is domain.ErrCollectionNotFound.
func (r *Repo) Get(ctx context.Context, class string) (domcol.Collection, error) {
	if err := domain.ValidateIdentifier("collection", class); err != nil {
		return domcol.Collection{}, err
	}
	var ci normalize.ClassInfo
	found, err := r.store.Lookup(ctx, "get_collection", rest.SchemaPath(class), &ci)
	if err != nil {
		return domcol.Collection{}, fmt.Errorf("get class %s: %w", class, err)
	}
	if !found || ci.Class == "" {
		return domcol.Collection{}, fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, class)
	}
	return normalize.Collection(ci), nil
}

// Count runs the aggregate count query for one class.
func (r *Repo) Count(ctx context.Context, class string) (int, error) {
	doc, err := query.CountDocument(class)
	if err != nil {
		return 0, err
	}
	var resp normalize.GraphQLResponse
	if err := r.store.GraphQL(ctx, "count", doc, &resp); err != nil {
		return 0, fmt.Errorf("count %s: %w", class, err)
	}
	return normalize.Count("count", class, resp)
}

// Create posts a class definition.
func (r *Repo) Create(ctx context.Context, s domcol.Schema) error {
	if err := r.store.Post(ctx, "create_collection", rest.PathSchema, query.SchemaPayload(s), nil); err != nil {
		return fmt.Errorf("create class %s: %w", s.Class(), err)
	}
	return nil
}

// Delete removes a class and all of its objects.
func (r *Repo) Delete(ctx context.Context, class string) error {
	if err := domain.ValidateIdentifier("collection", class); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, "delete_collection", rest.SchemaPath(class)); err != nil {
		return fmt.Errorf("delete class %s: %w", class, err)
	}
	return nil
}

// Ping checks that the store answers its readiness probe.
func (r *Repo) Ping(ctx context.Context) error {
	if err := r.store.Get(ctx, "ready", rest.PathReady, nil); err != nil {
		return fmt.Errorf("readiness probe: %w", err)
	}
	return nil
}
