package search

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/vecdesk/internal/domain/object"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/request"
	"github.com/kailas-cloud/vecdesk/internal/normalize"
	"github.com/kailas-cloud/vecdesk/internal/query"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	GraphQL(ctx context.Context, op, document string, dest any) error
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Search runs a bm25, hybrid or vector query. fields is what each row
// returns; vector, when set, replaces nearText with nearVector.
func (r *Repo) Search(
	ctx context.Context, req *request.Request, fields []query.Field, vector []float32,
) ([]object.Row, error) {
	doc, err := query.SearchDocument(req, fields, vector)
	if err != nil {
		return nil, err
	}
	var resp normalize.GraphQLResponse
	if err := r.store.GraphQL(ctx, "search", doc, &resp); err != nil {
		return nil, fmt.Errorf("search %s %s: %w", req.Mode(), req.Collection(), err)
	}
	return normalize.Rows("search", req.Collection(), resp)
}
