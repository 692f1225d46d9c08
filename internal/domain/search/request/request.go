package request

import (
	"strings"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 10
)

// Request is a validated search query.
type Request struct {
	query      string
	collection string
	searchMode mode.Mode
	limit      int
	properties []string
	alpha      *float64
}

// New validates and normalizes search parameters.
// limit <= 0 falls back to defaultLimit (DefaultLimit when that is zero too).
// An empty properties set means "match on all properties". Properties are
// dropped for vector search, which cannot restrict them.
func New(
	query, collection string,
	m mode.Mode,
	limit, defaultLimit int,
	properties []string,
	alpha *float64,
) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, domain.NewValidation("query", "query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, domain.NewValidation("query", "too long (max %d chars)", MaxQueryLength)
	}
	if err := domain.ValidateIdentifier("collection", collection); err != nil {
		return Request{}, err
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, domain.NewValidation("search_type", "unsupported search type %q", m)
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var props []string
	if m.SupportsPropertyFilter() {
		seen := make(map[string]bool, len(properties))
		for _, p := range properties {
			if seen[p] {
				continue
			}
			if err := domain.ValidateIdentifier("properties", p); err != nil {
				return Request{}, err
			}
			seen[p] = true
			props = append(props, p)
		}
	}

	if alpha != nil {
		if m != mode.Hybrid {
			alpha = nil
		} else if *alpha < 0 || *alpha > 1 {
			return Request{}, domain.NewValidation("alpha", "must be between 0 and 1")
		}
	}

	return Request{
		query:      query,
		collection: collection,
		searchMode: m,
		limit:      limit,
		properties: props,
		alpha:      alpha,
	}, nil
}

// Query returns the search text.
func (r *Request) Query() string { return r.query }

// Collection returns the target class name.
func (r *Request) Collection() string { return r.collection }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Limit returns the maximum number of rows.
func (r *Request) Limit() int { return r.limit }

// Properties returns the match restriction (nil = all properties).
func (r *Request) Properties() []string { return r.properties }

// Alpha returns the hybrid weighting, or nil for the store default.
func (r *Request) Alpha() *float64 { return r.alpha }
