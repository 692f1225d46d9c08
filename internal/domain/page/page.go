package page

import (
	"strings"

	"github.com/kailas-cloud/vecdesk/internal/domain"
)

// Order is a sort direction.
type Order string

// Sort orders.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// IsValid checks if the order is supported by the store.
func (o Order) IsValid() bool { return o == Asc || o == Desc }

// Sort is an optional ordering directive. The builder does not check the
// property type; restricting sorts to date columns is up to the caller.
type Sort struct {
	path  string
	order Order
}

// NewSort validates a sort directive. Empty order defaults to ascending.
func NewSort(path string, order Order) (Sort, error) {
	if err := domain.ValidateIdentifier("sort.path", path); err != nil {
		return Sort{}, err
	}
	order = Order(strings.ToLower(string(order)))
	if order == "" {
		order = Asc
	}
	if !order.IsValid() {
		return Sort{}, domain.NewValidation("sort.order", "must be %q or %q, got %q", Asc, Desc, order)
	}
	return Sort{path: path, order: order}, nil
}

// Path returns the property to sort by.
func (s Sort) Path() string { return s.path }

// Order returns the sort direction.
func (s Sort) Order() Order { return s.order }

// Page is a limit/offset window; both are always sent together.
type Page struct {
	limit  int
	offset int
}

// New validates a page window.
func New(limit, offset int) (Page, error) {
	if limit <= 0 {
		return Page{}, domain.NewValidation("limit", "must be positive, got %d", limit)
	}
	if offset < 0 {
		return Page{}, domain.NewValidation("offset", "must not be negative, got %d", offset)
	}
	return Page{limit: limit, offset: offset}, nil
}

// Limit returns the page size.
func (p Page) Limit() int { return p.limit }

// Offset returns the number of rows skipped.
func (p Page) Offset() int { return p.offset }
