package mode

import "strings"

// Mode is the search strategy.
type Mode string

// Search mode constants.
const (
	// BM25 is keyword ranking over the query text.
	BM25 Mode = "bm25"
	// Vector is nearest-neighbour search by concept.
	Vector Mode = "vector"
	// Hybrid fuses BM25 and vector scores.
	Hybrid Mode = "hybrid"
)

// Parse normalizes a user-supplied mode name. Unknown values are returned
// as-is and fail IsValid.
func Parse(s string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "keyword":
		return BM25
	case "semantic", "neartext":
		return Vector
	default:
		return m
	}
}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == BM25 || m == Vector || m == Hybrid
}

// SupportsPropertyFilter reports whether the store accepts a property
// restriction for this mode. nearText does not.
func (m Mode) SupportsPropertyFilter() bool {
	return m == BM25 || m == Hybrid
}
