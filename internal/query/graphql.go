package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	"github.com/kailas-cloud/vecdesk/internal/domain/collection/property"
	"github.com/kailas-cloud/vecdesk/internal/domain/object"
	"github.com/kailas-cloud/vecdesk/internal/domain/page"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/mode"
	"github.com/kailas-cloud/vecdesk/internal/domain/search/request"
)

// Sidecar selections requested under _additional. Every search asks for
// the score; near searches also ask for distance since the store ranks them
// by it and leaves score empty.
const (
	listingAdditional = "id"
	scoreAdditional   = "id score"
	vectorAdditional  = "id score distance"
)

// Field is one entry of a Get selection set.
type Field struct {
	Name string
	// Selection is a nested selection without braces ("latitude longitude").
	Selection string
}

// NamedFields turns plain property names into fields.
func NamedFields(names []string) []Field {
	out := make([]Field, len(names))
	for i, n := range names {
		out[i] = Field{Name: n}
	}
	return out
}

// FieldsFor renders every property of a collection as a selectable field.
// Cross-references are skipped: they need a per-target nested selection.
func FieldsFor(props []property.Property) []Field {
	out := make([]Field, 0, len(props))
	for _, p := range props {
		if p.IsReference() {
			continue
		}
		f := Field{Name: p.Name()}
		switch p.ScalarType() {
		case property.TypeGeoCoordinates:
			f.Selection = "latitude longitude"
		case property.TypePhoneNumber:
			f.Selection = "input internationalFormatted"
		}
		out = append(out, f)
	}
	return out
}

// GetDocument builds the listing query for one page of a class.
// With no fields only the identity is requested.
func GetDocument(class string, fields []Field, sort *page.Sort, pg page.Page) (string, error) {
	if err := domain.ValidateIdentifier("collection", class); err != nil {
		return "", err
	}
	fields, err := checkFields(fields)
	if err != nil {
		return "", err
	}

	args := []string{fmt.Sprintf("limit: %d, offset: %d", pg.Limit(), pg.Offset())}
	if sort != nil {
		args = append(args, fmt.Sprintf("sort: [{path: [%s], order: %s}]", Quote(sort.Path()), sort.Order()))
	}
	return renderGet(class, strings.Join(args, ", "), fields, listingAdditional), nil
}

// CountDocument builds the aggregate count query for a class.
func CountDocument(class string) (string, error) {
	if err := domain.ValidateIdentifier("collection", class); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("{\n  Aggregate {\n    ")
	b.WriteString(class)
	b.WriteString(" {\n      meta { count }\n    }\n  }\n}")
	return b.String(), nil
}

// SearchDocument builds a bm25, vector or hybrid query for req.
// fields is the full property list of the class: the request's property set
// narrows what is matched, not what is returned. For vector search a
// non-empty vector switches nearText to nearVector.
func SearchDocument(req *request.Request, fields []Field, vector []float32) (string, error) {
	if err := domain.ValidateIdentifier("collection", req.Collection()); err != nil {
		return "", err
	}
	fields, err := checkFields(fields)
	if err != nil {
		return "", err
	}

	var directive, additional string
	switch req.Mode() {
	case mode.BM25:
		directive = "bm25: {" + matchArgs(req) + "}"
		additional = scoreAdditional
	case mode.Hybrid:
		args := matchArgs(req)
		if a := req.Alpha(); a != nil {
			args += ", alpha: " + strconv.FormatFloat(*a, 'g', -1, 64)
		}
		directive = "hybrid: {" + args + "}"
		additional = scoreAdditional
	case mode.Vector:
		if len(vector) > 0 {
			directive = "nearVector: {vector: " + floatList(vector) + "}"
		} else {
			directive = "nearText: {concepts: [" + Quote(req.Query()) + "]}"
		}
		additional = vectorAdditional
	default:
		return "", domain.NewValidation("search_type", "unsupported search type %q", req.Mode())
	}

	args := directive + fmt.Sprintf(", limit: %d", req.Limit())
	return renderGet(req.Collection(), args, fields, additional), nil
}

func matchArgs(req *request.Request) string {
	args := "query: " + Quote(req.Query())
	if props := req.Properties(); len(props) > 0 {
		args += ", properties: " + quoteList(props)
	}
	return args
}

// checkFields validates names and drops duplicates and sidecar keys.
func checkFields(fields []Field) ([]Field, error) {
	out := make([]Field, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if object.IsReserved(f.Name) || seen[f.Name] {
			continue
		}
		if err := domain.ValidateIdentifier("properties", f.Name); err != nil {
			return nil, err
		}
		seen[f.Name] = true
		out = append(out, f)
	}
	return out, nil
}

func renderGet(class, args string, fields []Field, additional string) string {
	var b strings.Builder
	b.WriteString("{\n  Get {\n    ")
	b.WriteString(class)
	if args != "" {
		b.WriteString("(")
		b.WriteString(args)
		b.WriteString(")")
	}
	b.WriteString(" {\n")
	for _, f := range fields {
		b.WriteString("      ")
		b.WriteString(f.Name)
		if f.Selection != "" {
			b.WriteString(" { ")
			b.WriteString(f.Selection)
			b.WriteString(" }")
		}
		b.WriteByte('\n')
	}
	b.WriteString("      ")
	b.WriteString(object.AdditionalKey)
	b.WriteString(" { ")
	b.WriteString(additional)
	b.WriteString(" }\n    }\n  }\n}")
	return b.String()
}

func floatList(v []float32) string {
	parts := make([]string, len(v))
	for i, f := range v {
		parts[i] = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
