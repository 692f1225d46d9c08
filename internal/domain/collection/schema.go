package collection

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/vecdesk/internal/domain"
)

// PropertyInput is one caller-supplied property of a schema to create.
// DataType is the raw caller token ("string", "int[]", ...); the query
// builder maps it to the store's canonical token.
type PropertyInput struct {
	Name        string
	DataType    string
	Description string
}

// Schema is a validated collection creation input.
type Schema struct {
	class       string
	description string
	properties  []PropertyInput
}

// NewSchema validates a creation input.
// Properties with blank names are dropped (unfilled form rows); at least one
// must remain. The first character of the class name is upper-cased because
// the store requires capitalized class identifiers.
func NewSchema(class, description string, props []PropertyInput) (Schema, error) {
	class = Capitalize(strings.TrimSpace(class))
	if class == "" {
		return Schema{}, domain.NewValidation("class", "collection name is required")
	}
	if err := domain.ValidateIdentifier("class", class); err != nil {
		return Schema{}, err
	}

	kept := make([]PropertyInput, 0, len(props))
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		if err := domain.ValidateIdentifier("property", p.Name); err != nil {
			return Schema{}, err
		}
		if seen[p.Name] {
			return Schema{}, domain.NewValidation("property", "duplicate property name %q", p.Name)
		}
		seen[p.Name] = true
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return Schema{}, domain.NewValidation("properties", "at least one property with a name is required")
	}

	return Schema{class: class, description: description, properties: kept}, nil
}

// Class returns the capitalized class name.
func (s Schema) Class() string { return s.class }

// Description returns the optional class description.
func (s Schema) Description() string { return s.description }

// Properties returns the kept properties in input order.
func (s Schema) Properties() []PropertyInput { return s.properties }

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
