package property

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/vecdesk/internal/domain"
)

// ArraySuffix marks array data types ("text[]", "int[]").
const ArraySuffix = "[]"

// Store scalar type tokens the client knows how to render.
const (
	TypeText           = "text"
	TypeInt            = "int"
	TypeNumber         = "number"
	TypeBoolean        = "boolean"
	TypeDate           = "date"
	TypeUUID           = "uuid"
	TypeBlob           = "blob"
	TypeGeoCoordinates = "geoCoordinates"
	TypePhoneNumber    = "phoneNumber"
)

// Property is an immutable description of one collection property.
type Property struct {
	name        string
	dataType    []string
	description string
}

// New validates and creates a Property.
// Name must be a store identifier; dataType must have a primary token.
func New(name string, dataType []string, description string) (Property, error) {
	if err := domain.ValidateIdentifier("property", name); err != nil {
		return Property{}, err
	}
	if len(dataType) == 0 || strings.TrimSpace(dataType[0]) == "" {
		return Property{}, domain.NewValidation("property", "data type for %q is required", name)
	}
	return Reconstruct(name, dataType, description), nil
}

// Reconstruct creates a Property without validation (schema hydration).
func Reconstruct(name string, dataType []string, description string) Property {
	dt := make([]string, len(dataType))
	copy(dt, dataType)
	return Property{name: name, dataType: dt, description: description}
}

// Name returns the property name.
func (p Property) Name() string { return p.name }

// DataType returns a copy of the ordered type tokens.
func (p Property) DataType() []string {
	out := make([]string, len(p.dataType))
	copy(out, p.dataType)
	return out
}

// Description returns the optional description.
func (p Property) Description() string { return p.description }

// PrimaryType returns the first type token, or "" when none.
func (p Property) PrimaryType() string {
	if len(p.dataType) == 0 {
		return ""
	}
	return p.dataType[0]
}

// IsArray reports whether the primary type is an array type.
func (p Property) IsArray() bool { return strings.HasSuffix(p.PrimaryType(), ArraySuffix) }

// ScalarType returns the primary type without the array suffix.
func (p Property) ScalarType() string { return strings.TrimSuffix(p.PrimaryType(), ArraySuffix) }

// IsReference reports whether the property is a cross-reference.
// References are typed by the target class name, which is capitalized.
func (p Property) IsReference() bool {
	r, _ := utf8.DecodeRuneInString(p.PrimaryType())
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// IsDate reports whether the property holds dates (scalar or array).
func (p Property) IsDate() bool { return p.ScalarType() == TypeDate }
