package domain

import "regexp"

// Store identifiers (class and property names, sort paths) follow the GraphQL
// name grammar. They are interpolated into query documents verbatim, so
// anything else is rejected up front.
var identifierRegex = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// MaxIdentifierLength bounds class and property names.
const MaxIdentifierLength = 256

// ValidateIdentifier checks that name is a legal store identifier.
func ValidateIdentifier(field, name string) error {
	if name == "" {
		return NewValidation(field, "name is required")
	}
	if len(name) > MaxIdentifierLength {
		return NewValidation(field, "name %q too long (max %d)", name, MaxIdentifierLength)
	}
	if !identifierRegex.MatchString(name) {
		return NewValidation(field, "name %q must match %s", name, identifierRegex.String())
	}
	return nil
}
