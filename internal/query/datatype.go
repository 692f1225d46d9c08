package query

import (
	"strings"

	"github.com/kailas-cloud/vecdesk/internal/domain/collection/property"
)

// canonicalScalars maps caller type tokens to the store's lowercase tokens.
var canonicalScalars = map[string]string{
	"string":  property.TypeText,
	"text":    property.TypeText,
	"int":     property.TypeInt,
	"number":  property.TypeNumber,
	"boolean": property.TypeBoolean,
	"date":    property.TypeDate,
}

// CanonicalDataType maps a caller-supplied type token to the store's token.
// Unknown scalars become text; the array suffix is preserved ("int[]" stays
// "int[]", "string[]" becomes "text[]").
func CanonicalDataType(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	isArray := strings.HasSuffix(t, property.ArraySuffix)
	t = strings.TrimSuffix(t, property.ArraySuffix)

	canonical, ok := canonicalScalars[t]
	if !ok {
		canonical = property.TypeText
	}
	if isArray {
		return canonical + property.ArraySuffix
	}
	return canonical
}
