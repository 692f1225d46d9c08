package query

import (
	domcol "github.com/kailas-cloud/vecdesk/internal/domain/collection"
	"github.com/kailas-cloud/vecdesk/internal/domain/object"
)

// ClassPayload is the body of POST /v1/schema.
type ClassPayload struct {
	Class       string            `json:"class"`
	Description string            `json:"description,omitempty"`
	Properties  []PropertyPayload `json:"properties"`
}

// PropertyPayload is one property of a ClassPayload.
type PropertyPayload struct {
	Name        string   `json:"name"`
	DataType    []string `json:"dataType"`
	Description string   `json:"description,omitempty"`
}

// ObjectPayload is the body of POST and PATCH /v1/objects.
type ObjectPayload struct {
	Class      string            `json:"class"`
	Properties object.Properties `json:"properties"`
}

// SchemaPayload builds the class creation body with canonical data types.
func SchemaPayload(s domcol.Schema) ClassPayload {
	props := make([]PropertyPayload, len(s.Properties()))
	for i, p := range s.Properties() {
		props[i] = PropertyPayload{
			Name:        p.Name,
			DataType:    []string{CanonicalDataType(p.DataType)},
			Description: p.Description,
		}
	}
	return ClassPayload{
		Class:       s.Class(),
		Description: s.Description(),
		Properties:  props,
	}
}

// NewObjectPayload wraps a property map with the class identity.
// Reserved sidecar keys are stripped.
func NewObjectPayload(class string, props object.Properties) ObjectPayload {
	return ObjectPayload{Class: class, Properties: object.Sanitize(props)}
}
