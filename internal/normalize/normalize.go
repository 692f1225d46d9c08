// Package normalize reshapes raw store responses into the collection, row
// and property types the access layer returns.
package normalize

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/kailas-cloud/vecdesk/internal/domain"
	"github.com/kailas-cloud/vecdesk/internal/domain/collection"
	"github.com/kailas-cloud/vecdesk/internal/domain/collection/property"
	"github.com/kailas-cloud/vecdesk/internal/domain/object"
)

// SchemaResponse is the body of GET /v1/schema.
type SchemaResponse struct {
	Classes []ClassInfo `json:"classes"`
}

// ClassInfo is one schema entry.
type ClassInfo struct {
	Class       string         `json:"class"`
	Description string         `json:"description,omitempty"`
	Properties  []PropertyInfo `json:"properties"`
}

// PropertyInfo is one property of a schema entry.
type PropertyInfo struct {
	Name        string   `json:"name"`
	DataType    []string `json:"dataType"`
	Description string   `json:"description,omitempty"`
}

// GraphQLResponse is the raw query envelope.
type GraphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []GraphQLError             `json:"errors,omitempty"`
}

// GraphQLError is one entry of the errors array.
type GraphQLError struct {
	Message string `json:"message"`
}

// ObjectEnvelope is the body of GET /v1/objects/{id}.
type ObjectEnvelope struct {
	ID         string            `json:"id"`
	Class      string            `json:"class"`
	Properties object.Properties `json:"properties"`
}

// CreatedObject is the part of the POST /v1/objects response we use.
type CreatedObject struct {
	ID string `json:"id"`
}

// Collection converts one schema entry. The count is left at zero.
func Collection(ci ClassInfo) collection.Collection {
	props := make([]property.Property, 0, len(ci.Properties))
	for _, p := range ci.Properties {
		props = append(props, property.Reconstruct(p.Name, p.DataType, p.Description))
	}
	return collection.Reconstruct(ci.Class, ci.Description, props, 0)
}

// Collections converts a schema listing in store order. Entries without a
// class name are skipped.
func Collections(resp SchemaResponse) []collection.Collection {
	out := make([]collection.Collection, 0, len(resp.Classes))
	for _, ci := range resp.Classes {
		if ci.Class == "" {
			continue
		}
		out = append(out, Collection(ci))
	}
	return out
}

// Count reads data.Aggregate.<class>[0].meta.count.
func Count(op, class string, resp GraphQLResponse) (int, error) {
	raw, err := section(op, "Aggregate", class, resp)
	if err != nil {
		return 0, err
	}
	var groups []struct {
		Meta *struct {
			Count *json.Number `json:"count"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(raw, &groups); err != nil {
		return 0, domain.NewProtocol(op, "decode Aggregate.%s: %v", class, err)
	}
	if len(groups) == 0 || groups[0].Meta == nil || groups[0].Meta.Count == nil {
		return 0, domain.NewProtocol(op, "missing Aggregate.%s meta count", class)
	}
	n, err := groups[0].Meta.Count.Int64()
	if err != nil {
		return 0, domain.NewProtocol(op, "count is not an integer: %v", err)
	}
	if n < 0 {
		n = 0
	}
	return int(n), nil
}

// Rows reads data.Get.<class> and pops the sidecar off every row.
// A missing sidecar yields the zero Additional (id "", score 0).
func Rows(op, class string, resp GraphQLResponse) ([]object.Row, error) {
	raw, err := section(op, "Get", class, resp)
	if err != nil {
		return nil, err
	}
	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, domain.NewProtocol(op, "decode Get.%s: %v", class, err)
	}
	rows := make([]object.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, row(item))
	}
	return rows, nil
}

// Properties returns only the properties of an object envelope.
func Properties(env ObjectEnvelope) object.Properties {
	if env.Properties == nil {
		return object.Properties{}
	}
	return object.Sanitize(env.Properties)
}

func section(op, kind, class string, resp GraphQLResponse) (json.RawMessage, error) {
	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			if m := strings.TrimSpace(e.Message); m != "" {
				msgs = append(msgs, m)
			}
		}
		return nil, domain.NewProtocol(op, "query errors: %s", strings.Join(msgs, "; "))
	}
	rawKind, ok := resp.Data[kind]
	if !ok || isNull(rawKind) {
		return nil, domain.NewProtocol(op, "response has no data.%s", kind)
	}
	var byClass map[string]json.RawMessage
	if err := json.Unmarshal(rawKind, &byClass); err != nil {
		return nil, domain.NewProtocol(op, "decode data.%s: %v", kind, err)
	}
	raw, ok := byClass[class]
	if !ok || isNull(raw) {
		return nil, domain.NewProtocol(op, "response has no data.%s.%s", kind, class)
	}
	return raw, nil
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func row(item map[string]any) object.Row {
	r := object.Row{Properties: make(object.Properties, len(item))}
	for k, v := range item {
		if k == object.AdditionalKey {
			continue
		}
		r.Properties[k] = v
	}
	side, ok := item[object.AdditionalKey].(map[string]any)
	if !ok {
		return r
	}
	if id, ok := side["id"].(string); ok {
		r.Additional.ID = id
	}
	r.Additional.Score = number(side["score"])
	r.Additional.Distance = number(side["distance"])
	return r
}

// number accepts a JSON number or a numeric string; anything else is 0.
func number(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
