package object

// AdditionalKey is the reserved response key carrying store-assigned
// identity and relevance. It is never a valid property name.
const AdditionalKey = "_additional"

// reservedKeys are stripped from property maps before they are written.
var reservedKeys = map[string]bool{
	AdditionalKey: true,
	"id":          true,
}

// Properties maps property names to values shaped by the declared data type.
type Properties map[string]any

// Additional is the identity/score sidecar of a returned row.
type Additional struct {
	ID       string
	Score    float64
	Distance float64
}

// Row is one object as returned by a listing or search query.
type Row struct {
	Properties Properties
	Additional Additional
}

// ID returns the store-assigned identity ("" when the store sent none).
func (r Row) ID() string { return r.Additional.ID }

// IsReserved reports whether key is a sidecar key that must not be written
// as a property.
func IsReserved(key string) bool { return reservedKeys[key] }

// Sanitize returns a copy of props without reserved keys.
func Sanitize(props Properties) Properties {
	out := make(Properties, len(props))
	for k, v := range props {
		if IsReserved(k) {
			continue
		}
		out[k] = v
	}
	return out
}
