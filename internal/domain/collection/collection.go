package collection

import (
	"github.com/kailas-cloud/vecdesk/internal/domain/collection/property"
)

// Collection is a read-only snapshot of one store class enriched with its
// object count. Re-fetched wholesale on every listing.
type Collection struct {
	name        string
	description string
	count       int
	properties  []property.Property
}

// Reconstruct creates a Collection from a schema entry (no validation).
// Negative counts are clamped to zero.
func Reconstruct(name, description string, properties []property.Property, count int) Collection {
	if count < 0 {
		count = 0
	}
	return Collection{
		name:        name,
		description: description,
		count:       count,
		properties:  properties,
	}
}

// WithCount returns a copy carrying the given object count.
func (c Collection) WithCount(count int) Collection {
	return Reconstruct(c.name, c.description, c.properties, count)
}

// Name returns the class name.
func (c Collection) Name() string { return c.name }

// Description returns the optional class description.
func (c Collection) Description() string { return c.description }

// Count returns the number of stored objects.
func (c Collection) Count() int { return c.count }

// Properties returns the properties in schema order.
func (c Collection) Properties() []property.Property { return c.properties }

// PropertyNames returns the property names in schema order.
func (c Collection) PropertyNames() []string {
	out := make([]string, len(c.properties))
	for i, p := range c.properties {
		out[i] = p.Name()
	}
	return out
}

// PropertyByName looks up a property by name.
func (c Collection) PropertyByName(name string) (property.Property, bool) {
	for _, p := range c.properties {
		if p.Name() == name {
			return p, true
		}
	}
	return property.Property{}, false
}
