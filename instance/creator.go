// Package instance creates target shells for deserialization.
package instance

import (
	"reflect"

	"github.com/viant/typology"
	"github.com/viant/typology/adapter"
)

// Creator creates instances of class types. Create tries in order:
// registered instance factory, primitive zero value, no-argument construction.
type Creator struct {
	classes  *typology.Classes
	registry *adapter.Registry
}

// Create returns new instance of t. Struct classes are created as pointers.
func (c *Creator) Create(t *typology.Type) (interface{}, error) {
	if t == nil {
		return nil, &typology.NoInstanceCreatorError{Type: t}
	}
	if c.registry != nil {
		if factory, ok := c.registry.InstanceFactory(t); ok {
			return factory(t)
		}
	}
	switch t.Kind() {
	case typology.VariableKind:
		return nil, &typology.UnresolvedVariableError{Variable: t}
	case typology.ArrayKind:
		return []interface{}{}, nil
	}
	class, err := c.classes.ClassOf(t)
	if err != nil {
		return nil, err
	}
	if class.IsPrimitive() {
		return reflect.Zero(class.Type).Interface(), nil
	}
	if class.New != nil {
		return class.New(), nil
	}
	switch class.Category {
	case typology.StructCategory:
		return reflect.New(class.Type).Interface(), nil
	case typology.ListCategory:
		return []interface{}{}, nil
	case typology.MapCategory:
		return map[string]interface{}{}, nil
	}
	return nil, &typology.NoInstanceCreatorError{Type: t}
}

// New creates instance creator, registry may be nil
func New(classes *typology.Classes, registry *adapter.Registry) *Creator {
	return &Creator{classes: classes, registry: registry}
}
