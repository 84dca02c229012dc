package adapter

import (
	"github.com/viant/typology"
	"github.com/viant/typology/node"
)

type (
	// Serializer converts value declared as t into node, ctx serializes nested values
	Serializer func(value interface{}, t *typology.Type, ctx Context) (*node.Node, error)

	// Deserializer converts node into value of t, ctx deserializes nested values
	Deserializer func(n *node.Node, t *typology.Type, ctx Context) (interface{}, error)

	// InstanceFactory creates an instance of t.
	// A factory may return the same instance on every call, the engine then overwrites its fields.
	InstanceFactory func(t *typology.Type) (interface{}, error)
)

// Context represents engine capability passed to custom adapters.
// Nested calls continue the enclosing call path and depth.
type Context interface {
	// Serialize serializes value under its runtime type
	Serialize(value interface{}) (*node.Node, error)
	// SerializeAs serializes value under t
	SerializeAs(value interface{}, t *typology.Type) (*node.Node, error)
	// Deserialize deserializes node as t
	Deserialize(n *node.Node, t *typology.Type) (interface{}, error)
	// Resolve binds variable against owner actual type arguments
	Resolve(owner, variable *typology.Type) (*typology.Type, error)
	// ResolveFirst binds owner class first formal type parameter
	ResolveFirst(owner *typology.Type) (*typology.Type, error)
	// Adapt coerces primitive value, i.e. number literal or text, into the exact Go type of primitive class t
	Adapt(value interface{}, t *typology.Type) (interface{}, error)
	// Classes returns class table
	Classes() *typology.Classes
}

// Entry represents adapter registry entry, nil slots are not set
type Entry struct {
	Key             *typology.Type
	Serializer      Serializer
	Deserializer    Deserializer
	InstanceFactory InstanceFactory
}

// merge overwrites entry slots with non nil slots of other
func (e *Entry) merge(other *Entry) {
	if other.Serializer != nil {
		e.Serializer = other.Serializer
	}
	if other.Deserializer != nil {
		e.Deserializer = other.Deserializer
	}
	if other.InstanceFactory != nil {
		e.InstanceFactory = other.InstanceFactory
	}
}
