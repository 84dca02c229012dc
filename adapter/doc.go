// Package adapter defines custom serializers, deserializers and instance factories
// and the exact match registry holding them.
//
// Lookup never falls back to a raw type or a differently parameterized type:
//
//	registry := adapter.NewRegistry()
//	registry.Register(classes.MustParse("Box<Integer>"), &adapter.Entry{Serializer: boxOfInt})
//	registry.Lookup(classes.MustParse("Box<Long>")) // not found
package adapter
