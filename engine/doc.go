// Package engine converts Go values to and from node trees and text under explicit type descriptors.
//
// A type descriptor carries type arguments erased from Go values, fields declared with
// a type variable are resolved against the actual arguments of the enclosing type:
//
//	type Box struct {
//		Value interface{} `type:"T"`
//	}
//
//	builder := engine.NewBuilder()
//	builder.RegisterClass("Box", reflect.TypeOf(Box{}), typology.WithParams("T"))
//	eng, _ := builder.Build()
//	text, _ := eng.ToJSON(&Box{Value: 10}, eng.Classes().MustParse("Box<Integer>"))
//	value, _ := eng.FromJSON(text, eng.Classes().MustParse("Box<Integer>")) // &Box{Value: int32(10)}
//
// Custom adapters registered for an exact type descriptor take over conversion of that
// type, they call back into the engine through adapter.Context.
package engine
