package engine

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/viant/typology"
	"github.com/viant/typology/adapter"
	"github.com/viant/typology/node"
)

type BagOfPrimitives struct {
	LongValue    int64  `json:"longValue"`
	IntValue     int32  `json:"intValue"`
	BooleanValue bool   `json:"booleanValue"`
	StringValue  string `json:"stringValue"`
}

type MyParameterizedType struct {
	Value interface{} `json:"value" type:"T"`
}

type MultiParameters struct {
	A interface{} `json:"a" type:"A"`
	B interface{} `json:"b" type:"B"`
	C interface{} `json:"c" type:"C"`
	D interface{} `json:"d" type:"D"`
	E interface{} `json:"e" type:"E"`
}

type ObjectWithTypeVariables struct {
	TypeParameterObj     interface{}   `json:"typeParameterObj" type:"T"`
	TypeParameterArray   []interface{} `json:"typeParameterArray" type:"T[]"`
	ListOfTypeParameters []interface{} `json:"listOfTypeParameters" type:"List<T>"`
}

type Shape interface {
	Area() float64
}

type Holder struct {
	Shape interface{} `json:"shape" type:"Shape"`
}

type Letter struct {
	C int32 `json:"c" type:"Character"`
}

type Person struct {
	FirstName string
	LastName  string `json:"surname"`
	Age       int
	Secret    string `json:"-"`
	Nickname  *string
}

type Reading struct {
	Counter uint64   `json:"counter"`
	Coords  [3]int32 `json:"coords"`
}

type EntityHas struct {
	ID    bool
	Count bool
}

type Entity struct {
	ID    int        `json:"id"`
	Count int        `json:"count"`
	Note  string     `json:"note"`
	Has   *EntityHas `setMarker:"true"`
}

func newBuilder(t *testing.T, opts ...Option) *Builder {
	builder := NewBuilder(opts...).
		RegisterClass("BagOfPrimitives", reflect.TypeOf(BagOfPrimitives{})).
		RegisterClass("MyParameterizedType", reflect.TypeOf(MyParameterizedType{}), typology.WithParams("T")).
		RegisterClass("MultiParameters", reflect.TypeOf(MultiParameters{}), typology.WithParams("A", "B", "C", "D", "E")).
		RegisterClass("ObjectWithTypeVariables", reflect.TypeOf(ObjectWithTypeVariables{}),
			typology.WithParams("T"), typology.WithBound("T", "Number")).
		RegisterClass("Shape", reflect.TypeOf((*Shape)(nil)).Elem()).
		RegisterClass("Holder", reflect.TypeOf(Holder{})).
		RegisterClass("Letter", reflect.TypeOf(Letter{})).
		RegisterClass("Person", reflect.TypeOf(Person{})).
		RegisterClass("Entity", reflect.TypeOf(Entity{})).
		RegisterClass("Reading", reflect.TypeOf(Reading{}))
	return builder
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	ret, err := newBuilder(t, opts...).Build()
	require.Nil(t, err)
	return ret
}

// classNameSerializer writes value under its runtime class simple name, i.e. {"Integer":10}
func classNameSerializer(value interface{}, t *typology.Type, ctx adapter.Context) (*node.Node, error) {
	var inner interface{}
	switch actual := value.(type) {
	case *MyParameterizedType:
		inner = actual.Value
	case MyParameterizedType:
		inner = actual.Value
	}
	runtime, err := ctx.Classes().TypeOf(inner)
	if err != nil {
		return nil, err
	}
	class, err := ctx.Classes().ClassOf(runtime)
	if err != nil {
		return nil, err
	}
	child, err := ctx.Serialize(inner)
	if err != nil {
		return nil, err
	}
	return node.NewObject().Put(class.SimpleName(), child), nil
}

// classNameDeserializer reads value stored under declared element class simple name
func classNameDeserializer(n *node.Node, t *typology.Type, ctx adapter.Context) (interface{}, error) {
	elemType, err := ctx.ResolveFirst(t)
	if err != nil {
		return nil, err
	}
	class, err := ctx.Classes().ClassOf(elemType)
	if err != nil {
		return nil, err
	}
	entry, ok := n.Get(class.SimpleName())
	if !ok {
		return nil, &typology.MalformedInputError{Type: t, Reason: "missing key " + class.SimpleName()}
	}
	var value interface{}
	if class.IsPrimitive() {
		value, err = ctx.Adapt(entry, elemType)
	} else {
		value, err = ctx.Deserialize(entry, elemType)
	}
	if err != nil {
		return nil, err
	}
	return &MyParameterizedType{Value: value}, nil
}
