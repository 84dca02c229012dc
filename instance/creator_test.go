package instance

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/typology"
	"github.com/viant/typology/adapter"
)

type shape interface {
	Area() float64
}

type square struct {
	Side float64
}

func (s *square) Area() float64 { return s.Side * s.Side }

type pair struct {
	A interface{} `type:"A"`
	B interface{} `type:"B"`
}

type counter struct {
	Count int
}

type base struct {
	ID int
}

func TestCreator_Create(t *testing.T) {
	classes := typology.NewClasses()
	classes.MustRegister("Shape", reflect.TypeOf((*shape)(nil)).Elem())
	classes.MustRegister("Square", reflect.TypeOf(square{}))
	classes.MustRegister("Pair", reflect.TypeOf(pair{}), typology.WithParams("A", "B"))
	classes.MustRegister("Counter", reflect.TypeOf(counter{}), typology.WithNew(func() interface{} { return &counter{Count: 7} }))
	classes.MustRegister("Base", reflect.TypeOf(base{}), typology.WithAbstract())

	shared := &square{Side: 3}
	registry := adapter.NewRegistry()
	_, err := registry.Register(classes.MustParse("Shape"), &adapter.Entry{
		InstanceFactory: func(t *typology.Type) (interface{}, error) { return shared, nil },
	})
	require.Nil(t, err)
	creator := New(classes, registry)

	var testCases = []struct {
		description string
		expr        string
		expect      interface{}
		expectErr   error
	}{
		{description: "integer zero", expr: "Integer", expect: int32(0)},
		{description: "double zero", expr: "Double", expect: float64(0)},
		{description: "boolean zero", expr: "Boolean", expect: false},
		{description: "string zero", expr: "String", expect: ""},
		{description: "character zero", expr: "Character", expect: int32(0)},
		{description: "struct pointer", expr: "Square", expect: &square{}},
		{description: "generic struct pointer", expr: "Pair<Integer,String>", expect: &pair{}},
		{description: "class constructor", expr: "Counter", expect: &counter{Count: 7}},
		{description: "list", expr: "List<String>", expect: []interface{}{}},
		{description: "map", expr: "Map<String,Integer>", expect: map[string]interface{}{}},
		{description: "array", expr: "Integer[]", expect: []interface{}{}},
		{description: "interface factory", expr: "Shape", expect: shared},
		{description: "abstract class", expr: "Base", expectErr: typology.ErrNoInstanceCreator},
		{description: "object", expr: "Object", expectErr: typology.ErrNoInstanceCreator},
		{description: "number", expr: "Number", expectErr: typology.ErrNoInstanceCreator},
	}

	for _, testCase := range testCases {
		actual, err := creator.Create(classes.MustParse(testCase.expr))
		if testCase.expectErr != nil {
			assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
			continue
		}
		require.Nil(t, err, testCase.description)
		assert.EqualValues(t, testCase.expect, actual, testCase.description)
	}
}

func TestCreator_SharedFactory(t *testing.T) {
	classes := typology.NewClasses()
	squareType := classes.MustRegister("Square", reflect.TypeOf(square{})).Raw()
	shell := &square{}
	registry := adapter.NewRegistry()
	_, err := registry.Register(squareType, &adapter.Entry{
		InstanceFactory: func(t *typology.Type) (interface{}, error) { return shell, nil },
	})
	require.Nil(t, err)

	creator := New(classes, registry)
	first, err := creator.Create(squareType)
	require.Nil(t, err)
	second, err := creator.Create(squareType)
	require.Nil(t, err)
	assert.Same(t, shell, first)
	assert.Same(t, first, second)
}

func TestCreator_Unresolved(t *testing.T) {
	classes := typology.NewClasses()
	_, err := New(classes, nil).Create(typology.VarOf("Pair", "A"))
	assert.ErrorIs(t, err, typology.ErrUnresolvedVariable)
	_, err = New(classes, nil).Create(typology.Of("Missing"))
	assert.ErrorIs(t, err, typology.ErrUnknownClass)
}
