package typology

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestResolver_Substitute(t *testing.T) {
	classes := newTestClasses(t)
	resolver := NewResolver(classes)
	swappedScope, _ := classes.Lookup("Swapped")
	boxScope, _ := classes.Lookup("Box")

	var testCases = []struct {
		description string
		owner       string
		declared    *Type
		expect      string
		expectErr   error
	}{
		{description: "variable", owner: "Pair<Integer,String>", declared: VarOf("Pair", "B"), expect: "String"},
		{description: "nested swap", owner: "Swapped<Integer,String>", declared: mustParseIn(classes, "Pair<B,A>", swappedScope), expect: "Pair<String,Integer>"},
		{description: "array of variable", owner: "Box<Long>", declared: mustParseIn(classes, "T[]", boxScope), expect: "Long[]"},
		{description: "deep", owner: "Box<Double>", declared: mustParseIn(classes, "Map<String,List<T>>", boxScope), expect: "Map<String,List<Double>>"},
		{description: "no variables", owner: "Box<Double>", declared: Of("String"), expect: "String"},
		{description: "raw owner", owner: "Box", declared: VarOf("Box", "T"), expectErr: ErrUnresolvedVariable},
		{description: "foreign variable", owner: "Pair<Integer,String>", declared: VarOf("Box", "T"), expectErr: ErrUnresolvedVariable},
	}

	for _, testCase := range testCases {
		actual, err := resolver.Substitute(classes.MustParse(testCase.owner), testCase.declared)
		if testCase.expectErr != nil {
			assert.ErrorIs(t, err, testCase.expectErr, testCase.description)
			var unresolved *UnresolvedVariableError
			assert.True(t, errors.As(err, &unresolved), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual.Key(), testCase.description)
	}
}

func TestResolver_Resolve(t *testing.T) {
	classes := newTestClasses(t)
	resolver := NewResolver(classes)

	first, err := resolver.ResolveFirst(classes.MustParse("Pair<Integer,String>"))
	assert.Nil(t, err)
	assert.Equal(t, "Integer", first.Key())

	_, err = resolver.ResolveFirst(classes.MustParse("Integer"))
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = resolver.ResolveFirst(ArrayOf(Of("Integer")))
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = resolver.Resolve(classes.MustParse("Pair<Integer,String>"), Of("Integer"))
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestResolver_Erase(t *testing.T) {
	classes := newTestClasses(t)
	resolver := NewResolver(classes)
	boxScope, _ := classes.Lookup("Box")

	assert.Equal(t, "Number", resolver.Erase(VarOf("Box", "T")).Key(), "bounded variable")
	assert.Equal(t, "Object", resolver.Erase(VarOf("Pair", "A")).Key(), "unbounded variable")
	assert.Equal(t, "Map<String,List<Number>>", resolver.Erase(mustParseIn(classes, "Map<String,List<T>>", boxScope)).Key())
	assert.Equal(t, "Number[]", resolver.Erase(mustParseIn(classes, "T[]", boxScope)).Key())
}

func mustParseIn(classes *Classes, expr string, scope *Class) *Type {
	ret, err := classes.ParseIn(expr, scope)
	if err != nil {
		panic(err)
	}
	return ret
}
