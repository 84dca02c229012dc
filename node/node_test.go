package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_Object(t *testing.T) {
	object := NewObject().
		Put("b", NewInt(1)).
		Put("a", NewString("x")).
		Put("b", NewBool(true)).
		Put("c", nil)

	assert.Equal(t, 3, object.Len())
	var keys []string
	for _, field := range object.Fields() {
		keys = append(keys, field.Key)
	}
	assert.Equal(t, []string{"b", "a", "c"}, keys, "replaced key keeps its position")
	value, ok := object.Get("b")
	assert.True(t, ok)
	assert.Equal(t, true, value.Interface())
	value, ok = object.Get("c")
	assert.True(t, ok)
	assert.True(t, value.IsNull())
	_, ok = object.Get("z")
	assert.False(t, ok)

	array := NewArray(NewInt(1)).Append(nil)
	assert.Equal(t, 2, array.Len())
	assert.True(t, array.Items()[1].IsNull())
	array.Put("k", NewInt(1))
	assert.Equal(t, 2, array.Len(), "put is a no-op on array")
}

func TestNode_Interface(t *testing.T) {
	float, err := NewFloat(1, 32)
	assert.Nil(t, err)
	object := NewObject()

	var testCases = []struct {
		description string
		node        *Node
		expect      interface{}
	}{
		{description: "string", node: NewString("abc"), expect: "abc"},
		{description: "int", node: NewInt(-10), expect: Number("-10")},
		{description: "uint", node: NewUint(18446744073709551615), expect: Number("18446744073709551615")},
		{description: "float", node: float, expect: Number("1.0")},
		{description: "literal", node: NewNumber("2.1E-5"), expect: Number("2.1E-5")},
		{description: "bool", node: NewBool(false), expect: false},
		{description: "null", node: Null(), expect: nil},
		{description: "nil node", node: nil, expect: nil},
		{description: "container", node: object, expect: object},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.node.Interface(), testCase.description)
	}

	_, err = NewFloat(1e300, 32)
	assert.NotNil(t, err)
}

func TestNode_Equal(t *testing.T) {
	var testCases = []struct {
		description string
		left        *Node
		right       *Node
		expect      bool
	}{
		{description: "same object", left: NewObject().Put("a", NewInt(1)), right: NewObject().Put("a", NewNumber("1")), expect: true},
		{description: "object order", left: NewObject().Put("a", NewInt(1)).Put("b", Null()), right: NewObject().Put("b", Null()).Put("a", NewInt(1)), expect: false},
		{description: "number literal", left: NewNumber("1"), right: NewNumber("1.0"), expect: false},
		{description: "array", left: NewArray(NewString("a")), right: NewArray(NewString("a")), expect: true},
		{description: "array length", left: NewArray(), right: NewArray(Null()), expect: false},
		{description: "kind", left: NewString("1"), right: NewNumber("1"), expect: false},
		{description: "null", left: Null(), right: nil, expect: true},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.left.Equal(testCase.right), testCase.description)
	}
}
