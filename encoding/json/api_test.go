package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/typology/node"
)

func TestCodec_RoundTrip(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      string
	}{
		{description: "object keeps order", input: `{"b":1,"a":2}`, expect: `{"b":1,"a":2}`},
		{description: "number literals verbatim", input: `[1.0,2.1,1.0E10,-0.5,10]`, expect: `[1.0,2.1,1.0E10,-0.5,10]`},
		{description: "nested containers", input: ` { "a" : [ {"x":null}, [] , {} ] } `, expect: `{"a":[{"x":null},[],{}]}`},
		{description: "escaped string", input: `{"s":"a\"b\\c\n"}`, expect: `{"s":"a\"b\\c\n"}`},
		{description: "top level string", input: `"abc"`, expect: `"abc"`},
		{description: "top level number", input: `42`, expect: `42`},
		{description: "top level bool", input: `true`, expect: `true`},
		{description: "top level null", input: `null`, expect: `null`},
		{description: "last duplicate wins", input: `{"a":1,"a":2}`, expect: `{"a":2}`},
		{description: "compat trailing comma in object", input: `{"a":1,}`, expect: `{"a":1}`},
		{description: "compat trailing comma in array", input: `[1,2,]`, expect: `[1,2]`},
		{description: "surrounding whitespace", input: "\n [1] \t", expect: `[1]`},
	}

	codec := New()
	for _, testCase := range testCases {
		root, err := codec.Unmarshal([]byte(testCase.input))
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		actual, err := codec.Marshal(root)
		assert.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expect, string(actual), testCase.description)
	}
}

func TestCodec_Unmarshal_Invalid(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		options     []Option
	}{
		{description: "empty input", input: ""},
		{description: "unterminated object", input: `{"a":1`},
		{description: "bad literal", input: `nul`},
		{description: "bad number", input: `01`},
		{description: "bad nested value", input: `{"a":tru}`},
		{description: "strict duplicate", input: `{"a":1,"a":2}`, options: []Option{WithMode(ModeStrict)}},
		{description: "explicit duplicate policy", input: `{"a":1,"a":2}`, options: []Option{WithDuplicateKeyPolicy(ErrorOnDuplicate)}},
		{description: "max depth", input: `[[[1]]]`, options: []Option{WithMaxDepth(2)}},
		{description: "missing array comma", input: `[1 2]`},
		{description: "extra closing bracket", input: `[1]]`},
		{description: "trailing garbage after object", input: `{"a":1}xyz`},
		{description: "trailing token after string", input: `"abc" x`},
		{description: "second document", input: `{"a":1}{"b":2}`},
		{description: "missing object comma", input: `{"a":1 "b":2}`},
		{description: "raw control character", input: "\"a\tb\""},
		{description: "strict trailing comma in object", input: `{"ID":1,}`, options: []Option{WithMode(ModeStrict)}},
		{description: "strict trailing comma in array", input: `[1,2,]`, options: []Option{WithMode(ModeStrict)}},
		{description: "fail fast trailing comma", input: `[1,]`, options: []Option{WithMalformedPolicy(FailFast)}},
	}

	for _, testCase := range testCases {
		_, err := New(testCase.options...).Unmarshal([]byte(testCase.input))
		assert.NotNil(t, err, testCase.description)
	}
}

func TestCodec_StrictMode(t *testing.T) {
	compat := New()
	_, err := compat.Unmarshal([]byte(`{"ID":1,}`))
	assert.Nil(t, err)
	_, err = compat.Unmarshal([]byte(`[1,2,]`))
	assert.Nil(t, err)

	strict := New(WithMode(ModeStrict))
	assert.Equal(t, FailFast, strict.Options().MalformedPolicy)
	_, err = strict.Unmarshal([]byte(`{"ID":1,}`))
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "trailing comma")
	}
	_, err = strict.Unmarshal([]byte(`{"ID":1,"ID":2}`))
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "duplicate field")
	}

	relaxed := New(WithMode(ModeStrict), WithMalformedPolicy(Tolerant))
	_, err = relaxed.Unmarshal([]byte(`[1,2,]`))
	assert.Nil(t, err)
}

func TestCodec_Unmarshal_Tree(t *testing.T) {
	root, err := Unmarshal([]byte(`{"n":1.50,"s":"x","b":false,"l":[null]}`))
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, node.ObjectKind, root.Kind())
	assert.Equal(t, []string{"n", "s", "b", "l"}, []string{root.Fields()[0].Key, root.Fields()[1].Key, root.Fields()[2].Key, root.Fields()[3].Key})
	n, _ := root.Get("n")
	assert.Equal(t, node.Number("1.50"), n.Literal())
	s, _ := root.Get("s")
	assert.Equal(t, "x", s.Text())
	l, _ := root.Get("l")
	assert.Equal(t, 1, l.Len())
	assert.True(t, l.Items()[0].IsNull())
}

func TestCodec_Marshal(t *testing.T) {
	number, err := node.NewFloat(10, 64)
	assert.Nil(t, err)
	root := node.NewObject().
		Put("a", node.NewInt(10)).
		Put("b", number).
		Put("c", node.NewArray(node.NewString("x"), node.NewBool(true), node.Null())).
		Put("d", nil)

	actual, err := Marshal(root)
	assert.Nil(t, err)
	assert.Equal(t, `{"a":10,"b":10.0,"c":["x",true,null],"d":null}`, string(actual))

	_, err = Marshal(node.NewArray(node.NewNumber("NaN")))
	assert.NotNil(t, err)
	_, err = New(WithMaxDepth(1)).Marshal(node.NewArray(node.NewArray()))
	assert.NotNil(t, err)
	assert.Equal(t, ContentType, New().ContentType())
	assert.Equal(t, DefaultMaxDepth, New().Options().MaxDepth)
}
