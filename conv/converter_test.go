package conv

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConverter_Adapt(t *testing.T) {
	var testCases = []struct {
		description string
		options     Options
		src         interface{}
		destType    reflect.Type
		expect      interface{}
		expectErr   bool
	}{
		{description: "string to int32", src: "10", destType: reflect.TypeOf(int32(0)), expect: int32(10)},
		{description: "integral float literal to int64", src: "1.0", destType: reflect.TypeOf(int64(0)), expect: int64(1)},
		{description: "exponent literal to int64", src: "1e3", destType: reflect.TypeOf(int64(0)), expect: int64(1000)},
		{description: "fractional to int", src: "1.5", destType: reflect.TypeOf(int32(0)), expectErr: true},
		{description: "fractional truncated", options: Options{AllowTruncation: true}, src: 1.5, destType: reflect.TypeOf(int32(0)), expect: int32(1)},
		{description: "int8 overflow", src: "300", destType: reflect.TypeOf(int8(0)), expectErr: true},
		{description: "negative to uint", src: -1, destType: reflect.TypeOf(uint(0)), expectErr: true},
		{description: "string to float32", src: "1.0", destType: reflect.TypeOf(float32(0)), expect: float32(1)},
		{description: "float32 overflow", src: 1e300, destType: reflect.TypeOf(float32(0)), expectErr: true},
		{description: "int to string", src: 123, destType: reflect.TypeOf(""), expect: "123"},
		{description: "bool to string", src: true, destType: reflect.TypeOf(""), expect: "true"},
		{description: "string to bool", src: "true", destType: reflect.TypeOf(false), expect: true},
		{description: "int to bool", src: 1, destType: reflect.TypeOf(false), expect: true},
		{description: "strict bool", options: Options{StrictBool: true}, src: 1, destType: reflect.TypeOf(false), expectErr: true},
		{description: "NaN text to float64", src: "NaN", destType: reflect.TypeOf(float64(0)), expectErr: true},
		{description: "infinity text to float64", src: "Inf", destType: reflect.TypeOf(float64(0)), expectErr: true},
		{description: "signed infinity text to float32", src: "-Infinity", destType: reflect.TypeOf(float32(0)), expectErr: true},
		{description: "hex float text to float64", src: "0x1p-2", destType: reflect.TypeOf(float64(0)), expectErr: true},
		{description: "hex float text to int64", src: "0x1p4", destType: reflect.TypeOf(int64(0)), expectErr: true},
		{description: "padded decimal text to float64", src: " 2.5 ", destType: reflect.TypeOf(float64(0)), expect: 2.5},
		{description: "invalid text", src: "abc", destType: reflect.TypeOf(int64(0)), expectErr: true},
		{description: "nil is zero", src: nil, destType: reflect.TypeOf(int16(0)), expect: int16(0)},
		{description: "same type", src: int32(5), destType: reflect.TypeOf(int32(0)), expect: int32(5)},
	}

	for _, testCase := range testCases {
		converter := NewConverter(testCase.options)
		actual, err := converter.Adapt(testCase.src, testCase.destType)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestConverter_RegisterConversion(t *testing.T) {
	converter := NewConverter(DefaultOptions())
	converter.RegisterConversion(reflect.TypeOf(""), reflect.TypeOf(false), func(src interface{}, destType reflect.Type, opts Options) (interface{}, error) {
		return src.(string) == "yes", nil
	})
	actual, err := converter.Adapt("yes", reflect.TypeOf(false))
	assert.Nil(t, err)
	assert.Equal(t, true, actual)
}

func TestConverter_Assign(t *testing.T) {
	type point struct{ X int }
	converter := NewConverter(DefaultOptions())

	var testCases = []struct {
		description string
		dest        interface{}
		value       interface{}
		expect      interface{}
		expectErr   bool
	}{
		{description: "typed slice into generic slice", dest: new([]interface{}), value: []int32{1, 2}, expect: []interface{}{int32(1), int32(2)}},
		{description: "generic slice into typed slice", dest: new([]int64), value: []interface{}{int32(1), "2"}, expect: []int64{1, 2}},
		{description: "generic map into typed map", dest: new(map[string]int), value: map[string]interface{}{"a": int64(1)}, expect: map[string]int{"a": 1}},
		{description: "value into pointer", dest: new(*string), value: "abc", expect: stringPtr("abc")},
		{description: "struct pointer into struct", dest: new(point), value: &point{X: 2}, expect: point{X: 2}},
		{description: "primitive into interface", dest: new(interface{}), value: int32(3), expect: int32(3)},
		{description: "nil resets", dest: new([]int), value: nil, expect: []int(nil)},
		{description: "array length mismatch", dest: new([2]int), value: []int{1}, expectErr: true},
		{description: "slice into struct", dest: new(point), value: []int{1}, expectErr: true},
	}

	for _, testCase := range testCases {
		dest := reflect.ValueOf(testCase.dest).Elem()
		err := converter.Assign(dest, testCase.value)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, dest.Interface(), testCase.description)
	}
}

func stringPtr(s string) *string {
	return &s
}

func TestFormatFloat(t *testing.T) {
	var testCases = []struct {
		description string
		value       float64
		bitSize     int
		expect      string
		expectErr   bool
	}{
		{description: "integral", value: 1, bitSize: 64, expect: "1.0"},
		{description: "fraction", value: 2.1, bitSize: 64, expect: "2.1"},
		{description: "float32 shortest", value: float64(float32(0.1)), bitSize: 32, expect: "0.1"},
		{description: "zero", value: 0, bitSize: 64, expect: "0.0"},
		{description: "large", value: 1e10, bitSize: 64, expect: "1.0E10"},
		{description: "small", value: 2.5e-5, bitSize: 64, expect: "2.5E-5"},
		{description: "negative", value: -3.5, bitSize: 64, expect: "-3.5"},
	}

	for _, testCase := range testCases {
		actual, err := FormatFloat(testCase.value, testCase.bitSize)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestNumberLiterals(t *testing.T) {
	var testCases = []struct {
		literal string
		valid   bool
		expect  interface{}
	}{
		{literal: "10", valid: true, expect: int64(10)},
		{literal: "-0", valid: true, expect: int64(0)},
		{literal: "1.5", valid: true, expect: 1.5},
		{literal: "1E2", valid: true, expect: 100.0},
		{literal: "99999999999999999999", valid: true, expect: 1e20},
		{literal: "01", valid: false},
		{literal: "1.", valid: false},
		{literal: ".5", valid: false},
		{literal: "+1", valid: false},
		{literal: "1e", valid: false},
		{literal: "", valid: false},
	}

	for _, testCase := range testCases {
		assert.Equal(t, testCase.valid, ValidNumber(testCase.literal), testCase.literal)
		if !testCase.valid {
			continue
		}
		actual, err := ParseNumber(testCase.literal)
		assert.Nil(t, err, testCase.literal)
		assert.Equal(t, testCase.expect, actual, testCase.literal)
	}
}
