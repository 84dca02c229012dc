package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemVisitorOf(t *testing.T) {
	type point struct{ X int }
	coords := [2]int32{4, 5}

	var testCases = []struct {
		description string
		value       interface{}
		expect      []interface{}
		expectErr   bool
	}{
		{description: "interface slice", value: []interface{}{"a", 1, 3.14, true}, expect: []interface{}{"a", 1, 3.14, true}},
		{description: "string slice", value: []string{"x", "y"}, expect: []interface{}{"x", "y"}},
		{description: "reflective slice", value: []int32{3}, expect: []interface{}{int32(3)}},
		{description: "struct elements", value: []point{{X: 1}}, expect: []interface{}{point{X: 1}}},
		{description: "fixed size array", value: [3]int32{1, 2, 3}, expect: []interface{}{int32(1), int32(2), int32(3)}},
		{description: "pointer to array", value: &coords, expect: []interface{}{int32(4), int32(5)}},
		{description: "empty array", value: [0]int{}},
		{description: "not a slice", value: "abc", expectErr: true},
		{description: "nil pointer", value: (*[2]int)(nil), expectErr: true},
	}

	for _, testCase := range testCases {
		visit, err := ItemVisitorOf(testCase.value)
		if testCase.expectErr {
			assert.NotNil(t, err, testCase.description)
			continue
		}
		var actual []interface{}
		err = visit(func(_ int, element interface{}) (bool, error) {
			actual = append(actual, element)
			return true, nil
		})
		assert.Nil(t, err, testCase.description)
		assert.Equal(t, testCase.expect, actual, testCase.description)
	}
}

func TestItemVisitorOf_Stop(t *testing.T) {
	visit, err := ItemVisitorOf([3]int{1, 2, 3})
	if !assert.Nil(t, err) {
		return
	}
	count := 0
	err = visit(func(index int, _ interface{}) (bool, error) {
		count++
		return index < 1, nil
	})
	assert.Nil(t, err)
	assert.Equal(t, 2, count)
}
