package typology

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

type pair struct {
	First  interface{} `json:"first" type:"A"`
	Second interface{} `json:"second" type:"B"`
}

type swapped struct {
	Pair interface{} `json:"pair" type:"Pair<B,A>"`
}

type box struct {
	Items []interface{} `json:"items" type:"T[]"`
	Named interface{}   `json:"named" type:"Map<String,List<T>>"`
}

type later struct {
	Value int `json:"value"`
}

func newTestClasses(t *testing.T) *Classes {
	classes := NewClasses()
	_, err := classes.Register("Pair", reflect.TypeOf(pair{}), WithParams("A", "B"))
	require.Nil(t, err)
	_, err = classes.Register("Swapped", reflect.TypeOf(swapped{}), WithParams("A", "B"))
	require.Nil(t, err)
	_, err = classes.Register("Box", reflect.TypeOf(box{}), WithParams("T"), WithBound("T", "Number"))
	require.Nil(t, err)
	return classes
}
