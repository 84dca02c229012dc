package visitor

import (
	"fmt"
	"reflect"
)

// ItemVisitorOf returns a visitor over slice or fixed size array items, a pointer to an array is dereferenced.
func ItemVisitorOf(value interface{}) (Visitor[int, any], error) {
	switch actual := value.(type) {
	case []interface{}:
		return typedItemVisitor(actual), nil
	case []string:
		return typedItemVisitor(actual), nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() == reflect.Ptr && !val.IsNil() && val.Elem().Kind() == reflect.Array {
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, fmt.Errorf("expected slice or array, got %T", value)
	}
	return func(f func(key int, element any) (bool, error)) error {
		for i := 0; i < val.Len(); i++ {
			continueVisit, err := f(i, val.Index(i).Interface())
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}, nil
}

func typedItemVisitor[E any](items []E) Visitor[int, any] {
	return func(f func(key int, element any) (bool, error)) error {
		for i, e := range items {
			continueVisit, err := f(i, e)
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}
}
