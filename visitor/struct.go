package visitor

import (
	"fmt"
	"go/token"
	"reflect"

	"github.com/viant/xunsafe"
)

var structCache = NewSyncMap[reflect.Type, *xunsafe.Struct]()

// StructOf returns cached struct layout
func StructOf(structType reflect.Type) *xunsafe.Struct {
	return structCache.GetOrPut(structType, func() *xunsafe.Struct {
		return xunsafe.NewStruct(structType)
	})
}

// FieldVisitorOf creates a Visitor over exported and embedded struct fields, in declaration order.
func FieldVisitorOf(structType reflect.Type) (Visitor[int, *xunsafe.Field], error) {
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct or pointer to struct, got %v", structType)
	}
	xStruct := StructOf(structType)
	return func(f func(index int, field *xunsafe.Field) (bool, error)) error {
		for i := 0; i < len(xStruct.Fields); i++ {
			xField := &xStruct.Fields[i]
			if !xField.Anonymous && !token.IsExported(xField.Name) {
				continue
			}
			continueVisit, err := f(i, xField)
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
