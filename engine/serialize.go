package engine

import (
	"reflect"
	"unicode/utf8"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology"
	"github.com/viant/typology/node"
	"github.com/viant/typology/visitor"
	"github.com/viant/xunsafe"
)

func (e *Engine) serialize(value interface{}, t *typology.Type, depth int, path string) (*node.Node, error) {
	if err := e.checkDepth(t, depth, path); err != nil {
		return nil, err
	}
	if isNil(value) {
		return node.Null(), nil
	}
	if serializer, ok := e.registry.Serializer(t); ok {
		ret, err := serializer(value, t, &frame{engine: e, depth: depth, path: path})
		if err != nil {
			return nil, typology.WithPath(err, path)
		}
		if ret == nil {
			ret = node.Null()
		}
		return ret, nil
	}
	if t.IsArray() {
		return e.serializeSlice(value, t, t.Elem(), depth, path)
	}
	class, err := e.classes.ClassOf(t)
	if err != nil {
		return nil, err
	}
	switch class.Category {
	case typology.ListCategory:
		elem, err := e.argument(t, class, 0, path)
		if err != nil {
			return nil, err
		}
		return e.serializeSlice(value, t, elem, depth, path)
	case typology.MapCategory:
		elem, err := e.argument(t, class, 1, path)
		if err != nil {
			return nil, err
		}
		return e.serializeMap(value, t, elem, depth, path)
	case typology.PrimitiveCategory:
		return e.serializePrimitive(value, t, class, path)
	case typology.ObjectCategory, typology.NumberCategory:
		return e.serializeRuntime(value, t, class, depth, path)
	case typology.AbstractCategory:
		if class.Type.Kind() != reflect.Struct || reflect.Indirect(reflect.ValueOf(value)).Type() != class.Type {
			return e.serializeRuntime(value, t, class, depth, path)
		}
	}
	return e.serializeStruct(value, t, class, depth, path)
}

// serializeRuntime serializes value under its runtime type
func (e *Engine) serializeRuntime(value interface{}, t *typology.Type, class *typology.Class, depth int, path string) (*node.Node, error) {
	runtime, err := e.classes.TypeOf(value)
	if err != nil {
		return nil, errors.Wrapf(err, "%v at %q", t, path)
	}
	if runtime.Equal(t) {
		return nil, errors.Wrapf(typology.ErrInvalidType, "%T has no runtime class at %q", value, path)
	}
	if class.Category == typology.NumberCategory {
		runtimeClass, err := e.classes.ClassOf(runtime)
		if err != nil || !isNumeric(runtimeClass) {
			return nil, errors.Wrapf(typology.ErrInvalidType, "%T is not a number at %q", value, path)
		}
	}
	return e.serialize(value, runtime, depth+1, path)
}

func (e *Engine) serializeSlice(value interface{}, t, elem *typology.Type, depth int, path string) (*node.Node, error) {
	visit, err := visitor.ItemVisitorOf(value)
	if err != nil {
		return nil, errors.Wrapf(typology.ErrInvalidType, "%v at %q: %v", t, path, err)
	}
	ret := node.NewArray()
	err = visit(func(index int, item interface{}) (bool, error) {
		child, err := e.serialize(item, elem, depth+1, indexPath(path, index))
		if err != nil {
			return false, err
		}
		ret.Append(child)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// serializeMap writes map entries ordered by key
func (e *Engine) serializeMap(value interface{}, t, elem *typology.Type, depth int, path string) (*node.Node, error) {
	visit, err := visitor.EntryVisitorOf(value)
	if err != nil {
		return nil, errors.Wrapf(typology.ErrInvalidType, "%v at %q: %v", t, path, err)
	}
	ret := node.NewObject()
	err = visit(func(key string, item interface{}) (bool, error) {
		if isNil(item) && !e.options.SerializeNulls {
			return true, nil
		}
		child, err := e.serialize(item, elem, depth+1, keyPath(path, key))
		if err != nil {
			return false, err
		}
		ret.Put(key, child)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

func (e *Engine) serializePrimitive(value interface{}, t *typology.Type, class *typology.Class, path string) (*node.Node, error) {
	if class.Name == typology.CharacterClass {
		if text, ok := value.(string); ok && utf8.RuneCountInString(text) == 1 {
			return node.NewString(text), nil
		}
	}
	if class.Name == typology.LongClass {
		if rValue := reflect.ValueOf(value); isUnsigned(rValue.Kind()) {
			return node.NewUint(rValue.Uint()), nil
		}
	}
	adapted, err := e.converter.Adapt(value, class.Type)
	if err != nil {
		return nil, errors.Wrapf(typology.ErrInvalidType, "%v at %q: %v", t, path, err)
	}
	if class.Name == typology.CharacterClass {
		return node.NewString(string(adapted.(int32))), nil
	}
	adaptedValue := reflect.ValueOf(adapted)
	switch adaptedValue.Kind() {
	case reflect.String:
		return node.NewString(adaptedValue.String()), nil
	case reflect.Bool:
		return node.NewBool(adaptedValue.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return node.NewInt(adaptedValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return node.NewUint(adaptedValue.Uint()), nil
	case reflect.Float32:
		ret, err := node.NewFloat(adaptedValue.Float(), 32)
		if err != nil {
			return nil, errors.Wrapf(typology.ErrInvalidType, "%v at %q: %v", t, path, err)
		}
		return ret, nil
	case reflect.Float64:
		ret, err := node.NewFloat(adaptedValue.Float(), 64)
		if err != nil {
			return nil, errors.Wrapf(typology.ErrInvalidType, "%v at %q: %v", t, path, err)
		}
		return ret, nil
	}
	return nil, errors.Wrapf(typology.ErrInvalidType, "%v at %q: unsupported primitive %v", t, path, class.Type)
}

// serializeStruct writes class fields in declaration order, each field type resolved against t.
// Fields flagged as absent by a set marker are skipped.
func (e *Engine) serializeStruct(value interface{}, t *typology.Type, class *typology.Class, depth int, path string) (*node.Node, error) {
	holder, err := structPointer(value, class)
	if err != nil {
		return nil, errors.Wrapf(err, "%v at %q", t, path)
	}
	fields, err := e.classes.Fields(class, e.options.CaseFormat)
	if err != nil {
		return nil, err
	}
	marker, err := e.classes.Marker(class)
	if err != nil {
		return nil, err
	}
	ret := node.NewObject()
	for _, field := range fields {
		if marker != nil && !marker.IsSet(holder, field.GoName) {
			continue
		}
		childPath := fieldPath(path, field.Name)
		fieldType, err := e.substitute(t, field.Type, childPath)
		if err != nil {
			return nil, err
		}
		fieldValue := field.Value(holder)
		if fieldValue == nil && !e.options.SerializeNulls {
			continue
		}
		child, err := e.serialize(fieldValue, fieldType, depth+1, childPath)
		if err != nil {
			return nil, err
		}
		ret.Put(field.Name, child)
	}
	return ret, nil
}

// structPointer returns pointer to struct value, non pointer values are copied
func structPointer(value interface{}, class *typology.Class) (unsafe.Pointer, error) {
	valueType := reflect.TypeOf(value)
	switch {
	case valueType.Kind() == reflect.Ptr && valueType.Elem() == class.Type:
		return xunsafe.AsPointer(value), nil
	case valueType == class.Type:
		ptr := reflect.New(class.Type)
		ptr.Elem().Set(reflect.ValueOf(value))
		return unsafe.Pointer(ptr.Pointer()), nil
	}
	return nil, errors.Wrapf(typology.ErrInvalidType, "%T is not %v", value, class.Type)
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rValue.IsNil()
	}
	return false
}

func isUnsigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isNumeric(class *typology.Class) bool {
	if !class.IsPrimitive() || class.Name == typology.CharacterClass {
		return false
	}
	switch class.Type.Kind() {
	case reflect.String, reflect.Bool:
		return false
	}
	return true
}
