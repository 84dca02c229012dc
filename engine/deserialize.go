package engine

import (
	"reflect"
	"strconv"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/node"
	"github.com/viant/xunsafe"
)

func (e *Engine) deserialize(n *node.Node, t *typology.Type, depth int, path string) (interface{}, error) {
	if err := e.checkDepth(t, depth, path); err != nil {
		return nil, err
	}
	if deserializer, ok := e.registry.Deserializer(t); ok {
		ret, err := deserializer(n, t, &frame{engine: e, depth: depth, path: path})
		if err != nil {
			return nil, typology.WithPath(err, path)
		}
		return ret, nil
	}
	if n.IsNull() {
		return nil, nil
	}
	if t.IsArray() {
		return e.deserializeArray(n, t, depth, path)
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
		return e.deserializeList(n, t, elem, depth, path)
	case typology.MapCategory:
		elem, err := e.argument(t, class, 1, path)
		if err != nil {
			return nil, err
		}
		return e.deserializeMap(n, t, elem, depth, path)
	case typology.ObjectCategory:
		return e.natural(n, t, depth, path)
	case typology.NumberCategory:
		if n.Kind() != node.NumberKind && n.Kind() != node.StringKind {
			return nil, malformed(t, path, "expected number, got %v", n.Kind())
		}
		ret, err := e.number(n.Interface())
		if err != nil {
			return nil, malformed(t, path, "%v", err)
		}
		return ret, nil
	case typology.PrimitiveCategory:
		return e.deserializePrimitive(n, t, class, path)
	}
	return e.deserializeStruct(n, t, depth, path)
}

// deserializeArray returns typed slice, i.e. []int32 for Integer[]
func (e *Engine) deserializeArray(n *node.Node, t *typology.Type, depth int, path string) (interface{}, error) {
	if n.Kind() != node.ArrayKind {
		return nil, malformed(t, path, "expected array, got %v", n.Kind())
	}
	sliceType := e.goTypeOf(t)
	ret := reflect.MakeSlice(sliceType, n.Len(), n.Len())
	for i, item := range n.Items() {
		itemPath := indexPath(path, i)
		value, err := e.deserialize(item, t.Elem(), depth+1, itemPath)
		if err != nil {
			return nil, err
		}
		if value == nil && !nullable(sliceType.Elem()) {
			return nil, malformed(t.Elem(), itemPath, "null for non nullable %v", sliceType.Elem())
		}
		if err = e.converter.Assign(ret.Index(i), value); err != nil {
			return nil, malformed(t.Elem(), itemPath, "%v", err)
		}
	}
	return ret.Interface(), nil
}

func (e *Engine) deserializeList(n *node.Node, t, elem *typology.Type, depth int, path string) (interface{}, error) {
	if n.Kind() != node.ArrayKind {
		return nil, malformed(t, path, "expected array, got %v", n.Kind())
	}
	ret := make([]interface{}, n.Len())
	for i, item := range n.Items() {
		value, err := e.deserialize(item, elem, depth+1, indexPath(path, i))
		if err != nil {
			return nil, err
		}
		ret[i] = value
	}
	return ret, nil
}

func (e *Engine) deserializeMap(n *node.Node, t, elem *typology.Type, depth int, path string) (interface{}, error) {
	if n.Kind() != node.ObjectKind {
		return nil, malformed(t, path, "expected object, got %v", n.Kind())
	}
	ret := make(map[string]interface{}, n.Len())
	for _, field := range n.Fields() {
		value, err := e.deserialize(field.Value, elem, depth+1, keyPath(path, field.Key))
		if err != nil {
			return nil, err
		}
		ret[field.Key] = value
	}
	return ret, nil
}

// natural decodes node without declared type: map[string]interface{}, []interface{}, float64, string, bool or nil
func (e *Engine) natural(n *node.Node, t *typology.Type, depth int, path string) (interface{}, error) {
	if depth > e.options.MaxDepth {
		return nil, errors.Wrapf(ErrMaxDepth, "%v at %q, limit %d", t, path, e.options.MaxDepth)
	}
	switch n.Kind() {
	case node.ObjectKind:
		ret := make(map[string]interface{}, n.Len())
		for _, field := range n.Fields() {
			value, err := e.natural(field.Value, t, depth+1, keyPath(path, field.Key))
			if err != nil {
				return nil, err
			}
			ret[field.Key] = value
		}
		return ret, nil
	case node.ArrayKind:
		ret := make([]interface{}, n.Len())
		for i, item := range n.Items() {
			value, err := e.natural(item, t, depth+1, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			ret[i] = value
		}
		return ret, nil
	case node.NumberKind:
		value, err := strconv.ParseFloat(n.Text(), 64)
		if err != nil {
			return nil, malformed(t, path, "invalid number %v", n.Text())
		}
		return value, nil
	case node.StringKind:
		return n.Text(), nil
	case node.BoolKind:
		return n.Bool(), nil
	}
	return nil, nil
}

// deserializePrimitive is the explicit coercion stage turning node scalar into exact primitive Go type
func (e *Engine) deserializePrimitive(n *node.Node, t *typology.Type, class *typology.Class, path string) (interface{}, error) {
	switch n.Kind() {
	case node.ObjectKind, node.ArrayKind:
		return nil, malformed(t, path, "expected %v, got %v", class.Name, n.Kind())
	case node.NumberKind:
		if class.Name == typology.BooleanClass {
			return nil, malformed(t, path, "expected %v, got %v", class.Name, n.Kind())
		}
	case node.BoolKind:
		if class.Name != typology.BooleanClass && class.Name != typology.StringClass {
			return nil, malformed(t, path, "expected %v, got %v", class.Name, n.Kind())
		}
	}
	ret, err := e.adapt(n.Interface(), class)
	if err != nil {
		if wide, ok := unsignedLong(n, class); ok {
			return wide, nil
		}
		return nil, malformed(t, path, "%v", err)
	}
	return ret, nil
}

// unsignedLong returns uint64 for a Long literal above the int64 range, it is written for unsigned Go fields
func unsignedLong(n *node.Node, class *typology.Class) (uint64, bool) {
	if class.Name != typology.LongClass || n.Kind() != node.NumberKind {
		return 0, false
	}
	ret, err := strconv.ParseUint(n.Text(), 10, 64)
	return ret, err == nil
}

func nullable(rType reflect.Type) bool {
	switch rType.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map:
		return true
	}
	return false
}

func (e *Engine) adapt(value interface{}, class *typology.Class) (interface{}, error) {
	if number, ok := value.(node.Number); ok {
		value = string(number)
	}
	if class.Name == typology.CharacterClass {
		if text, ok := value.(string); ok {
			runes := []rune(text)
			if len(runes) != 1 {
				return nil, errors.Newf("expected single character, got %q", text)
			}
			return runes[0], nil
		}
	}
	return e.converter.Adapt(value, class.Type)
}

// number decodes Number class value as int64 for integral literals, float64 otherwise
func (e *Engine) number(value interface{}) (interface{}, error) {
	switch actual := value.(type) {
	case node.Number:
		return conv.ParseNumber(string(actual))
	case string:
		if !conv.ValidNumber(actual) {
			return nil, errors.Newf("invalid number %q", actual)
		}
		return conv.ParseNumber(actual)
	case nil:
		return nil, nil
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return value, nil
	}
	return nil, errors.Newf("%T is not a number", value)
}

// deserializeStruct populates instance shell field by field, each field type resolved against t
func (e *Engine) deserializeStruct(n *node.Node, t *typology.Type, depth int, path string) (interface{}, error) {
	if n.Kind() != node.ObjectKind {
		return nil, malformed(t, path, "expected object, got %v", n.Kind())
	}
	instance, err := e.creator.Create(t)
	if err != nil {
		return nil, typology.WithPath(err, path)
	}
	target, err := e.targetOf(instance, t)
	if err != nil {
		return nil, errors.Wrapf(err, "%v at %q", t, path)
	}
	fields, err := e.classes.Fields(target.class, e.options.CaseFormat)
	if err != nil {
		return nil, err
	}
	marker, err := e.classes.Marker(target.class)
	if err != nil {
		return nil, err
	}
	if marker != nil {
		marker.Init(target.ptr)
	}
	for _, field := range fields {
		childPath := fieldPath(path, field.Name)
		entry, ok := n.Get(field.Name)
		if !ok {
			if field.Nullable() || (marker != nil && marker.Tracks(field.GoName)) {
				continue
			}
			return nil, malformed(t, childPath, "missing key %q", field.Name)
		}
		fieldType, err := e.substitute(target.t, field.Type, childPath)
		if err != nil {
			return nil, err
		}
		value, err := e.deserialize(entry, fieldType, depth+1, childPath)
		if err != nil {
			return nil, err
		}
		if value == nil && !field.Nullable() {
			return nil, malformed(fieldType, childPath, "null for non nullable field %q", field.Name)
		}
		if err = field.Set(target.ptr, value, e.converter); err != nil {
			return nil, malformed(fieldType, childPath, "%v", err)
		}
		if marker != nil {
			marker.Set(target.ptr, field.GoName)
		}
	}
	return target.value, nil
}

type target struct {
	value interface{}
	ptr   unsafe.Pointer
	t     *typology.Type
	class *typology.Class
}

// targetOf returns addressable struct behind instance, a factory may return a struct value or a pointer to a concrete struct of an abstract class
func (e *Engine) targetOf(instance interface{}, t *typology.Type) (*target, error) {
	rValue := reflect.ValueOf(instance)
	if !rValue.IsValid() {
		return nil, errors.Wrapf(typology.ErrInvalidType, "nil instance")
	}
	if rValue.Kind() == reflect.Struct {
		ptr := reflect.New(rValue.Type())
		ptr.Elem().Set(rValue)
		rValue = ptr
		instance = ptr.Interface()
	}
	if rValue.Kind() != reflect.Ptr || rValue.IsNil() || rValue.Type().Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(typology.ErrInvalidType, "%T is not a struct instance", instance)
	}
	declared, err := e.classes.DeclaredTypeOf(rValue.Type().Elem())
	if err != nil {
		return nil, err
	}
	class, err := e.classes.ClassOf(declared)
	if err != nil {
		return nil, err
	}
	owner := t
	if class.Name != t.Name() {
		owner = declared
	}
	return &target{value: instance, ptr: xunsafe.AsPointer(instance), t: owner, class: class}, nil
}
