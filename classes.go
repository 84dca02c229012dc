package typology

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology/internal/lru"
	"github.com/viant/typology/visitor"
)

// Built-in class names
const (
	ObjectClass    = "Object"
	NumberClass    = "Number"
	StringClass    = "String"
	BooleanClass   = "Boolean"
	CharacterClass = "Character"
	ByteClass      = "Byte"
	ShortClass     = "Short"
	IntegerClass   = "Integer"
	LongClass      = "Long"
	FloatClass     = "Float"
	DoubleClass    = "Double"
	ListClass      = "List"
	MapClass       = "Map"
)

const parseCacheSize = 512

var (
	objectType = reflect.TypeOf((*interface{})(nil)).Elem()
	listType   = reflect.TypeOf([]interface{}{})
	mapType    = reflect.TypeOf(map[string]interface{}{})
)

// Classes represents class table, builtin classes are registered on creation.
// Non generic struct classes are registered lazily when first seen.
type Classes struct {
	byName  *visitor.SyncMap[string, *Class]
	byType  *visitor.SyncMap[reflect.Type, *Class]
	parsed  *lru.Cache[string, *Type]
	markers *visitor.SyncMap[reflect.Type, *markerEntry]
}

type markerEntry struct {
	marker *Marker
	err    error
}

// Marker returns presence marker of struct class, nil if class has no set marker field
func (c *Classes) Marker(class *Class) (*Marker, error) {
	entry := c.markers.GetOrPut(class.Type, func() *markerEntry {
		marker, err := NewMarker(class.Type)
		return &markerEntry{marker: marker, err: err}
	})
	return entry.marker, entry.err
}

// Lookup returns class by name
func (c *Classes) Lookup(name string) (*Class, bool) {
	return c.byName.Get(name)
}

// LookupType returns class registered for Go type
func (c *Classes) LookupType(rType reflect.Type) (*Class, bool) {
	return c.byType.Get(rType)
}

// ClassOf returns raw class of class form type descriptor
func (c *Classes) ClassOf(t *Type) (*Class, error) {
	if t == nil || t.kind != ClassKind {
		return nil, errors.Wrapf(ErrInvalidType, "%v is not a class type", t)
	}
	class, ok := c.byName.Get(t.name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownClass, "%v", t.name)
	}
	return class, nil
}

// Register registers struct or interface backed class, name defaults to Go type name
func (c *Classes) Register(name string, rType reflect.Type, opts ...Option) (*Class, error) {
	if rType == nil {
		return nil, errors.Wrapf(ErrInvalidType, "class %v: nil Go type", name)
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	if name == "" {
		name = rType.Name()
	}
	options := &classOptions{}
	Options(opts).Apply(options)
	class := &Class{Name: name, Type: rType, Params: options.params, New: options.newFn}
	switch rType.Kind() {
	case reflect.Struct:
		class.Category = StructCategory
	case reflect.Interface:
		class.Category = AbstractCategory
	default:
		return nil, errors.Wrapf(ErrInvalidType, "class %v: unsupported Go type %v", name, rType)
	}
	if options.abstract {
		class.Category = AbstractCategory
	}
	if prev, ok := c.byName.Get(name); ok && prev.Type != rType {
		return nil, errors.Wrapf(ErrInvalidType, "class %v already registered with %v", name, prev.Type)
	}
	for param, expr := range options.bounds {
		if class.ParamIndex(param) == -1 {
			return nil, errors.Wrapf(ErrInvalidType, "class %v: bound of undeclared parameter %v", name, param)
		}
		bound, err := c.Parse(expr)
		if err != nil {
			return nil, err
		}
		if class.bounds == nil {
			class.bounds = map[string]*Type{}
		}
		class.bounds[param] = bound
	}
	c.byName.Put(name, class)
	c.byType.Put(rType, class)
	c.parsed.Purge()
	return class, nil
}

// MustRegister registers class or panics
func (c *Classes) MustRegister(name string, rType reflect.Type, opts ...Option) *Class {
	ret, err := c.Register(name, rType, opts...)
	if err != nil {
		panic(err)
	}
	return ret
}

// TypeOf returns runtime type descriptor of a value, generic classes are returned in raw form
func (c *Classes) TypeOf(value interface{}) (*Type, error) {
	if value == nil {
		return Of(ObjectClass), nil
	}
	return c.DeclaredTypeOf(reflect.TypeOf(value))
}

// DeclaredTypeOf returns type descriptor derived from Go type
func (c *Classes) DeclaredTypeOf(rType reflect.Type) (*Type, error) {
	if rType == nil {
		return Of(ObjectClass), nil
	}
	if class, ok := c.byType.Get(rType); ok {
		return class.Raw(), nil
	}
	switch rType.Kind() {
	case reflect.Ptr:
		return c.DeclaredTypeOf(rType.Elem())
	case reflect.Bool:
		return Of(BooleanClass), nil
	case reflect.String:
		return Of(StringClass), nil
	case reflect.Int8:
		return Of(ByteClass), nil
	case reflect.Int16, reflect.Uint8:
		return Of(ShortClass), nil
	case reflect.Int32, reflect.Uint16:
		return Of(IntegerClass), nil
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64:
		return Of(LongClass), nil
	case reflect.Float32:
		return Of(FloatClass), nil
	case reflect.Float64:
		return Of(DoubleClass), nil
	case reflect.Interface:
		return Of(ObjectClass), nil
	case reflect.Slice, reflect.Array:
		elem, err := c.DeclaredTypeOf(rType.Elem())
		if err != nil {
			return nil, err
		}
		return ArrayOf(elem), nil
	case reflect.Map:
		if rType.Key().Kind() != reflect.String {
			return nil, errors.Wrapf(ErrInvalidType, "unsupported map key %v", rType.Key())
		}
		value, err := c.DeclaredTypeOf(rType.Elem())
		if err != nil {
			return nil, err
		}
		return Of(MapClass, Of(StringClass), value), nil
	case reflect.Struct:
		return c.structClass(rType).Raw(), nil
	}
	return nil, errors.Wrapf(ErrInvalidType, "unsupported Go type %v", rType)
}

func (c *Classes) structClass(rType reflect.Type) *Class {
	return c.byType.GetOrPut(rType, func() *Class {
		name := rType.Name()
		if _, taken := c.byName.Get(name); taken || name == "" {
			name = rType.String()
		}
		class := &Class{Name: name, Type: rType, Category: StructCategory}
		c.byName.Put(name, class)
		return class
	})
}

func (c *Classes) registerBuiltin(name string, rType reflect.Type, category Category, byType bool, params ...string) {
	class := &Class{Name: name, Type: rType, Category: category, Params: params}
	c.byName.Put(name, class)
	if byType {
		c.byType.Put(rType, class)
	}
}

// NewClasses creates class table with builtin classes
func NewClasses() *Classes {
	ret := &Classes{
		byName:  visitor.NewSyncMap[string, *Class](),
		byType:  visitor.NewSyncMap[reflect.Type, *Class](),
		parsed:  lru.New[string, *Type](parseCacheSize),
		markers: visitor.NewSyncMap[reflect.Type, *markerEntry](),
	}
	ret.registerBuiltin(ObjectClass, objectType, ObjectCategory, true)
	ret.registerBuiltin(NumberClass, objectType, NumberCategory, false)
	ret.registerBuiltin(StringClass, reflect.TypeOf(""), PrimitiveCategory, true)
	ret.registerBuiltin(BooleanClass, reflect.TypeOf(false), PrimitiveCategory, true)
	ret.registerBuiltin(CharacterClass, reflect.TypeOf(rune(0)), PrimitiveCategory, false)
	ret.registerBuiltin(ByteClass, reflect.TypeOf(int8(0)), PrimitiveCategory, true)
	ret.registerBuiltin(ShortClass, reflect.TypeOf(int16(0)), PrimitiveCategory, true)
	ret.registerBuiltin(IntegerClass, reflect.TypeOf(int32(0)), PrimitiveCategory, true)
	ret.registerBuiltin(LongClass, reflect.TypeOf(int64(0)), PrimitiveCategory, true)
	ret.registerBuiltin(FloatClass, reflect.TypeOf(float32(0)), PrimitiveCategory, true)
	ret.registerBuiltin(DoubleClass, reflect.TypeOf(float64(0)), PrimitiveCategory, true)
	ret.registerBuiltin(ListClass, listType, ListCategory, false, "E")
	ret.registerBuiltin(MapClass, mapType, MapCategory, false, "K", "V")
	return ret
}
