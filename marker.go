package typology

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/viant/xunsafe"
)

// SetMarkerTag marks struct field holding field presence flags, i.e. Has *EntityHas `setMarker:"true"`
const SetMarkerTag = "setMarker"

// IsSetMarker returns true if tag marks presence holder field
func IsSetMarker(tag reflect.StructTag) bool {
	return tag.Get(SetMarkerTag) == "true"
}

// Marker tracks which struct fields were present in decoded input.
// Flags are bool fields of the holder struct named after owner struct fields.
type Marker struct {
	t          reflect.Type
	holder     *xunsafe.Field
	holderType reflect.Type
	flags      map[string]*xunsafe.Field
}

// Init ensures presence holder is allocated and returns its pointer
func (m *Marker) Init(ptr unsafe.Pointer) unsafe.Pointer {
	if m.holderType.Kind() != reflect.Ptr {
		return m.holder.Pointer(ptr)
	}
	if holderPtr := m.holder.ValuePointer(ptr); holderPtr != nil {
		return holderPtr
	}
	m.holder.SetValue(ptr, reflect.New(m.holderType.Elem()).Interface())
	return m.holder.ValuePointer(ptr)
}

// Tracks returns true if field has presence flag
func (m *Marker) Tracks(name string) bool {
	_, ok := m.flags[name]
	return ok
}

// Set flags field as present, fields without a flag are ignored
func (m *Marker) Set(ptr unsafe.Pointer, name string) {
	flag, ok := m.flags[name]
	if !ok {
		return
	}
	flag.SetBool(m.Init(ptr), true)
}

// IsSet returns true if field was flagged as present, nil holder or missing flag means present
func (m *Marker) IsSet(ptr unsafe.Pointer, name string) bool {
	flag, ok := m.flags[name]
	if !ok {
		return true
	}
	holderPtr := m.holder.Pointer(ptr)
	if m.holderType.Kind() == reflect.Ptr {
		if holderPtr = m.holder.ValuePointer(ptr); holderPtr == nil {
			return true
		}
	}
	return flag.Bool(holderPtr)
}

// NewMarker returns presence marker of struct type, or nil when struct has no set marker field
func NewMarker(t reflect.Type) (*Marker, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrInvalidType, "%v is not a struct", t)
	}
	var ret *Marker
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !IsSetMarker(field.Tag) {
			continue
		}
		holderType := field.Type
		structType := holderType
		if structType.Kind() == reflect.Ptr {
			structType = structType.Elem()
		}
		if structType.Kind() != reflect.Struct {
			return nil, errors.Wrapf(ErrInvalidType, "%v.%v: set marker must be a struct", t, field.Name)
		}
		ret = &Marker{t: t, holder: xunsafe.NewField(field), holderType: holderType, flags: map[string]*xunsafe.Field{}}
		for j := 0; j < structType.NumField(); j++ {
			flag := structType.Field(j)
			owner, ok := t.FieldByName(flag.Name)
			if !ok || len(owner.Index) != 1 {
				return nil, errors.Wrapf(ErrInvalidType, "%v: marker field %v has no corresponding struct field", t, flag.Name)
			}
			if flag.Type.Kind() != reflect.Bool {
				return nil, errors.Wrapf(ErrInvalidType, "%v: marker field %v is not bool", t, flag.Name)
			}
			ret.flags[flag.Name] = xunsafe.NewField(flag)
		}
		break
	}
	return ret, nil
}
