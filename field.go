package typology

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/viant/tagly/format/text"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/visitor"
	"github.com/viant/xunsafe"
)

// Field represents class field descriptor with its declared, possibly variable, type
type Field struct {
	Name   string
	GoName string
	Type   *Type
	goType reflect.Type
	path   []*xunsafe.Field
}

// GoType returns field Go type
func (f *Field) GoType() reflect.Type {
	return f.goType
}

// Nullable returns true if field can hold null
func (f *Field) Nullable() bool {
	switch f.goType.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map:
		return true
	}
	return false
}

// Pointer returns field pointer for supplied struct pointer
func (f *Field) Pointer(holder unsafe.Pointer) unsafe.Pointer {
	ptr := holder
	for _, xField := range f.path {
		ptr = xField.Pointer(ptr)
	}
	return ptr
}

// Value returns field value, typed nil pointers are returned as nil
func (f *Field) Value(holder unsafe.Pointer) interface{} {
	value := reflect.NewAt(f.goType, f.Pointer(holder)).Elem()
	switch value.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		if value.IsNil() {
			return nil
		}
	}
	return value.Interface()
}

// Set assigns value to the field, converting it to field Go type
func (f *Field) Set(holder unsafe.Pointer, value interface{}, converter *conv.Converter) error {
	return converter.Assign(reflect.NewAt(f.goType, f.Pointer(holder)).Elem(), value)
}

// Fields enumerates class fields in declaration order, embedded structs are inlined
func (c *Classes) Fields(class *Class, caseFormat text.CaseFormat) ([]*Field, error) {
	if class.Category != StructCategory {
		return nil, errors.Wrapf(ErrInvalidType, "%v is not a struct class", class.Name)
	}
	var result []*Field
	err := c.appendFields(&result, class, class.Type, nil, caseFormat)
	return result, err
}

func (c *Classes) appendFields(result *[]*Field, class *Class, structType reflect.Type, parent []*xunsafe.Field, caseFormat text.CaseFormat) error {
	visit, err := visitor.FieldVisitorOf(structType)
	if err != nil {
		return err
	}
	return visit(func(_ int, xField *xunsafe.Field) (bool, error) {
		sf := reflect.StructField{Name: xField.Name, Type: xField.Type, Tag: xField.Tag, Anonymous: xField.Anonymous}
		tag := parseFieldTag(sf, caseFormat)
		if tag.ignore {
			return true, nil
		}
		path := append(append([]*xunsafe.Field{}, parent...), xField)
		if (xField.Anonymous || tag.inline) && !tag.explicit && xField.Type.Kind() == reflect.Struct {
			return true, c.appendFields(result, class, xField.Type, path, caseFormat)
		}
		if xField.Anonymous && !isExported(xField.Name) {
			return true, nil
		}
		field := &Field{Name: tag.name, GoName: xField.Name, goType: xField.Type, path: path}
		var typeErr error
		if tag.declared != "" {
			field.Type, typeErr = c.ParseIn(tag.declared, class)
		} else {
			field.Type, typeErr = c.DeclaredTypeOf(xField.Type)
		}
		if typeErr != nil {
			return false, errors.Wrapf(typeErr, "field %v.%v", class.Name, xField.Name)
		}
		*result = append(*result, field)
		return true, nil
	})
}

func isExported(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
