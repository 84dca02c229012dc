package typology

import (
	"reflect"
	"strings"
)

// Category represents class conversion category
type Category int

const (
	//StructCategory represents struct backed class converted field by field
	StructCategory Category = iota
	//PrimitiveCategory represents primitive wrapper class (Integer, Boolean, String ...)
	PrimitiveCategory
	//ObjectCategory represents top type
	ObjectCategory
	//NumberCategory represents abstract numeric type
	NumberCategory
	//ListCategory represents ordered collection
	ListCategory
	//MapCategory represents string keyed collection
	MapCategory
	//AbstractCategory represents interface or abstract class without default construction
	AbstractCategory
)

// Class represents generic class declaration backed by Go type
type Class struct {
	Name   string
	Type   reflect.Type
	Params []string
	Category
	bounds map[string]*Type
	New    func() interface{}
}

// SimpleName returns class name without package qualifier
func (c *Class) SimpleName() string {
	if index := strings.LastIndexByte(c.Name, '.'); index != -1 {
		return c.Name[index+1:]
	}
	return c.Name
}

// IsPrimitive returns true for primitive wrapper class
func (c *Class) IsPrimitive() bool {
	return c.Category == PrimitiveCategory
}

// IsGeneric returns true if class declares type parameters
func (c *Class) IsGeneric() bool {
	return len(c.Params) > 0
}

// ParamIndex returns formal parameter position or -1
func (c *Class) ParamIndex(name string) int {
	for i, param := range c.Params {
		if param == name {
			return i
		}
	}
	return -1
}

// Bound returns upper bound of type parameter or nil
func (c *Class) Bound(param string) *Type {
	if c.bounds == nil {
		return nil
	}
	return c.bounds[param]
}

// Raw returns raw class type descriptor
func (c *Class) Raw() *Type {
	return Of(c.Name)
}

// Of returns class type descriptor parameterized with supplied arguments
func (c *Class) Of(args ...*Type) *Type {
	return Of(c.Name, args...)
}

func (c *Class) String() string {
	if !c.IsGeneric() {
		return c.Name
	}
	return c.Name + "<" + strings.Join(c.Params, ",") + ">"
}
