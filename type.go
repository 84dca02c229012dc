package typology

import (
	"strings"

	"github.com/samber/lo"
)

// Kind represents a type descriptor form
type Kind int

const (
	//ClassKind represents raw class with optional type arguments
	ClassKind Kind = iota
	//ArrayKind represents array of element type
	ArrayKind
	//VariableKind represents type variable declared by a generic class
	VariableKind
)

func (k Kind) String() string {
	switch k {
	case ArrayKind:
		return "array"
	case VariableKind:
		return "variable"
	}
	return "class"
}

// Type represents immutable, possibly parameterized type descriptor.
// Exactly one form is populated: class with ordered arguments, array element or type variable.
type Type struct {
	kind  Kind
	name  string
	owner string
	args  []*Type
	elem  *Type
}

// Of creates class type descriptor with ordered type arguments
func Of(name string, args ...*Type) *Type {
	ret := &Type{kind: ClassKind, name: name}
	if len(args) > 0 {
		ret.args = make([]*Type, len(args))
		copy(ret.args, args)
	}
	return ret
}

// ArrayOf creates array type descriptor
func ArrayOf(elem *Type) *Type {
	return &Type{kind: ArrayKind, elem: elem}
}

// VarOf creates type variable descriptor declared by owner class
func VarOf(owner, name string) *Type {
	return &Type{kind: VariableKind, name: name, owner: owner}
}

// Kind returns descriptor form
func (t *Type) Kind() Kind {
	return t.kind
}

// Name returns raw class name or variable name
func (t *Type) Name() string {
	return t.name
}

// Owner returns declaring class name of a type variable
func (t *Type) Owner() string {
	return t.owner
}

// Elem returns array element type
func (t *Type) Elem() *Type {
	return t.elem
}

// Args returns a copy of type arguments
func (t *Type) Args() []*Type {
	if len(t.args) == 0 {
		return nil
	}
	ret := make([]*Type, len(t.args))
	copy(ret, t.args)
	return ret
}

// NumArgs returns number of type arguments
func (t *Type) NumArgs() int {
	return len(t.args)
}

// Arg returns type argument at position or nil
func (t *Type) Arg(i int) *Type {
	if i < 0 || i >= len(t.args) {
		return nil
	}
	return t.args[i]
}

// IsVariable returns true for type variable form
func (t *Type) IsVariable() bool {
	return t.kind == VariableKind
}

// IsArray returns true for array form
func (t *Type) IsArray() bool {
	return t.kind == ArrayKind
}

// IsClass returns true for class form
func (t *Type) IsClass() bool {
	return t.kind == ClassKind
}

// Raw returns class form without type arguments
func (t *Type) Raw() *Type {
	if t.kind != ClassKind || len(t.args) == 0 {
		return t
	}
	return Of(t.name)
}

// HasVariables returns true if descriptor references any type variable
func (t *Type) HasVariables() bool {
	switch t.kind {
	case VariableKind:
		return true
	case ArrayKind:
		return t.elem.HasVariables()
	}
	return lo.SomeBy(t.args, func(arg *Type) bool { return arg.HasVariables() })
}

// Equal returns true if both descriptors are structurally equal, argument order and count included
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.kind != other.kind || t.name != other.name || t.owner != other.owner {
		return false
	}
	if t.kind == ArrayKind {
		return t.elem.Equal(other.elem)
	}
	if len(t.args) != len(other.args) {
		return false
	}
	for i, arg := range t.args {
		if !arg.Equal(other.args[i]) {
			return false
		}
	}
	return true
}

// Key returns canonical lookup key, equal keys imply equal descriptors
func (t *Type) Key() string {
	builder := strings.Builder{}
	t.write(&builder, true)
	return builder.String()
}

// String returns type expression
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	builder := strings.Builder{}
	t.write(&builder, false)
	return builder.String()
}

func (t *Type) write(builder *strings.Builder, qualified bool) {
	switch t.kind {
	case ArrayKind:
		t.elem.write(builder, qualified)
		builder.WriteString("[]")
	case VariableKind:
		if qualified {
			builder.WriteString(t.owner)
			builder.WriteByte(':')
		}
		builder.WriteString(t.name)
	default:
		builder.WriteString(t.name)
		if len(t.args) == 0 {
			return
		}
		builder.WriteByte('<')
		for i, arg := range t.args {
			if i > 0 {
				builder.WriteByte(',')
			}
			arg.write(builder, qualified)
		}
		builder.WriteByte('>')
	}
}
