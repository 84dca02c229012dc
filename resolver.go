package typology

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Resolver binds type variables against actual type arguments of an owner type
type Resolver struct {
	classes *Classes
}

// NewResolver creates a resolver
func NewResolver(classes *Classes) *Resolver {
	return &Resolver{classes: classes}
}

// Resolve returns owner type argument at the variable position in its declaring class formal parameters
func (r *Resolver) Resolve(owner, variable *Type) (*Type, error) {
	if variable == nil || !variable.IsVariable() {
		return nil, errors.Wrapf(ErrInvalidType, "%v is not a type variable", variable)
	}
	if owner == nil || !owner.IsClass() || owner.name != variable.owner {
		return nil, &UnresolvedVariableError{Owner: owner, Variable: variable}
	}
	class, err := r.classes.ClassOf(owner)
	if err != nil {
		return nil, err
	}
	position := class.ParamIndex(variable.name)
	if position == -1 || position >= len(owner.args) {
		return nil, &UnresolvedVariableError{Owner: owner, Variable: variable}
	}
	return owner.args[position], nil
}

// ResolveFirst resolves owner class first formal type parameter
func (r *Resolver) ResolveFirst(owner *Type) (*Type, error) {
	class, err := r.classes.ClassOf(owner)
	if err != nil {
		return nil, err
	}
	if !class.IsGeneric() {
		return nil, errors.Wrapf(ErrInvalidType, "%v does not declare type parameters", class.Name)
	}
	return r.Resolve(owner, VarOf(class.Name, class.Params[0]))
}

// Substitute replaces every type variable referenced by declared type with owner actual type arguments
func (r *Resolver) Substitute(owner, declared *Type) (*Type, error) {
	switch declared.kind {
	case VariableKind:
		return r.Resolve(owner, declared)
	case ArrayKind:
		if !declared.elem.HasVariables() {
			return declared, nil
		}
		elem, err := r.Substitute(owner, declared.elem)
		if err != nil {
			return nil, err
		}
		return ArrayOf(elem), nil
	}
	if !declared.HasVariables() {
		return declared, nil
	}
	args := make([]*Type, len(declared.args))
	for i, arg := range declared.args {
		resolved, err := r.Substitute(owner, arg)
		if err != nil {
			return nil, err
		}
		args[i] = resolved
	}
	return Of(declared.name, args...), nil
}

// Erase replaces every type variable with its declared bound or Object
func (r *Resolver) Erase(declared *Type) *Type {
	switch declared.kind {
	case VariableKind:
		if class, ok := r.classes.Lookup(declared.owner); ok {
			if bound := class.Bound(declared.name); bound != nil {
				return bound
			}
		}
		return Of(ObjectClass)
	case ArrayKind:
		return ArrayOf(r.Erase(declared.elem))
	}
	if !declared.HasVariables() {
		return declared
	}
	return Of(declared.name, lo.Map(declared.args, func(arg *Type, _ int) *Type { return r.Erase(arg) })...)
}
