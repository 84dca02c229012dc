package engine

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology"
	"github.com/viant/typology/adapter"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/encoding/json"
	"github.com/viant/typology/instance"
	"github.com/viant/typology/node"
	"go.uber.org/zap"
)

var interfaceType = reflect.TypeOf((*interface{})(nil)).Elem()

// Engine converts values to and from node tree under explicit type descriptors.
// Engine is immutable once built and safe for concurrent use.
type Engine struct {
	options   Options
	classes   *typology.Classes
	registry  *adapter.Registry
	resolver  *typology.Resolver
	creator   *instance.Creator
	converter *conv.Converter
	json      *json.Codec
	logger    *zap.Logger
}

// Classes returns class table
func (e *Engine) Classes() *typology.Classes {
	return e.classes
}

// Registry returns frozen adapter registry
func (e *Engine) Registry() *adapter.Registry {
	return e.registry
}

// Resolver returns type variable resolver
func (e *Engine) Resolver() *typology.Resolver {
	return e.resolver
}

// Options returns engine options
func (e *Engine) Options() Options {
	return e.options
}

// Serialize converts value declared as t into node tree
func (e *Engine) Serialize(value interface{}, t *typology.Type) (*node.Node, error) {
	return e.serialize(value, t, 0, "")
}

// Deserialize converts node tree into value of t, struct classes are returned as pointers
func (e *Engine) Deserialize(n *node.Node, t *typology.Type) (interface{}, error) {
	return e.deserialize(n, t, 0, "")
}

// Adapt coerces primitive value into exact Go type of primitive class t
func (e *Engine) Adapt(value interface{}, t *typology.Type) (interface{}, error) {
	if n, ok := value.(*node.Node); ok {
		value = n.Interface()
	}
	class, err := e.classes.ClassOf(t)
	if err != nil {
		return nil, err
	}
	switch {
	case class.IsPrimitive():
		return e.adapt(value, class)
	case class.Category == typology.NumberCategory:
		return e.number(value)
	}
	return nil, errors.Wrapf(typology.ErrInvalidType, "%v is not a primitive class", t)
}

// substitute resolves declared type against owner, unresolved variables are erased unless strict variables are set
func (e *Engine) substitute(owner, declared *typology.Type, path string) (*typology.Type, error) {
	resolved, err := e.resolver.Substitute(owner, declared)
	if err == nil {
		return resolved, nil
	}
	var unresolved *typology.UnresolvedVariableError
	if !errors.As(err, &unresolved) || e.options.StrictVariables {
		return nil, typology.WithPath(err, path)
	}
	erased := e.resolver.Erase(declared)
	e.logger.Debug("erased unresolved type variable",
		zap.Stringer("owner", owner),
		zap.Stringer("declared", declared),
		zap.Stringer("erased", erased),
		zap.String("path", path))
	return erased, nil
}

// argument resolves class formal parameter at index against owner
func (e *Engine) argument(owner *typology.Type, class *typology.Class, index int, path string) (*typology.Type, error) {
	return e.substitute(owner, typology.VarOf(class.Name, class.Params[index]), path)
}

// goTypeOf returns Go type holding deserialized values of t
func (e *Engine) goTypeOf(t *typology.Type) reflect.Type {
	switch t.Kind() {
	case typology.ArrayKind:
		return reflect.SliceOf(e.goTypeOf(t.Elem()))
	case typology.VariableKind:
		return interfaceType
	}
	class, ok := e.classes.Lookup(t.Name())
	if !ok {
		return interfaceType
	}
	switch class.Category {
	case typology.PrimitiveCategory:
		return class.Type
	case typology.StructCategory:
		return reflect.PtrTo(class.Type)
	case typology.ListCategory, typology.MapCategory:
		return class.Type
	}
	return interfaceType
}

func (e *Engine) checkDepth(t *typology.Type, depth int, path string) error {
	if depth > e.options.MaxDepth {
		return errors.Wrapf(ErrMaxDepth, "%v at %q, limit %d", t, path, e.options.MaxDepth)
	}
	if t == nil {
		return errors.Wrapf(typology.ErrInvalidType, "nil type at %q", path)
	}
	if t.IsVariable() {
		return &typology.UnresolvedVariableError{Variable: t, Path: path}
	}
	return nil
}

// frame implements adapter.Context for a single adapter invocation
type frame struct {
	engine *Engine
	depth  int
	path   string
}

func (f *frame) Serialize(value interface{}) (*node.Node, error) {
	t, err := f.engine.classes.TypeOf(value)
	if err != nil {
		return nil, err
	}
	return f.engine.serialize(value, t, f.depth+1, f.path)
}

func (f *frame) SerializeAs(value interface{}, t *typology.Type) (*node.Node, error) {
	return f.engine.serialize(value, t, f.depth+1, f.path)
}

func (f *frame) Deserialize(n *node.Node, t *typology.Type) (interface{}, error) {
	return f.engine.deserialize(n, t, f.depth+1, f.path)
}

func (f *frame) Resolve(owner, variable *typology.Type) (*typology.Type, error) {
	ret, err := f.engine.resolver.Resolve(owner, variable)
	return ret, typology.WithPath(err, f.path)
}

func (f *frame) ResolveFirst(owner *typology.Type) (*typology.Type, error) {
	ret, err := f.engine.resolver.ResolveFirst(owner)
	return ret, typology.WithPath(err, f.path)
}

func (f *frame) Adapt(value interface{}, t *typology.Type) (interface{}, error) {
	ret, err := f.engine.Adapt(value, t)
	if err != nil && !errors.Is(err, typology.ErrInvalidType) && !errors.Is(err, typology.ErrUnknownClass) {
		return nil, malformed(t, f.path, "%v", err)
	}
	return ret, err
}

func (f *frame) Classes() *typology.Classes {
	return f.engine.classes
}

var _ adapter.Context = (*frame)(nil)
