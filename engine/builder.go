package engine

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology"
	"github.com/viant/typology/adapter"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/encoding/json"
	"github.com/viant/typology/instance"
	"go.uber.org/zap"
)

// Builder collects class and adapter registrations, it is meant for a single goroutine.
// Registration errors are deferred to Build.
type Builder struct {
	options  Options
	classes  *typology.Classes
	registry *adapter.Registry
	engine   *Engine
	err      error
}

// Classes returns class table, use it to parse type expressions for registration
func (b *Builder) Classes() *typology.Classes {
	return b.classes
}

// RegisterClass registers struct or interface backed class, i.e. RegisterClass("Pair", reflect.TypeOf(Pair{}), typology.WithParams("A", "B"))
func (b *Builder) RegisterClass(name string, goType reflect.Type, opts ...typology.Option) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := b.classes.Register(name, goType, opts...); err != nil {
		b.err = err
	}
	return b
}

// RegisterAdapter registers serializer and deserializer for exact type, either may be nil
func (b *Builder) RegisterAdapter(t *typology.Type, serializer adapter.Serializer, deserializer adapter.Deserializer) *Builder {
	if serializer == nil && deserializer == nil {
		return b.fail(errors.Wrapf(typology.ErrInvalidType, "adapter for %v: serializer or deserializer is required", t))
	}
	return b.register(t, &adapter.Entry{Serializer: serializer, Deserializer: deserializer})
}

// RegisterInstanceFactory registers instance factory for exact type
func (b *Builder) RegisterInstanceFactory(t *typology.Type, factory adapter.InstanceFactory) *Builder {
	if factory == nil {
		return b.fail(errors.Wrapf(typology.ErrInvalidType, "instance factory for %v is nil", t))
	}
	return b.register(t, &adapter.Entry{InstanceFactory: factory})
}

func (b *Builder) register(t *typology.Type, entry *adapter.Entry) *Builder {
	if b.err != nil {
		return b
	}
	overwritten, err := b.registry.Register(t, entry)
	if err != nil {
		return b.fail(err)
	}
	if overwritten {
		b.options.Logger.Debug("adapter registration overwritten", zap.Stringer("type", t))
	}
	return b
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Build freezes registrations and returns engine, subsequent calls return the same engine
func (b *Builder) Build() (*Engine, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.engine != nil {
		return b.engine, nil
	}
	converter := conv.NewConverter(b.options.Conversion)
	for _, conversion := range b.options.Conversions {
		if conversion.Source == nil || conversion.Destination == nil || conversion.Convert == nil {
			return nil, errors.Wrapf(typology.ErrInvalidType, "incomplete conversion %v to %v", conversion.Source, conversion.Destination)
		}
		converter.RegisterConversion(conversion.Source, conversion.Destination, conversion.Convert)
	}
	b.registry.Freeze()
	jsonOptions := append([]json.Option{json.WithMaxDepth(b.options.MaxDepth + 1)}, b.options.JSON...)
	b.engine = &Engine{
		options:   b.options,
		classes:   b.classes,
		registry:  b.registry,
		resolver:  typology.NewResolver(b.classes),
		creator:   instance.New(b.classes, b.registry),
		converter: converter,
		json:      json.New(jsonOptions...),
		logger:    b.options.Logger,
	}
	b.options.Logger.Debug("engine built", zap.Int("adapters", b.registry.Len()), zap.Strings("keys", b.registry.Keys()))
	return b.engine, nil
}

// NewBuilder creates engine builder with builtin classes
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		options:  resolveOptions(opts),
		classes:  typology.NewClasses(),
		registry: adapter.NewRegistry(),
	}
}

// New creates engine without custom classes or adapters
func New(opts ...Option) (*Engine, error) {
	return NewBuilder(opts...).Build()
}
