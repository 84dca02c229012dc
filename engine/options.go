package engine

import (
	"reflect"

	"github.com/viant/tagly/format/text"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/encoding/json"
	"go.uber.org/zap"
)

// DefaultMaxDepth limits value nesting when no explicit depth is given
const DefaultMaxDepth = 1000

// Option configures engine
type Option interface {
	apply(*Options)
}

// Options represents engine options
type Options struct {
	CaseFormat      text.CaseFormat
	SerializeNulls  bool
	StrictVariables bool
	MaxDepth        int
	Logger          *zap.Logger
	Conversion      conv.Options
	Conversions     []Conversion
	JSON            []json.Option
}

// Conversion represents custom primitive conversion registered on engine converter
type Conversion struct {
	Source      reflect.Type
	Destination reflect.Type
	Convert     conv.ConversionFunc
}

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithCaseFormat sets output case format of field names without explicit json or format tag name
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return optionFn(func(o *Options) { o.CaseFormat = caseFormat })
}

// WithSerializeNulls writes null fields instead of omitting them
func WithSerializeNulls() Option {
	return optionFn(func(o *Options) { o.SerializeNulls = true })
}

// WithStrictVariables returns unresolved type variable errors instead of erasing variables to their bound or Object
func WithStrictVariables() Option {
	return optionFn(func(o *Options) { o.StrictVariables = true })
}

// WithMaxDepth limits value nesting
func WithMaxDepth(depth int) Option {
	return optionFn(func(o *Options) { o.MaxDepth = depth })
}

// WithLogger sets logger used for engine diagnostics, nop logger is used by default
func WithLogger(logger *zap.Logger) Option {
	return optionFn(func(o *Options) { o.Logger = logger })
}

// WithConversion sets primitive coercion options
func WithConversion(options conv.Options) Option {
	return optionFn(func(o *Options) { o.Conversion = options })
}

// WithConversionFunc registers custom conversion from source to destination Go type, i.e. "yes" into true
func WithConversionFunc(source, destination reflect.Type, fn conv.ConversionFunc) Option {
	return optionFn(func(o *Options) {
		o.Conversions = append(o.Conversions, Conversion{Source: source, Destination: destination, Convert: fn})
	})
}

// WithJSONOptions sets JSON codec options used by ToJSON and FromJSON
func WithJSONOptions(opts ...json.Option) Option {
	return optionFn(func(o *Options) { o.JSON = append(o.JSON, opts...) })
}

func defaultOptions() Options {
	return Options{
		CaseFormat: text.CaseFormatUndefined,
		MaxDepth:   DefaultMaxDepth,
		Conversion: conv.DefaultOptions(),
	}
}

func resolveOptions(opts []Option) Options {
	result := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&result)
	}
	if result.MaxDepth <= 0 {
		result.MaxDepth = DefaultMaxDepth
	}
	if result.Logger == nil {
		result.Logger = zap.NewNop()
	}
	return result
}
