package conv

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// Options contains configuration for the converter
type Options struct {
	// AllowTruncation allows fractional numbers to be truncated into integral types
	AllowTruncation bool
	// StrictBool disables numeric and textual coercion into bool
	StrictBool bool
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{}
}

// Converter adapts generic values, i.e. decoded node values, into exact Go types
type Converter struct {
	options       Options
	customConvMap sync.Map // map[typeKey]ConversionFunc
}

// ConversionFunc defines a custom conversion function
type ConversionFunc func(src interface{}, destType reflect.Type, opts Options) (interface{}, error)

type typeKey struct {
	srcType  reflect.Type
	destType reflect.Type
}

// NewConverter creates a new type converter with the provided options
func NewConverter(options Options) *Converter {
	return &Converter{
		options: options,
	}
}

// RegisterConversion registers a custom conversion function between source and destination types
func (c *Converter) RegisterConversion(srcType, destType reflect.Type, fn ConversionFunc) {
	c.customConvMap.Store(typeKey{srcType, destType}, fn)
}

// Adapt converts primitive source value into exact destType primitive value, i.e. "10" into int32(10)
func (c *Converter) Adapt(src interface{}, destType reflect.Type) (interface{}, error) {
	if src == nil {
		return reflect.Zero(destType).Interface(), nil
	}
	srcValue := reflect.ValueOf(src)
	srcType := srcValue.Type()
	if v, ok := c.customConvMap.Load(typeKey{srcType, destType}); ok {
		return v.(ConversionFunc)(src, destType, c.options)
	}
	if srcType == destType {
		return src, nil
	}
	destValue := reflect.New(destType).Elem()
	var err error
	switch destType.Kind() {
	case reflect.String:
		err = c.convertToString(destValue, srcValue)
	case reflect.Bool:
		err = c.convertToBool(destValue, srcValue)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		err = c.convertToInt(destValue, srcValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		err = c.convertToUint(destValue, srcValue)
	case reflect.Float32, reflect.Float64:
		err = c.convertToFloat(destValue, srcValue)
	default:
		if !srcType.ConvertibleTo(destType) {
			return nil, errors.Newf("unsupported conversion: %v to %v", srcType, destType)
		}
		destValue.Set(srcValue.Convert(destType))
	}
	if err != nil {
		return nil, err
	}
	return destValue.Interface(), nil
}

func (c *Converter) convertToString(destValue, srcValue reflect.Value) error {
	var result string
	switch srcValue.Kind() {
	case reflect.String:
		result = srcValue.String()
	case reflect.Bool:
		result = strconv.FormatBool(srcValue.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = strconv.FormatInt(srcValue.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = strconv.FormatUint(srcValue.Uint(), 10)
	case reflect.Float32:
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, 32)
	case reflect.Float64:
		result = strconv.FormatFloat(srcValue.Float(), 'f', -1, 64)
	default:
		return errors.Newf("cannot convert %v to string", srcValue.Type())
	}
	destValue.SetString(result)
	return nil
}

func (c *Converter) convertToBool(destValue, srcValue reflect.Value) error {
	var result bool
	switch srcValue.Kind() {
	case reflect.Bool:
		result = srcValue.Bool()
	case reflect.String:
		var err error
		if result, err = strconv.ParseBool(srcValue.String()); err != nil {
			return errors.Newf("cannot convert %q to bool", srcValue.String())
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if c.options.StrictBool {
			return errors.Newf("cannot convert %v to bool", srcValue.Type())
		}
		result = srcValue.Int() != 0
	default:
		return errors.Newf("cannot convert %v to bool", srcValue.Type())
	}
	destValue.SetBool(result)
	return nil
}

func (c *Converter) convertToInt(destValue, srcValue reflect.Value) error {
	var result int64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = srcValue.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := srcValue.Uint()
		if v > math.MaxInt64 {
			return errors.Newf("value %d overflows %v", v, destValue.Type())
		}
		result = int64(v)
	case reflect.Float32, reflect.Float64:
		v, err := c.integral(srcValue.Float())
		if err != nil {
			return err
		}
		result = v
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			f, fErr := parseDecimal(text)
			if fErr != nil {
				return errors.Newf("cannot convert %q to %v", text, destValue.Type())
			}
			if v, err = c.integral(f); err != nil {
				return err
			}
		}
		result = v
	default:
		return errors.Newf("cannot convert %v to %v", srcValue.Type(), destValue.Type())
	}
	if destValue.OverflowInt(result) {
		return errors.Newf("value %d overflows %v", result, destValue.Type())
	}
	destValue.SetInt(result)
	return nil
}

func (c *Converter) convertToUint(destValue, srcValue reflect.Value) error {
	var result uint64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := srcValue.Int()
		if v < 0 {
			return errors.Newf("cannot convert negative value %d to %v", v, destValue.Type())
		}
		result = uint64(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = srcValue.Uint()
	case reflect.Float32, reflect.Float64:
		v, err := c.integral(srcValue.Float())
		if err != nil {
			return err
		}
		if v < 0 {
			return errors.Newf("cannot convert negative value %d to %v", v, destValue.Type())
		}
		result = uint64(v)
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return errors.Newf("cannot convert %q to %v", text, destValue.Type())
		}
		result = v
	default:
		return errors.Newf("cannot convert %v to %v", srcValue.Type(), destValue.Type())
	}
	if destValue.OverflowUint(result) {
		return errors.Newf("value %d overflows %v", result, destValue.Type())
	}
	destValue.SetUint(result)
	return nil
}

func (c *Converter) convertToFloat(destValue, srcValue reflect.Value) error {
	var result float64
	switch srcValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		result = float64(srcValue.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		result = float64(srcValue.Uint())
	case reflect.Float32, reflect.Float64:
		result = srcValue.Float()
	case reflect.String:
		text := strings.TrimSpace(srcValue.String())
		v, err := parseDecimal(text)
		if err != nil {
			return errors.Newf("cannot convert %q to %v", text, destValue.Type())
		}
		result = v
	default:
		return errors.Newf("cannot convert %v to %v", srcValue.Type(), destValue.Type())
	}
	if destValue.OverflowFloat(result) {
		return errors.Newf("value %v overflows %v", result, destValue.Type())
	}
	destValue.SetFloat(result)
	return nil
}

// parseDecimal parses JSON number text, NaN, infinities and hex literals are rejected
func parseDecimal(text string) (float64, error) {
	if !ValidNumber(text) {
		return 0, errors.Newf("invalid number %q", text)
	}
	return strconv.ParseFloat(text, 64)
}

func (c *Converter) integral(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Newf("cannot convert %v to integer", f)
	}
	if f != math.Trunc(f) && !c.options.AllowTruncation {
		return 0, errors.Newf("cannot convert fractional %v to integer", f)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, errors.Newf("value %v overflows int64", f)
	}
	return int64(f), nil
}
