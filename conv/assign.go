package conv

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// Assign sets value into dest, converting slices, maps, pointers and primitives as needed
func (c *Converter) Assign(dest reflect.Value, value interface{}) error {
	destType := dest.Type()
	if value == nil {
		dest.Set(reflect.Zero(destType))
		return nil
	}
	srcValue := reflect.ValueOf(value)
	if srcValue.Type().AssignableTo(destType) {
		dest.Set(srcValue)
		return nil
	}
	switch destType.Kind() {
	case reflect.Ptr:
		if srcValue.Kind() == reflect.Ptr {
			if srcValue.IsNil() {
				dest.Set(reflect.Zero(destType))
				return nil
			}
			return c.Assign(dest, srcValue.Elem().Interface())
		}
		elem := reflect.New(destType.Elem())
		if err := c.Assign(elem.Elem(), value); err != nil {
			return err
		}
		dest.Set(elem)
		return nil
	case reflect.Struct:
		if srcValue.Kind() == reflect.Ptr && srcValue.Type().Elem() == destType {
			if srcValue.IsNil() {
				dest.Set(reflect.Zero(destType))
			} else {
				dest.Set(srcValue.Elem())
			}
			return nil
		}
	case reflect.Slice:
		if srcValue.Kind() == reflect.Slice || srcValue.Kind() == reflect.Array {
			result := reflect.MakeSlice(destType, srcValue.Len(), srcValue.Len())
			for i := 0; i < srcValue.Len(); i++ {
				if err := c.Assign(result.Index(i), srcValue.Index(i).Interface()); err != nil {
					return errors.Wrapf(err, "[%d]", i)
				}
			}
			dest.Set(result)
			return nil
		}
	case reflect.Array:
		if srcValue.Kind() == reflect.Slice || srcValue.Kind() == reflect.Array {
			if srcValue.Len() != destType.Len() {
				return errors.Newf("cannot assign %d elements to %v", srcValue.Len(), destType)
			}
			for i := 0; i < srcValue.Len(); i++ {
				if err := c.Assign(dest.Index(i), srcValue.Index(i).Interface()); err != nil {
					return errors.Wrapf(err, "[%d]", i)
				}
			}
			return nil
		}
	case reflect.Map:
		if srcValue.Kind() == reflect.Map {
			result := reflect.MakeMapWithSize(destType, srcValue.Len())
			iter := srcValue.MapRange()
			for iter.Next() {
				key := reflect.New(destType.Key()).Elem()
				if err := c.Assign(key, iter.Key().Interface()); err != nil {
					return err
				}
				item := reflect.New(destType.Elem()).Elem()
				if err := c.Assign(item, iter.Value().Interface()); err != nil {
					return errors.Wrapf(err, "[%v]", iter.Key().Interface())
				}
				result.SetMapIndex(key, item)
			}
			dest.Set(result)
			return nil
		}
	case reflect.Interface:
	default:
		adapted, err := c.Adapt(value, destType)
		if err != nil {
			return err
		}
		dest.Set(reflect.ValueOf(adapted))
		return nil
	}
	return errors.Newf("cannot assign %T to %v", value, destType)
}
