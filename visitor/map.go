package visitor

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/samber/lo"
)

// EntryVisitorOf returns a visitor over map entries ordered by key, map key kind has to be string.
func EntryVisitorOf(value interface{}) (Visitor[string, any], error) {
	if actual, ok := value.(map[string]interface{}); ok {
		keys := lo.Keys(actual)
		sort.Strings(keys)
		return func(f func(key string, element any) (bool, error)) error {
			for _, key := range keys {
				continueVisit, err := f(key, actual[key])
				if err != nil || !continueVisit {
					return err
				}
			}
			return nil
		}, nil
	}
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Map {
		return nil, fmt.Errorf("expected map, got %T", value)
	}
	if val.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("unsupported key %v", val.Type().Key())
	}
	keys := val.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return func(f func(key string, element any) (bool, error)) error {
		for _, key := range keys {
			continueVisit, err := f(key.String(), val.MapIndex(key).Interface())
			if err != nil || !continueVisit {
				return err
			}
		}
		return nil
	}, nil
}
