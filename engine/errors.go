package engine

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology"
)

// ErrMaxDepth is returned when value nesting exceeds configured max depth
var ErrMaxDepth = errors.New("max depth exceeded")

func malformed(t *typology.Type, path string, format string, args ...interface{}) error {
	return &typology.MalformedInputError{Type: t, Path: path, Reason: fmt.Sprintf(format, args...)}
}

func fieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPath(parent string, index int) string {
	return parent + "[" + strconv.Itoa(index) + "]"
}

func keyPath(parent, key string) string {
	return parent + "[" + strconv.Quote(key) + "]"
}
