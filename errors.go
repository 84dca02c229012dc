package typology

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors, use errors.Is to match typed errors below.
var (
	// ErrUnresolvedVariable indicates a type variable could not be bound to a concrete argument.
	ErrUnresolvedVariable = errors.New("unresolved type variable")

	// ErrMalformedInput indicates node shape does not match decoded type.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoInstanceCreator indicates no factory, default constructor or primitive zero value is available.
	ErrNoInstanceCreator = errors.New("no instance creator")

	// ErrUnknownClass indicates type expression references unregistered class.
	ErrUnknownClass = errors.New("unknown class")

	// ErrInvalidType indicates malformed type expression or registration.
	ErrInvalidType = errors.New("invalid type")
)

// UnresolvedVariableError represents a type variable that owner type could not bind
type UnresolvedVariableError struct {
	Owner    *Type
	Variable *Type
	Path     string
}

func (e *UnresolvedVariableError) Error() string {
	msg := fmt.Sprintf("%s %s in %s", ErrUnresolvedVariable.Error(), e.Variable, e.Owner)
	if e.Path != "" {
		msg += fmt.Sprintf(" (field %s)", e.Path)
	}
	return msg
}

func (e *UnresolvedVariableError) Unwrap() error {
	return ErrUnresolvedVariable
}

// MalformedInputError represents structural mismatch between node and type
type MalformedInputError struct {
	Type   *Type
	Path   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	msg := fmt.Sprintf("%s for %s: %s", ErrMalformedInput.Error(), e.Type, e.Reason)
	if e.Path != "" {
		msg += fmt.Sprintf(" (field %s)", e.Path)
	}
	return msg
}

func (e *MalformedInputError) Unwrap() error {
	return ErrMalformedInput
}

// NoInstanceCreatorError represents type that can not be instantiated
type NoInstanceCreatorError struct {
	Type *Type
	Path string
}

func (e *NoInstanceCreatorError) Error() string {
	msg := fmt.Sprintf("%s for %s", ErrNoInstanceCreator.Error(), e.Type)
	if e.Path != "" {
		msg += fmt.Sprintf(" (field %s)", e.Path)
	}
	return msg
}

func (e *NoInstanceCreatorError) Unwrap() error {
	return ErrNoInstanceCreator
}

// WithPath sets field path on typed errors that do not have one yet.
// The deepest frame sets the path, outer frames return the error as is.
func WithPath(err error, path string) error {
	if err == nil || path == "" {
		return err
	}
	switch actual := err.(type) {
	case *UnresolvedVariableError:
		if actual.Path == "" {
			actual.Path = path
		}
	case *MalformedInputError:
		if actual.Path == "" {
			actual.Path = path
		}
	case *NoInstanceCreatorError:
		if actual.Path == "" {
			actual.Path = path
		}
	}
	return err
}
